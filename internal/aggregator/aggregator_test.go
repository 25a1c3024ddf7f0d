package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"interview-insights-go/internal/types"
)

func rec(speaker, duration, area string, s types.Sentiment, company string) types.InsightRecord {
	return types.InsightRecord{
		Speaker: speaker, Duration: duration, AreaCode: area, AreaName: "area " + area,
		Sentiment: s, SubjectCompany: company,
	}
}

func TestAggregate(t *testing.T) {
	records := []types.InsightRecord{
		rec("Entrevistador", "0:05.000", "1099", types.SentimentOpportunity, "TBD"),
		rec("Entrevistado", "0:20.000", "1006", types.SentimentUrgent, "WALMART"),
		rec("Entrevistado", "0:10.000", "1006", types.SentimentOpportunity, "TBD"),
		rec("Entrevistado", "0:15.000", "1003", types.SentimentPositive, "WALMART"),
	}
	s := Aggregate(records)

	assert.Equal(t, 4, s.Segments)
	assert.InDelta(t, 50.0, s.TotalSeconds, 1e-9)
	assert.InDelta(t, 0.9, s.IntervieweeShare, 1e-9)
	assert.Equal(t, 2, s.AreaCounts["1006"])
	assert.Equal(t, "area 1006", s.AreaNames["1006"])
	assert.Equal(t, 1, s.SentimentCounts[types.SentimentUrgent])
	assert.Equal(t, 3, s.SpeakerCounts["Entrevistado"])
	assert.Equal(t, map[string]int{"WALMART": 2}, s.Companies)
	assert.Equal(t, "1006", s.DominantArea)
	assert.InDelta(t, 1.0/3, s.UrgentShare, 1e-9)
	assert.InDelta(t, 1.0/3, s.PositiveShare, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Zero(t, s.Segments)
	assert.Zero(t, s.IntervieweeShare)
	assert.Equal(t, "1099", s.DominantArea)
}

func TestAggregate_DominantAreaTieUsesCode(t *testing.T) {
	s := Aggregate([]types.InsightRecord{
		rec("Entrevistado", "0:04.000", "1005", types.SentimentOpportunity, ""),
		rec("Entrevistado", "0:04.000", "1002", types.SentimentOpportunity, ""),
	})
	assert.Equal(t, "1002", s.DominantArea)
}
