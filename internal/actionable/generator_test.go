package actionable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"interview-insights-go/internal/aggregator"
)

func TestGenerate(t *testing.T) {
	names := map[string]string{"1006": "Distribución y logística"}

	tests := []struct {
		name    string
		summary aggregator.Summary
		insight string
		action  string
	}{
		{
			name:    "urgent",
			summary: aggregator.Summary{UrgentShare: 0.5, DominantArea: "1006", AreaNames: names},
			insight: "50% de las respuestas del entrevistado son urgentes; el área principal es Distribución y logística",
			action:  "Escalar los hallazgos de Distribución y logística",
		},
		{
			name:    "dominant area",
			summary: aggregator.Summary{UrgentShare: 0.1, DominantArea: "1006", AreaNames: names, AreaCounts: map[string]int{"1006": 4}},
			insight: "El área con más menciones es Distribución y logística (4 segmentos)",
			action:  "Programar una sesión de mejora",
		},
		{
			name:    "positive",
			summary: aggregator.Summary{PositiveShare: 0.7, DominantArea: "1099"},
			insight: "La relación se percibe como positiva",
			action:  "Documentar",
		},
		{
			name:    "no pattern",
			summary: aggregator.Summary{DominantArea: "1099"},
			insight: "No se detectó un patrón dominante",
			action:  "Completar más entrevistas",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Generate(tt.summary)
			assert.Equal(t, tt.insight, card.Insight)
			assert.Contains(t, card.Action, tt.action)
			assert.NotEmpty(t, card.Impact)
		})
	}
}

func TestGenerate_UrgentWithoutArea(t *testing.T) {
	card := Generate(aggregator.Summary{UrgentShare: 1, DominantArea: "1099"})
	assert.Contains(t, card.Insight, "temas generales")
}
