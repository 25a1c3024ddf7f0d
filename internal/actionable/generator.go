package actionable

import (
	"fmt"

	"interview-insights-go/internal/aggregator"
	"interview-insights-go/internal/classifier"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

const (
	urgentThreshold   = 0.3
	positiveThreshold = 0.5
)

func Generate(s aggregator.Summary) ActionCard {
	area := s.AreaNames[s.DominantArea]
	if area == "" || s.DominantArea == classifier.DefaultAreaCode {
		area = "temas generales"
	}

	if s.UrgentShare >= urgentThreshold {
		return ActionCard{
			Insight: fmt.Sprintf("%.0f%% de las respuestas del entrevistado son urgentes; el área principal es %s", s.UrgentShare*100, area),
			Action:  fmt.Sprintf("Escalar los hallazgos de %s al responsable de la cuenta y acordar un plan en menos de 48 horas", area),
			Impact:  "Reducir el riesgo de pérdida del socio comercial",
		}
	}
	if s.DominantArea != classifier.DefaultAreaCode {
		return ActionCard{
			Insight: fmt.Sprintf("El área con más menciones es %s (%d segmentos)", area, s.AreaCounts[s.DominantArea]),
			Action:  fmt.Sprintf("Programar una sesión de mejora con el socio enfocada en %s", area),
			Impact:  "Priorizar la inversión donde el socio percibe más oportunidades",
		}
	}
	if s.PositiveShare >= positiveThreshold {
		return ActionCard{
			Insight: "La relación se percibe como positiva",
			Action:  "Documentar las prácticas actuales para replicarlas con otros socios",
			Impact:  "Mantener la satisfacción del socio",
		}
	}
	return ActionCard{
		Insight: "No se detectó un patrón dominante",
		Action:  "Completar más entrevistas antes de definir acciones",
		Impact:  "Sin intervención inmediata",
	}
}
