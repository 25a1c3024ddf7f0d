package segmenter

import (
	"strings"

	"interview-insights-go/internal/textutil"
	"interview-insights-go/internal/types"
)

type topic struct {
	name     string
	keywords []string
}

// topicTable is deliberately coarse: it only needs to notice abrupt changes.
var topicTable = []topic{
	{"distribucion", []string{"distribu", "entrega", "logística", "logistica", "transporte", "almacén", "cadena", "ruta"}},
	{"alianza", []string{"alianza", "socio", "colabora", "relación", "relacion", "acuerdo", "contrato", "convenio"}},
	{"productos", []string{"producto", "queso", "leche", "yogur", "marca", "empaque", "calidad", "portafolio"}},
	{"problemas", []string{"problema", "dificultad", "complica", "falla", "queja", "retraso", "reclamo"}},
	{"precios", []string{"precio", "costo", "margen", "descuento", "rentab"}},
}

func topicsOf(words []types.WordToken) map[string]bool {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	text := textutil.Lower(strings.Join(parts, " "))
	found := map[string]bool{}
	for _, t := range topicTable {
		for _, kw := range t.keywords {
			if strings.Contains(text, kw) {
				found[t.name] = true
				break
			}
		}
	}
	return found
}

// topicChanged compares the tail of the open segment with the upcoming words.
// Both windows need enough words and at least one topic, and the topic sets
// must not overlap.
func (s *Segmenter) topicChanged(before, after []types.WordToken) bool {
	if len(before) > s.cfg.TopicWindow {
		before = before[len(before)-s.cfg.TopicWindow:]
	}
	if len(after) > s.cfg.TopicWindow {
		after = after[:s.cfg.TopicWindow]
	}
	if len(before) < s.cfg.TopicMinWords || len(after) < s.cfg.TopicMinWords {
		return false
	}
	a, b := topicsOf(before), topicsOf(after)
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for name := range a {
		if b[name] {
			return false
		}
	}
	return true
}
