package transform

import (
	"regexp"
	"strings"

	"interview-insights-go/internal/textutil"
)

var productCategories = []string{
	"queso", "quesos", "leche", "yogur", "yogurt", "crema", "mantequilla", "helado",
	"jamón", "salchicha", "salsa", "bebida", "jugo", "café", "pan", "galleta",
	"galletas", "cerveza", "vino", "aceite", "chocolate",
}

var stopwords = toSet(
	"a", "al", "de", "del", "el", "la", "los", "las", "lo", "le", "les", "un", "una", "unos", "unas",
	"y", "e", "o", "u", "que", "con", "en", "para", "por", "sin", "sobre", "entre", "hasta", "desde",
	"es", "son", "se", "su", "sus", "muy", "más", "menos", "también", "no", "sí", "pero", "como",
	"ya", "hay", "está", "están", "tiene", "tienen", "fue", "era", "nos", "mi", "mis", "nuestro",
	"nuestra", "nuestros", "nuestras", "este", "esta", "ese", "esa", "porque", "cuando", "donde",
	"ha", "han", "va", "van", "sea", "ser", "así", "tan", "todo", "toda", "todos", "todas", "bien", "mal",
)

var productDescriptor = regexp.MustCompile(`(?i)(` + strings.Join(productCategories, "|") + `)\s+(\p{L}+)`)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var categorySet = toSet(productCategories...)

// bracketProducts turns "queso mozzarella" into "queso (mozzarella)". A
// descriptor that is a stopword or another category is left alone.
func bracketProducts(s string) string {
	return textutil.ReplaceBoundedFunc(productDescriptor, s, func(src string, m []int) string {
		noun, desc := src[m[2]:m[3]], src[m[4]:m[5]]
		lower := textutil.Lower(desc)
		if stopwords[lower] || categorySet[lower] {
			return src[m[0]:m[1]]
		}
		return noun + " (" + desc + ")"
	})
}
