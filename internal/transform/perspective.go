package transform

import (
	"fmt"
	"regexp"
	"strings"

	"interview-insights-go/internal/textutil"
)

const defaultCompany = "la empresa"

type perspectiveRule struct {
	re         *regexp.Regexp
	candidates []string // each holds one %s for the company name
}

var perspectiveRules = []perspectiveRule{
	{regexp.MustCompile(`(?i)(?:yo )?(?:creo|pienso|considero) que`), []string{
		"desde la perspectiva de %s, se considera que",
		"en %s consideramos que",
		"para %s es claro que",
	}},
	{regexp.MustCompile(`(?i)(?:en mi opinión|a mi parecer|para mí),?`), []string{
		"desde la perspectiva de %s,",
		"en opinión de %s,",
		"para %s,",
	}},
	{regexp.MustCompile(`(?i)(?:nosotros )?(?:vemos|notamos|sentimos) que`), []string{
		"en %s se observa que",
		"%s identifica que",
		"desde %s se percibe que",
	}},
	{regexp.MustCompile(`(?i)(?:a )?nosotros nos (?:interesa|conviene)`), []string{
		"%s tiene interés en",
		"para %s resulta de interés",
		"%s busca",
	}},
}

var possessiveRules = rules(
	`(?i)mi (empresa|compañía|marca|tienda)`, "nuestra ${1}",
	`(?i)mi (negocio|equipo|producto|cliente|proveedor)`, "nuestro ${1}",
	`(?i)mis (productos|clientes|proveedores|distribuidores|socios)`, "nuestros ${1}",
	`(?i)mis (ventas|marcas|tiendas)`, "nuestras ${1}",
)

func (t *Transformer) integratePerspective(s, company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		company = defaultCompany
	}
	for _, r := range perspectiveRules {
		s = textutil.ReplaceBoundedFunc(r.re, s, func(string, []int) string {
			return fmt.Sprintf(r.candidates[t.pick(len(r.candidates))], company)
		})
	}
	return applyRules(s, possessiveRules)
}
