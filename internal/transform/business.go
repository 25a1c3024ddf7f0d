package transform

// Ordered from most to least specific; earlier rewrites remove the wording
// later ones would otherwise match.
var businessRules = rules(
	`(?i)(?:es|resulta) (?:muy |bastante |súper |super )?(?:complejo|complicado|difícil) trabajar con (?:los |las |el |la )?(\p{L}+)`,
	"trabajar con ${1} representa un reto operativo",

	`(?i)(?:los |las )?distribuidores no (?:cumplen|responden|llegan)`,
	"los distribuidores presentan oportunidades de mejora en su nivel de servicio",

	`(?i)(?:el |los |la |las )?(?:producto|pedido|mercancía)s? (?:llega|llegan) tarde`,
	"se presentan retrasos en la entrega del producto",

	`(?i)no (?:nos )?llegan? (?:el |la |los |las )?(?:producto|pedido|mercancía)s? a tiempo`,
	"se presentan retrasos en la entrega del producto",

	`(?i)(?:nos )?(?:llevamos|trabajamos) (?:muy )?bien con (?:el |la |los |las )?(\p{L}+)`,
	"mantenemos una relación comercial sólida con ${1}",

	`(?i)(?:la )?relación (?:es|está) (?:muy )?(?:buena|bien)`,
	"la relación comercial es positiva",

	`(?i)(?:la )?relación (?:es|está) (?:muy )?(?:mala|difícil|complicada)`,
	"la relación comercial presenta áreas de mejora",

	`(?i)(?:hay|tenemos) (?:muchos |varios )?problemas con (?:el |la |los |las )?(\p{L}+)`,
	"se identifican desafíos relacionados con ${1}",

	`(?i)(?:se )?podrían? mejorar`,
	"existen oportunidades de mejora",

	`(?i)(?:es|está) (?:muy )?(?:complejo|complicado)`,
	"presenta un nivel de complejidad relevante",
)

func reconstructBusiness(s string) string {
	return applyRules(s, businessRules)
}
