package transform

// Article-bearing forms come first so gender agreement survives the swap.
var vocabularyRules = rules(
	`(?i)las cosas`, "los aspectos",
	`(?i)la cosa`, "el aspecto",
	`(?i)una cosa`, "un aspecto",
	`(?i)la gente`, "el personal",
	`(?i)la chamba`, "el trabajo",
	`(?i)cosas`, "aspectos",
	`(?i)cosa`, "aspecto",
	`(?i)s[uú]per`, "muy",
	`(?i)checar`, "revisar",
	`(?i)chamba`, "trabajo",
	`(?i)arreglar`, "resolver",
	`(?i)baratos?`, "de precio competitivo",
	`(?i)caros?`, "de alto costo",
	`(?i)rápido`, "ágil",
	`(?i)problemas`, "desafíos",
	`(?i)problema`, "desafío",
	`(?i)gente`, "personal",
	`(?i)jefe`, "responsable",
	`(?i)platicar`, "dialogar",
	`(?i)usar`, "utilizar",
	`(?i)ayudar`, "apoyar",
	`(?i)vender`, "comercializar",
	`(?i)chido`, "favorable",
)

func upgradeVocabulary(s string) string {
	return applyRules(s, vocabularyRules)
}
