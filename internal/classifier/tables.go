package classifier

import "interview-insights-go/internal/types"

// DefaultAreaCode is returned when no area keyword matches.
const DefaultAreaCode = "1099"

// UnknownCompany is returned when no subject company is detected.
const UnknownCompany = "TBD"

// businessAreas is the reference taxonomy. Keywords are lowercase and matched
// on word boundaries.
var businessAreas = []types.BusinessArea{
	{Code: "1001", DisplayName: "Estrategia comercial y ventas", Priority: 1, Keywords: []string{
		"ventas", "venta", "mercado", "estrategia", "crecimiento", "comercial", "clientes", "cliente", "expansión", "exportación",
	}},
	{Code: "1002", DisplayName: "Producto e innovación", Priority: 1, Keywords: []string{
		"producto", "productos", "innovación", "calidad", "desarrollo", "lanzamiento", "portafolio", "empaque",
	}},
	{Code: "1003", DisplayName: "Precios y rentabilidad", Priority: 1, Keywords: []string{
		"precio", "precios", "margen", "márgenes", "costo", "costos", "rentabilidad", "descuento", "descuentos",
	}},
	{Code: "1004", DisplayName: "Alianzas y relación con socios", Priority: 2, Keywords: []string{
		"alianza", "alianzas", "socio", "socios", "proveedor", "proveedores", "colaboración", "relación", "acuerdo", "acuerdos", "confianza", "convenio",
	}},
	{Code: "1005", DisplayName: "Marketing y marca", Priority: 2, Keywords: []string{
		"marca", "marcas", "publicidad", "promoción", "promociones", "campaña", "marketing", "redes sociales",
	}},
	{Code: "1006", DisplayName: "Distribución y logística", Priority: 1, Keywords: []string{
		"distribución", "distribuidor", "distribuidores", "cadena", "entrega", "entregas", "logística", "transporte", "inventario", "almacén", "ruta",
	}},
	{Code: "1007", DisplayName: "Servicio y atención al cliente", Priority: 2, Keywords: []string{
		"servicio", "atención", "soporte", "queja", "quejas", "reclamo", "respuesta",
	}},
	{Code: "1008", DisplayName: "Operaciones y procesos", Priority: 2, Keywords: []string{
		"proceso", "procesos", "operación", "operaciones", "operativo", "eficiencia", "producción", "planta",
	}},
	{Code: "1009", DisplayName: "Tecnología y digitalización", Priority: 3, Keywords: []string{
		"tecnología", "digital", "digitalización", "sistema", "sistemas", "plataforma", "datos", "aplicación",
	}},
	{Code: "1010", DisplayName: "Talento y organización", Priority: 3, Keywords: []string{
		"equipo", "personal", "capacitación", "talento", "liderazgo", "organización", "cultura",
	}},
	{Code: "1011", DisplayName: "Regulación y cumplimiento", Priority: 3, Keywords: []string{
		"regulación", "normativa", "permisos", "certificación", "cumplimiento", "impuestos",
	}},
	{Code: DefaultAreaCode, DisplayName: "Temas generales", Priority: 3},
}

var sentimentSets = []struct {
	code     types.Sentiment
	keywords []string
}{
	{types.SentimentPositive, []string{
		"excelente", "bueno", "buena", "positivo", "positiva", "satisfecho", "contento", "fortaleza", "sólida", "favorable", "éxito",
	}},
	{types.SentimentOpportunity, []string{
		"mejora", "oportunidad", "reto", "desafío", "podría", "potencial", "complejidad", "pendiente",
	}},
	{types.SentimentUrgent, []string{
		"urgente", "crítico", "crítica", "inmediato", "inmediata", "grave", "pérdida", "riesgo", "cancelar", "inaceptable", "retrasos",
	}},
}

// companyKeywords is scanned in order; the first keyword found wins, so
// longer names precede their short forms.
var companyKeywords = []struct {
	keyword string
	code    string
}{
	{"grupo lala", "LALA"},
	{"lala", "LALA"},
	{"alpura", "ALPURA"},
	{"nestlé", "NESTLE"},
	{"nestle", "NESTLE"},
	{"danone", "DANONE"},
	{"lactalis", "LACTALIS"},
	{"sigma alimentos", "SIGMA"},
	{"bimbo", "BIMBO"},
	{"walmart", "WALMART"},
	{"oxxo", "OXXO"},
	{"soriana", "SORIANA"},
	{"chedraui", "CHEDRAUI"},
	{"costco", "COSTCO"},
}
