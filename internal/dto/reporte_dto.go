package dto

import "github.com/shopspring/decimal"

type ItemVendido struct {
	ItemID        string `json:"item_id"`
	Nombre        string `json:"nombre"`
	CantidadTotal int    `json:"cantidad_total"`
}

// ReporteDiaResponse is the closed-order summary for one date.
type ReporteDiaResponse struct {
	Fecha    string          `json:"fecha"`
	Total    decimal.Decimal `json:"total"`
	TopItems []ItemVendido   `json:"items_vendidos"`
}

type TendenciaPunto struct {
	Fecha string          `json:"fecha"`
	Total decimal.Decimal `json:"total"`
}

// ChartDataResponse feeds the web dashboard: revenue trend over a range,
// top products, and today's running total.
type ChartDataResponse struct {
	Tendencia    []TendenciaPunto `json:"tendencia"`
	TopProductos struct {
		Nombres    []string `json:"nombres"`
		Cantidades []int    `json:"cantidades"`
	} `json:"top_productos"`
	ResumenHoy struct {
		Total decimal.Decimal `json:"total"`
	} `json:"resumen_hoy"`
}
