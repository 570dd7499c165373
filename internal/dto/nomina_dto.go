package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NominaRequest is bound from the query string of GET /api/nomina.
type NominaRequest struct {
	Desde string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"required,datetime=2006-01-02"`
}

// NominaDia is the per-calendar-day breakdown shown on the printable report.
// First entry / last exit are recorded even for shifts that earned nothing,
// so the report always shows when the employee was on site.
type NominaDia struct {
	Fecha            string          `json:"fecha"`
	PrimeraEntrada   *time.Time      `json:"primera_entrada"`
	UltimaSalida     *time.Time      `json:"ultima_salida"`
	MinutosRegulares float64         `json:"minutos_regulares"`
	MinutosExtra     float64         `json:"minutos_extra"`
	Pago             decimal.Decimal `json:"pago"`
}

// NominaEmpleado aggregates one employee over the queried period.
type NominaEmpleado struct {
	IDEmpleado       string                `json:"id_empleado"`
	Nombre           string                `json:"nombre"`
	Rol              string                `json:"rol"`
	MinutosRegulares float64               `json:"minutos_regulares"`
	MinutosExtra     float64               `json:"minutos_extra"`
	PagoRegular      decimal.Decimal       `json:"pago_regular"`
	PagoExtra        decimal.Decimal       `json:"pago_extra"`
	PagoTotal        decimal.Decimal       `json:"pago_total"`
	Dias             map[string]*NominaDia `json:"dias"`
}

// NominaResponse is keyed by employee id.
type NominaResponse struct {
	Desde     string                     `json:"desde"`
	Hasta     string                     `json:"hasta"`
	Empleados map[string]*NominaEmpleado `json:"empleados"`
}

// ExportarNominaRequest asks the worker pool to render one employee's report.
type ExportarNominaRequest struct {
	IDEmpleado string `json:"id_empleado" validate:"required"`
	Desde      string `json:"desde"       validate:"required,datetime=2006-01-02"`
	Hasta      string `json:"hasta"       validate:"required,datetime=2006-01-02"`
}
