package dto

import "time"

// ItemTicket is one pending line on a station display.
type ItemTicket struct {
	Nombre   string  `json:"nombre"`
	Cantidad int     `json:"cantidad"`
	Notas    *string `json:"notas"`
	Imagen   *string `json:"imagen"`
}

// TicketEstacion groups a table's pending lines for one station, oldest
// ticket first.
type TicketEstacion struct {
	MesaKey       string       `json:"numero_mesa"`
	FechaApertura time.Time    `json:"fecha_apertura"`
	Items         []ItemTicket `json:"items"`
}

// MensajeKDSRequest relays a free-text alert from the cashier to a station.
type MensajeKDSRequest struct {
	MesaKey string `json:"mesa_key" validate:"required"`
	Mensaje string `json:"mensaje"  validate:"required"`
	Destino string `json:"destino"  validate:"required,oneof=cocina barra"`
}
