package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Ingestion ───────────────────────────────────────────────────────────────

// ItemOrdenRequest is one line of an incoming order. The client sends the
// price/name/image it displayed so the store can freeze exactly what the
// customer accepted.
type ItemOrdenRequest struct {
	ItemID         string          `json:"item_id"         validate:"required"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	Nombre         string          `json:"nombre"          validate:"required"`
	Imagen         *string         `json:"imagen"`
	Notas          *string         `json:"notas"`
}

// NuevaOrdenRequest is the complete order submission from the mobile/POS app.
// OrderID is the client-generated idempotency token: resubmitting the same
// token is a no-op success.
type NuevaOrdenRequest struct {
	OrderID        string             `json:"order_id"        validate:"required,uuid"`
	NumeroMesa     int                `json:"numero_mesa"     validate:"required,min=1"`
	MesasEnlazadas []int              `json:"mesas_enlazadas" validate:"omitempty,dive,min=1"`
	Timestamp      *time.Time         `json:"timestamp"`
	Items          []ItemOrdenRequest `json:"items"           validate:"required,min=1,dive"`
}

// ─── Cashier board ───────────────────────────────────────────────────────────

// LineaOrden is one stored line as the cashier sees it (either item state).
type LineaOrden struct {
	IDDetalle      int64           `json:"id_detalle"`
	ItemID         string          `json:"item_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Imagen         *string         `json:"imagen"`
	Notas          *string         `json:"notas"`
	Destino        string          `json:"destino"`
	EstadoItem     string          `json:"estado_item"`
}

// MesaActiva is one entry of the cashier board, keyed by mesa_key.
type MesaActiva struct {
	IDOrden       int64        `json:"id_orden_db"`
	FechaApertura time.Time    `json:"fecha_apertura"`
	Items         []LineaOrden `json:"items"`
}

// ─── Mutations ───────────────────────────────────────────────────────────────

// MovimientoLinea selects a quantity of one stored line, for split/remove.
type MovimientoLinea struct {
	IDDetalle int64 `json:"id_detalle" validate:"required"`
	Cantidad  int   `json:"cantidad"   validate:"required,min=1"`
}

type SepararOrdenRequest struct {
	MesaKey string            `json:"mesa_key" validate:"required"`
	Items   []MovimientoLinea `json:"items"    validate:"required,min=1,dive"`
}

type EliminarItemsRequest struct {
	MesaKey string            `json:"mesa_key" validate:"required"`
	Items   []MovimientoLinea `json:"items"    validate:"required,min=1,dive"`
}

type MesaKeyRequest struct {
	MesaKey string `json:"mesa_key" validate:"required"`
}

type ActualizarNotaRequest struct {
	IDDetalle int64  `json:"id_detalle" validate:"required"`
	Nota      string `json:"nota"`
}

// OrdenSnapshot is the pre-closure state returned by Cobrar, consumed by the
// receipt printer and the sales reports.
type OrdenSnapshot struct {
	IDOrden       int64           `json:"id_orden"`
	MesaKey       string          `json:"mesa_key"`
	FechaApertura time.Time       `json:"fecha_apertura"`
	FechaCierre   time.Time       `json:"fecha_cierre"`
	Items         []LineaOrden    `json:"items"`
	Total         decimal.Decimal `json:"total"`
}
