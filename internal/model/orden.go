package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order states.
const (
	OrdenActiva    = "activa"
	OrdenCerrada   = "cerrada"
	OrdenCancelada = "cancelada"
)

// Line states.
const (
	ItemPendiente = "pendiente"
	ItemListo     = "listo"
)

// Orden is one billing unit (tab). MesaKey identifies the unit: "5" for a
// single table, "2+4" for linked tables, "2+4-1" for a split sub-account.
// At most one activa Orden exists per MesaKey at any time.
type Orden struct {
	IDOrden       int64  `gorm:"primaryKey;autoIncrement;column:id_orden"`
	MesaKey       string `gorm:"column:mesa_key;not null;index"`
	Estado        string `gorm:"not null;default:'activa';index"`
	FechaApertura time.Time
	FechaCierre   *time.Time
	// ClientUUID is the idempotency token of the submission that created the
	// order. Tokens of follow-up rounds live in orden_envios.
	ClientUUID *string `gorm:"column:client_uuid;uniqueIndex"`

	Detalles []OrdenDetalle `gorm:"foreignKey:IDOrden"`
}

func (Orden) TableName() string { return "ordenes" }

// OrdenDetalle is one line item. Price, name and image are frozen copies
// taken from the menu at insertion time: later catalog edits must never
// change what a table owes or what the kitchen sees.
type OrdenDetalle struct {
	IDDetalle                int64           `gorm:"primaryKey;autoIncrement;column:id_detalle"`
	IDOrden                  int64           `gorm:"column:id_orden;not null;index"`
	IDItemMenu               string          `gorm:"column:id_item_menu;not null"`
	Cantidad                 int             `gorm:"not null"`
	PrecioUnitarioCongelado  decimal.Decimal `gorm:"column:precio_unitario_congelado;type:decimal(10,2);not null"`
	NombreCongelado          string          `gorm:"column:nombre_congelado;not null"`
	ImagenCongelada          *string         `gorm:"column:imagen_congelada"`
	Notas                    *string
	Destino                  string `gorm:"not null"`                    // cocina | barra
	EstadoItem               string `gorm:"not null;default:'pendiente'"` // pendiente | listo
}

func (OrdenDetalle) TableName() string { return "orden_detalle" }

// OrdenEnvio records every accepted order submission token, including the one
// that created the Orden. A second round for a seated table appends lines to
// the existing activa order, so idempotency cannot live on ordenes alone.
type OrdenEnvio struct {
	IDEnvio    int64     `gorm:"primaryKey;autoIncrement;column:id_envio"`
	IDOrden    int64     `gorm:"column:id_orden;not null;index"`
	ClientUUID string    `gorm:"column:client_uuid;uniqueIndex;not null"`
	Recibido   time.Time `gorm:"not null"`
}

func (OrdenEnvio) TableName() string { return "orden_envios" }
