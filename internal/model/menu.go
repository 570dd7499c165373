package model

import "github.com/shopspring/decimal"

// Station destinations for MenuCategoria.Destino and OrdenDetalle.Destino.
const (
	DestinoCocina = "cocina"
	DestinoBarra  = "barra"
)

// MenuCategoria groups menu items and carries the routing attribute every
// item in it inherits: which station (cocina/barra) its lines print to.
type MenuCategoria struct {
	IDCategoria int64  `gorm:"primaryKey;autoIncrement;column:id_categoria"`
	Nombre      string `gorm:"uniqueIndex;not null"`
	Destino     string `gorm:"not null;default:'cocina'"` // cocina | barra
}

func (MenuCategoria) TableName() string { return "menu_categorias" }

// MenuItem is the mutable catalog truth. Orders never reference it for price
// after creation — lines freeze price/name/image at insert time.
type MenuItem struct {
	IDItem      string `gorm:"primaryKey;column:id_item"`
	IDCategoria int64  `gorm:"column:id_categoria;not null;index"`
	Nombre      string `gorm:"not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Imagen      *string
	Disponible  bool `gorm:"not null;default:true"`

	Categoria *MenuCategoria `gorm:"foreignKey:IDCategoria"`
}

func (MenuItem) TableName() string { return "menu_items" }
