package dto

import "github.com/shopspring/decimal"

type ItemMenuResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Imagen      *string         `json:"imagen"`
	Disponible  bool            `json:"disponible"`
}

type CategoriaMenuResponse struct {
	IDCategoria int64              `json:"id_categoria"`
	Nombre      string             `json:"nombre"`
	Destino     string             `json:"destino"`
	Items       []ItemMenuResponse `json:"items"`
}

// MenuResponse mirrors the shape the mobile app has always consumed.
type MenuResponse struct {
	Categorias []CategoriaMenuResponse `json:"categorias"`
}

type CrearCategoriaRequest struct {
	Nombre  string `json:"nombre"  validate:"required"`
	Destino string `json:"destino" validate:"required,oneof=cocina barra"`
}

type CrearItemMenuRequest struct {
	ID          string          `json:"id"           validate:"required"`
	IDCategoria int64           `json:"id_categoria" validate:"required"`
	Nombre      string          `json:"nombre"       validate:"required"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"       validate:"required"`
	Imagen      *string         `json:"imagen"`
}

type ActualizarItemMenuRequest struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Imagen      *string          `json:"imagen"`
	IDCategoria *int64           `json:"id_categoria"`
}

// DisponibilidadRequest is the high-frequency availability toggle.
type DisponibilidadRequest struct {
	Disponible *bool `json:"disponible" validate:"required"`
}
