package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaItem struct {
	Nombre   string
	Cantidad int
}

type VentaDia struct {
	Fecha time.Time
	Total decimal.Decimal
}

// ReporteRepository aggregates over closed orders only, always on the frozen
// line prices, never on the live menu.
type ReporteRepository interface {
	TotalDelDia(ctx context.Context, dia time.Time) (decimal.Decimal, error)
	TopItemsRango(ctx context.Context, desde, hasta time.Time, limit int) ([]VentaItem, error)
	TendenciaRango(ctx context.Context, desde, hasta time.Time) ([]VentaDia, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) TotalDelDia(ctx context.Context, dia time.Time) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).
		Table("orden_detalle").
		Select("COALESCE(SUM(orden_detalle.cantidad * orden_detalle.precio_unitario_congelado), 0) AS total").
		Joins("JOIN ordenes ON ordenes.id_orden = orden_detalle.id_orden").
		Where("ordenes.estado = ?", "cerrada").
		Where("DATE(ordenes.fecha_cierre) = ?", dia.Format("2006-01-02")).
		Scan(&row).Error
	return row.Total, err
}

func (r *reporteRepo) TopItemsRango(ctx context.Context, desde, hasta time.Time, limit int) ([]VentaItem, error) {
	var rows []VentaItem
	err := r.db.WithContext(ctx).
		Table("orden_detalle").
		Select("orden_detalle.nombre_congelado AS nombre, SUM(orden_detalle.cantidad) AS cantidad").
		Joins("JOIN ordenes ON ordenes.id_orden = orden_detalle.id_orden").
		Where("ordenes.estado = ?", "cerrada").
		Where("DATE(ordenes.fecha_cierre) BETWEEN ? AND ?", desde.Format("2006-01-02"), hasta.Format("2006-01-02")).
		Group("orden_detalle.nombre_congelado").
		Order("cantidad desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) TendenciaRango(ctx context.Context, desde, hasta time.Time) ([]VentaDia, error) {
	var rows []VentaDia
	err := r.db.WithContext(ctx).
		Table("orden_detalle").
		Select("DATE(ordenes.fecha_cierre) AS fecha, SUM(orden_detalle.cantidad * orden_detalle.precio_unitario_congelado) AS total").
		Joins("JOIN ordenes ON ordenes.id_orden = orden_detalle.id_orden").
		Where("ordenes.estado = ?", "cerrada").
		Where("DATE(ordenes.fecha_cierre) BETWEEN ? AND ?", desde.Format("2006-01-02"), hasta.Format("2006-01-02")).
		Group("DATE(ordenes.fecha_cierre)").
		Order("fecha asc").
		Scan(&rows).Error
	return rows, err
}
