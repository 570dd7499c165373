package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrdenRepository is the storage surface of the order lifecycle engine.
// Every *Tx method participates in a caller-owned transaction; the service
// layer owns transaction boundaries so multi-statement mutations stay atomic.
type OrdenRepository interface {
	DB() *gorm.DB // exposes the DB for transaction creation in service layer

	// Idempotency ledger
	ExisteEnvio(ctx context.Context, clientUUID string) (bool, error)
	RegistrarEnvioTx(tx *gorm.DB, envio *model.OrdenEnvio) error

	// Orders
	CreateTx(tx *gorm.DB, o *model.Orden) error
	CreateDetallesTx(tx *gorm.DB, detalles []model.OrdenDetalle) error
	// FindActivaPorMesaTx locks the row (SELECT ... FOR UPDATE) so concurrent
	// splits of the same billing unit serialize their suffix allocation.
	FindActivaPorMesaTx(tx *gorm.DB, mesaKey string) (*model.Orden, error)
	FindActivaPorMesa(ctx context.Context, mesaKey string) (*model.Orden, error)
	ListActivas(ctx context.Context) ([]model.Orden, error)
	MesasActivasPorPrefijoTx(tx *gorm.DB, prefijo string) ([]string, error)
	CerrarOrdenTx(tx *gorm.DB, idOrden int64, estado string, cierre *time.Time) error

	// Lines
	FindDetalleTx(tx *gorm.DB, idDetalle, idOrden int64) (*model.OrdenDetalle, error)
	UpdateDetalleCantidadTx(tx *gorm.DB, idDetalle int64, cantidad int) error
	ReasignarDetalleTx(tx *gorm.DB, idDetalle, idOrdenDestino int64) error
	DeleteDetalleTx(tx *gorm.DB, idDetalle int64) error
	CountDetallesTx(tx *gorm.DB, idOrden int64) (int64, error)
	ActualizarNota(ctx context.Context, idDetalle int64, nota string) error

	// Station side
	ListActivasConPendientes(ctx context.Context, destino string) ([]model.Orden, error)
	MarcarListos(ctx context.Context, mesaKey, destino string) (int64, error)
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) DB() *gorm.DB { return r.db }

func (r *ordenRepo) ExisteEnvio(ctx context.Context, clientUUID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrdenEnvio{}).
		Where("client_uuid = ?", clientUUID).Count(&n).Error
	return n > 0, err
}

func (r *ordenRepo) RegistrarEnvioTx(tx *gorm.DB, envio *model.OrdenEnvio) error {
	return tx.Create(envio).Error
}

func (r *ordenRepo) CreateTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Create(o).Error
}

func (r *ordenRepo) CreateDetallesTx(tx *gorm.DB, detalles []model.OrdenDetalle) error {
	if len(detalles) == 0 {
		return nil
	}
	return tx.Create(&detalles).Error
}

func (r *ordenRepo) FindActivaPorMesaTx(tx *gorm.DB, mesaKey string) (*model.Orden, error) {
	var o model.Orden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Detalles").
		Where("mesa_key = ? AND estado = ?", mesaKey, model.OrdenActiva).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) FindActivaPorMesa(ctx context.Context, mesaKey string) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Where("mesa_key = ? AND estado = ?", mesaKey, model.OrdenActiva).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) ListActivas(ctx context.Context) ([]model.Orden, error) {
	var ordenes []model.Orden
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Where("estado = ?", model.OrdenActiva).
		Order("fecha_apertura asc").
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) MesasActivasPorPrefijoTx(tx *gorm.DB, prefijo string) ([]string, error) {
	var keys []string
	err := tx.Model(&model.Orden{}).
		Where("estado = ? AND mesa_key LIKE ?", model.OrdenActiva, prefijo+"%").
		Pluck("mesa_key", &keys).Error
	return keys, err
}

func (r *ordenRepo) CerrarOrdenTx(tx *gorm.DB, idOrden int64, estado string, cierre *time.Time) error {
	return tx.Model(&model.Orden{}).
		Where("id_orden = ?", idOrden).
		Updates(map[string]interface{}{"estado": estado, "fecha_cierre": cierre}).Error
}

func (r *ordenRepo) FindDetalleTx(tx *gorm.DB, idDetalle, idOrden int64) (*model.OrdenDetalle, error) {
	var d model.OrdenDetalle
	err := tx.Where("id_detalle = ? AND id_orden = ?", idDetalle, idOrden).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ordenRepo) UpdateDetalleCantidadTx(tx *gorm.DB, idDetalle int64, cantidad int) error {
	return tx.Model(&model.OrdenDetalle{}).
		Where("id_detalle = ?", idDetalle).
		Update("cantidad", cantidad).Error
}

func (r *ordenRepo) ReasignarDetalleTx(tx *gorm.DB, idDetalle, idOrdenDestino int64) error {
	return tx.Model(&model.OrdenDetalle{}).
		Where("id_detalle = ?", idDetalle).
		Update("id_orden", idOrdenDestino).Error
}

func (r *ordenRepo) DeleteDetalleTx(tx *gorm.DB, idDetalle int64) error {
	return tx.Delete(&model.OrdenDetalle{}, "id_detalle = ?", idDetalle).Error
}

func (r *ordenRepo) CountDetallesTx(tx *gorm.DB, idOrden int64) (int64, error) {
	var n int64
	err := tx.Model(&model.OrdenDetalle{}).Where("id_orden = ?", idOrden).Count(&n).Error
	return n, err
}

func (r *ordenRepo) ActualizarNota(ctx context.Context, idDetalle int64, nota string) error {
	res := r.db.WithContext(ctx).Model(&model.OrdenDetalle{}).
		Where("id_detalle = ?", idDetalle).
		Update("notas", nota)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ordenRepo) ListActivasConPendientes(ctx context.Context, destino string) ([]model.Orden, error) {
	var ordenes []model.Orden
	err := r.db.WithContext(ctx).
		Preload("Detalles", "destino = ? AND estado_item = ?", destino, model.ItemPendiente).
		Where("estado = ?", model.OrdenActiva).
		Order("fecha_apertura asc").
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) MarcarListos(ctx context.Context, mesaKey, destino string) (int64, error) {
	sub := r.db.Model(&model.Orden{}).Select("id_orden").
		Where("mesa_key = ? AND estado = ?", mesaKey, model.OrdenActiva)
	res := r.db.WithContext(ctx).Model(&model.OrdenDetalle{}).
		Where("destino = ? AND estado_item = ? AND id_orden IN (?)", destino, model.ItemPendiente, sub).
		Update("estado_item", model.ItemListo)
	return res.RowsAffected, res.Error
}
