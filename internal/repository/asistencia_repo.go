package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"gorm.io/gorm"
)

type AsistenciaRepository interface {
	AddEvento(ctx context.Context, ev *model.EventoAsistencia) error
	AddEventosBatch(ctx context.Context, evs []model.EventoAsistencia) error
	LastEvento(ctx context.Context, idEmpleado string) (*model.EventoAsistencia, error)
	HistorialRango(ctx context.Context, desde, hasta time.Time) ([]model.EventoAsistencia, error)
	EventosDeHoy(ctx context.Context, inicioDia time.Time) ([]model.EventoAsistencia, error)
	LimpiarHistorial(ctx context.Context) error
}

type asistenciaRepo struct{ db *gorm.DB }

func NewAsistenciaRepository(db *gorm.DB) AsistenciaRepository { return &asistenciaRepo{db: db} }

func (r *asistenciaRepo) AddEvento(ctx context.Context, ev *model.EventoAsistencia) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *asistenciaRepo) AddEventosBatch(ctx context.Context, evs []model.EventoAsistencia) error {
	if len(evs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(evs, 200).Error
}

// LastEvento returns the most recent punch for the employee, nil when there
// is none yet.
func (r *asistenciaRepo) LastEvento(ctx context.Context, idEmpleado string) (*model.EventoAsistencia, error) {
	var ev model.EventoAsistencia
	err := r.db.WithContext(ctx).
		Where("id_empleado = ?", idEmpleado).
		Order("timestamp desc").
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// HistorialRango streams the raw punches ordered per employee so the payroll
// engine can pair them in a single pass.
func (r *asistenciaRepo) HistorialRango(ctx context.Context, desde, hasta time.Time) ([]model.EventoAsistencia, error) {
	var evs []model.EventoAsistencia
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Where("timestamp >= ? AND timestamp <= ?", desde, hasta).
		Order("id_empleado asc, timestamp asc").
		Find(&evs).Error
	return evs, err
}

func (r *asistenciaRepo) EventosDeHoy(ctx context.Context, inicioDia time.Time) ([]model.EventoAsistencia, error) {
	var evs []model.EventoAsistencia
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Where("timestamp >= ?", inicioDia).
		Order("timestamp asc").
		Find(&evs).Error
	return evs, err
}

func (r *asistenciaRepo) LimpiarHistorial(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.EventoAsistencia{}).Error
}
