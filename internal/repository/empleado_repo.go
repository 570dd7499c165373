package repository

import (
	"context"
	"errors"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/model"

	"gorm.io/gorm"
)

// ErrTieneHistorial marks a delete attempt on an employee with attendance
// history: a conflict outcome, never a cascade.
var ErrTieneHistorial = errors.New("el empleado tiene historial de asistencia")

type EmpleadoRepository interface {
	Crear(ctx context.Context, e *model.Empleado) error
	List(ctx context.Context) ([]model.Empleado, error)
	FindByID(ctx context.Context, id string) (*model.Empleado, error)
	FindByDevice(ctx context.Context, deviceID string) (*model.Empleado, error)
	FindByFingerprint(ctx context.Context, fingerID int) (*model.Empleado, error)
	Actualizar(ctx context.Context, idOriginal string, e *model.Empleado) error
	Eliminar(ctx context.Context, id string) error
	VincularDevice(ctx context.Context, id, deviceID string) error
	VincularHuella(ctx context.Context, id string, fingerID int) error
	DesvincularHuellas(ctx context.Context) error
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Crear(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) List(ctx context.Context) ([]model.Empleado, error) {
	var emps []model.Empleado
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&emps).Error
	return emps, err
}

func (r *empleadoRepo) FindByID(ctx context.Context, id string) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).First(&e, "id_empleado = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empleadoRepo) FindByDevice(ctx context.Context, deviceID string) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empleadoRepo) FindByFingerprint(ctx context.Context, fingerID int) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Where("fingerprint_id = ?", fingerID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Actualizar rewrites the row, allowing the human-assigned id itself to change.
// Attendance events follow via the FK update inside one transaction.
func (r *empleadoRepo) Actualizar(ctx context.Context, idOriginal string, e *model.Empleado) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if idOriginal != e.IDEmpleado {
			if err := tx.Model(&model.EventoAsistencia{}).
				Where("id_empleado = ?", idOriginal).
				Update("id_empleado", e.IDEmpleado).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Empleado{}).
			Where("id_empleado = ?", idOriginal).
			Updates(map[string]interface{}{
				"id_empleado": e.IDEmpleado,
				"nombre":      e.Nombre,
				"rol":         e.Rol,
			}).Error
	})
}

func (r *empleadoRepo) Eliminar(ctx context.Context, id string) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.EventoAsistencia{}).
		Where("id_empleado = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrTieneHistorial
	}
	res := r.db.WithContext(ctx).Delete(&model.Empleado{}, "id_empleado = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *empleadoRepo) VincularDevice(ctx context.Context, id, deviceID string) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).
		Where("id_empleado = ?", id).
		Update("device_id", deviceID).Error
}

func (r *empleadoRepo) VincularHuella(ctx context.Context, id string, fingerID int) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).
		Where("id_empleado = ?", id).
		Update("fingerprint_id", fingerID).Error
}

// DesvincularHuellas clears every fingerprint link after the sensor is wiped.
func (r *empleadoRepo) DesvincularHuellas(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).
		Where("fingerprint_id IS NOT NULL").
		Update("fingerprint_id", nil).Error
}
