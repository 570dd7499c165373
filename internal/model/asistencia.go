package model

import "time"

// Event types for EventoAsistencia.Tipo.
const (
	EventoEntrada = "entrada"
	EventoSalida  = "salida"
)

// EventoAsistencia is one clock-in / clock-out mark. The table is append-only;
// there is no shift entity — shifts are derived at read time by pairing
// consecutive entrada→salida events per employee per calendar day.
type EventoAsistencia struct {
	IDEvento   int64     `gorm:"primaryKey;autoIncrement;column:id_evento"`
	IDEmpleado string    `gorm:"column:id_empleado;not null;index"`
	Timestamp  time.Time `gorm:"not null;index"`
	Tipo       string    `gorm:"not null"` // entrada | salida

	Empleado *Empleado `gorm:"foreignKey:IDEmpleado;constraint:OnDelete:RESTRICT"`
}

func (EventoAsistencia) TableName() string { return "eventos_asistencia" }
