package model

// Empleado is a staff member. The ID is human-assigned (badge code), not
// generated. DeviceID and FingerprintID are set by the linking flows and stay
// NULL until then.
type Empleado struct {
	IDEmpleado    string  `gorm:"primaryKey;column:id_empleado"`
	Nombre        string  `gorm:"not null"`
	Rol           string  `gorm:"index"` // payroll-rate key, free-form label
	DeviceID      *string `gorm:"column:device_id;uniqueIndex"`
	FingerprintID *int    `gorm:"column:fingerprint_id;uniqueIndex"`
}

func (Empleado) TableName() string { return "empleados" }
