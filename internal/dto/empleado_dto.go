package dto

type EmpleadoResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Rol           string  `json:"rol"`
	DeviceID      *string `json:"deviceId,omitempty"`
	FingerprintID *int    `json:"fingerprint_id,omitempty"`
}

type CrearEmpleadoRequest struct {
	ID     string `json:"id"     validate:"required"`
	Nombre string `json:"nombre" validate:"required"`
	Rol    string `json:"rol"    validate:"required"`
}

type ActualizarEmpleadoRequest struct {
	NuevoID *string `json:"nuevo_id"`
	Nombre  *string `json:"nombre"`
	Rol     *string `json:"rol"`
}

// RegistrarAsistenciaRequest is the mobile clock-in/out call. The first call
// from an unlinked employee binds the device and marks an entrada.
type RegistrarAsistenciaRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	DeviceID   string `json:"deviceId"    validate:"required"`
}

type AsistenciaBiometricaRequest struct {
	FingerID int `json:"finger_id" validate:"required"`
}

type VincularHuellaRequest struct {
	IDEmpleado string `json:"id_empleado" validate:"required"`
	FingerID   int    `json:"finger_id"   validate:"required"`
}

// RegistroResponse reports the outcome of an attendance mark.
type RegistroResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Nombre  string `json:"nombre,omitempty"`
	Tipo    string `json:"tipo,omitempty"`
}
