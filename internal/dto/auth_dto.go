package dto

// ValidarPinRequest is the browser KDS login.
type ValidarPinRequest struct {
	Pin string `json:"pin" validate:"required,min=4"`
}

// ValidarPinResponse carries the station-scoped token on success.
type ValidarPinResponse struct {
	Status   string `json:"status"`
	Destino  string `json:"destino,omitempty"`
	Token    string `json:"token,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
