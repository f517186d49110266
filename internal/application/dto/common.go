package dto

// ErrorResponse cuerpo de error HTTP.
// Details solo se llena en la validación por lotes de creación de entradas.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadResponse ruta pública del archivo subido.
type UploadResponse struct {
	Path string `json:"path"`
}
