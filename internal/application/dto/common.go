package dto

// Valores de Envelope.Status.
const (
	StatusFail    = 0
	StatusSuccess = 1
)

// Envelope cuerpo uniforme de todas las respuestas: el resultado de negocio va en
// Status (0|1) y no en el código HTTP.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success construye un envelope de éxito.
func Success(message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// Fail construye un envelope de fallo de negocio.
func Fail(message string) Envelope {
	return Envelope{Status: StatusFail, Message: message}
}
