package dto

// LimitQuery límite de filas en listados.
type LimitQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeletedResponse resultado de un borrado masivo.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
