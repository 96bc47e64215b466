package entity

// WorkStage etapa agrotécnica dentro de la secuencia ordenada definida por el administrador.
type WorkStage struct {
	ID          string
	Name        string
	Order       int `db:"sort_order"`
	Description string
}
