package entity

import "time"

// Brigadier perfil de jefe de brigada; su nombre vive en el User asociado.
type Brigadier struct {
	ID        string
	UserID    string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// BrigadierProfile brigadier con los datos de su usuario.
type BrigadierProfile struct {
	Brigadier
	FullName string
	Username string
}
