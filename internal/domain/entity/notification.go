package entity

import "time"

// Notification aviso dirigido a un usuario.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      string // INFO, SUCCESS, WARNING
	Link      string
	IsRead    bool
	CreatedAt time.Time
}
