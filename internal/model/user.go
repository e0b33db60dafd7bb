package model

import "time"

// Role описывает роль пользователя. Смена роли является внешней административная операция.
type Role string

const (
	// RoleUser обозначает обычного игрока.
	RoleUser Role = "user"
	// RoleAdmin обозначает администратора площадки.
	RoleAdmin Role = "admin"
)

// User описывает пользователя из внешнего каталога: идентификатор, игровой ID и роль.
type User struct {
	UserID    string    `json:"user_id"`
	GameID    string    `json:"game_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
