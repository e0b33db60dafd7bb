package model

import "time"

// TeamType определяет формат команды и её вместимость.
type TeamType string

const (
	// TeamTypeDuo: команда максимум из двух принятых участников.
	TeamTypeDuo TeamType = "duo"
	// TeamTypeSquad: команда максимум из четырёх принятых участников.
	TeamTypeSquad TeamType = "squad"
)

// Valid сообщает, известен ли тип команды.
func (t TeamType) Valid() bool {
	return t == TeamTypeDuo || t == TeamTypeSquad
}

// Capacity возвращает максимальное число принятых участников, включая лидера.
func (t TeamType) Capacity() int {
	switch t {
	case TeamTypeDuo:
		return 2
	case TeamTypeSquad:
		return 4
	}
	return 0
}

// MembershipStatus описывает состояние заявки или приглашения.
type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipAccepted MembershipStatus = "accepted"
)

// MemberType показывает, кто инициировал членство.
type MemberType string

const (
	// MemberTypeInvite означает приглашение от лидера по игровому ID.
	MemberTypeInvite MemberType = "invite"
	// MemberTypeJoinRequest означает заявку игрока по инвайт-коду.
	MemberTypeJoinRequest MemberType = "join_request"
)

// Team описывает команду. Лидер хранится отдельным полем и не входит в список членств.
type Team struct {
	TeamID     string    `json:"team_id"`
	TeamName   string    `json:"team_name"`
	TeamType   TeamType  `json:"team_type"`
	LeaderID   string    `json:"leader_id"`
	InviteCode string    `json:"invite_code"`
	LogoRef    string    `json:"logo_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Membership описывает связь (команда, пользователь) для всех участников, кроме лидера.
type Membership struct {
	TeamID     string           `json:"team_id"`
	UserID     string           `json:"user_id"`
	Status     MembershipStatus `json:"status"`
	MemberType MemberType       `json:"member_type"`
	CreatedAt  time.Time        `json:"created_at"`
}

// TeamDetails содержит команду вместе с членствами в порядке добавления.
type TeamDetails struct {
	Team
	Members       []Membership `json:"members"`
	AcceptedCount int          `json:"accepted_count"`
	Capacity      int          `json:"capacity"`
}

// PendingInvite содержит приглашение пользователя вместе с данными команды.
type PendingInvite struct {
	Membership
	TeamName string   `json:"team_name"`
	TeamType TeamType `json:"team_type"`
	LeaderID string   `json:"leader_id"`
}

// TeamUpdate содержит изменяемые метаданные команды. nil означает «не менять».
type TeamUpdate struct {
	TeamName *string `json:"team_name,omitempty"`
	LogoRef  *string `json:"logo_ref,omitempty"`
}
