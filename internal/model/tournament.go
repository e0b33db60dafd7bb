// Package model содержит доменные структуры для команд, турниров, регистраций и кошелька.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TournamentType задаёт формат участия в турнире.
type TournamentType string

const (
	TournamentSolo  TournamentType = "solo"
	TournamentDuo   TournamentType = "duo"
	TournamentSquad TournamentType = "squad"
)

// Valid сообщает, известен ли тип турнира.
func (t TournamentType) Valid() bool {
	switch t {
	case TournamentSolo, TournamentDuo, TournamentSquad:
		return true
	}
	return false
}

// TeamType возвращает тип команды, которой разрешено участие. Для solo возвращается пустая строка.
func (t TournamentType) TeamType() TeamType {
	switch t {
	case TournamentDuo:
		return TeamTypeDuo
	case TournamentSquad:
		return TeamTypeSquad
	}
	return ""
}

// TournamentStatus описывает этап жизненного цикла турнира.
type TournamentStatus string

const (
	StatusUpcoming           TournamentStatus = "upcoming"
	StatusRegistrationOpen   TournamentStatus = "registration_open"
	StatusRegistrationClosed TournamentStatus = "registration_closed"
	StatusLive               TournamentStatus = "live"
	StatusCompleted          TournamentStatus = "completed"
	StatusCancelled          TournamentStatus = "cancelled"
)

// порядок этапов для проверки движения вперёд
var statusOrder = map[TournamentStatus]int{
	StatusUpcoming:           0,
	StatusRegistrationOpen:   1,
	StatusRegistrationClosed: 2,
	StatusLive:               3,
	StatusCompleted:          4,
}

// Valid сообщает, известен ли статус.
func (s TournamentStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok || s == StatusCancelled
}

// Terminal сообщает, что из статуса больше нет переходов.
func (s TournamentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo проверяет переход: только вперёд по циклу, cancelled из любого нетерминального.
// Совпадающий статус переходом не считается.
func (s TournamentStatus) CanTransitionTo(next TournamentStatus) bool {
	if s.Terminal() || s == next {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, okFrom := statusOrder[s]
	to, okTo := statusOrder[next]
	return okFrom && okTo && to > from
}

// Tournament описывает турнир, его слоты и статус.
type Tournament struct {
	TournamentID      string                  `json:"tournament_id"`
	Name              string                  `json:"name"`
	TournamentType    TournamentType          `json:"tournament_type"`
	EntryFee          decimal.Decimal         `json:"entry_fee"`
	MaxSlots          int                     `json:"max_slots"`
	CurrentSlots      int                     `json:"current_slots"`
	Status            TournamentStatus        `json:"status"`
	TotalPrizePool    decimal.Decimal         `json:"total_prize_pool"`
	PrizeDistribution map[int]decimal.Decimal `json:"prize_distribution"`
	StartTime         time.Time               `json:"start_time"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// TournamentUpdate содержит изменяемые администратором поля. nil означает «не менять».
type TournamentUpdate struct {
	Name              *string                  `json:"name,omitempty"`
	EntryFee          *decimal.Decimal         `json:"entry_fee,omitempty"`
	MaxSlots          *int                     `json:"max_slots,omitempty"`
	TotalPrizePool    *decimal.Decimal         `json:"total_prize_pool,omitempty"`
	PrizeDistribution *map[int]decimal.Decimal `json:"prize_distribution,omitempty"`
	StartTime         *time.Time               `json:"start_time,omitempty"`
}

// TournamentFilter содержит необязательные фильтры списка турниров.
type TournamentFilter struct {
	Status TournamentStatus
	Type   TournamentType
}

// Registration описывает запись об успешном входе в турнир.
type Registration struct {
	RegistrationID string          `json:"registration_id"`
	TournamentID   string          `json:"tournament_id"`
	UserID         string          `json:"user_id"`
	TeamID         *string         `json:"team_id,omitempty"`
	TransactionID  string          `json:"transaction_id"`
	Fee            decimal.Decimal `json:"fee"`
	CreatedAt      time.Time       `json:"created_at"`
}
