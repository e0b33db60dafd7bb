package service

import (
	"errors"
	"fmt"
	"net/http"

	"tournament-service/internal/lock"
	"tournament-service/internal/repository"
)

// AppError описывает прикладную ошибку сервиса:
// код для клиента, человекочитаемое сообщение, HTTP-статус и вложенная ошибка.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error реализует интерфейс error для AppError.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для поддержки errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по коду, чтобы работал errors.Is(err, service.ErrTeamFull).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Retryable сообщает, что ошибка инфраструктурная и запрос можно повторить с backoff.
func (e *AppError) Retryable() bool {
	return e.Code == codeUnavailable
}

const (
	codeInternal    = "INTERNAL"
	codeUnavailable = "UNAVAILABLE"
)

func newErr(code string, status int, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Status: status}
}

// Доменные ошибки. Сравнивать через errors.Is, сообщения можно уточнять через withMessage.
var (
	// Валидация
	ErrInvalidAmount    = newErr("INVALID_AMOUNT", http.StatusBadRequest, "amount must be greater than zero")
	ErrTeamTypeMismatch = newErr("TEAM_TYPE_MISMATCH", http.StatusBadRequest, "team type does not match tournament type")
	ErrTeamRequired     = newErr("TEAM_REQUIRED", http.StatusBadRequest, "team_id is required for team tournaments")

	// Не найдено
	ErrTeamNotFound         = newErr("TEAM_NOT_FOUND", http.StatusNotFound, "team not found")
	ErrTournamentNotFound   = newErr("TOURNAMENT_NOT_FOUND", http.StatusNotFound, "tournament not found")
	ErrUserNotFound         = newErr("USER_NOT_FOUND", http.StatusNotFound, "user not found")
	ErrRegistrationNotFound = newErr("REGISTRATION_NOT_FOUND", http.StatusNotFound, "registration not found")
	ErrTransactionNotFound  = newErr("TRANSACTION_NOT_FOUND", http.StatusNotFound, "transaction not found")
	ErrMembershipNotFound   = newErr("MEMBERSHIP_NOT_FOUND", http.StatusNotFound, "membership not found")

	// Конфликты состояния
	ErrAlreadyMember      = newErr("ALREADY_MEMBER", http.StatusConflict, "user already has a membership in this team")
	ErrAlreadyRegistered  = newErr("ALREADY_REGISTERED", http.StatusConflict, "already registered for this tournament")
	ErrTeamFull           = newErr("TEAM_FULL", http.StatusConflict, "team is full")
	ErrTournamentFull     = newErr("TOURNAMENT_FULL", http.StatusConflict, "tournament is full")
	ErrTournamentNotOpen  = newErr("TOURNAMENT_NOT_OPEN", http.StatusConflict, "tournament registration is not open")
	ErrCannotRemoveLeader = newErr("CANNOT_REMOVE_LEADER", http.StatusConflict, "team leader cannot be removed")
	ErrLeaderCannotLeave  = newErr("LEADER_CANNOT_LEAVE", http.StatusConflict, "team leader cannot leave, delete the team instead")
	ErrInvalidTransition  = newErr("INVALID_TRANSITION", http.StatusConflict, "invalid status transition")
	ErrTournamentActive   = newErr("TOURNAMENT_ACTIVE", http.StatusConflict, "tournament is active")
	ErrGameIDTaken        = newErr("GAME_ID_TAKEN", http.StatusConflict, "game_id is already linked to another user")

	// Авторизация
	ErrNotAuthorized = newErr("NOT_AUTHORIZED", http.StatusForbidden, "only the team leader can do this")
	ErrNotEligible   = newErr("NOT_ELIGIBLE", http.StatusForbidden, "user is not an accepted member of the team")

	// Идентичность вызывающего, проверяется на входе HTTP
	ErrUnauthenticated = newErr("UNAUTHENTICATED", http.StatusUnauthorized, "X-User-ID header is required")
	ErrForbidden       = newErr("FORBIDDEN", http.StatusForbidden, "admin role required")

	// Ресурсы
	ErrInsufficientFunds = newErr("INSUFFICIENT_FUNDS", http.StatusPaymentRequired, "insufficient wallet balance")
)

// withMessage копирует доменную ошибку с уточнённым сообщением, сохраняя код.
func withMessage(base *AppError, msg string) *AppError {
	return &AppError{Code: base.Code, Message: msg, Status: base.Status}
}

// ErrBadRequest конструирует AppError для ошибок валидации или некорректных запросов клиента.
func ErrBadRequest(msg string) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: msg,
		Status:  http.StatusBadRequest,
	}
}

// ErrNotFound конструирует AppError для ситуации, когда ресурс не найден.
func ErrNotFound(msg string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: msg,
		Status:  http.StatusNotFound,
	}
}

// ErrInternal оборачивает инфраструктурную ошибку. Таймаут блокировки и недоступность БД
// становятся UNAVAILABLE (503), остальное INTERNAL (500).
// Доменной ошибкой инфраструктурная не становится никогда.
func ErrInternal(msg string, err error) *AppError {
	if errors.Is(err, lock.ErrTimeout) || repository.IsUnavailable(err) {
		return &AppError{
			Code:    codeUnavailable,
			Message: "service is busy, retry later",
			Status:  http.StatusServiceUnavailable,
			Err:     err,
		}
	}
	return &AppError{
		Code:    codeInternal,
		Message: msg,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// IsNotFound помогает определить, соответствует ли ошибка HTTP-статусу 404.
func IsNotFound(err error) bool {
	var app *AppError
	if errors.As(err, &app) {
		return app.Status == http.StatusNotFound
	}
	return false
}
