package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки хранилища. Их используют и PostgreSQL-, и in-memory реализации.
var (
	// ErrUserNotFound возвращается, если пользователь не найден в БД.
	ErrUserNotFound = errors.New("user not found")
	// ErrGameIDTaken возвращается, если игровой ID уже привязан к другому пользователю.
	ErrGameIDTaken = errors.New("game id already taken")

	// ErrTeamNotFound возвращается, если команда не найдена.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInviteCodeTaken возвращается при коллизии инвайт-кода.
	ErrInviteCodeTaken = errors.New("invite code already taken")
	// ErrMembershipNotFound возвращается, если подходящей строки членства нет.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrMembershipExists возвращается при повторной вставке пары (команда, пользователь).
	ErrMembershipExists = errors.New("membership already exists")
	// ErrTeamFull возвращается, если принятых участников уже максимум.
	ErrTeamFull = errors.New("team is full")

	// ErrTournamentNotFound возвращается, если турнир не найден.
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrTournamentFull возвращается, если свободных слотов нет.
	ErrTournamentFull = errors.New("tournament is full")
	// ErrStatusConflict возвращается, если условное обновление статуса не нашло ожидаемого состояния.
	ErrStatusConflict = errors.New("status changed concurrently")

	// ErrRegistrationNotFound возвращается, если регистрации нет.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrRegistrationExists возвращается при повторной регистрации (турнир, пользователь).
	ErrRegistrationExists = errors.New("registration already exists")

	// ErrTransactionNotFound возвращается, если операции леджера нет.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrReferenceExists возвращается при повторном платёжном референсе.
	ErrReferenceExists = errors.New("payment reference already exists")
	// ErrInsufficientFunds возвращается, если доступного баланса не хватает на списание.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// IsUnavailable сообщает, что ошибка вызвана недоступностью хранилища и запрос можно повторить.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx: потеря соединения; 40001/40P01: сериализация и дедлок
		return pgErr.Code[:2] == "08" || pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
