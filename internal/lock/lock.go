// Package lock реализует эксклюзивные секции по ключу: слоты турнира, кошельки и команды.
package lock

import (
	"context"
	"errors"
)

// ErrTimeout возвращается, если блокировку не удалось получить за отведённое время.
// Это инфраструктурная ошибка: вызывающий может повторить запрос.
var ErrTimeout = errors.New("lock wait timeout")

// Locker выдаёт эксклюзивную секцию для ключа. Возвращаемая функция освобождает блокировку
// и безопасна для повторного вызова.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// TournamentKey возвращает ключ счётчика слотов турнира.
func TournamentKey(tournamentID string) string {
	return "tournament:" + tournamentID
}

// WalletKey возвращает ключ кошелька пользователя.
func WalletKey(userID string) string {
	return "wallet:" + userID
}

// TeamKey возвращает ключ состава команды.
func TeamKey(teamID string) string {
	return "team:" + teamID
}
