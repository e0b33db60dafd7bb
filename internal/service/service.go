// Package service содержит бизнес-логику команд, турниров, кошелька и входа в турнир.
package service

import (
	"context"
)

// TransactionManager описывает интерфейс для управления транзакциями (чтобы можно было мокать).
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker выдаёт эксклюзивную секцию по ключу. Ключи строятся функциями lock.*Key.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
