package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TxManager абстрагирует атомарную мульти-документную запись.
// Все эффекты fn видны вместе или не видны вообще; сервисы никогда
// не выполняют последовательность независимых записей вместо транзакции.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormTxManager - продакшен-реализация поверх пула gorm
type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
