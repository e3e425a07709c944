package simpletxmanager

import (
	"context"
	"sync"
)

type lockKey struct{}

// TransactionManager менеджер "транзакций" для хранилищ в памяти.
// Обеспечивает одного писателя за раз: функции выполняются под общим мьютексом.
// Откат не поддерживается, поэтому fn должна выполнять запись последним шагом.
type TransactionManager struct {
	mu sync.Mutex
}

// NewTransactionManager создает менеджер
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TransactionManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(lockKey{}).(*TransactionManager); held == m {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, lockKey{}, m))
}
