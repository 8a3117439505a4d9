package memory

import (
	"context"
	"fmt"
)

// TxManager транзакции над Store
// Транзакции выполняются строго по одной; при ошибке fn откатываются только записи этой транзакции.
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций для store
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Do выполняет fn в транзакции
// Вложенный вызов выполняется в уже открытой транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if journalFrom(ctx) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	j := newJournal()
	defer func() {
		if p := recover(); p != nil {
			m.store.rollback(j)
			err = fmt.Errorf("memory: transaction panicked: %v", p)
			return
		}
		if err != nil {
			m.store.rollback(j)
		}
	}()

	return fn(withJournal(ctx, j))
}
