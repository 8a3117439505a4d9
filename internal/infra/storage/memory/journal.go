package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TireBooking/internal/domain"
)

type journalKey struct{}

// journal значения записей до первого изменения в транзакции
// nil означает, что записи до транзакции не было.
type journal struct {
	prior map[uuid.UUID]*domain.Appointment
}

func newJournal() *journal {
	return &journal{prior: make(map[uuid.UUID]*domain.Appointment)}
}

func withJournal(ctx context.Context, j *journal) context.Context {
	return context.WithValue(ctx, journalKey{}, j)
}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(journalKey{}).(*journal)
	return j
}

// remember сохраняет исходное значение id; вызывается под s.mu
func (s *Store) remember(ctx context.Context, id uuid.UUID) {
	j := journalFrom(ctx)
	if j == nil {
		return
	}
	if _, seen := j.prior[id]; seen {
		return
	}
	if appt, ok := s.items[id]; ok {
		j.prior[id] = &appt
		return
	}
	j.prior[id] = nil
}

// rollback возвращает исходные значения записей, измененных в транзакции
func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, prior := range j.prior {
		if prior == nil {
			delete(s.items, id)
			continue
		}
		s.items[id] = *prior
	}
}

// beginWrite запись вне транзакции ждет завершения открытой транзакции
func (s *Store) beginWrite(ctx context.Context) func() {
	if journalFrom(ctx) != nil {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}
