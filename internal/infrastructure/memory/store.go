// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo local) y en los tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

var (
	_ repository.EventStore              = (*Store)(nil)
	_ repository.IntakeRequestRepository = (*Store)(nil)
)

// Store guarda solicitudes y movimientos en memoria. Seguro para uso concurrente.
type Store struct {
	mu        sync.RWMutex
	requests  []*entity.IntakeRequest
	byID      map[string]*entity.IntakeRequest
	movements []entity.StockMovementEvent
	movIDs    map[string]struct{}

	keyMu sync.Mutex
	keys  map[string]*keyLock
}

// keyLock mutex de una clave; refs cuenta los que lo esperan o lo tienen.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		byID:   make(map[string]*entity.IntakeRequest),
		movIDs: make(map[string]struct{}),
		keys:   make(map[string]*keyLock),
	}
}

// ListReceivedIntake devuelve las solicitudes en estado RECEIVED como eventos de entrada.
func (s *Store) ListReceivedIntake(_ context.Context) ([]entity.ReceivedIntakeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ReceivedIntakeEvent, 0, len(s.requests))
	for _, r := range s.requests {
		if ev, ok := r.AsReceivedIntake(); ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ListStockMovements devuelve una copia de todos los movimientos en orden de alta.
func (s *Store) ListStockMovements(_ context.Context) ([]entity.StockMovementEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StockMovementEvent, len(s.movements))
	copy(out, s.movements)
	return out, nil
}

// AppendStockMovement agrega un movimiento. Un ID repetido es domain.ErrConflict.
func (s *Store) AppendStockMovement(_ context.Context, m *entity.StockMovementEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.movIDs[m.ID]; dup {
		return fmt.Errorf("append stock movement %s: %w", m.ID, domain.ErrConflict)
	}
	s.movIDs[m.ID] = struct{}{}
	s.movements = append(s.movements, *m)
	return nil
}

// Create guarda una solicitud nueva.
func (s *Store) Create(_ context.Context, req *entity.IntakeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.byID[req.ID]; dup {
		return fmt.Errorf("create intake request %s: %w", req.ID, domain.ErrConflict)
	}
	cp := *req
	s.byID[cp.ID] = &cp
	s.requests = append(s.requests, &cp)
	return nil
}

// GetByID devuelve (nil, nil) si no existe, como los repositorios PostgreSQL.
func (s *Store) GetByID(_ context.Context, id string) (*entity.IntakeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

// List devuelve solicitudes de la más reciente a la más antigua.
func (s *Store) List(_ context.Context, limit, offset int) ([]*entity.IntakeRequest, error) {
	s.mu.RLock()
	sorted := make([]*entity.IntakeRequest, 0, len(s.requests))
	for _, r := range s.requests {
		cp := *r
		sorted = append(sorted, &cp)
	}
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].RequestDate.Equal(sorted[j].RequestDate) {
			return sorted[i].RequestDate.After(sorted[j].RequestDate)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if offset >= len(sorted) {
		return []*entity.IntakeRequest{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

// UpdateStatus compara y cambia el estado en una sola sección crítica.
func (s *Store) UpdateStatus(_ context.Context, id string, from, to entity.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.Status != from {
		return fmt.Errorf("update status %s: %w", id, domain.ErrConflict)
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return nil
}

// RunForKey serializa las funciones que comparten clave con un mutex por clave.
// El mutex se libera del mapa cuando nadie más lo usa.
func (s *Store) RunForKey(ctx context.Context, key string, fn func(store repository.EventStore) error) error {
	s.keyMu.Lock()
	l, ok := s.keys[key]
	if !ok {
		l = &keyLock{}
		s.keys[key] = l
	}
	l.refs++
	s.keyMu.Unlock()

	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		s.keyMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.keys, key)
		}
		s.keyMu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}
