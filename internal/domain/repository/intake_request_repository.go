package repository

import (
	"context"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// IntakeRequestRepository persistencia de solicitudes de cocina.
// Las solicitudes en estado RECEIVED alimentan EventStore.ListReceivedIntake.
type IntakeRequestRepository interface {
	Create(ctx context.Context, req *entity.IntakeRequest) error
	GetByID(ctx context.Context, id string) (*entity.IntakeRequest, error)
	List(ctx context.Context, limit, offset int) ([]*entity.IntakeRequest, error)
	// UpdateStatus cambia el estado solo si el actual sigue siendo from; si no, domain.ErrConflict.
	UpdateStatus(ctx context.Context, id string, from, to entity.RequestStatus) error
}
