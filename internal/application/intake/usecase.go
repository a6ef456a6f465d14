package intake

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/inventory"
	"github.com/jhoicas/inventario-cocina/internal/domain/repository"
)

// RequestUseCase ciclo de vida de las solicitudes de cocina.
// Pasar una solicitud a RECEIVED es lo que genera una entrada de stock.
type RequestUseCase struct {
	repo repository.IntakeRequestRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(repo repository.IntakeRequestRepository, log zerolog.Logger) *RequestUseCase {
	return &RequestUseCase{repo: repo, log: log, now: time.Now}
}

// Create registra una solicitud en estado BEKLEMEDE.
func (uc *RequestUseCase) Create(ctx context.Context, in dto.CreateIntakeRequest) (*dto.IntakeRequestResponse, error) {
	if err := inventory.ValidateProductName(in.ProductName); err != nil {
		return nil, err
	}
	unit, err := entity.ParseUnit(in.Unit)
	if err != nil {
		return nil, err
	}
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	now := uc.now()
	reqDate := entity.Day(now)
	if in.RequestDate != "" {
		d, err := time.Parse(time.DateOnly, in.RequestDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		reqDate = d
	}

	req := &entity.IntakeRequest{
		ID:          uuid.New().String(),
		ProductName: inventory.Normalize(in.ProductName),
		Quantity:    in.Quantity,
		Unit:        unit,
		Status:      entity.RequestPending,
		RequestDate: reqDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return toIntakeRequestResponse(req), nil
}

// List lista solicitudes con paginación, más recientes primero.
func (uc *RequestUseCase) List(ctx context.Context, limit, offset int) (*dto.IntakeRequestListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IntakeRequestResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toIntakeRequestResponse(r))
	}
	return &dto.IntakeRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ChangeStatus aplica una transición permitida. RECEIVED y CANCELLED son terminales,
// así una entrada ya contabilizada nunca desaparece del stock.
func (uc *RequestUseCase) ChangeStatus(ctx context.Context, id string, status string) (*dto.IntakeRequestResponse, error) {
	next, err := entity.ParseRequestStatus(status)
	if err != nil {
		return nil, err
	}
	req, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if !req.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.repo.UpdateStatus(ctx, id, req.Status, next); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("id", id).
		Str("from", string(req.Status)).
		Str("to", string(next)).
		Msg("estado de solicitud actualizado")

	req.Status = next
	req.UpdatedAt = uc.now()
	return toIntakeRequestResponse(req), nil
}

func toIntakeRequestResponse(r *entity.IntakeRequest) *dto.IntakeRequestResponse {
	if r == nil {
		return nil
	}
	return &dto.IntakeRequestResponse{
		ID:          r.ID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Unit:        string(r.Unit),
		Status:      string(r.Status),
		RequestDate: r.RequestDate.Format(time.DateOnly),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
