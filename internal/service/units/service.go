package units

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	unitRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/unit"
	"github.com/m04kA/RIH-BookingService/internal/service/units/models"
)

// UnitRepository интерфейс репозитория единиц
type UnitRepository interface {
	Create(ctx context.Context, u *domain.Unit) (*domain.Unit, error)
	GetByID(ctx context.Context, id int64) (*domain.Unit, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Unit, error)
	Update(ctx context.Context, u *domain.Unit) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service CRUD сервис единиц (шале). Единицы не удаляются физически -
// вывод из оборота делается переводом статуса в inactive.
type Service struct {
	repo   UnitRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса единиц
func NewService(repo UnitRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List получает единицы в порядке sort_order
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.UnitListResponse, error) {
	units, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUnitList(units), nil
}

// Create создает новую единицу со статусом active
func (s *Service) Create(ctx context.Context, req *models.CreateUnitRequest) (*models.UnitResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.DefaultPrice < 0 {
		return nil, fmt.Errorf("%w: defaultPrice must be non-negative", ErrInvalidInput)
	}

	unit := &domain.Unit{
		Name:          req.Name,
		Status:        domain.UnitActive,
		DefaultPrice:  req.DefaultPrice,
		PriceThursday: req.PriceThursday,
		PriceFriday:   req.PriceFriday,
		PriceSaturday: req.PriceSaturday,
		Notes:         req.Notes,
		SortOrder:     req.SortOrder,
	}

	created, err := s.repo.Create(ctx, unit)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: unit id=%d name=%q created", created.ID, created.Name)
	return models.FromDomainUnit(created), nil
}

// Update обновляет единицу; nil-поля запроса не меняются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateUnitRequest) (*models.UnitResponse, error) {
	unit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		s.logger.Error("Update: repository error for unit id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		unit.Name = *req.Name
	}
	if req.Status != nil {
		status := domain.UnitStatus(*req.Status)
		if status != domain.UnitActive && status != domain.UnitInactive {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		unit.Status = status
	}
	if req.DefaultPrice != nil {
		if *req.DefaultPrice < 0 {
			return nil, fmt.Errorf("%w: defaultPrice must be non-negative", ErrInvalidInput)
		}
		unit.DefaultPrice = *req.DefaultPrice
	}
	if req.PriceThursday != nil {
		unit.PriceThursday = req.PriceThursday
	}
	if req.PriceFriday != nil {
		unit.PriceFriday = req.PriceFriday
	}
	if req.PriceSaturday != nil {
		unit.PriceSaturday = req.PriceSaturday
	}
	if req.Notes != nil {
		unit.Notes = req.Notes
	}
	if req.SortOrder != nil {
		unit.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, unit); err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		s.logger.Error("Update: repository error for unit id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: unit id=%d updated", id)
	return models.FromDomainUnit(unit), nil
}
