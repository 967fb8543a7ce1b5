package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	customerRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/customer"
	"github.com/m04kA/RIH-BookingService/internal/service/customers/models"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

const searchLimit = 50

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	FindByPhone(ctx context.Context, normalizedPhone string) (*domain.Customer, error)
	Search(ctx context.Context, term string, limit uint64) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service сервис справочника клиентов. Телефоны хранятся только в
// нормализованном виде, поэтому любые входные форматы одного номера
// сходятся к одной записи.
type Service struct {
	repo   CustomerRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(repo CustomerRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetByID получает клиента по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCustomer(c), nil
}

// Search ищет клиентов по части имени или номера телефона
func (s *Service) Search(ctx context.Context, term string) (*models.CustomerListResponse, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidInput)
	}

	customers, err := s.repo.Search(ctx, term, searchLimit)
	if err != nil {
		s.logger.Error("Search: repository error for term=%q: %v", term, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCustomerList(customers), nil
}

// Create создает клиента; телефон нормализуется перед сохранением
func (s *Service) Create(ctx context.Context, req *models.CreateCustomerRequest, actorID *int64) (*models.CustomerResponse, error) {
	if req.FullName == "" {
		return nil, fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}
	normalized := phone.Normalize(req.PhoneNumber)
	if normalized == "" {
		return nil, fmt.Errorf("%w: phoneNumber is required", ErrInvalidInput)
	}

	customer := &domain.Customer{
		FullName:    req.FullName,
		PhoneNumber: normalized,
		Notes:       req.Notes,
		CreatedBy:   actorID,
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, customerRepo.ErrDuplicatePhone) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePhone, normalized)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: customer id=%d phone=%s created", created.ID, created.PhoneNumber)
	return models.FromDomainCustomer(created), nil
}

// Update обновляет клиента; nil-поля запроса не меняются. Смена номера
// телефона проверяется на коллизию с другим клиентом.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, fmt.Errorf("%w: fullName cannot be empty", ErrInvalidInput)
		}
		customer.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		normalized := phone.Normalize(*req.PhoneNumber)
		if normalized == "" {
			return nil, fmt.Errorf("%w: phoneNumber cannot be empty", ErrInvalidInput)
		}
		if normalized != customer.PhoneNumber {
			existing, err := s.repo.FindByPhone(ctx, normalized)
			if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
				s.logger.Error("Update: phone lookup error: %v", err)
				return nil, fmt.Errorf("%w: Update - phone lookup error: %v", ErrInternal, err)
			}
			if existing != nil && existing.ID != id {
				return nil, fmt.Errorf("%w: %s", ErrDuplicatePhone, normalized)
			}
			customer.PhoneNumber = normalized
		}
	}
	if req.Notes != nil {
		customer.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		if errors.Is(err, customerRepo.ErrDuplicatePhone) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePhone, customer.PhoneNumber)
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: customer id=%d updated", id)
	return models.FromDomainCustomer(customer), nil
}
