package create_booking

import (
	"fmt"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	// Однодневная бронь (end == start) допустима
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if req.PriceTotal < 0 {
		return fmt.Errorf("%w: priceTotal must be non-negative", ErrInvalidInput)
	}
	if req.AmountPaid < 0 {
		return fmt.Errorf("%w: amountPaid must be non-negative", ErrInvalidInput)
	}
	if req.AmountPaid > req.PriceTotal {
		return fmt.Errorf("%w: amountPaid must not exceed priceTotal", ErrInvalidInput)
	}
	if req.DepositAmount != nil && *req.DepositAmount < 0 {
		return fmt.Errorf("%w: depositAmount must be non-negative", ErrInvalidInput)
	}

	if err := validateStatus(req.Status); err != nil {
		return err
	}

	return validateCustomerFields(req)
}

// validateStatus допускает только начальные статусы жизненного цикла
func validateStatus(status string) error {
	switch domain.BookingStatus(status) {
	case "", domain.StatusTentative, domain.StatusConfirmed:
		return nil
	}
	return fmt.Errorf("%w: status must be tentative or confirmed, got %q", ErrInvalidInput, status)
}

// validateCustomerFields проверяет, что клиент задан хотя бы одним способом
func validateCustomerFields(req *Request) error {
	if req.CustomerID != nil {
		if *req.CustomerID <= 0 {
			return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
		}
		return nil
	}

	name := ""
	if req.CustomerName != nil {
		name = *req.CustomerName
	}
	if name == "" {
		return fmt.Errorf("%w: customerName is required when customerID is not set", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.CustomerPhone != nil && phone.Normalize(*req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is not a valid phone number", ErrInvalidInput)
	}

	return nil
}

// requestedStatus возвращает начальный статус брони.
// Без явного статуса бронь создается сразу подтвержденной.
func requestedStatus(req *Request) domain.BookingStatus {
	if req.Status == "" {
		return domain.StatusConfirmed
	}
	return domain.BookingStatus(req.Status)
}
