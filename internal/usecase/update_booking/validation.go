package update_booking

import (
	"fmt"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if req.UnitID != nil && *req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if req.PriceTotal != nil && *req.PriceTotal < 0 {
		return fmt.Errorf("%w: priceTotal must be non-negative", ErrInvalidInput)
	}
	if req.AmountPaid != nil && *req.AmountPaid < 0 {
		return fmt.Errorf("%w: amountPaid must be non-negative", ErrInvalidInput)
	}
	if req.DepositAmount != nil && *req.DepositAmount < 0 {
		return fmt.Errorf("%w: depositAmount must be non-negative", ErrInvalidInput)
	}

	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !domain.ValidBookingStatus(status) {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		// Отмена идет через отдельную операцию с указанием причины
		if status == domain.StatusCancelled {
			return fmt.Errorf("%w: use the cancel operation to cancel a booking", ErrInvalidInput)
		}
	}

	if req.CustomerName != nil && len(*req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if req.CustomerPhone != nil && phone.Normalize(*req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is not a valid phone number", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
