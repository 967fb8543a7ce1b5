package whatsapp

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	customerRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/customer"
	settingsRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/RIH-BookingService/pkg/ptr"
)

type fakeBookings struct {
	booking *domain.Booking
	err     error
}

func (f *fakeBookings) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.err
}

type fakeCustomers struct {
	customer *domain.Customer
	err      error
}

func (f *fakeCustomers) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	if f.customer == nil && f.err == nil {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return f.customer, f.err
}

type fakeUnits struct {
	unit *domain.Unit
	err  error
}

func (f *fakeUnits) GetByID(_ context.Context, _ int64) (*domain.Unit, error) {
	return f.unit, f.err
}

type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", settingsRepo.ErrSettingNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		UnitID:          1,
		CustomerID:      ptr.Ptr(int64(7)),
		StartDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		PriceTotal:      1500,
		AmountPaid:      500,
		ReferenceNumber: "RIH-2026-000042",
		Status:          domain.StatusConfirmed,
	}
}

func TestBuildLink_CustomTemplate(t *testing.T) {
	svc := NewService(
		&fakeBookings{booking: testBooking()},
		&fakeCustomers{customer: &domain.Customer{ID: 7, FullName: "Ahmed", PhoneNumber: "+966501234567"}},
		&fakeUnits{unit: &domain.Unit{ID: 1, Name: "Chalet A"}},
		&fakeSettings{values: map[string]string{
			"whatsapp_template": "{customer_name} {reference} {unit_name} {start_date} {end_date} {total_price}/{paid}/{remaining} #{booking_id}",
		}},
		nopLogger{},
	)

	resp, err := svc.BuildLink(context.Background(), 42, "")
	require.NoError(t, err)

	assert.Equal(t, "966501234567", resp.Phone)
	assert.Equal(t, "Ahmed RIH-2026-000042 Chalet A 2026-03-10 2026-03-13 1500.00/500.00/1000.00 #42", resp.Message)
	assert.True(t, strings.HasPrefix(resp.URL, "https://wa.me/966501234567?text="), resp.URL)

	// The message must survive URL encoding round-trip
	decoded, err := url.QueryUnescape(strings.TrimPrefix(resp.URL, "https://wa.me/966501234567?text="))
	require.NoError(t, err)
	assert.Equal(t, resp.Message, decoded)
}

func TestBuildLink_DefaultEnglishTemplate(t *testing.T) {
	svc := NewService(
		&fakeBookings{booking: testBooking()},
		&fakeCustomers{customer: &domain.Customer{ID: 7, FullName: "Ahmed", PhoneNumber: "0501234567"}},
		&fakeUnits{unit: &domain.Unit{ID: 1, Name: "Chalet A"}},
		&fakeSettings{},
		nopLogger{},
	)

	resp, err := svc.BuildLink(context.Background(), 42, "en")
	require.NoError(t, err)

	assert.Equal(t, "966501234567", resp.Phone)
	assert.Contains(t, resp.Message, "Hello Ahmed")
	assert.Contains(t, resp.Message, "RIH-2026-000042")
	assert.Contains(t, resp.Message, "Chalet A")
}

func TestBuildLink_InlinePhoneFallback(t *testing.T) {
	booking := testBooking()
	booking.CustomerID = nil
	booking.CustomerName = ptr.Ptr("Walk-in")
	booking.CustomerPhone = ptr.Ptr("0555000111")

	svc := NewService(
		&fakeBookings{booking: booking},
		&fakeCustomers{},
		&fakeUnits{unit: &domain.Unit{ID: 1, Name: "Chalet A"}},
		&fakeSettings{},
		nopLogger{},
	)

	resp, err := svc.BuildLink(context.Background(), 42, "")
	require.NoError(t, err)
	assert.Equal(t, "966555000111", resp.Phone)
}

func TestBuildLink_NoPhone(t *testing.T) {
	booking := testBooking()
	booking.CustomerID = nil

	svc := NewService(
		&fakeBookings{booking: booking},
		&fakeCustomers{},
		&fakeUnits{unit: &domain.Unit{ID: 1, Name: "Chalet A"}},
		&fakeSettings{},
		nopLogger{},
	)

	_, err := svc.BuildLink(context.Background(), 42, "")
	assert.ErrorIs(t, err, ErrNoPhone)
}
