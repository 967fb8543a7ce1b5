// Package reports строит сводные отчеты и отчеты о занятости.
// Отмененные брони в отчеты не попадают.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/service/reports/models"
)

// BookingRepository интерфейс репозитория броней
type BookingRepository interface {
	ListStartingInPeriod(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	ListOverlappingForUnit(ctx context.Context, unitID int64, from, to time.Time) ([]*domain.Booking, error)
	ListCreatedInPeriod(ctx context.Context, from, to time.Time, createdBy *int64) ([]*domain.Booking, error)
	ListCancelledInPeriod(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	ListNoShowsInPeriod(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	ListCheckingInOn(ctx context.Context, day time.Time) ([]*domain.Booking, error)
	ListCheckingOutOn(ctx context.Context, day time.Time) ([]*domain.Booking, error)
	ListTentativeExpiringWithin(ctx context.Context, now, until time.Time) ([]*domain.Booking, error)
}

// Брони, истекающие в ближайшие два часа, попадают в сводку на сегодня
const expiringSoonWindow = 2 * time.Hour

// Ключ группировки отмен без указанной причины
const noReasonKey = "No reason provided"

// UnitRepository интерфейс репозитория единиц
type UnitRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Unit, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service сервис отчетов
type Service struct {
	bookings BookingRepository
	units    UnitRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(bookings BookingRepository, units UnitRepository, logger Logger) *Service {
	return &Service{bookings: bookings, units: units, logger: logger}
}

// Summary строит сводный отчет по броням, начинающимся в [from, to]
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*models.SummaryReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	bookings, err := s.bookings.ListStartingInPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("Summary: repository error: %v", err)
		return nil, fmt.Errorf("%w: Summary - repository error: %v", ErrInternal, err)
	}

	units, err := s.units.List(ctx, false)
	if err != nil {
		s.logger.Error("Summary: units repository error: %v", err)
		return nil, fmt.Errorf("%w: Summary - units repository error: %v", ErrInternal, err)
	}
	unitNames := make(map[int64]string, len(units))
	for _, u := range units {
		unitNames[u.ID] = u.Name
	}

	report := &models.SummaryReport{
		From:            from.Format(domain.DateFormat),
		To:              to.Format(domain.DateFormat),
		ByStatus:        make(map[string]int),
		ByPaymentStatus: make(map[string]int),
	}

	perUnit := make(map[int64]*models.UnitSummary)
	for _, b := range bookings {
		if b.IsCancelled() {
			continue
		}

		report.TotalBookings++
		report.TotalRevenue += b.PriceTotal
		report.TotalPaid += b.AmountPaid
		report.ByStatus[string(b.Status)]++
		report.ByPaymentStatus[string(b.PaymentStatus)]++

		us, ok := perUnit[b.UnitID]
		if !ok {
			us = &models.UnitSummary{UnitID: b.UnitID, UnitName: unitNames[b.UnitID]}
			perUnit[b.UnitID] = us
		}
		us.Bookings++
		us.Revenue += b.PriceTotal
		us.Paid += b.AmountPaid
	}
	report.TotalOutstanding = report.TotalRevenue - report.TotalPaid

	// Детерминированный порядок единиц - по sort_order из репозитория
	for _, u := range units {
		if us, ok := perUnit[u.ID]; ok {
			report.Units = append(report.Units, *us)
		}
	}

	return report, nil
}

// Occupancy строит отчет о занятости активных единиц за период.
// Ночи брони, выходящие за период, обрезаются до его границ.
func (s *Service) Occupancy(ctx context.Context, from, to time.Time) (*models.OccupancyReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	units, err := s.units.List(ctx, true)
	if err != nil {
		s.logger.Error("Occupancy: units repository error: %v", err)
		return nil, fmt.Errorf("%w: Occupancy - units repository error: %v", ErrInternal, err)
	}

	periodDays := int(to.Sub(from).Hours() / 24)
	report := &models.OccupancyReport{
		From:       from.Format(domain.DateFormat),
		To:         to.Format(domain.DateFormat),
		PeriodDays: periodDays,
		Units:      make([]models.UnitOccupancy, 0, len(units)),
	}

	for _, u := range units {
		bookings, err := s.bookings.ListOverlappingForUnit(ctx, u.ID, from, to)
		if err != nil {
			s.logger.Error("Occupancy: repository error for unit id=%d: %v", u.ID, err)
			return nil, fmt.Errorf("%w: Occupancy - repository error: %v", ErrInternal, err)
		}

		nights := 0
		for _, b := range bookings {
			if b.IsCancelled() {
				continue
			}
			nights += clampedNights(b.StartDate, b.EndDate, from, to)
		}

		occupancy := models.UnitOccupancy{
			UnitID:       u.ID,
			UnitName:     u.Name,
			BookedNights: nights,
		}
		if periodDays > 0 {
			occupancy.OccupancyPct = float64(nights) / float64(periodDays) * 100
		}
		report.Units = append(report.Units, occupancy)
	}

	return report, nil
}

// AgentActivity строит отчет по броням, созданным в [from, to],
// с разбивкой по создавшим их агентам. agentID сужает выборку до одного агента.
func (s *Service) AgentActivity(ctx context.Context, from, to time.Time, agentID *int64) (*models.AgentActivityReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	bookings, err := s.bookings.ListCreatedInPeriod(ctx, from, to, agentID)
	if err != nil {
		s.logger.Error("AgentActivity: repository error: %v", err)
		return nil, fmt.Errorf("%w: AgentActivity - repository error: %v", ErrInternal, err)
	}

	unitNames, err := s.unitNames(ctx)
	if err != nil {
		s.logger.Error("AgentActivity: units repository error: %v", err)
		return nil, fmt.Errorf("%w: AgentActivity - units repository error: %v", ErrInternal, err)
	}

	report := &models.AgentActivityReport{
		From:          from.Format(domain.DateFormat),
		To:            to.Format(domain.DateFormat),
		TotalBookings: len(bookings),
		Bookings:      make([]models.AgentBookingRow, 0, len(bookings)),
	}

	perAgent := make(map[int64]*models.AgentSummary)
	for _, b := range bookings {
		report.Bookings = append(report.Bookings, models.AgentBookingRow{
			ID:              b.ID,
			ReferenceNumber: b.ReferenceNumber,
			UnitName:        unitNames[b.UnitID],
			CustomerName:    b.CustomerName,
			StartDate:       b.StartDate.Format(domain.DateFormat),
			EndDate:         b.EndDate.Format(domain.DateFormat),
			PriceTotal:      b.PriceTotal,
			Status:          string(b.Status),
			CreatedBy:       b.CreatedBy,
			CreatedAt:       b.CreatedAt,
		})

		// Брони без создателя (системные) в разбивку по агентам не входят
		if b.CreatedBy == nil {
			continue
		}
		as, ok := perAgent[*b.CreatedBy]
		if !ok {
			as = &models.AgentSummary{AgentID: *b.CreatedBy}
			perAgent[*b.CreatedBy] = as
		}
		as.BookingsCreated++
		as.TotalRevenue += b.PriceTotal
		as.TotalCollected += b.AmountPaid
		switch b.Status {
		case domain.StatusCancelled:
			as.CancelledCount++
		case domain.StatusTentative:
			as.TentativeCount++
		case domain.StatusConfirmed:
			as.ConfirmedCount++
		}
	}

	ids := make([]int64, 0, len(perAgent))
	for id := range perAgent {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	report.ByAgent = make([]models.AgentSummary, 0, len(ids))
	for _, id := range ids {
		report.ByAgent = append(report.ByAgent, *perAgent[id])
	}

	return report, nil
}

// Cancellations строит отчет по отменам (по дате отмены) и неявкам
// (по дате заезда) за [from, to]
func (s *Service) Cancellations(ctx context.Context, from, to time.Time) (*models.CancellationsReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	cancelled, err := s.bookings.ListCancelledInPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("Cancellations: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cancellations - repository error: %v", ErrInternal, err)
	}

	noShows, err := s.bookings.ListNoShowsInPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("Cancellations: no-shows repository error: %v", err)
		return nil, fmt.Errorf("%w: Cancellations - no-shows repository error: %v", ErrInternal, err)
	}

	unitNames, err := s.unitNames(ctx)
	if err != nil {
		s.logger.Error("Cancellations: units repository error: %v", err)
		return nil, fmt.Errorf("%w: Cancellations - units repository error: %v", ErrInternal, err)
	}

	report := &models.CancellationsReport{
		From:               from.Format(domain.DateFormat),
		To:                 to.Format(domain.DateFormat),
		TotalCancellations: len(cancelled),
		TotalNoShows:       len(noShows),
		ByReason:           make(map[string]int),
		Cancellations:      make([]models.CancellationRow, 0, len(cancelled)),
		NoShows:            make([]models.NoShowRow, 0, len(noShows)),
	}

	for _, b := range cancelled {
		report.CancelledRevenue += b.PriceTotal

		reason := noReasonKey
		if b.CancellationReason != nil && *b.CancellationReason != "" {
			reason = *b.CancellationReason
		}
		report.ByReason[reason]++

		report.Cancellations = append(report.Cancellations, models.CancellationRow{
			ID:              b.ID,
			ReferenceNumber: b.ReferenceNumber,
			UnitName:        unitNames[b.UnitID],
			CustomerName:    b.CustomerName,
			StartDate:       b.StartDate.Format(domain.DateFormat),
			EndDate:         b.EndDate.Format(domain.DateFormat),
			PriceTotal:      b.PriceTotal,
			Reason:          b.CancellationReason,
			CancelledAt:     b.CancelledAt,
			CancelledBy:     b.CancelledBy,
		})
	}

	for _, b := range noShows {
		report.NoShowRevenue += b.PriceTotal
		report.NoShows = append(report.NoShows, models.NoShowRow{
			ID:              b.ID,
			ReferenceNumber: b.ReferenceNumber,
			UnitName:        unitNames[b.UnitID],
			CustomerName:    b.CustomerName,
			StartDate:       b.StartDate.Format(domain.DateFormat),
			EndDate:         b.EndDate.Format(domain.DateFormat),
			PriceTotal:      b.PriceTotal,
		})
	}
	report.TotalLostRevenue = report.CancelledRevenue + report.NoShowRevenue

	return report, nil
}

// TodayDashboard строит сводку на день now: заезды, выезды и
// предварительные брони, истекающие в ближайшие два часа
func (s *Service) TodayDashboard(ctx context.Context, now time.Time) (*models.TodayDashboard, error) {
	checkIns, err := s.bookings.ListCheckingInOn(ctx, now)
	if err != nil {
		s.logger.Error("TodayDashboard: check-ins repository error: %v", err)
		return nil, fmt.Errorf("%w: TodayDashboard - check-ins repository error: %v", ErrInternal, err)
	}

	checkOuts, err := s.bookings.ListCheckingOutOn(ctx, now)
	if err != nil {
		s.logger.Error("TodayDashboard: check-outs repository error: %v", err)
		return nil, fmt.Errorf("%w: TodayDashboard - check-outs repository error: %v", ErrInternal, err)
	}

	expiring, err := s.bookings.ListTentativeExpiringWithin(ctx, now, now.Add(expiringSoonWindow))
	if err != nil {
		s.logger.Error("TodayDashboard: expiring repository error: %v", err)
		return nil, fmt.Errorf("%w: TodayDashboard - expiring repository error: %v", ErrInternal, err)
	}

	unitNames, err := s.unitNames(ctx)
	if err != nil {
		s.logger.Error("TodayDashboard: units repository error: %v", err)
		return nil, fmt.Errorf("%w: TodayDashboard - units repository error: %v", ErrInternal, err)
	}

	dashboard := &models.TodayDashboard{Date: now.Format(domain.DateFormat)}

	dashboard.CheckIns.Bookings = make([]models.DashboardBookingRow, 0, len(checkIns))
	for _, b := range checkIns {
		if b.IsCancelled() {
			continue
		}
		dashboard.CheckIns.Count++
		if b.PaymentStatus != domain.PaymentPaid {
			dashboard.CheckIns.UnpaidCount++
		}
		dashboard.CheckIns.Bookings = append(dashboard.CheckIns.Bookings, dashboardRow(b, unitNames))
	}

	dashboard.CheckOuts.Bookings = make([]models.DashboardBookingRow, 0, len(checkOuts))
	for _, b := range checkOuts {
		if b.IsCancelled() {
			continue
		}
		dashboard.CheckOuts.Count++
		dashboard.CheckOuts.Bookings = append(dashboard.CheckOuts.Bookings, dashboardRow(b, unitNames))
	}

	dashboard.ExpiringTentative.Count = len(expiring)
	dashboard.ExpiringTentative.Bookings = make([]models.DashboardBookingRow, 0, len(expiring))
	for _, b := range expiring {
		dashboard.ExpiringTentative.Bookings = append(dashboard.ExpiringTentative.Bookings, dashboardRow(b, unitNames))
	}

	return dashboard, nil
}

// unitNames возвращает отображение id единицы в ее имя
func (s *Service) unitNames(ctx context.Context) (map[int64]string, error) {
	units, err := s.units.List(ctx, false)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(units))
	for _, u := range units {
		names[u.ID] = u.Name
	}
	return names, nil
}

func dashboardRow(b *domain.Booking, unitNames map[int64]string) models.DashboardBookingRow {
	return models.DashboardBookingRow{
		ID:                b.ID,
		ReferenceNumber:   b.ReferenceNumber,
		UnitName:          unitNames[b.UnitID],
		CustomerName:      b.CustomerName,
		CustomerPhone:     b.CustomerPhone,
		RemainingAmount:   b.RemainingAmount(),
		PaymentStatus:     string(b.PaymentStatus),
		Status:            string(b.Status),
		TentativeExpiryAt: b.TentativeExpiryAt,
	}
}

// clampedNights считает ночи брони внутри отчетного периода
func clampedNights(start, end, from, to time.Time) int {
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
