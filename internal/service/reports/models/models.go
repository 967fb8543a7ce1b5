// Package models содержит модели отчетов
package models

import "time"

// SummaryReport сводный отчет по броням, начинающимся в периоде
type SummaryReport struct {
	From string `json:"from"`
	To   string `json:"to"`

	TotalBookings   int     `json:"totalBookings"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalPaid       float64 `json:"totalPaid"`
	TotalOutstanding float64 `json:"totalOutstanding"`

	ByStatus        map[string]int `json:"byStatus"`
	ByPaymentStatus map[string]int `json:"byPaymentStatus"`

	Units []UnitSummary `json:"units"`
}

// UnitSummary срез сводного отчета по одной единице
type UnitSummary struct {
	UnitID   int64   `json:"unitId"`
	UnitName string  `json:"unitName"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
	Paid     float64 `json:"paid"`
}

// OccupancyReport отчет о занятости единиц за период
type OccupancyReport struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	PeriodDays int             `json:"periodDays"`
	Units      []UnitOccupancy `json:"units"`
}

// UnitOccupancy занятость одной единицы
type UnitOccupancy struct {
	UnitID       int64   `json:"unitId"`
	UnitName     string  `json:"unitName"`
	BookedNights int     `json:"bookedNights"`
	OccupancyPct float64 `json:"occupancyPct"`
}

// AgentActivityReport отчет по броням, созданным агентами за период
type AgentActivityReport struct {
	From string `json:"from"`
	To   string `json:"to"`

	TotalBookings int               `json:"totalBookings"`
	ByAgent       []AgentSummary    `json:"byAgent"`
	Bookings      []AgentBookingRow `json:"bookings"`
}

// AgentSummary агрегат по одному агенту
type AgentSummary struct {
	AgentID         int64   `json:"agentId"`
	BookingsCreated int     `json:"bookingsCreated"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalCollected  float64 `json:"totalCollected"`
	CancelledCount  int     `json:"cancelledCount"`
	TentativeCount  int     `json:"tentativeCount"`
	ConfirmedCount  int     `json:"confirmedCount"`
}

// AgentBookingRow строка списка броней отчета по агентам
type AgentBookingRow struct {
	ID              int64     `json:"id"`
	ReferenceNumber string    `json:"referenceNumber"`
	UnitName        string    `json:"unitName"`
	CustomerName    *string   `json:"customerName,omitempty"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	PriceTotal      float64   `json:"priceTotal"`
	Status          string    `json:"status"`
	CreatedBy       *int64    `json:"createdBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CancellationsReport отчет по отменам и неявкам за период
type CancellationsReport struct {
	From string `json:"from"`
	To   string `json:"to"`

	TotalCancellations int     `json:"totalCancellations"`
	TotalNoShows       int     `json:"totalNoShows"`
	CancelledRevenue   float64 `json:"cancelledRevenue"`
	NoShowRevenue      float64 `json:"noShowRevenue"`
	TotalLostRevenue   float64 `json:"totalLostRevenue"`

	ByReason      map[string]int    `json:"byReason"`
	Cancellations []CancellationRow `json:"cancellations"`
	NoShows       []NoShowRow       `json:"noShows"`
}

// CancellationRow строка списка отмен
type CancellationRow struct {
	ID              int64      `json:"id"`
	ReferenceNumber string     `json:"referenceNumber"`
	UnitName        string     `json:"unitName"`
	CustomerName    *string    `json:"customerName,omitempty"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	PriceTotal      float64    `json:"priceTotal"`
	Reason          *string    `json:"reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy     *int64     `json:"cancelledBy,omitempty"`
}

// NoShowRow строка списка неявок
type NoShowRow struct {
	ID              int64   `json:"id"`
	ReferenceNumber string  `json:"referenceNumber"`
	UnitName        string  `json:"unitName"`
	CustomerName    *string `json:"customerName,omitempty"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	PriceTotal      float64 `json:"priceTotal"`
}

// TodayDashboard сводка на сегодня: заезды, выезды, истекающие брони
type TodayDashboard struct {
	Date string `json:"date"`

	CheckIns          DashboardCheckIns `json:"checkIns"`
	CheckOuts         DashboardSection  `json:"checkOuts"`
	ExpiringTentative DashboardSection  `json:"expiringTentative"`
}

// DashboardCheckIns секция заездов с числом неоплаченных
type DashboardCheckIns struct {
	Count       int                   `json:"count"`
	UnpaidCount int                   `json:"unpaidCount"`
	Bookings    []DashboardBookingRow `json:"bookings"`
}

// DashboardSection секция сводки с перечнем броней
type DashboardSection struct {
	Count    int                   `json:"count"`
	Bookings []DashboardBookingRow `json:"bookings"`
}

// DashboardBookingRow строка сводки на сегодня
type DashboardBookingRow struct {
	ID                int64      `json:"id"`
	ReferenceNumber   string     `json:"referenceNumber"`
	UnitName          string     `json:"unitName"`
	CustomerName      *string    `json:"customerName,omitempty"`
	CustomerPhone     *string    `json:"customerPhone,omitempty"`
	RemainingAmount   float64    `json:"remainingAmount"`
	PaymentStatus     string     `json:"paymentStatus"`
	Status            string     `json:"status"`
	TentativeExpiryAt *time.Time `json:"tentativeExpiryAt,omitempty"`
}
