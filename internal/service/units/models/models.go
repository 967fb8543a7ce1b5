package models

import (
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
)

// CreateUnitRequest запрос на создание единицы
type CreateUnitRequest struct {
	Name          string   `json:"name"`
	DefaultPrice  float64  `json:"defaultPrice"`
	PriceThursday *float64 `json:"priceThursday,omitempty"`
	PriceFriday   *float64 `json:"priceFriday,omitempty"`
	PriceSaturday *float64 `json:"priceSaturday,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	SortOrder     int      `json:"sortOrder"`
}

// UpdateUnitRequest запрос на обновление единицы (nil = поле не меняется)
type UpdateUnitRequest struct {
	Name          *string  `json:"name,omitempty"`
	Status        *string  `json:"status,omitempty"`
	DefaultPrice  *float64 `json:"defaultPrice,omitempty"`
	PriceThursday *float64 `json:"priceThursday,omitempty"`
	PriceFriday   *float64 `json:"priceFriday,omitempty"`
	PriceSaturday *float64 `json:"priceSaturday,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	SortOrder     *int     `json:"sortOrder,omitempty"`
}

// UnitResponse модель единицы для ответов API
type UnitResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	DefaultPrice  float64  `json:"defaultPrice"`
	PriceThursday *float64 `json:"priceThursday,omitempty"`
	PriceFriday   *float64 `json:"priceFriday,omitempty"`
	PriceSaturday *float64 `json:"priceSaturday,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	SortOrder     int      `json:"sortOrder"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// UnitListResponse список единиц
type UnitListResponse struct {
	Units []*UnitResponse `json:"units"`
	Total int             `json:"total"`
}

// FromDomainUnit конвертирует domain единицу в модель ответа
func FromDomainUnit(u *domain.Unit) *UnitResponse {
	return &UnitResponse{
		ID:            u.ID,
		Name:          u.Name,
		Status:        string(u.Status),
		DefaultPrice:  u.DefaultPrice,
		PriceThursday: u.PriceThursday,
		PriceFriday:   u.PriceFriday,
		PriceSaturday: u.PriceSaturday,
		Notes:         u.Notes,
		SortOrder:     u.SortOrder,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainUnitList конвертирует список единиц
func FromDomainUnitList(units []*domain.Unit) *UnitListResponse {
	result := make([]*UnitResponse, 0, len(units))
	for _, u := range units {
		result = append(result, FromDomainUnit(u))
	}
	return &UnitListResponse{Units: result, Total: len(result)}
}
