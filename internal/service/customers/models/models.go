// Package models содержит модели запросов и ответов сервиса клиентов
package models

import (
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
)

// CreateCustomerRequest запрос на создание клиента
type CreateCustomerRequest struct {
	FullName    string  `json:"fullName"`
	PhoneNumber string  `json:"phoneNumber"`
	Notes       *string `json:"notes,omitempty"`
}

// UpdateCustomerRequest запрос на обновление клиента; nil-поля не меняются
type UpdateCustomerRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CustomerResponse клиент в ответе API
type CustomerResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CustomerListResponse список клиентов
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// FromDomainCustomer конвертирует доменную модель в модель ответа
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		PhoneNumber: c.PhoneNumber,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainCustomerList конвертирует список доменных моделей
func FromDomainCustomerList(customers []*domain.Customer) *CustomerListResponse {
	resp := &CustomerListResponse{Customers: make([]CustomerResponse, 0, len(customers))}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, *FromDomainCustomer(c))
	}
	return resp
}
