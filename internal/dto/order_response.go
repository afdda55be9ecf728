package dto

import (
	"time"

	"delitrack/internal/domain"
)

type OrderDTO struct {
	ID              string  `json:"id"`
	Customer        string  `json:"customer"`
	PickupAddress   string  `json:"pickupAddress"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Date            string  `json:"date"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	Tone            string  `json:"tone"`
	Items           int     `json:"items"`
	PaymentMethod   string  `json:"paymentMethod"`
}

func NewOrderDTO(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:              o.ID,
		Customer:        o.Customer,
		PickupAddress:   o.PickupAddress,
		DeliveryAddress: o.DeliveryAddress,
		Date:            o.Date,
		Amount:          o.Amount,
		Status:          o.Status,
		Tone:            string(domain.ToneForStatus(o.Status)),
		Items:           o.Items,
		PaymentMethod:   o.PaymentMethod,
	}
}

type OrderListResponse struct {
	TraceID   string     `json:"traceId"`
	Query     string     `json:"query"`
	Status    string     `json:"status"`
	Count     int        `json:"count"`
	Orders    []OrderDTO `json:"orders"`
	Timestamp time.Time  `json:"timestamp"`
}

type OrderLookupResponse struct {
	TraceID     string    `json:"traceId"`
	RequestedID string    `json:"requestedId"`
	Fallback    bool      `json:"fallback"`
	Order       OrderDTO  `json:"order"`
	Timestamp   time.Time `json:"timestamp"`
}

type StatsResponse struct {
	TraceID   string    `json:"traceId"`
	Total     int       `json:"total"`
	Pending   int       `json:"pending"`
	InTransit int       `json:"inTransit"`
	Delivered int       `json:"delivered"`
	Cancelled int       `json:"cancelled"`
	Timestamp time.Time `json:"timestamp"`
}
