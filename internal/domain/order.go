package domain

import "strings"

type Order struct {
	ID              string  `yaml:"id" validate:"required"`
	Customer        string  `yaml:"customer" validate:"required"`
	PickupAddress   string  `yaml:"pickupAddress" validate:"required"`
	DeliveryAddress string  `yaml:"deliveryAddress" validate:"required"`
	Date            string  `yaml:"date" validate:"required"`
	Amount          float64 `yaml:"amount" validate:"gte=0"`
	Status          string  `yaml:"status" validate:"required,order_status"`
	Items           int     `yaml:"items" validate:"gt=0"`
	PaymentMethod   string  `yaml:"paymentMethod" validate:"required"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusInTransit = "in transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsKnownOrderStatus reports whether status belongs to the closed status set, ignoring case.
func IsKnownOrderStatus(status string) bool {
	s := strings.ToLower(status)
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// HasStatus compares statuses case-insensitively.
func (o Order) HasStatus(status string) bool {
	return strings.EqualFold(o.Status, status)
}

type StatusTone string

const (
	ToneBlue        StatusTone = "blue"
	ToneAmber       StatusTone = "amber"
	ToneGreen       StatusTone = "green"
	ToneDestructive StatusTone = "destructive"
	ToneMuted       StatusTone = "muted"
)

func ToneForStatus(status string) StatusTone {
	switch strings.ToLower(status) {
	case OrderStatusPending:
		return ToneBlue
	case OrderStatusInTransit:
		return ToneAmber
	case OrderStatusDelivered:
		return ToneGreen
	case OrderStatusCancelled:
		return ToneDestructive
	default:
		return ToneMuted
	}
}

type OrderStats struct {
	Total     int
	Pending   int
	InTransit int
	Delivered int
	Cancelled int
}
