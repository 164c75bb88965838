package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderTypePickup     = "pickup"
	OrderTypeDelivery   = "delivery"
	OrderTypeWithdrawal = "withdrawal"
	OrderTypeTransfer   = "transfer"
)

// Estados de la orden.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusReady      = "ready"
	OrderStatusInTransit  = "in_transit"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Prioridades.
const (
	OrderPriorityLow    = "low"
	OrderPriorityNormal = "normal"
	OrderPriorityHigh   = "high"
	OrderPriorityUrgent = "urgent"
)

// ValidOrderType indica si t es uno de los tipos de orden conocidos.
func ValidOrderType(t string) bool {
	switch t {
	case OrderTypePickup, OrderTypeDelivery, OrderTypeWithdrawal, OrderTypeTransfer:
		return true
	}
	return false
}

// Order representa una orden logística. OrderNumber (ORD-000001) lo asigna la base.
type Order struct {
	ID              string
	OrderNumber     string
	OrderType       string
	Status          string
	Priority        string
	ClientID        string
	PickupAddress   string
	DeliveryAddress string
	RequestedDate   time.Time
	ScheduledDate   *time.Time
	CompletedDate   *time.Time
	Description     string
	Notes           string
	TotalWeight     decimal.Decimal
	TotalVolume     decimal.Decimal
	CreatedBy       string
	AssignedTo      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOverdue indica si la orden está atrasada respecto a la fecha agendada.
func (o *Order) IsOverdue(now time.Time) bool {
	if o.ScheduledDate == nil {
		return false
	}
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled {
		return false
	}
	return now.After(*o.ScheduledDate)
}

// orderTransitions estados alcanzables desde cada estado; completed y cancelled son finales.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusInTransit, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusInTransit:  {OrderStatusCompleted, OrderStatusCancelled},
}

// CanTransitionTo indica si la orden puede pasar de su estado actual a next.
func (o *Order) CanTransitionTo(next string) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// OrderStatusChange entrada del historial de estados de una orden.
type OrderStatusChange struct {
	ID         string
	OrderID    string
	FromStatus string
	Status     string
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
}
