package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/platebooks/backend/internal/domain/order"
)

// CreateOrderRequest represents a request to create a processing order
type CreateOrderRequest struct {
	CustomerID      uuid.UUID       `json:"customer_id" binding:"required"`
	ItemDescription string          `json:"item_description" binding:"required,min=1,max=255"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	PricingUnit     string          `json:"pricing_unit" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
	OrderDate       time.Time       `json:"order_date" binding:"required"`
	InHouseSteps    []string        `json:"in_house_steps"`
	OutsourcedSteps []string        `json:"outsourced_steps"`
	Notes           string          `json:"notes" binding:"max=500"`
}

// OrderResponse represents a processing order in API responses
type OrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	ItemDescription string          `json:"item_description"`
	Quantity        decimal.Decimal `json:"quantity"`
	PricingUnit     order.PricingUnit `json:"pricing_unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ReceivedAmount  decimal.Decimal `json:"received_amount"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	Status          order.Status    `json:"status"`
	OrderDate       time.Time       `json:"order_date"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	InHouseSteps    []string        `json:"in_house_steps"`
	OutsourcedSteps []string        `json:"outsourced_steps"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its response
func ToOrderResponse(o *order.ProcessingOrder) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		ItemDescription: o.ItemDescription,
		Quantity:        o.Quantity,
		PricingUnit:     o.PricingUnit,
		UnitPrice:       o.UnitPrice,
		TotalAmount:     o.TotalAmount,
		ReceivedAmount:  o.ReceivedAmount,
		Outstanding:     o.OutstandingAmount(),
		Status:          o.Status,
		OrderDate:       o.OrderDate,
		CompletedAt:     o.CompletedAt,
		DeliveredAt:     o.DeliveredAt,
		InHouseSteps:    o.InHouseSteps,
		OutsourcedSteps: o.OutsourcedSteps,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
