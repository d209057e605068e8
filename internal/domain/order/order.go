package order

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/platebooks/backend/internal/domain/shared"
	"github.com/platebooks/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PricingUnit represents how a processing order is priced
type PricingUnit string

const (
	PricingUnitPiece       PricingUnit = "PIECE"        // 件
	PricingUnitStrip       PricingUnit = "STRIP"        // 条
	PricingUnitMeter       PricingUnit = "METER"        // 米
	PricingUnitKilogram    PricingUnit = "KILOGRAM"     // 公斤
	PricingUnitSquareMeter PricingUnit = "SQUARE_METER" // 平方米
	PricingUnitBatch       PricingUnit = "BATCH"        // 批
)

// IsValid checks if the pricing unit is valid
func (u PricingUnit) IsValid() bool {
	switch u {
	case PricingUnitPiece, PricingUnitStrip, PricingUnitMeter,
		PricingUnitKilogram, PricingUnitSquareMeter, PricingUnitBatch:
		return true
	}
	return false
}

// Label returns the Chinese display label for the pricing unit
func (u PricingUnit) Label() string {
	switch u {
	case PricingUnitPiece:
		return "件"
	case PricingUnitStrip:
		return "条"
	case PricingUnitMeter:
		return "米"
	case PricingUnitKilogram:
		return "公斤"
	case PricingUnitSquareMeter:
		return "平方米"
	case PricingUnitBatch:
		return "批"
	}
	return string(u)
}

// Status represents the lifecycle status of a processing order
type Status string

const (
	StatusPending    Status = "PENDING"     // Accepted, not yet on the line
	StatusInProgress Status = "IN_PROGRESS" // On the line
	StatusCompleted  Status = "COMPLETED"   // Processing finished
	StatusDelivered  Status = "DELIVERED"   // Handed back to the customer, terminal
)

// IsValid checks if the status is a valid order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDelivered:
		return true
	}
	return false
}

// IsTerminal returns true if the order is in a terminal state
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// CanTransitionTo returns true if the status chain permits the transition.
// The chain is strictly forward: PENDING -> IN_PROGRESS -> COMPLETED -> DELIVERED.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	case StatusCompleted:
		return next == StatusDelivered
	}
	return false
}

// ProcessSteps is a list of process step names stored as JSONB
type ProcessSteps []string

// Value implements driver.Valuer for JSONB storage
func (p ProcessSteps) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval
func (p *ProcessSteps) Scan(value interface{}) error {
	if value == nil {
		*p = ProcessSteps{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ProcessSteps: unsupported type")
	}

	if len(bytes) == 0 {
		*p = ProcessSteps{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// ProcessingOrder represents an oxidation/electroplating processing order.
// TotalAmount is fixed at creation as Quantity x UnitPrice; ReceivedAmount
// starts at zero and only ever grows through ApplyReceipt, driven by the
// allocation engine.
type ProcessingOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_number"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName    string          `gorm:"type:varchar(200);not null" json:"customer_name"`
	ItemDescription string          `gorm:"type:varchar(255);not null" json:"item_description"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"quantity"`
	PricingUnit     PricingUnit     `gorm:"type:varchar(16);not null" json:"pricing_unit"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	InHouseSteps    ProcessSteps    `gorm:"type:jsonb" json:"in_house_steps"`
	OutsourcedSteps ProcessSteps    `gorm:"type:jsonb" json:"outsourced_steps"`
	Status          Status          `gorm:"type:varchar(16);not null;index" json:"status"`
	OrderDate       time.Time       `gorm:"not null;index" json:"order_date"`
	CompletedAt     *time.Time      `json:"completed_at"`
	DeliveredAt     *time.Time      `json:"delivered_at"`
	ReceivedAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"received_amount"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

// NewProcessingOrder creates a new processing order
func NewProcessingOrder(
	orderNumber string,
	customerID uuid.UUID,
	customerName string,
	itemDescription string,
	quantity decimal.Decimal,
	pricingUnit PricingUnit,
	unitPrice valueobject.Money,
	orderDate time.Time,
) (*ProcessingOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if itemDescription == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !pricingUnit.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRICING_UNIT", fmt.Sprintf("Pricing unit %q is not valid", pricingUnit))
	}
	if unitPrice.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price must be positive")
	}

	return &ProcessingOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		ItemDescription:   itemDescription,
		Quantity:          quantity,
		PricingUnit:       pricingUnit,
		UnitPrice:         unitPrice.Amount(),
		TotalAmount:       quantity.Mul(unitPrice.Amount()),
		InHouseSteps:      ProcessSteps{},
		OutsourcedSteps:   ProcessSteps{},
		Status:            StatusPending,
		OrderDate:         orderDate,
		ReceivedAmount:    decimal.Zero,
	}, nil
}

// SetProcessSteps records the in-house and outsourced process step lists
func (o *ProcessingOrder) SetProcessSteps(inHouse, outsourced []string) {
	o.InHouseSteps = inHouse
	o.OutsourcedSteps = outsourced
	o.UpdatedAt = time.Now()
}

// ApplyReceipt records money received against this order. The allocation
// engine is the only caller; over-receipt is rejected here so the invariant
// ReceivedAmount <= TotalAmount can never be broken by any call sequence.
func (o *ProcessingOrder) ApplyReceipt(amount valueobject.Money) error {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Receipt amount must be positive")
	}
	newReceived := o.ReceivedAmount.Add(amount.Amount())
	if newReceived.GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("EXCEEDS_ORDER_TOTAL",
			fmt.Sprintf("Allocation of %s exceeds outstanding amount %s on order %s",
				amount.StringFixed(2), o.OutstandingAmount().StringFixed(2), o.OrderNumber))
	}

	o.ReceivedAmount = newReceived
	o.UpdatedAt = time.Now()
	return nil
}

// OutstandingAmount returns the unpaid remainder of the order total
func (o *ProcessingOrder) OutstandingAmount() decimal.Decimal {
	return o.TotalAmount.Sub(o.ReceivedAmount)
}

// IsFullyReceived returns true when the order has been paid in full
func (o *ProcessingOrder) IsFullyReceived() bool {
	return o.ReceivedAmount.Equal(o.TotalAmount)
}

// StartProcessing moves the order onto the line
func (o *ProcessingOrder) StartProcessing() error {
	return o.transition(StatusInProgress)
}

// Complete marks processing as finished
func (o *ProcessingOrder) Complete(completedAt time.Time) error {
	if err := o.transition(StatusCompleted); err != nil {
		return err
	}
	o.CompletedAt = &completedAt
	return nil
}

// Deliver marks the order as handed back to the customer (terminal)
func (o *ProcessingOrder) Deliver(deliveredAt time.Time) error {
	if err := o.transition(StatusDelivered); err != nil {
		return err
	}
	o.DeliveredAt = &deliveredAt
	return nil
}

func (o *ProcessingOrder) transition(next Status) error {
	if !o.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order %s cannot move from %s to %s", o.OrderNumber, o.Status, next))
	}
	o.Status = next
	o.UpdatedAt = time.Now()
	return nil
}

// AgeDays returns the number of whole days between the order date and asOf.
// Used by the receivable aging report.
func (o *ProcessingOrder) AgeDays(asOf time.Time) int {
	if asOf.Before(o.OrderDate) {
		return 0
	}
	return int(asOf.Sub(o.OrderDate).Hours() / 24)
}

// SetNotes sets the free-text notes
func (o *ProcessingOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}
