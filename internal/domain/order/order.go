package order

import (
	"strings"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// Remark is a free-text note attached to an order, independent of its items
type Remark struct {
	ID        shared.ID `json:"id,omitempty"`
	Remark    string    `json:"remark"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// Order is a customer order as held by the backend. Orders are never mutated
// locally except to build a full-replace update payload.
type Order struct {
	ID                   shared.ID `json:"id"`
	OrderNumber          string    `json:"order_number"`
	PartyName            string    `json:"party_name"`
	DateOfOrder          Date      `json:"date_of_order"`
	ExpectedDeliveryDate Date      `json:"expected_delivery_date"`
	Transport            string    `json:"transport"`
	Remarks              string    `json:"remarks"`
	Status               Status    `json:"status"`
	CreatedAt            string    `json:"created_at"`
	UpdatedAt            string    `json:"updated_at"`
	Items                []Item    `json:"order_items"`
	OrderRemarks         []Remark  `json:"order_remarks"`
}

// TotalQuantity sums every quantity of every item
func (o *Order) TotalQuantity() int {
	total := 0
	for i := range o.Items {
		total += o.Items[i].TotalQuantity()
	}
	return total
}

// HasRemarks reports whether the general remarks field carries text
func (o *Order) HasRemarks() bool {
	return strings.TrimSpace(o.Remarks) != ""
}

// HasOrderRemarks reports whether at least one order remark is attached
func (o *Order) HasOrderRemarks() bool {
	return len(o.OrderRemarks) > 0
}

// RemarkTexts returns the text of every order remark in order
func (o *Order) RemarkTexts() []string {
	texts := make([]string, 0, len(o.OrderRemarks))
	for _, r := range o.OrderRemarks {
		texts = append(texts, r.Remark)
	}
	return texts
}

// ToPayload builds a full-replace payload that carries every field of the
// order forward. Update calls always send the complete order.
func (o *Order) ToPayload() Payload {
	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = Item{
			DesignNumber:    it.DesignNumber,
			Color:           it.Color,
			SizesQuantities: append([]SizeQuantity(nil), it.SizesQuantities...),
		}
	}
	return Payload{
		PartyName:            o.PartyName,
		DateOfOrder:          o.DateOfOrder,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Transport:            o.Transport,
		Remarks:              o.Remarks,
		Status:               o.Status,
		OrderItems:           items,
		OrderRemarks:         o.RemarkTexts(),
	}
}

// CompletedPayload returns the full payload with the status set to completed
func (o *Order) CompletedPayload() (Payload, error) {
	if o.ID.IsZero() {
		return Payload{}, shared.NewDomainError("INVALID_ORDER", "Order has no id")
	}
	if o.Status == StatusCompleted {
		return Payload{}, shared.NewDomainError("INVALID_STATE", "Order "+o.OrderNumber+" is already completed")
	}
	p := o.ToPayload()
	p.Status = StatusCompleted
	return p, nil
}
