package order

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// DecodeOrders parses a backend order collection and checks every record.
// A malformed record fails the whole decode with a DomainError naming it.
func DecodeOrders(data []byte) ([]Order, error) {
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, shared.NewDomainError("INVALID_ORDER_PAYLOAD", "Malformed order list: "+err.Error())
	}
	for i := range orders {
		if err := orders[i].check(); err != nil {
			return nil, err
		}
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// DecodeOrder parses and checks a single backend order
func DecodeOrder(data []byte) (*Order, error) {
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, shared.NewDomainError("INVALID_ORDER_PAYLOAD", "Malformed order: "+err.Error())
	}
	if err := o.check(); err != nil {
		return nil, err
	}
	return &o, nil
}

// check canonicalizes wire values and rejects records the rest of the
// system cannot reason about.
func (o *Order) check() error {
	label := o.OrderNumber
	if label == "" {
		label = "id " + o.ID.String()
	}
	if strings.TrimSpace(o.OrderNumber) == "" {
		return invalidOrder(label, "missing order number")
	}

	status, err := ParseStatus(o.Status.String())
	if err != nil {
		return invalidOrder(label, fmt.Sprintf("unknown status %q", o.Status))
	}
	o.Status = status

	for i := range o.Items {
		item := &o.Items[i]
		if item.SizesQuantities == nil {
			item.SizesQuantities = []SizeQuantity{}
		}
		for j := range item.SizesQuantities {
			size, err := ParseSize(item.SizesQuantities[j].Size.String())
			if err != nil {
				return invalidOrder(label, fmt.Sprintf("unknown size %q", item.SizesQuantities[j].Size))
			}
			item.SizesQuantities[j].Size = size
		}
		if err := item.validateSizes(); err != nil {
			return invalidOrder(label, err.Error())
		}
	}
	if o.Items == nil {
		o.Items = []Item{}
	}
	if o.OrderRemarks == nil {
		o.OrderRemarks = []Remark{}
	}
	return nil
}

func invalidOrder(label, reason string) error {
	return shared.NewDomainError("INVALID_ORDER_PAYLOAD", fmt.Sprintf("Order %s: %s", label, reason))
}
