package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
)

// Export column headers, in output order
const (
	ColOrderNumber      = "Order Number"
	ColPartyName        = "Party Name"
	ColOrderDate        = "Order Date"
	ColExpectedDelivery = "Expected Delivery"
	ColDesignNumber     = "Design Number"
	ColColor            = "Color"
	ColSize             = "Size"
	ColQuantity         = "Quantity"
	ColStatus           = "Status"
	ColTransport        = "Transport"
	ColGeneralRemarks   = "Order Remarks (General)"
	ColSpecificRemarks  = "Order Remarks (Specific)"
	ColCreatedDate      = "Created Date"
	ColUpdatedDate      = "Updated Date"
)

// RemarkSeparator joins the order remarks of the specific-remarks column
const RemarkSeparator = "; "

// Columns returns the export header row
func Columns() []string {
	return []string{
		ColOrderNumber, ColPartyName, ColOrderDate, ColExpectedDelivery,
		ColDesignNumber, ColColor, ColSize, ColQuantity, ColStatus, ColTransport,
		ColGeneralRemarks, ColSpecificRemarks, ColCreatedDate, ColUpdatedDate,
	}
}

// ExportRow is one flattened (order, item, size) line of an export. Item
// and size fields are blank when the order has no items or the item has no
// sizes.
type ExportRow struct {
	OrderNumber      string `json:"order_number"`
	PartyName        string `json:"party_name"`
	OrderDate        string `json:"order_date"`
	ExpectedDelivery string `json:"expected_delivery"`
	DesignNumber     string `json:"design_number"`
	Color            string `json:"color"`
	Size             string `json:"size"`
	Quantity         *int   `json:"quantity"`
	Status           string `json:"status"`
	Transport        string `json:"transport"`
	GeneralRemarks   string `json:"general_remarks"`
	SpecificRemarks  string `json:"specific_remarks"`
	CreatedDate      string `json:"created_date"`
	UpdatedDate      string `json:"updated_date"`
}

// Values renders the row in Columns order
func (r *ExportRow) Values() []string {
	qty := ""
	if r.Quantity != nil {
		qty = strconv.Itoa(*r.Quantity)
	}
	return []string{
		r.OrderNumber, r.PartyName, r.OrderDate, r.ExpectedDelivery,
		r.DesignNumber, r.Color, r.Size, qty, r.Status, r.Transport,
		r.GeneralRemarks, r.SpecificRemarks, r.CreatedDate, r.UpdatedDate,
	}
}

// ToExportRows flattens orders into one row per (order, item, size). An item
// without sizes yields one row with blank size and quantity; an order without
// items yields one row with blank item fields. Every order contributes at
// least one row.
func ToExportRows(orders []order.Order) []ExportRow {
	rows := make([]ExportRow, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		base := orderRow(o)

		if len(o.Items) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, it := range o.Items {
			itemRow := base
			itemRow.DesignNumber = it.DesignNumber
			itemRow.Color = it.Color

			if len(it.SizesQuantities) == 0 {
				rows = append(rows, itemRow)
				continue
			}
			for _, sq := range it.SizesQuantities {
				row := itemRow
				qty := sq.Quantity
				row.Size = sq.Size.String()
				row.Quantity = &qty
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func orderRow(o *order.Order) ExportRow {
	return ExportRow{
		OrderNumber:      o.OrderNumber,
		PartyName:        o.PartyName,
		OrderDate:        o.DateOfOrder.String(),
		ExpectedDelivery: o.ExpectedDeliveryDate.String(),
		Status:           o.Status.String(),
		Transport:        o.Transport,
		GeneralRemarks:   o.Remarks,
		SpecificRemarks:  strings.Join(o.RemarkTexts(), RemarkSeparator),
		CreatedDate:      displayDate(o.CreatedAt),
		UpdatedDate:      displayDate(o.UpdatedAt),
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05",
	order.DateLayout,
}

// displayDate renders a backend timestamp as a calendar date. Unparseable
// values are passed through unchanged.
func displayDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(order.DateLayout)
		}
	}
	return v
}
