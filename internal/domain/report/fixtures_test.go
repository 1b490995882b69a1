package report

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// randomOrders builds n orders with a mix of shapes: items with and without
// sizes, remarks-only orders and orders with blank fields.
func randomOrders(t *testing.T, seed uint64, n int) []order.Order {
	t.Helper()
	f := gofakeit.New(seed)
	statuses := order.AllStatuses()
	sizes := order.Sizes()
	parties := []string{"Shree Textiles", "Kumar Garments", "Anand Fabrics", "Mehta & Sons", f.Company()}
	transports := []string{"VRL Logistics", "Gati", "Safexpress", ""}
	colors := []string{"Navy", "Maroon", "Ivory", "Black", "Olive"}

	orders := make([]order.Order, 0, n)
	for i := 0; i < n; i++ {
		o := order.Order{
			ID:          shared.ID(fmt.Sprint(i + 1)),
			OrderNumber: fmt.Sprintf("ORD-%04d", i+1),
			PartyName:   parties[f.Number(0, len(parties)-1)],
			DateOfOrder: order.NewDate(f.Date()),
			Transport:   transports[f.Number(0, len(transports)-1)],
			Status:      statuses[f.Number(0, len(statuses)-1)],
			CreatedAt:   f.Date().Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt:   f.Date().Format("2006-01-02T15:04:05Z07:00"),
		}
		if f.Bool() {
			o.Remarks = f.Sentence(5)
		}
		if f.Bool() {
			o.ExpectedDeliveryDate = order.NewDate(f.Date())
		}

		for j := f.Number(0, 4); j > 0; j-- {
			item := order.Item{
				DesignNumber: fmt.Sprintf("D-%d", f.Number(100, 120)),
				Color:        colors[f.Number(0, len(colors)-1)],
			}
			start, count := f.Number(0, len(sizes)-1), f.Number(0, 3)
			for k := start; k < len(sizes) && k < start+count; k++ {
				item.SizesQuantities = append(item.SizesQuantities, order.SizeQuantity{
					Size:     sizes[k],
					Quantity: f.Number(0, 50),
				})
			}
			o.Items = append(o.Items, item)
		}

		for j := f.Number(0, 2); j > 0; j-- {
			o.OrderRemarks = append(o.OrderRemarks, order.Remark{Remark: f.Word()})
		}
		orders = append(orders, o)
	}
	return orders
}
