package testutil

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// RandomOrders returns n well-formed orders dated in October 2026. The same
// seed yields the same orders.
func RandomOrders(seed uint64, n int) []order.Order {
	f := gofakeit.New(seed)
	statuses := order.AllStatuses()
	sizes := order.Sizes()
	parties := []string{"Sharma Textiles", "Gupta Traders", "Kumar Garments", "Mehta & Sons"}
	colors := []string{"Navy", "Maroon", "Ivory", "Black"}
	month := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	orders := make([]order.Order, 0, n)
	for i := range n {
		placed := month.AddDate(0, 0, f.Number(0, 30))
		o := order.Order{
			ID:           shared.ID(fmt.Sprintf("o-%d", i+1)),
			OrderNumber:  fmt.Sprintf("ORD-%04d", i+1),
			PartyName:    parties[f.Number(0, len(parties)-1)],
			DateOfOrder:  order.NewDate(placed),
			Status:       statuses[f.Number(0, len(statuses)-1)],
			Transport:    f.RandomString([]string{"VRL", "Gati", ""}),
			CreatedAt:    placed.Format(time.RFC3339),
			UpdatedAt:    placed.Format(time.RFC3339),
			OrderRemarks: []order.Remark{},
		}
		if f.Bool() {
			o.Remarks = f.Sentence(4)
		}
		for j := f.Number(1, 3); j > 0; j-- {
			item := order.Item{
				DesignNumber:    fmt.Sprintf("D-%d", f.Number(100, 110)),
				Color:           colors[f.Number(0, len(colors)-1)],
				SizesQuantities: []order.SizeQuantity{},
			}
			start := f.Number(0, len(sizes)-1)
			for k := start; k < len(sizes) && k < start+2; k++ {
				item.SizesQuantities = append(item.SizesQuantities, order.SizeQuantity{
					Size:     sizes[k],
					Quantity: f.Number(1, 40),
				})
			}
			o.Items = append(o.Items, item)
		}
		orders = append(orders, o)
	}
	return orders
}
