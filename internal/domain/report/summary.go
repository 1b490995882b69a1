package report

import (
	"slices"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
)

// DesignTotal is the summed quantity of one design number
type DesignTotal struct {
	DesignNumber string `json:"design_number"`
	Quantity     int    `json:"quantity"`
}

// Summary aggregates a set of orders
type Summary struct {
	TotalOrders   int                  `json:"total_orders"`
	TotalQuantity int                  `json:"total_quantity"`
	StatusCounts  map[order.Status]int `json:"status_counts"`
	DesignTotals  map[string]int       `json:"design_totals"`

	// designOrder records design numbers in first-encounter order
	designOrder []string
}

// Summarize computes order count, total quantity, per-status counts (only
// observed statuses) and per-design quantity totals across all orders and
// colours.
func Summarize(orders []order.Order) Summary {
	s := Summary{
		TotalOrders:  len(orders),
		StatusCounts: make(map[order.Status]int),
		DesignTotals: make(map[string]int),
	}
	for i := range orders {
		o := &orders[i]
		s.StatusCounts[o.Status]++
		for j := range o.Items {
			it := &o.Items[j]
			qty := it.TotalQuantity()
			s.TotalQuantity += qty
			if _, seen := s.DesignTotals[it.DesignNumber]; !seen {
				s.designOrder = append(s.designOrder, it.DesignNumber)
			}
			s.DesignTotals[it.DesignNumber] += qty
		}
	}
	return s
}

// SortedDesignTotals returns design totals by descending quantity. Ties keep
// the order in which designs were first encountered.
func (s *Summary) SortedDesignTotals() []DesignTotal {
	totals := make([]DesignTotal, 0, len(s.DesignTotals))
	for _, d := range s.designOrder {
		totals = append(totals, DesignTotal{DesignNumber: d, Quantity: s.DesignTotals[d]})
	}
	slices.SortStableFunc(totals, func(a, b DesignTotal) int {
		return b.Quantity - a.Quantity
	})
	return totals
}

// StatusCount returns the count for a status, zero when unobserved
func (s *Summary) StatusCount(status order.Status) int {
	return s.StatusCounts[status]
}
