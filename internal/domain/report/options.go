package report

import (
	"sort"
	"strings"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
)

// Options lists the distinct values present in a set of orders, used to
// populate the report filter pickers.
type Options struct {
	Parties    []string       `json:"parties"`
	Designs    []string       `json:"designs"`
	Colors     []string       `json:"colors"`
	Transports []string       `json:"transports"`
	Sizes      []order.Size   `json:"sizes"`
	Statuses   []order.Status `json:"statuses"`
}

// DistinctValues collects filter options from orders. Text values are
// de-duplicated case-insensitively (first spelling wins) and sorted; sizes
// follow catalog order.
func DistinctValues(orders []order.Order) Options {
	parties := newValueSet()
	designs := newValueSet()
	colors := newValueSet()
	transports := newValueSet()
	sizes := make(map[order.Size]struct{})

	for i := range orders {
		o := &orders[i]
		parties.add(o.PartyName)
		transports.add(o.Transport)
		for _, it := range o.Items {
			designs.add(it.DesignNumber)
			colors.add(it.Color)
			for _, sq := range it.SizesQuantities {
				sizes[sq.Size] = struct{}{}
			}
		}
	}

	opts := Options{
		Parties:    parties.sorted(),
		Designs:    designs.sorted(),
		Colors:     colors.sorted(),
		Transports: transports.sorted(),
		Sizes:      make([]order.Size, 0, len(sizes)),
		Statuses:   order.AllStatuses(),
	}
	for _, s := range order.Sizes() {
		if _, ok := sizes[s]; ok {
			opts.Sizes = append(opts.Sizes, s)
		}
	}
	return opts
}

type valueSet struct {
	seen   map[string]struct{}
	values []string
}

func newValueSet() *valueSet {
	return &valueSet{seen: make(map[string]struct{})}
}

func (v *valueSet) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	key := strings.ToLower(s)
	if _, ok := v.seen[key]; ok {
		return
	}
	v.seen[key] = struct{}{}
	v.values = append(v.values, s)
}

func (v *valueSet) sorted() []string {
	out := append([]string{}, v.values...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
