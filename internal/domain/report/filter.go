package report

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// RemarkPresence selects orders by whether a remark field is filled in
type RemarkPresence string

const (
	RemarkAny RemarkPresence = ""
	RemarkYes RemarkPresence = "yes"
	RemarkNo  RemarkPresence = "no"
)

// IsValid reports whether p is a known presence selector
func (p RemarkPresence) IsValid() bool {
	return p == RemarkAny || p == RemarkYes || p == RemarkNo
}

// FilterSet holds the selected values of every report dimension. Dimensions
// combine with AND; values inside a multi-select dimension combine with OR.
// An empty dimension does not filter.
type FilterSet struct {
	DateFrom        order.Date     `json:"date_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo          order.Date     `json:"date_to,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Parties         []string       `json:"parties,omitempty"`
	Status          order.Status   `json:"status,omitempty" validate:"omitempty,oneof=pending processing completed cancelled"`
	Designs         []string       `json:"designs,omitempty"`
	Sizes           []order.Size   `json:"sizes,omitempty"`
	Colors          []string       `json:"colors,omitempty"`
	Transports      []string       `json:"transports,omitempty"`
	HasRemarks      RemarkPresence `json:"has_remarks,omitempty" validate:"omitempty,oneof=yes no"`
	HasOrderRemarks RemarkPresence `json:"has_order_remarks,omitempty" validate:"omitempty,oneof=yes no"`
}

// Normalize trims selections, drops blank entries and canonicalizes sizes
// and status.
func (f *FilterSet) Normalize() {
	f.DateFrom = order.NormalizeDate(strings.TrimSpace(f.DateFrom.String()))
	f.DateTo = order.NormalizeDate(strings.TrimSpace(f.DateTo.String()))
	f.Parties = compact(f.Parties)
	f.Designs = compact(f.Designs)
	f.Colors = compact(f.Colors)
	f.Transports = compact(f.Transports)
	if f.Status != "" {
		if s, err := order.ParseStatus(f.Status.String()); err == nil {
			f.Status = s
		}
	}
	f.HasRemarks = RemarkPresence(strings.ToLower(strings.TrimSpace(string(f.HasRemarks))))
	f.HasOrderRemarks = RemarkPresence(strings.ToLower(strings.TrimSpace(string(f.HasOrderRemarks))))

	sizes := make([]order.Size, 0, len(f.Sizes))
	for _, s := range f.Sizes {
		if parsed, err := order.ParseSize(s.String()); err == nil {
			sizes = append(sizes, parsed)
		} else if strings.TrimSpace(s.String()) != "" {
			sizes = append(sizes, s)
		}
	}
	f.Sizes = sizes
}

// Validate checks the filter set
func (f *FilterSet) Validate() error {
	if err := validate.Struct(f); err != nil {
		return shared.NewDomainError("INVALID_FILTER", err.Error())
	}
	for _, s := range f.Sizes {
		if !s.IsValid() {
			return shared.NewDomainError("INVALID_FILTER", "Unknown size: "+s.String())
		}
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return shared.NewDomainError("INVALID_FILTER", "date_from must not be after date_to")
	}
	return nil
}

// IsEmpty reports whether no dimension is set
func (f *FilterSet) IsEmpty() bool {
	return f.DateFrom == "" && f.DateTo == "" &&
		len(f.Parties) == 0 && f.Status == "" &&
		len(f.Designs) == 0 && len(f.Sizes) == 0 &&
		len(f.Colors) == 0 && len(f.Transports) == 0 &&
		f.HasRemarks == RemarkAny && f.HasOrderRemarks == RemarkAny
}

// Filter returns the orders that satisfy every set dimension of f, in their
// original order. The input slice is not modified.
func Filter(orders []order.Order, f FilterSet) []order.Order {
	m := newMatcher(f)
	out := make([]order.Order, 0, len(orders))
	for i := range orders {
		if m.match(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}

// matcher holds the case-folded selections of a filter set. It is not safe
// for concurrent use.
type matcher struct {
	f          FilterSet
	fold       cases.Caser
	parties    []string
	designs    []string
	colors     []string
	transports []string
	sizes      map[order.Size]struct{}
}

func newMatcher(f FilterSet) *matcher {
	m := &matcher{f: f, fold: cases.Fold()}
	m.parties = m.foldAll(f.Parties)
	m.designs = m.foldAll(f.Designs)
	m.colors = m.foldAll(f.Colors)
	m.transports = m.foldAll(f.Transports)
	if len(f.Sizes) > 0 {
		m.sizes = make(map[order.Size]struct{}, len(f.Sizes))
		for _, s := range f.Sizes {
			m.sizes[s] = struct{}{}
		}
	}
	return m
}

func (m *matcher) match(o *order.Order) bool {
	if m.f.DateFrom != "" && o.DateOfOrder < m.f.DateFrom {
		return false
	}
	if m.f.DateTo != "" && o.DateOfOrder > m.f.DateTo {
		return false
	}
	if len(m.parties) > 0 && !m.containsAny(o.PartyName, m.parties) {
		return false
	}
	if m.f.Status != "" && o.Status != m.f.Status {
		return false
	}
	if len(m.designs) > 0 && !m.anyItem(o, func(it *order.Item) bool { return m.containsAny(it.DesignNumber, m.designs) }) {
		return false
	}
	if m.sizes != nil && !m.anyItem(o, m.hasSelectedSize) {
		return false
	}
	if len(m.colors) > 0 && !m.anyItem(o, func(it *order.Item) bool { return m.containsAny(it.Color, m.colors) }) {
		return false
	}
	if len(m.transports) > 0 && !m.containsAny(o.Transport, m.transports) {
		return false
	}
	if !presenceMatches(m.f.HasRemarks, o.HasRemarks()) {
		return false
	}
	if !presenceMatches(m.f.HasOrderRemarks, o.HasOrderRemarks()) {
		return false
	}
	return true
}

func (m *matcher) anyItem(o *order.Order, pred func(*order.Item) bool) bool {
	for i := range o.Items {
		if pred(&o.Items[i]) {
			return true
		}
	}
	return false
}

func (m *matcher) hasSelectedSize(it *order.Item) bool {
	for _, sq := range it.SizesQuantities {
		if _, ok := m.sizes[sq.Size]; ok {
			return true
		}
	}
	return false
}

func (m *matcher) containsAny(value string, needles []string) bool {
	folded := m.fold.String(value)
	for _, n := range needles {
		if strings.Contains(folded, n) {
			return true
		}
	}
	return false
}

func (m *matcher) foldAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, m.fold.String(v))
	}
	return out
}

func presenceMatches(want RemarkPresence, has bool) bool {
	switch want {
	case RemarkYes:
		return has
	case RemarkNo:
		return !has
	default:
		return true
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
