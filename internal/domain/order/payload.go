package order

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Payload is the create/update request body sent to the backend. Updates are
// full replacements: every field is authoritative.
type Payload struct {
	PartyName            string   `json:"party_name" validate:"required,max=255"`
	DateOfOrder          Date     `json:"date_of_order" validate:"required,datetime=2006-01-02"`
	ExpectedDeliveryDate Date     `json:"expected_delivery_date" validate:"omitempty,datetime=2006-01-02"`
	Transport            string   `json:"transport" validate:"max=255"`
	Remarks              string   `json:"remarks"`
	Status               Status   `json:"status" validate:"required,oneof=pending processing completed cancelled"`
	OrderItems           []Item   `json:"order_items" validate:"dive"`
	OrderRemarks         []string `json:"order_remarks"`
}

// Normalize trims text fields, drops blank items, zero-quantity sizes and
// blank remarks, and defaults the status to pending.
func (p *Payload) Normalize() {
	p.PartyName = strings.TrimSpace(p.PartyName)
	p.Transport = strings.TrimSpace(p.Transport)
	p.DateOfOrder = NormalizeDate(strings.TrimSpace(p.DateOfOrder.String()))
	p.ExpectedDeliveryDate = NormalizeDate(strings.TrimSpace(p.ExpectedDeliveryDate.String()))
	if p.Status == "" {
		p.Status = StatusPending
	} else if s, err := ParseStatus(p.Status.String()); err == nil {
		p.Status = s
	}

	items := make([]Item, 0, len(p.OrderItems))
	for _, it := range p.OrderItems {
		it.normalize()
		if it.IsBlank() {
			continue
		}
		items = append(items, it)
	}
	p.OrderItems = items

	remarks := make([]string, 0, len(p.OrderRemarks))
	for _, r := range p.OrderRemarks {
		if r = strings.TrimSpace(r); r != "" {
			remarks = append(remarks, r)
		}
	}
	p.OrderRemarks = remarks
}

// HasContent reports whether the payload carries at least one item with a
// non-zero quantity or one non-blank remark.
func (p *Payload) HasContent() bool {
	for i := range p.OrderItems {
		if p.OrderItems[i].HasQuantity() {
			return true
		}
	}
	for _, r := range p.OrderRemarks {
		if strings.TrimSpace(r) != "" {
			return true
		}
	}
	return false
}

// Validate checks the payload before it is sent. The content rule is checked
// first so that an empty order always reports ErrEmptyOrder.
func (p *Payload) Validate() error {
	if !p.HasContent() {
		return shared.ErrEmptyOrder
	}
	if err := validate.Struct(p); err != nil {
		return translateValidationError(err)
	}
	for i := range p.OrderItems {
		if err := p.OrderItems[i].validateSizes(); err != nil {
			return err
		}
	}
	return nil
}

// translateValidationError turns the first field error into a DomainError
func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return shared.NewDomainError("INVALID_ORDER", err.Error())
	}
	fe := verrs[0]
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "datetime":
		msg = fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field)
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return shared.NewDomainError("INVALID_ORDER", msg)
}
