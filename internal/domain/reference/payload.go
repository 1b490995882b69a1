package reference

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

var validate = newValidator()

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

// PartyPayload is the create/update body of a party
type PartyPayload struct {
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description,omitempty" validate:"max=1000"`
	Address     string    `json:"address,omitempty" validate:"max=500"`
	City        string    `json:"city,omitempty" validate:"max=100"`
	State       string    `json:"state,omitempty" validate:"max=100"`
	Pincode     string    `json:"pincode,omitempty" validate:"omitempty,numeric,len=6"`
	PhoneNumber string    `json:"phone_number,omitempty" validate:"omitempty,min=10,max=15"`
	GSTNumber   string    `json:"gst_number,omitempty" validate:"omitempty,alphanum,len=15"`
	TransportID shared.ID `json:"default_transport_id,omitempty"`
}

// Validate checks the party payload
func (p *PartyPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.GSTNumber = strings.ToUpper(strings.TrimSpace(p.GSTNumber))
	return validateStruct("INVALID_PARTY", p)
}

// DesignPayload is the create/update body of a design
type DesignPayload struct {
	DesignNumber string      `json:"design_number" validate:"required,max=100"`
	ItemTypeID   shared.ID   `json:"item_type_id" validate:"required"`
	Description  string      `json:"description,omitempty" validate:"max=1000"`
	ColorIDs     []shared.ID `json:"color_ids" validate:"dive,required"`
}

// Validate checks the design payload and drops duplicate colours
func (p *DesignPayload) Validate() error {
	p.DesignNumber = strings.TrimSpace(p.DesignNumber)
	seen := make(map[shared.ID]struct{}, len(p.ColorIDs))
	ids := make([]shared.ID, 0, len(p.ColorIDs))
	for _, id := range p.ColorIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	p.ColorIDs = ids
	return validateStruct("INVALID_DESIGN", p)
}

// TransportPayload is the create/update body of a transport option
type TransportPayload struct {
	Name        string `json:"transport_name" validate:"required,max=255"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

// Validate checks the transport payload
func (p *TransportPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validateStruct("INVALID_TRANSPORT", p)
}

func validateStruct(code string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return shared.NewDomainError(code, err.Error())
	}
	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "len":
		msg = fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		msg = fmt.Sprintf("%s must contain only digits", field)
	case "alphanum":
		msg = fmt.Sprintf("%s must contain only letters and digits", field)
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return shared.NewDomainError(code, msg)
}
