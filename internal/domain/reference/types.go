package reference

import "github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"

// ItemType is a garment category (shirt, kurta, ...)
type ItemType struct {
	ID   shared.ID `json:"id"`
	Name string    `json:"name"`
}

// Color is a named colour that belongs to a colour family
type Color struct {
	ID     shared.ID `json:"id"`
	Name   string    `json:"name"`
	Family string    `json:"color_family,omitempty"`
}

// Party is a customer. PartyID is the display code assigned by the backend.
type Party struct {
	ID            shared.ID `json:"id"`
	PartyID       string    `json:"party_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Pincode       string    `json:"pincode,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	GSTNumber     string    `json:"gst_number,omitempty"`
	TransportID   shared.ID `json:"default_transport_id,omitempty"`
	TransportName string    `json:"transport_name,omitempty"`
	CreatedAt     string    `json:"created_at,omitempty"`
	UpdatedAt     string    `json:"updated_at,omitempty"`
}

// Design is a pattern identified by its design number and item type. A
// design is offered in an ordered set of colours.
type Design struct {
	ID           shared.ID `json:"id"`
	DesignNumber string    `json:"design_number"`
	ItemTypeID   shared.ID `json:"item_type_id"`
	ItemTypeName string    `json:"item_type_name,omitempty"`
	Description  string    `json:"description,omitempty"`
	Colors       []Color   `json:"colors"`
	CreatedAt    string    `json:"created_at,omitempty"`
	UpdatedAt    string    `json:"updated_at,omitempty"`
}

// ColorNames returns the names of the design's colours in order
func (d *Design) ColorNames() []string {
	names := make([]string, 0, len(d.Colors))
	for _, c := range d.Colors {
		names = append(names, c.Name)
	}
	return names
}

// TransportOption is a carrier orders can be dispatched with
type TransportOption struct {
	ID          shared.ID `json:"id"`
	Name        string    `json:"transport_name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}
