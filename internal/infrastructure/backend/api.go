package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// Backend REST paths
const (
	PathVerifyUser     = "/api/auth/verify-user"
	PathRegister       = "/api/auth/register"
	PathParties        = "/api/parties"
	PathDesigns        = "/api/designs"
	PathItemTypes      = "/api/designs/item-types"
	PathColors         = "/api/designs/colors"
	PathOrders         = "/api/orders"
	PathOrderParties   = "/api/orders/parties"
	PathOrderDesigns   = "/api/orders/designs"
	PathOrderTransport = "/api/orders/transport"
	PathTransport      = "/api/transport"
)

// AuthResult is the answer of the auth endpoints
type AuthResult struct {
	Token string        `json:"token"`
	User  identity.User `json:"user"`
}

// VerifyUser logs in with phone and password
func (c *Client) VerifyUser(ctx context.Context, creds identity.Credentials) (*AuthResult, error) {
	return c.authenticate(ctx, PathVerifyUser, creds)
}

// Register creates an account and logs it in
func (c *Client) Register(ctx context.Context, reg identity.Registration) (*AuthResult, error) {
	return c.authenticate(ctx, PathRegister, reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResult, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return nil, err
	}
	var result AuthResult
	if err := decodeJSON(http.MethodPost, path, resp.Body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &DecodeError{Method: http.MethodPost, Path: path, Err: errMissingToken}
	}
	return &result, nil
}

var errMissingToken = shared.NewDomainError("MISSING_TOKEN", "response carries no token")

// API is the authenticated view of the backend for one bearer token
type API struct {
	client *Client
	token  string
}

// As returns the API authenticated with token
func (c *Client) As(token string) *API {
	return &API{client: c, token: token}
}

// Token returns the bearer token of the API
func (a *API) Token() string {
	return a.token
}

func (a *API) call(ctx context.Context, method, path string, body, out any) error {
	resp, err := a.client.Do(ctx, Request{Method: method, Path: path, Token: a.token, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeJSON(method, path, resp.Body, out)
}

func list[T any](ctx context.Context, a *API, path string) ([]T, error) {
	var items []T
	if err := a.call(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func itemPath(base string, id shared.ID) string {
	return base + "/" + url.PathEscape(id.String())
}

// ============================================
// Reference collections
// ============================================

// ItemTypes lists garment item types
func (a *API) ItemTypes(ctx context.Context) ([]reference.ItemType, error) {
	return list[reference.ItemType](ctx, a, PathItemTypes)
}

// Colors lists colours
func (a *API) Colors(ctx context.Context) ([]reference.Color, error) {
	return list[reference.Color](ctx, a, PathColors)
}

// Parties lists parties
func (a *API) Parties(ctx context.Context) ([]reference.Party, error) {
	return list[reference.Party](ctx, a, PathParties)
}

// Designs lists designs with their colours
func (a *API) Designs(ctx context.Context) ([]reference.Design, error) {
	return list[reference.Design](ctx, a, PathDesigns)
}

// Transports lists transport options
func (a *API) Transports(ctx context.Context) ([]reference.TransportOption, error) {
	return list[reference.TransportOption](ctx, a, PathTransport)
}

// ============================================
// Party / design / transport mutations
// ============================================

// CreateParty creates a party; the backend assigns its party_id code
func (a *API) CreateParty(ctx context.Context, p reference.PartyPayload) (*reference.Party, error) {
	var out reference.Party
	if err := a.call(ctx, http.MethodPost, PathParties, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateParty replaces a party
func (a *API) UpdateParty(ctx context.Context, id shared.ID, p reference.PartyPayload) (*reference.Party, error) {
	var out reference.Party
	if err := a.call(ctx, http.MethodPut, itemPath(PathParties, id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteParty deletes a party
func (a *API) DeleteParty(ctx context.Context, id shared.ID) error {
	return a.call(ctx, http.MethodDelete, itemPath(PathParties, id), nil, nil)
}

// CreateDesign creates a design
func (a *API) CreateDesign(ctx context.Context, p reference.DesignPayload) (*reference.Design, error) {
	var out reference.Design
	if err := a.call(ctx, http.MethodPost, PathDesigns, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDesign replaces a design
func (a *API) UpdateDesign(ctx context.Context, id shared.ID, p reference.DesignPayload) (*reference.Design, error) {
	var out reference.Design
	if err := a.call(ctx, http.MethodPut, itemPath(PathDesigns, id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDesign deletes a design
func (a *API) DeleteDesign(ctx context.Context, id shared.ID) error {
	return a.call(ctx, http.MethodDelete, itemPath(PathDesigns, id), nil, nil)
}

// CreateTransport creates a transport option
func (a *API) CreateTransport(ctx context.Context, p reference.TransportPayload) (*reference.TransportOption, error) {
	var out reference.TransportOption
	if err := a.call(ctx, http.MethodPost, PathTransport, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTransport replaces a transport option
func (a *API) UpdateTransport(ctx context.Context, id shared.ID, p reference.TransportPayload) (*reference.TransportOption, error) {
	var out reference.TransportOption
	if err := a.call(ctx, http.MethodPut, itemPath(PathTransport, id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTransport deletes a transport option
func (a *API) DeleteTransport(ctx context.Context, id shared.ID) error {
	return a.call(ctx, http.MethodDelete, itemPath(PathTransport, id), nil, nil)
}

// ============================================
// Orders
// ============================================

// Orders lists every order with items and remarks. Records are checked at
// the boundary: a malformed record fails the call.
func (a *API) Orders(ctx context.Context) ([]order.Order, error) {
	resp, err := a.client.Do(ctx, Request{Method: http.MethodGet, Path: PathOrders, Token: a.token})
	if err != nil {
		return nil, err
	}
	return order.DecodeOrders(resp.Body)
}

// CreateOrder submits a new order
func (a *API) CreateOrder(ctx context.Context, p order.Payload) (*order.Order, error) {
	return a.writeOrder(ctx, http.MethodPost, PathOrders, p)
}

// UpdateOrder replaces an order. p must be the complete order.
func (a *API) UpdateOrder(ctx context.Context, id shared.ID, p order.Payload) (*order.Order, error) {
	return a.writeOrder(ctx, http.MethodPut, itemPath(PathOrders, id), p)
}

// DeleteOrder deletes an order
func (a *API) DeleteOrder(ctx context.Context, id shared.ID) error {
	return a.call(ctx, http.MethodDelete, itemPath(PathOrders, id), nil, nil)
}

// writeOrder sends p and decodes the stored order when the backend echoes
// it, either bare or under an "order" key. It returns nil when it does not.
func (a *API) writeOrder(ctx context.Context, method, path string, p order.Payload) (*order.Order, error) {
	resp, err := a.client.Do(ctx, Request{Method: method, Path: path, Token: a.token, Body: p})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		OrderNumber *string         `json:"order_number"`
		Order       json.RawMessage `json:"order"`
	}
	if err := decodeJSON(method, path, resp.Body, &envelope); err != nil {
		return nil, err
	}
	switch {
	case envelope.OrderNumber != nil:
		return order.DecodeOrder(resp.Body)
	case len(envelope.Order) > 0 && string(envelope.Order) != "null":
		return order.DecodeOrder(envelope.Order)
	}
	return nil, nil
}

// OrderParties lists the parties offered on the order form
func (a *API) OrderParties(ctx context.Context) ([]reference.Party, error) {
	return list[reference.Party](ctx, a, PathOrderParties)
}

// OrderDesigns lists the designs offered on the order form
func (a *API) OrderDesigns(ctx context.Context) ([]reference.Design, error) {
	return list[reference.Design](ctx, a, PathOrderDesigns)
}

// OrderTransports lists the transport options offered on the order form
func (a *API) OrderTransports(ctx context.Context) ([]reference.TransportOption, error) {
	return list[reference.TransportOption](ctx, a, PathOrderTransport)
}
