// Package order implements the order form workflow: local validation of
// create/update payloads, full-replace updates and the complete action.
package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
)

// Backend is the order part of the backend API for one session
type Backend interface {
	Orders(ctx context.Context) ([]order.Order, error)
	CreateOrder(ctx context.Context, p order.Payload) (*order.Order, error)
	UpdateOrder(ctx context.Context, id shared.ID, p order.Payload) (*order.Order, error)
	DeleteOrder(ctx context.Context, id shared.ID) error
	OrderParties(ctx context.Context) ([]reference.Party, error)
	OrderDesigns(ctx context.Context) ([]reference.Design, error)
	OrderTransports(ctx context.Context) ([]reference.TransportOption, error)
}

// Connector returns the backend authenticated with a session token
type Connector func(token string) Backend

// ErrOrderNotFound is returned when an id is not among the backend's orders
var ErrOrderNotFound = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")

// Options are the pick lists of the order form
type Options struct {
	Parties    []reference.Party           `json:"parties"`
	Designs    []reference.Design          `json:"designs"`
	Transports []reference.TransportOption `json:"transport"`
	Sizes      []order.Size                `json:"sizes"`
	Statuses   []order.Status              `json:"statuses"`
}

// Service handles order operations
type Service struct {
	connect Connector
	logger  *zap.Logger
}

// NewService creates a new order service
func NewService(connect Connector, logger *zap.Logger) *Service {
	return &Service{connect: connect, logger: logger}
}

// List returns every order of the backend. Orders are never cached.
func (s *Service) List(ctx context.Context, sess *identity.Session) ([]order.Order, error) {
	orders, err := s.connect(sess.BackendToken).Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get returns the order with id
func (s *Service) Get(ctx context.Context, sess *identity.Session, id shared.ID) (*order.Order, error) {
	orders, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// Create normalizes and validates p, then creates the order. Invalid
// payloads never reach the backend.
func (s *Service) Create(ctx context.Context, sess *identity.Session, p order.Payload) (*order.Order, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.connect(sess.BackendToken).CreateOrder(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.log(ctx).Info("Order created",
		zap.String("party", p.PartyName),
		zap.Int("items", len(p.OrderItems)))
	return created, nil
}

// Update replaces the order with p. p must carry every field; missing
// fields are cleared by the backend.
func (s *Service) Update(ctx context.Context, sess *identity.Session, id shared.ID, p order.Payload) (*order.Order, error) {
	if id.IsZero() {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order id is required")
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.connect(sess.BackendToken).UpdateOrder(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	s.log(ctx).Info("Order updated", zap.String("order_id", id.String()), zap.String("status", p.Status.String()))
	return updated, nil
}

// Complete marks o completed, resending every other field unchanged
func (s *Service) Complete(ctx context.Context, sess *identity.Session, o *order.Order) (*order.Order, error) {
	p, err := o.CompletedPayload()
	if err != nil {
		return nil, err
	}

	updated, err := s.connect(sess.BackendToken).UpdateOrder(ctx, o.ID, p)
	if err != nil {
		return nil, fmt.Errorf("failed to complete order %s: %w", o.OrderNumber, err)
	}
	s.log(ctx).Info("Order completed", zap.String("order_number", o.OrderNumber))
	return updated, nil
}

// CompleteByID loads the full order and completes it
func (s *Service) CompleteByID(ctx context.Context, sess *identity.Session, id shared.ID) (*order.Order, error) {
	o, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.Complete(ctx, sess, o)
}

// Delete removes the order
func (s *Service) Delete(ctx context.Context, sess *identity.Session, id shared.ID) error {
	if err := s.connect(sess.BackendToken).DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	s.log(ctx).Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

// Options loads the order form pick lists concurrently
func (s *Service) Options(ctx context.Context, sess *identity.Session) (*Options, error) {
	api := s.connect(sess.BackendToken)
	opts := &Options{Sizes: order.Sizes(), Statuses: order.AllStatuses()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		parties, err := api.OrderParties(gctx)
		opts.Parties = parties
		return err
	})
	g.Go(func() error {
		designs, err := api.OrderDesigns(gctx)
		opts.Designs = designs
		return err
	})
	g.Go(func() error {
		transports, err := api.OrderTransports(gctx)
		opts.Transports = transports
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load order options: %w", err)
	}
	return opts, nil
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.Enrich(ctx, s.logger)
}
