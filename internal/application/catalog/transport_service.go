package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// TransportService handles transport options
type TransportService struct {
	connect   Connector
	refresher *Refresher
	logger    *zap.Logger
}

// NewTransportService creates a new TransportService
func NewTransportService(connect Connector, refresher *Refresher, logger *zap.Logger) *TransportService {
	return &TransportService{connect: connect, refresher: refresher, logger: logger}
}

// List returns every transport option
func (s *TransportService) List(ctx context.Context, sess *identity.Session) ([]reference.TransportOption, error) {
	options, err := s.connect(sess.BackendToken).Transports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transport options: %w", err)
	}
	return options, nil
}

// Create creates a transport option
func (s *TransportService) Create(ctx context.Context, sess *identity.Session, p reference.TransportPayload) (*reference.TransportOption, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	option, err := s.connect(sess.BackendToken).CreateTransport(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport option: %w", err)
	}
	s.refresher.Refresh(ctx, sess, reference.ResourceTransports)
	return option, nil
}

// Update replaces a transport option
func (s *TransportService) Update(ctx context.Context, sess *identity.Session, id shared.ID, p reference.TransportPayload) (*reference.TransportOption, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	option, err := s.connect(sess.BackendToken).UpdateTransport(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update transport option %s: %w", id, err)
	}
	s.refresher.Refresh(ctx, sess, reference.ResourceTransports)
	return option, nil
}

// Delete removes a transport option
func (s *TransportService) Delete(ctx context.Context, sess *identity.Session, id shared.ID) error {
	if err := s.connect(sess.BackendToken).DeleteTransport(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transport option %s: %w", id, err)
	}
	s.logger.Info("Transport option deleted", zap.String("id", id.String()))
	s.refresher.Refresh(ctx, sess, reference.ResourceTransports)
	return nil
}
