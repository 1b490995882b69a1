package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
)

// PartyService handles party operations
type PartyService struct {
	connect   Connector
	refresher *Refresher
	logger    *zap.Logger
}

// NewPartyService creates a new PartyService
func NewPartyService(connect Connector, refresher *Refresher, logger *zap.Logger) *PartyService {
	return &PartyService{connect: connect, refresher: refresher, logger: logger}
}

// List returns every party
func (s *PartyService) List(ctx context.Context, sess *identity.Session) ([]reference.Party, error) {
	parties, err := s.connect(sess.BackendToken).Parties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// Create creates a party. The backend assigns the party code.
func (s *PartyService) Create(ctx context.Context, sess *identity.Session, p reference.PartyPayload) (*reference.Party, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	party, err := s.connect(sess.BackendToken).CreateParty(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}
	logger.Enrich(ctx, s.logger).Info("Party created", zap.String("party_id", party.PartyID))
	s.refresher.Refresh(ctx, sess, reference.ResourceParties)
	return party, nil
}

// Update replaces a party
func (s *PartyService) Update(ctx context.Context, sess *identity.Session, id shared.ID, p reference.PartyPayload) (*reference.Party, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	party, err := s.connect(sess.BackendToken).UpdateParty(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update party %s: %w", id, err)
	}
	s.refresher.Refresh(ctx, sess, reference.ResourceParties)
	return party, nil
}

// Delete removes a party
func (s *PartyService) Delete(ctx context.Context, sess *identity.Session, id shared.ID) error {
	if err := s.connect(sess.BackendToken).DeleteParty(ctx, id); err != nil {
		return fmt.Errorf("failed to delete party %s: %w", id, err)
	}
	logger.Enrich(ctx, s.logger).Info("Party deleted", zap.String("id", id.String()))
	s.refresher.Refresh(ctx, sess, reference.ResourceParties)
	return nil
}
