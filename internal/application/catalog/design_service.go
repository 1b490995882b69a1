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

// DesignService handles designs and the read-only item types and colours
type DesignService struct {
	connect   Connector
	refresher *Refresher
	logger    *zap.Logger
}

// NewDesignService creates a new DesignService
func NewDesignService(connect Connector, refresher *Refresher, logger *zap.Logger) *DesignService {
	return &DesignService{connect: connect, refresher: refresher, logger: logger}
}

// List returns every design with its colours
func (s *DesignService) List(ctx context.Context, sess *identity.Session) ([]reference.Design, error) {
	designs, err := s.connect(sess.BackendToken).Designs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	return designs, nil
}

// ItemTypes returns the garment categories
func (s *DesignService) ItemTypes(ctx context.Context, sess *identity.Session) ([]reference.ItemType, error) {
	types, err := s.connect(sess.BackendToken).ItemTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list item types: %w", err)
	}
	return types, nil
}

// Colors returns every colour
func (s *DesignService) Colors(ctx context.Context, sess *identity.Session) ([]reference.Color, error) {
	colors, err := s.connect(sess.BackendToken).Colors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	return colors, nil
}

// GroupedColors returns the colours grouped by family for the design form
func (s *DesignService) GroupedColors(ctx context.Context, sess *identity.Session) ([]reference.ColorFamily, error) {
	colors, err := s.Colors(ctx, sess)
	if err != nil {
		return nil, err
	}
	return reference.GroupColorsByFamily(colors), nil
}

// Create creates a design
func (s *DesignService) Create(ctx context.Context, sess *identity.Session, p reference.DesignPayload) (*reference.Design, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	design, err := s.connect(sess.BackendToken).CreateDesign(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create design: %w", err)
	}
	logger.Enrich(ctx, s.logger).Info("Design created",
		zap.String("design_number", p.DesignNumber),
		zap.Int("colors", len(p.ColorIDs)))
	s.refresher.Refresh(ctx, sess, reference.ResourceDesigns)
	return design, nil
}

// Update replaces a design
func (s *DesignService) Update(ctx context.Context, sess *identity.Session, id shared.ID, p reference.DesignPayload) (*reference.Design, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	design, err := s.connect(sess.BackendToken).UpdateDesign(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update design %s: %w", id, err)
	}
	s.refresher.Refresh(ctx, sess, reference.ResourceDesigns)
	return design, nil
}

// Delete removes a design
func (s *DesignService) Delete(ctx context.Context, sess *identity.Session, id shared.ID) error {
	if err := s.connect(sess.BackendToken).DeleteDesign(ctx, id); err != nil {
		return fmt.Errorf("failed to delete design %s: %w", id, err)
	}
	logger.Enrich(ctx, s.logger).Info("Design deleted", zap.String("id", id.String()))
	s.refresher.Refresh(ctx, sess, reference.ResourceDesigns)
	return nil
}
