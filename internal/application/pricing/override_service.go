package pricingapp

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soleneo/backend/internal/domain/catalog"
	"github.com/soleneo/backend/internal/domain/pricing"
	"github.com/soleneo/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// lockStripes must be a power of two for the mask below.
const lockStripes = 64

// OverrideService handles admin edits of price overrides. Writes to the
// same (customer, variant) pair are serialized through a striped mutex
// so concurrent admin edits cannot interleave a read-modify-write.
type OverrideService struct {
	overrideRepo pricing.OverrideRepository
	variantRepo  catalog.VariantRepository
	locks        [lockStripes]sync.Mutex
	logger       *zap.Logger
}

// NewOverrideService creates a new OverrideService
func NewOverrideService(overrideRepo pricing.OverrideRepository, variantRepo catalog.VariantRepository, logger *zap.Logger) *OverrideService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverrideService{
		overrideRepo: overrideRepo,
		variantRepo:  variantRepo,
		logger:       logger,
	}
}

// UpsertOverrideRequest carries the admin-provided override rule.
type UpsertOverrideRequest struct {
	CustomerID uuid.UUID
	VariantID  uuid.UUID
	Type       pricing.OverrideType
	Value      decimal.Decimal
	StartDate  *time.Time
	EndDate    *time.Time
}

// Upsert creates the override for the (customer, variant) pair or
// replaces its rule when one already exists.
func (s *OverrideService) Upsert(ctx context.Context, req UpsertOverrideRequest) (*pricing.PriceOverride, error) {
	// The variant must exist before a rule can point at it
	if _, err := s.variantRepo.FindByID(ctx, req.VariantID); err != nil {
		return nil, err
	}

	lock := s.lockFor(req.CustomerID, req.VariantID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.overrideRepo.FindByCustomerAndVariant(ctx, req.CustomerID, req.VariantID)
	switch {
	case err == nil:
		if err := existing.Update(req.Type, req.Value, req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
		if err := s.overrideRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("price override updated",
			zap.String("customer_id", req.CustomerID.String()),
			zap.String("variant_id", req.VariantID.String()),
			zap.String("type", string(req.Type)))
		return existing, nil

	case errors.Is(err, shared.ErrNotFound):
		override, err := pricing.NewPriceOverride(req.CustomerID, req.VariantID, req.Type, req.Value, req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		if err := s.overrideRepo.Save(ctx, override); err != nil {
			return nil, err
		}
		s.logger.Info("price override created",
			zap.String("customer_id", req.CustomerID.String()),
			zap.String("variant_id", req.VariantID.String()),
			zap.String("type", string(req.Type)))
		return override, nil

	default:
		return nil, err
	}
}

// Delete removes the override for the (customer, variant) pair.
func (s *OverrideService) Delete(ctx context.Context, customerID, variantID uuid.UUID) error {
	lock := s.lockFor(customerID, variantID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.overrideRepo.Delete(ctx, customerID, variantID); err != nil {
		return err
	}
	s.logger.Info("price override deleted",
		zap.String("customer_id", customerID.String()),
		zap.String("variant_id", variantID.String()))
	return nil
}

// Get returns the override for the (customer, variant) pair.
func (s *OverrideService) Get(ctx context.Context, customerID, variantID uuid.UUID) (*pricing.PriceOverride, error) {
	return s.overrideRepo.FindByCustomerAndVariant(ctx, customerID, variantID)
}

// lockFor picks the stripe serializing a (customer, variant) pair.
func (s *OverrideService) lockFor(customerID, variantID uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(customerID[:])
	h.Write(variantID[:])
	return &s.locks[h.Sum32()&(lockStripes-1)]
}
