package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	"go.uber.org/zap"
)

// SettleZeroGroupsJob handles products whose inventory batches sum to
// zero. Unsettled batches get their settlement date stamped now;
// batches already settled on an earlier pass are deleted. The product
// itself goes once its last batch is gone, so a freshly drained group
// survives exactly one more pass in a settled state.
func (s *Sweeper) SettleZeroGroupsJob(ctx context.Context) error {
	productIDs, err := s.warehouseRepo.ZeroAmountProductIDs(ctx)
	if err != nil {
		return err
	}

	var jobErr error
	for _, productID := range productIDs {
		if err := s.settleProduct(ctx, productID); err != nil {
			s.log.Error("settling zero-amount group failed",
				zap.Int64("product_id", productID), zap.Error(err))
			jobErr = errors.Join(jobErr, fmt.Errorf("product %d: %w", productID, err))
		}
	}
	return jobErr
}

func (s *Sweeper) settleProduct(ctx context.Context, productID int64) error {
	batches, err := s.warehouseRepo.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	remaining := len(batches)
	for _, batch := range batches {
		if batch.SettlementDate == nil {
			settledAt := now
			_, err := s.warehouseRepo.Update(ctx, batch.ID, func(row *warehousedomain.Warehouse) error {
				row.SettlementDate = &settledAt
				row.UpdatedAt = now
				return nil
			})
			if err != nil {
				return err
			}
			continue
		}
		if err := s.warehouseRepo.Delete(ctx, batch.ID); err != nil {
			return err
		}
		remaining--
	}

	if remaining == 0 {
		s.log.Info("deleting product with no batches left", zap.Int64("product_id", productID))
		return s.productRepo.DeleteCascade(ctx, productID)
	}
	return nil
}

// PurgeExpiredBatchesJob removes every product that has at least one
// expired inventory batch, together with all its dependents. One batch
// going stale condemns the whole listing.
func (s *Sweeper) PurgeExpiredBatchesJob(ctx context.Context) error {
	productIDs, err := s.warehouseRepo.ExpiredProductIDs(ctx, s.clock.Now())
	if err != nil {
		return err
	}

	var jobErr error
	for _, productID := range productIDs {
		if err := s.productRepo.DeleteCascade(ctx, productID); err != nil {
			s.log.Error("purging expired product failed",
				zap.Int64("product_id", productID), zap.Error(err))
			jobErr = errors.Join(jobErr, fmt.Errorf("product %d: %w", productID, err))
			continue
		}
		s.log.Info("purged product with expired batch", zap.Int64("product_id", productID))
	}
	return jobErr
}

// PurgeOrphanProductsJob removes products that never got an inventory
// batch. The grace period keeps a just-created product alive long
// enough for its owner to add stock.
func (s *Sweeper) PurgeOrphanProductsJob(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.cfg.OrphanGrace)
	productIDs, err := s.productRepo.OrphanIDs(ctx, cutoff)
	if err != nil {
		return err
	}

	var jobErr error
	for _, productID := range productIDs {
		if err := s.productRepo.DeleteCascade(ctx, productID); err != nil {
			s.log.Error("purging orphan product failed",
				zap.Int64("product_id", productID), zap.Error(err))
			jobErr = errors.Join(jobErr, fmt.Errorf("product %d: %w", productID, err))
		}
	}
	if len(productIDs) > 0 {
		s.log.Info("purged orphan products", zap.Int("count", len(productIDs)))
	}
	return jobErr
}

// PurgeExpiredOffersJob deletes offers whose end date is behind the
// current day. An offer ending today is still visible and still
// discounting, so the cutoff is the start of today.
func (s *Sweeper) PurgeExpiredOffersJob(ctx context.Context) error {
	now := s.clock.Now().UTC()
	cutoff := now.Truncate(24 * time.Hour)

	n, err := s.offerRepo.DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("purged ended offers", zap.Int64("count", n))
	}
	return nil
}
