package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/rahvarz/bazar/internal/auth/domain"
	"github.com/rahvarz/bazar/internal/clock"
	offerdomain "github.com/rahvarz/bazar/internal/offer/domain"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("sweep: missing dependency")

type Params struct {
	fx.In

	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Config        Config `optional:"true"`
	ProductRepo   productdomain.Repository
	WarehouseRepo warehousedomain.Repository
	OfferRepo     offerdomain.Repository
	AuthSvc       authdomain.Service
}

// Sweeper runs the background lifecycle passes: settling and purging
// inventory batches, removing dead products and ended offers, and
// clearing stale one-time codes.
type Sweeper struct {
	log           *zap.Logger
	cfg           Config
	genID         *snowflake.Node
	clock         clock.Clock
	productRepo   productdomain.Repository
	warehouseRepo warehousedomain.Repository
	offerRepo     offerdomain.Repository
	authSvc       authdomain.Service
}

func New(p Params) (*Sweeper, error) {
	if p.Log == nil || p.GenID == nil || p.Clock == nil || p.ProductRepo == nil || p.WarehouseRepo == nil || p.OfferRepo == nil || p.AuthSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Sweeper{
		log:           p.Log.Named("sweep"),
		cfg:           p.Config.withDefaults(),
		genID:         p.GenID,
		clock:         p.Clock,
		productRepo:   p.ProductRepo,
		warehouseRepo: p.WarehouseRepo,
		offerRepo:     p.OfferRepo,
		authSvc:       p.AuthSvc,
	}, nil
}

func (s *Sweeper) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	log := s.log.With(
		zap.String("job", name),
		zap.String("run_id", s.genID.Generate().String()),
	)
	log.Debug("job started")
	jobRuns.WithLabelValues(name).Inc()

	err := fn(ctx)
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err == nil {
		log.Debug("job finished", zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	jobErrors.WithLabelValues(name).Inc()
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out", zap.Duration("timeout", s.cfg.JobTimeout), zap.Error(err))
		return nil
	}
	log.Error("job failed", zap.Error(err))
	return fmt.Errorf("%s: %w", name, err)
}

// RunOnce executes a full sweep pass. Each job runs even when an
// earlier one failed; the joined error carries every failure.
func (s *Sweeper) RunOnce(parent context.Context) error {
	var err error
	err = errors.Join(err, s.runJob(parent, "settle_zero_groups", s.SettleZeroGroupsJob))
	err = errors.Join(err, s.runJob(parent, "purge_expired_batches", s.PurgeExpiredBatchesJob))
	err = errors.Join(err, s.runJob(parent, "purge_orphan_products", s.PurgeOrphanProductsJob))
	err = errors.Join(err, s.runJob(parent, "purge_expired_offers", s.PurgeExpiredOffersJob))
	return err
}

// RunCodeCleanupOnce clears expired one-time codes. It runs on a
// shorter cadence than the main pass so stale login codes die quickly.
func (s *Sweeper) RunCodeCleanupOnce(parent context.Context) error {
	return s.runJob(parent, "purge_expired_codes", func(ctx context.Context) error {
		n, err := s.authSvc.PurgeExpiredCodes(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			s.log.Info("purged one-time codes", zap.Int64("count", n))
		}
		return nil
	})
}

func (s *Sweeper) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.log.Error("sweep pass finished with errors", zap.Error(err))
			}
		}
	}
}

func (s *Sweeper) RunCodeCleanupForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CodeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunCodeCleanupOnce(ctx); err != nil {
				s.log.Error("code cleanup finished with errors", zap.Error(err))
			}
		}
	}
}
