package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/rahvarz/bazar/internal/auth/domain"
	authrepo "github.com/rahvarz/bazar/internal/auth/repository"
	authservice "github.com/rahvarz/bazar/internal/auth/service"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/config"
	"github.com/rahvarz/bazar/internal/migration"
	offerdomain "github.com/rahvarz/bazar/internal/offer/domain"
	offerrepo "github.com/rahvarz/bazar/internal/offer/repository"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	productrepo "github.com/rahvarz/bazar/internal/product/repository"
	"github.com/rahvarz/bazar/internal/providers/email"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	warehouserepo "github.com/rahvarz/bazar/internal/warehouse/repository"
	"github.com/rahvarz/bazar/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	conn    *gorm.DB
	node    *snowflake.Node
	clk     *clock.FakeClock
	sweeper *Sweeper
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	authSvc := authservice.New(authservice.Params{
		Cfg:   config.Config{EmailSuffix: "@gmail.com", SessionTTL: time.Hour, CodeTTL: time.Minute},
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  authrepo.Provide(conn),
		Mail:  &email.NoOpProvider{},
	})

	sweeper, err := New(Params{
		Log:           zap.NewNop(),
		GenID:         node,
		Clock:         clk,
		Config:        Config{OrphanGrace: time.Hour},
		ProductRepo:   productrepo.Provide(conn),
		WarehouseRepo: warehouserepo.Provide(conn),
		OfferRepo:     offerrepo.Provide(conn),
		AuthSvc:       authSvc,
	})
	require.NoError(t, err)

	return &fixture{conn: conn, node: node, clk: clk, sweeper: sweeper}
}

func (f *fixture) seedProduct(t *testing.T, createdAt time.Time) *productdomain.Product {
	t.Helper()
	p := &productdomain.Product{
		ID:         f.node.Generate().Int64(),
		Name:       "product-" + f.node.Generate().String(),
		Price:      100,
		CategoryID: f.node.Generate().Int64(),
		UserID:     f.node.Generate().Int64(),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, f.conn.Create(p).Error)
	return p
}

func (f *fixture) seedBatch(t *testing.T, productID, amount int64, expiry time.Time, settled *time.Time) *warehousedomain.Warehouse {
	t.Helper()
	w := &warehousedomain.Warehouse{
		ID:             f.node.Generate().Int64(),
		PurePrice:      40,
		Amount:         amount,
		PaymentDate:    f.clk.Now().Add(-10 * 24 * time.Hour),
		SettlementDate: settled,
		ExpiryDate:     expiry,
		ProductID:      productID,
		CreatedAt:      f.clk.Now(),
		UpdatedAt:      f.clk.Now(),
	}
	require.NoError(t, f.conn.Create(w).Error)
	return w
}

func (f *fixture) productExists(t *testing.T, id int64) bool {
	t.Helper()
	var count int64
	require.NoError(t, f.conn.Table("products").Where("id = ?", id).Count(&count).Error)
	return count > 0
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestZeroAmountGroupSettlesThenDeletes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := f.seedProduct(t, f.clk.Now())
	batch := f.seedBatch(t, p.ID, 0, day(2026, 6, 1), nil)

	// First pass stamps the settlement date but keeps the batch and product.
	require.NoError(t, f.sweeper.SettleZeroGroupsJob(ctx))

	var stored warehousedomain.Warehouse
	require.NoError(t, f.conn.First(&stored, "id = ?", batch.ID).Error)
	require.NotNil(t, stored.SettlementDate)
	assert.True(t, f.productExists(t, p.ID))

	// Second pass deletes the settled batch and, with no batches left,
	// the product.
	f.clk.Advance(time.Hour)
	require.NoError(t, f.sweeper.SettleZeroGroupsJob(ctx))

	var batches int64
	require.NoError(t, f.conn.Table("warehouses").Count(&batches).Error)
	assert.Zero(t, batches)
	assert.False(t, f.productExists(t, p.ID))
}

func TestZeroGroupKeepsProductWhileOtherBatchesRemain(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	settled := f.clk.Now().Add(-time.Hour)
	p := f.seedProduct(t, f.clk.Now())
	f.seedBatch(t, p.ID, 0, day(2026, 6, 1), &settled)
	keeper := f.seedBatch(t, p.ID, 0, day(2026, 7, 1), nil)

	require.NoError(t, f.sweeper.SettleZeroGroupsJob(ctx))

	// The settled batch is gone but the freshly settled one remains, so
	// the product survives.
	var remaining []warehousedomain.Warehouse
	require.NoError(t, f.conn.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keeper.ID, remaining[0].ID)
	assert.True(t, f.productExists(t, p.ID))
}

func TestNonZeroGroupIsLeftAlone(t *testing.T) {
	f := setup(t)

	p := f.seedProduct(t, f.clk.Now())
	f.seedBatch(t, p.ID, 0, day(2026, 6, 1), nil)
	f.seedBatch(t, p.ID, 5, day(2026, 7, 1), nil)

	require.NoError(t, f.sweeper.SettleZeroGroupsJob(context.Background()))

	var unsettled int64
	require.NoError(t, f.conn.Table("warehouses").Where("settlement_date IS NULL").Count(&unsettled).Error)
	assert.EqualValues(t, 2, unsettled)
}

func TestExpiredBatchCondemnsWholeProduct(t *testing.T) {
	f := setup(t)

	p := f.seedProduct(t, f.clk.Now())
	f.seedBatch(t, p.ID, 5, day(2026, 1, 1), nil)
	f.seedBatch(t, p.ID, 5, day(2026, 6, 1), nil)

	healthy := f.seedProduct(t, f.clk.Now())
	f.seedBatch(t, healthy.ID, 5, day(2026, 6, 1), nil)

	require.NoError(t, f.sweeper.PurgeExpiredBatchesJob(context.Background()))

	assert.False(t, f.productExists(t, p.ID))
	assert.True(t, f.productExists(t, healthy.ID))

	var batches int64
	require.NoError(t, f.conn.Table("warehouses").Where("product_id = ?", p.ID).Count(&batches).Error)
	assert.Zero(t, batches)
}

func TestOrphanProductsRespectGracePeriod(t *testing.T) {
	f := setup(t)

	fresh := f.seedProduct(t, f.clk.Now().Add(-30*time.Minute))
	stale := f.seedProduct(t, f.clk.Now().Add(-2*time.Hour))
	stocked := f.seedProduct(t, f.clk.Now().Add(-2*time.Hour))
	f.seedBatch(t, stocked.ID, 5, day(2026, 6, 1), nil)

	require.NoError(t, f.sweeper.PurgeOrphanProductsJob(context.Background()))

	assert.True(t, f.productExists(t, fresh.ID))
	assert.False(t, f.productExists(t, stale.ID))
	assert.True(t, f.productExists(t, stocked.ID))
}

func TestEndedOffersArePurgedButTodaySurvives(t *testing.T) {
	f := setup(t)

	p := f.seedProduct(t, f.clk.Now())
	w := f.seedBatch(t, p.ID, 5, day(2026, 6, 1), nil)

	ended := &offerdomain.Offer{
		ID:                 f.node.Generate().Int64(),
		DiscountPercentage: 10,
		StartDate:          day(2026, 3, 1),
		EndDate:            day(2026, 3, 14),
		WarehouseID:        w.ID,
		CreatedAt:          f.clk.Now(),
		UpdatedAt:          f.clk.Now(),
	}
	endsToday := &offerdomain.Offer{
		ID:                 f.node.Generate().Int64(),
		DiscountPercentage: 20,
		StartDate:          day(2026, 3, 10),
		EndDate:            day(2026, 3, 15),
		WarehouseID:        w.ID,
		CreatedAt:          f.clk.Now(),
		UpdatedAt:          f.clk.Now(),
	}
	require.NoError(t, f.conn.Create(ended).Error)
	require.NoError(t, f.conn.Create(endsToday).Error)

	require.NoError(t, f.sweeper.PurgeExpiredOffersJob(context.Background()))

	var ids []int64
	require.NoError(t, f.conn.Table("offers").Pluck("id", &ids).Error)
	assert.Equal(t, []int64{endsToday.ID}, ids)
}

func TestRunOnceIsolatesJobFailures(t *testing.T) {
	f := setup(t)

	// Nothing to do; a full pass over an empty database is clean.
	require.NoError(t, f.sweeper.RunOnce(context.Background()))
}

func TestCodeCleanupPurgesExpiredCodes(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.conn.Create(&authdomain.OneTimeCode{
		ID:        f.node.Generate().Int64(),
		UserID:    f.node.Generate().Int64(),
		Code:      "123456",
		Purpose:   authdomain.CodePurposePasswordReset,
		ExpiresAt: f.clk.Now().Add(-time.Minute),
		CreatedAt: f.clk.Now().Add(-2 * time.Minute),
	}).Error)

	require.NoError(t, f.sweeper.RunCodeCleanupOnce(context.Background()))

	var count int64
	require.NoError(t, f.conn.Table("one_time_codes").Count(&count).Error)
	assert.Zero(t, count)
}
