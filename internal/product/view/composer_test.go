package view

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/rahvarz/bazar/internal/auth/domain"
	"github.com/rahvarz/bazar/internal/clock"
	expressiondomain "github.com/rahvarz/bazar/internal/expression/domain"
	"github.com/rahvarz/bazar/internal/migration"
	offerdomain "github.com/rahvarz/bazar/internal/offer/domain"
	"github.com/rahvarz/bazar/internal/product/domain"
	reviewdomain "github.com/rahvarz/bazar/internal/review/domain"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	"github.com/rahvarz/bazar/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	conn     *gorm.DB
	node     *snowflake.Node
	clk      *clock.FakeClock
	composer *Composer
	product  *domain.Product
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	f := &fixture{
		conn:     conn,
		node:     node,
		clk:      clk,
		composer: NewComposer(conn, clk),
	}
	f.product = &domain.Product{
		ID:         node.Generate().Int64(),
		Name:       "olive oil",
		Price:      100,
		CategoryID: node.Generate().Int64(),
		UserID:     node.Generate().Int64(),
		CreatedAt:  clk.Now(),
		UpdatedAt:  clk.Now(),
	}
	require.NoError(t, conn.Create(f.product).Error)
	return f
}

func (f *fixture) seedBatch(t *testing.T, amount int64, expiry time.Time) *warehousedomain.Warehouse {
	t.Helper()
	w := &warehousedomain.Warehouse{
		ID:          f.node.Generate().Int64(),
		PurePrice:   40,
		Amount:      amount,
		PaymentDate: f.clk.Now().Add(-30 * 24 * time.Hour),
		ExpiryDate:  expiry,
		ProductID:   f.product.ID,
		CreatedAt:   f.clk.Now(),
		UpdatedAt:   f.clk.Now(),
	}
	require.NoError(t, f.conn.Create(w).Error)
	return w
}

func (f *fixture) seedOffer(t *testing.T, warehouseID int64, percent float64, start, end time.Time) {
	t.Helper()
	require.NoError(t, f.conn.Create(&offerdomain.Offer{
		ID:                 f.node.Generate().Int64(),
		DiscountPercentage: percent,
		StartDate:          start,
		EndDate:            end,
		WarehouseID:        warehouseID,
		CreatedAt:          f.clk.Now(),
		UpdatedAt:          f.clk.Now(),
	}).Error)
}

func (f *fixture) compose(t *testing.T, detail bool) *domain.View {
	t.Helper()
	v, err := f.composer.Compose(context.Background(), f.product, detail)
	require.NoError(t, err)
	return v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentPriceFollowsActiveOfferWindow(t *testing.T) {
	f := setup(t)
	w := f.seedBatch(t, 10, day(2026, 6, 1))
	f.seedOffer(t, w.ID, 20, day(2026, 3, 14), day(2026, 3, 20))

	// Inside the window: 100 - 100*0.20 = 80.
	v := f.compose(t, false)
	assert.Equal(t, 80.0, v.CurrentPrice)
	require.Len(t, v.Offers, 1)
	assert.Equal(t, "20%", v.Offers[0].Percentage)

	// Past the window the discount stops applying; the offer also stops
	// being listed once its end date is behind the current day.
	f.clk.Advance(7 * 24 * time.Hour)
	v = f.compose(t, false)
	assert.Equal(t, 100.0, v.CurrentPrice)
	assert.Empty(t, v.Offers)
}

func TestZeroPercentOfferStillClaimsThePrice(t *testing.T) {
	f := setup(t)
	w := f.seedBatch(t, 10, day(2026, 6, 1))
	// Both active now; the earliest-starting one drives the price even at
	// 0%, so the later 40% never applies.
	f.seedOffer(t, w.ID, 0, day(2026, 3, 10), day(2026, 3, 20))
	f.seedOffer(t, w.ID, 40, day(2026, 3, 12), day(2026, 3, 20))

	v := f.compose(t, false)
	assert.Equal(t, 100.0, v.CurrentPrice)
	assert.Len(t, v.Offers, 2)
}

func TestOfferVisibleBeforeItStartsButNotDiscounting(t *testing.T) {
	f := setup(t)
	w := f.seedBatch(t, 10, day(2026, 6, 1))
	f.seedOffer(t, w.ID, 30, day(2026, 4, 1), day(2026, 4, 10))

	v := f.compose(t, false)
	assert.Equal(t, 100.0, v.CurrentPrice)
	require.Len(t, v.Offers, 1)
}

func TestOfferEndingTodayStillApplies(t *testing.T) {
	f := setup(t)
	w := f.seedBatch(t, 10, day(2026, 6, 1))
	f.seedOffer(t, w.ID, 50, day(2026, 3, 10), f.clk.Now().Add(time.Hour))

	v := f.compose(t, false)
	assert.Equal(t, 50.0, v.CurrentPrice)
}

func TestTotalAmountSumsAllBatches(t *testing.T) {
	f := setup(t)
	f.seedBatch(t, 10, day(2026, 6, 1))
	f.seedBatch(t, 5, day(2026, 5, 1))
	f.seedBatch(t, 0, day(2026, 4, 1))

	v := f.compose(t, false)
	assert.EqualValues(t, 15, v.TotalAmount)
}

func TestExpiryDateIsEarliestUnexpiredBatchWithStock(t *testing.T) {
	f := setup(t)
	f.seedBatch(t, 10, day(2026, 6, 1))
	f.seedBatch(t, 5, day(2026, 5, 1))
	// Empty and already-expired batches never drive the expiry shown.
	f.seedBatch(t, 0, day(2026, 4, 1))
	f.seedBatch(t, 3, day(2026, 1, 1))

	v := f.compose(t, false)
	require.NotNil(t, v.ExpiryDate)
	assert.Equal(t, "2026-05-01", *v.ExpiryDate)
}

func TestExpiryDateNilWithoutEligibleBatches(t *testing.T) {
	f := setup(t)
	f.seedBatch(t, 0, day(2026, 6, 1))

	v := f.compose(t, false)
	assert.Nil(t, v.ExpiryDate)
}

func TestExpressionCountsIncludeClearedRowsAsViews(t *testing.T) {
	f := setup(t)
	like := expressiondomain.ActionLike
	dislike := expressiondomain.ActionDislike

	for _, action := range []*string{&like, &like, &dislike, nil} {
		require.NoError(t, f.conn.Create(&expressiondomain.Expression{
			ID:        f.node.Generate().Int64(),
			UserID:    f.node.Generate().Int64(),
			ProductID: f.product.ID,
			Action:    action,
			CreatedAt: f.clk.Now(),
			UpdatedAt: f.clk.Now(),
		}).Error)
	}

	v := f.compose(t, false)
	assert.EqualValues(t, 2, v.Likes)
	assert.EqualValues(t, 1, v.Dislikes)
	assert.EqualValues(t, 4, v.Views)
}

func TestDetailViewCarriesReviewsWithAuthorsAndComments(t *testing.T) {
	f := setup(t)

	reviewer := &authdomain.User{
		ID:           f.node.Generate().Int64(),
		Name:         "Reviewer",
		Email:        "reviewer@gmail.com",
		PasswordHash: "x",
		CreatedAt:    f.clk.Now(),
		UpdatedAt:    f.clk.Now(),
	}
	require.NoError(t, f.conn.Create(reviewer).Error)

	review := &reviewdomain.Review{
		ID:        f.node.Generate().Int64(),
		Rating:    4,
		UserID:    reviewer.ID,
		ProductID: f.product.ID,
		CreatedAt: f.clk.Now(),
		UpdatedAt: f.clk.Now(),
	}
	require.NoError(t, f.conn.Create(review).Error)

	text := "smooth"
	require.NoError(t, f.conn.Create(&reviewdomain.Comment{
		ID:        f.node.Generate().Int64(),
		Text:      &text,
		ReviewID:  review.ID,
		CreatedAt: f.clk.Now(),
		UpdatedAt: f.clk.Now(),
	}).Error)

	other := &reviewdomain.Review{
		ID:        f.node.Generate().Int64(),
		Rating:    2,
		UserID:    reviewer.ID,
		ProductID: f.product.ID,
		CreatedAt: f.clk.Now().Add(time.Second),
		UpdatedAt: f.clk.Now().Add(time.Second),
	}
	require.NoError(t, f.conn.Create(other).Error)

	v := f.compose(t, true)
	assert.InDelta(t, 3.0, v.AverageRating, 0.0001)
	require.Len(t, v.Reviews, 2)
	assert.Equal(t, "Reviewer", v.Reviews[0].Author)
	require.NotNil(t, v.Reviews[0].Comment)
	assert.Equal(t, "smooth", *v.Reviews[0].Comment.Text)
	assert.Nil(t, v.Reviews[1].Comment)

	// The list view stays lean.
	lean := f.compose(t, false)
	assert.Nil(t, lean.Reviews)
}
