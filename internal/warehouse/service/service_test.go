package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/migration"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	productrepo "github.com/rahvarz/bazar/internal/product/repository"
	"github.com/rahvarz/bazar/internal/warehouse/domain"
	warehouserepo "github.com/rahvarz/bazar/internal/warehouse/repository"
	"github.com/rahvarz/bazar/pkg/db"
	"github.com/rahvarz/bazar/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	conn  *gorm.DB
	node  *snowflake.Node
	clk   *clock.FakeClock
	owner principal.Principal
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        warehouserepo.Provide(conn),
		ProductRepo: productrepo.Provide(conn),
	})

	return &fixture{
		svc:   svc,
		conn:  conn,
		node:  node,
		clk:   clk,
		owner: principal.Principal{UserID: node.Generate().Int64(), Email: "owner@gmail.com"},
	}
}

func (f *fixture) seedProduct(t *testing.T, ownerID int64) *productdomain.Product {
	t.Helper()
	p := &productdomain.Product{
		ID:         f.node.Generate().Int64(),
		Name:       "product-" + f.node.Generate().String(),
		Price:      100,
		CategoryID: f.node.Generate().Int64(),
		UserID:     ownerID,
		CreatedAt:  f.clk.Now(),
		UpdatedAt:  f.clk.Now(),
	}
	require.NoError(t, f.conn.Create(p).Error)
	return p
}

func (f *fixture) createBatch(t *testing.T, productID int64) *domain.Response {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.owner, domain.CreateRequest{
		PurePrice:   50,
		Amount:      10,
		PaymentDate: "2026-03-01",
		ExpiryDate:  "2026-06-01",
		ProductID:   snowflake.ID(productID).String(),
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRejectsExpiryBeforePayment(t *testing.T) {
	f := setup(t)
	p := f.seedProduct(t, f.owner.UserID)

	_, err := f.svc.Create(context.Background(), f.owner, domain.CreateRequest{
		PaymentDate: "2026-03-10",
		ExpiryDate:  "2026-03-01",
		ProductID:   snowflake.ID(p.ID).String(),
	})
	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("expiry_date"))
}

func TestCreateForForeignProductIsForbidden(t *testing.T) {
	f := setup(t)
	other := f.seedProduct(t, f.node.Generate().Int64())

	_, err := f.svc.Create(context.Background(), f.owner, domain.CreateRequest{
		PaymentDate: "2026-03-01",
		ExpiryDate:  "2026-06-01",
		ProductID:   snowflake.ID(other.ID).String(),
	})
	var fe *ownership.ErrForbidden
	assert.ErrorAs(t, err, &fe)
}

func TestExpiryDateIsImmutable(t *testing.T) {
	f := setup(t)
	p := f.seedProduct(t, f.owner.UserID)
	batch := f.createBatch(t, p.ID)

	id, err := snowflake.ParseString(batch.ID)
	require.NoError(t, err)

	later := "2027-01-01"
	_, err = f.svc.Update(context.Background(), f.owner, id.Int64(), domain.UpdateRequest{
		ExpiryDate: &later,
	})
	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"cannot be changed after creation"}, ve.Fields()["expiry_date"])
}

func TestSettlementWindowIsEnforced(t *testing.T) {
	f := setup(t)
	p := f.seedProduct(t, f.owner.UserID)
	batch := f.createBatch(t, p.ID)

	id, err := snowflake.ParseString(batch.ID)
	require.NoError(t, err)
	ctx := context.Background()

	before := "2026-02-01"
	_, err = f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{SettlementDate: &before})
	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("settlement_date"))

	after := "2026-07-01"
	_, err = f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{SettlementDate: &after})
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("settlement_date"))

	valid := "2026-04-01"
	resp, err := f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{SettlementDate: &valid})
	require.NoError(t, err)
	require.NotNil(t, resp.SettlementDate)
	assert.Equal(t, "2026-04-01", *resp.SettlementDate)
}

func TestPaymentDateCannotPassStoredSettlement(t *testing.T) {
	f := setup(t)
	p := f.seedProduct(t, f.owner.UserID)
	batch := f.createBatch(t, p.ID)

	id, err := snowflake.ParseString(batch.ID)
	require.NoError(t, err)
	ctx := context.Background()

	settled := "2026-04-01"
	_, err = f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{SettlementDate: &settled})
	require.NoError(t, err)

	// Payment sliding past the stored settlement would break
	// payment <= settlement <= expiry on a row that can no longer change
	// its settlement.
	late := "2026-05-01"
	_, err = f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{PaymentDate: &late})
	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must be on or before settlement_date"}, ve.Fields()["payment_date"])

	earlier := "2026-03-15"
	resp, err := f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{PaymentDate: &earlier})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", resp.PaymentDate)
}

func TestSettlementDateIsImmutableOnceSet(t *testing.T) {
	f := setup(t)
	p := f.seedProduct(t, f.owner.UserID)
	batch := f.createBatch(t, p.ID)

	id, err := snowflake.ParseString(batch.ID)
	require.NoError(t, err)
	ctx := context.Background()

	first := "2026-04-01"
	_, err = f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{SettlementDate: &first})
	require.NoError(t, err)

	second := "2026-05-01"
	_, err = f.svc.Update(ctx, f.owner, id.Int64(), domain.UpdateRequest{SettlementDate: &second})
	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"cannot be changed once set"}, ve.Fields()["settlement_date"])
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	f := setup(t)
	p := f.seedProduct(t, f.owner.UserID)
	batch := f.createBatch(t, p.ID)

	id, err := snowflake.ParseString(batch.ID)
	require.NoError(t, err)

	stranger := principal.Principal{UserID: f.node.Generate().Int64()}
	amount := int64(5)
	_, err = f.svc.Update(context.Background(), stranger, id.Int64(), domain.UpdateRequest{Amount: &amount})
	var fe *ownership.ErrForbidden
	assert.ErrorAs(t, err, &fe)
}

func TestDeleteRemovesAttachedOffers(t *testing.T) {
	f := setup(t)
	p := f.seedProduct(t, f.owner.UserID)
	batch := f.createBatch(t, p.ID)

	id, err := snowflake.ParseString(batch.ID)
	require.NoError(t, err)

	require.NoError(t, f.conn.Exec(
		`INSERT INTO offers (id, discount_percentage, start_date, end_date, warehouse_id, created_at, updated_at)
		 VALUES (?, 10, ?, ?, ?, ?, ?)`,
		f.node.Generate().Int64(), f.clk.Now(), f.clk.Now().Add(24*time.Hour), id.Int64(), f.clk.Now(), f.clk.Now(),
	).Error)

	require.NoError(t, f.svc.Delete(context.Background(), f.owner, id.Int64()))

	var offers int64
	require.NoError(t, f.conn.Table("offers").Count(&offers).Error)
	assert.Zero(t, offers)
}
