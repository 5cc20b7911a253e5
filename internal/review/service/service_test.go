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
	"github.com/rahvarz/bazar/internal/review/domain"
	reviewrepo "github.com/rahvarz/bazar/internal/review/repository"
	"github.com/rahvarz/bazar/pkg/db"
	"github.com/rahvarz/bazar/pkg/db/pagination"
	"github.com/rahvarz/bazar/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc     domain.Service
	conn    *gorm.DB
	node    *snowflake.Node
	author  principal.Principal
	product *productdomain.Product
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        reviewrepo.Provide(conn),
		ProductRepo: productrepo.Provide(conn),
	})

	f := &fixture{
		svc:    svc,
		conn:   conn,
		node:   node,
		author: principal.Principal{UserID: node.Generate().Int64()},
	}

	f.product = &productdomain.Product{
		ID:         node.Generate().Int64(),
		Name:       "dates",
		Price:      30,
		CategoryID: node.Generate().Int64(),
		UserID:     node.Generate().Int64(),
		CreatedAt:  clk.Now(),
		UpdatedAt:  clk.Now(),
	}
	require.NoError(t, conn.Create(f.product).Error)
	return f
}

func (f *fixture) createReview(t *testing.T, rating int) *domain.Response {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.author, domain.CreateRequest{
		Rating:    rating,
		ProductID: snowflake.ID(f.product.ID).String(),
	})
	require.NoError(t, err)
	return resp
}

func strPtr(s string) *string { return &s }

func TestCreateValidatesRating(t *testing.T) {
	f := setup(t)

	for _, rating := range []int{-1, 6} {
		_, err := f.svc.Create(context.Background(), f.author, domain.CreateRequest{
			Rating:    rating,
			ProductID: snowflake.ID(f.product.ID).String(),
		})
		var ve *validation.Errors
		require.ErrorAs(t, err, &ve, "rating %d", rating)
		assert.True(t, ve.Has("rating"))
	}

	resp := f.createReview(t, 0)
	assert.Equal(t, 0, resp.Rating)
}

func TestUpdateRatingRequiresOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created := f.createReview(t, 3)
	id, err := snowflake.ParseString(created.ID)
	require.NoError(t, err)

	stranger := principal.Principal{UserID: f.node.Generate().Int64()}
	five := 5
	_, err = f.svc.Update(ctx, stranger, id.Int64(), domain.UpdateRequest{Rating: &five})
	var fe *ownership.ErrForbidden
	require.ErrorAs(t, err, &fe)

	updated, err := f.svc.Update(ctx, f.author, id.Int64(), domain.UpdateRequest{Rating: &five})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}

func TestCommentRequiresTextOrImage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created := f.createReview(t, 4)

	_, err := f.svc.CreateComment(ctx, f.author, domain.CommentRequest{
		Text:     strPtr("   "),
		ReviewID: created.ID,
	})
	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("text"))

	comment, err := f.svc.CreateComment(ctx, f.author, domain.CommentRequest{
		ImageURL: strPtr("https://img.example/receipt.jpg"),
		ReviewID: created.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, comment.Text)
	require.NotNil(t, comment.ImageURL)
}

func TestCommentAuthorMustOwnReview(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created := f.createReview(t, 4)

	stranger := principal.Principal{UserID: f.node.Generate().Int64()}
	_, err := f.svc.CreateComment(ctx, stranger, domain.CommentRequest{
		Text:     strPtr("great"),
		ReviewID: created.ID,
	})
	var fe *ownership.ErrForbidden
	assert.ErrorAs(t, err, &fe)
}

func TestSecondCommentOnReviewIsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created := f.createReview(t, 4)

	_, err := f.svc.CreateComment(ctx, f.author, domain.CommentRequest{
		Text:     strPtr("first"),
		ReviewID: created.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateComment(ctx, f.author, domain.CommentRequest{
		Text:     strPtr("second"),
		ReviewID: created.ID,
	})
	assert.ErrorIs(t, err, domain.ErrCommentExists)
}

func TestUpdateCommentCannotBlankBothFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created := f.createReview(t, 4)
	comment, err := f.svc.CreateComment(ctx, f.author, domain.CommentRequest{
		Text:     strPtr("tasty"),
		ReviewID: created.ID,
	})
	require.NoError(t, err)
	id, err := snowflake.ParseString(comment.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateComment(ctx, f.author, id.Int64(), domain.CommentUpdateRequest{
		Text: strPtr(""),
	})
	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("text"))

	updated, err := f.svc.UpdateComment(ctx, f.author, id.Int64(), domain.CommentUpdateRequest{
		Text: strPtr("still tasty"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Text)
	assert.Equal(t, "still tasty", *updated.Text)
}

func TestDeleteReviewRemovesComment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created := f.createReview(t, 2)
	id, err := snowflake.ParseString(created.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateComment(ctx, f.author, domain.CommentRequest{
		Text:     strPtr("meh"),
		ReviewID: created.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.author, id.Int64()))

	var comments int64
	require.NoError(t, f.conn.Model(&domain.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(0), comments)

	_, err = f.svc.Get(ctx, id.Int64())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByProductWithPagination(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		f.createReview(t, i)
	}

	items, info, err := f.svc.ListByProduct(ctx, f.product.ID, domain.ListRequest{
		Pagination: pagination.Pagination{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(3), info.TotalCount)
	assert.True(t, info.HasMore)
}
