// Package view computes the presentation-only product projection: engagement
// counters, discounted price, inventory totals and ratings. Nothing here is
// ever persisted.
package view

import (
	"context"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/product/domain"
	"github.com/rahvarz/bazar/pkg/validation"
	"gorm.io/gorm"
)

type Composer struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewComposer(db *gorm.DB, clk clock.Clock) *Composer {
	return &Composer{db: db, clock: clk}
}

type offerRow struct {
	ID                 int64
	DiscountPercentage float64
	StartDate          time.Time
	EndDate            time.Time
}

type reviewRow struct {
	ID           int64
	Rating       int
	Author       string
	CommentText  *string
	CommentImage *string
}

// Compose builds the read projection for a product. Detail views additionally
// attach reviews with their authors and comments.
func (c *Composer) Compose(ctx context.Context, p *domain.Product, detail bool) (*domain.View, error) {
	now := c.clock.Now()
	today := now.Truncate(24 * time.Hour)

	v := &domain.View{
		ID:          snowflake.ID(p.ID).String(),
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		CategoryID:  snowflake.ID(p.CategoryID).String(),
		UserID:      snowflake.ID(p.UserID).String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Offers:      []domain.OfferView{},
	}

	if err := c.expressionCounts(ctx, p.ID, v); err != nil {
		return nil, err
	}

	offers, err := c.visibleOffers(ctx, p.ID, today)
	if err != nil {
		return nil, err
	}
	v.CurrentPrice = p.Price
	priced := false
	for _, offer := range offers {
		v.Offers = append(v.Offers, domain.OfferView{
			ID:         snowflake.ID(offer.ID).String(),
			Percentage: formatPercentage(offer.DiscountPercentage),
			StartDate:  offer.StartDate.Format(validation.DateLayout),
			EndDate:    offer.EndDate.Format(validation.DateLayout),
		})
		// The first offer whose range contains this instant drives the
		// price, even at 0%.
		if !priced && !offer.StartDate.After(now) && !offer.EndDate.Before(now) {
			v.CurrentPrice = p.Price - p.Price*(offer.DiscountPercentage/100)
			priced = true
		}
	}

	if err := c.inventory(ctx, p.ID, now, v); err != nil {
		return nil, err
	}

	rating, err := c.averageRating(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	v.AverageRating = rating

	if detail {
		reviews, err := c.reviews(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		v.Reviews = reviews
	}

	return v, nil
}

func (c *Composer) expressionCounts(ctx context.Context, productID int64, v *domain.View) error {
	var rows []struct {
		Action *string
		Total  int64
	}
	err := c.db.WithContext(ctx).
		Table("expressions").
		Select("action, COUNT(*) AS total").
		Where("product_id = ?", productID).
		Group("action").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		v.Views += row.Total
		if row.Action == nil {
			continue
		}
		switch *row.Action {
		case "like":
			v.Likes = row.Total
		case "dislike":
			v.Dislikes = row.Total
		}
	}
	return nil
}

func (c *Composer) visibleOffers(ctx context.Context, productID int64, today time.Time) ([]offerRow, error) {
	var rows []offerRow
	err := c.db.WithContext(ctx).
		Table("offers").
		Select("offers.id, offers.discount_percentage, offers.start_date, offers.end_date").
		Joins("JOIN warehouses ON warehouses.id = offers.warehouse_id").
		Where("warehouses.product_id = ?", productID).
		Where("offers.end_date >= ?", today).
		Order("offers.start_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (c *Composer) inventory(ctx context.Context, productID int64, now time.Time, v *domain.View) error {
	var sum struct{ Total int64 }
	err := c.db.WithContext(ctx).
		Table("warehouses").
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("product_id = ?", productID).
		Scan(&sum).Error
	if err != nil {
		return err
	}
	v.TotalAmount = sum.Total

	// Earliest expiry among batches that are unexpired and still hold stock.
	var expiries []time.Time
	err = c.db.WithContext(ctx).
		Table("warehouses").
		Where("product_id = ? AND amount > 0 AND expiry_date >= ?", productID, now).
		Order("expiry_date ASC").
		Limit(1).
		Pluck("expiry_date", &expiries).Error
	if err != nil {
		return err
	}
	if len(expiries) > 0 {
		formatted := expiries[0].Format(validation.DateLayout)
		v.ExpiryDate = &formatted
	}
	return nil
}

func (c *Composer) averageRating(ctx context.Context, productID int64) (float64, error) {
	var row struct{ Avg *float64 }
	err := c.db.WithContext(ctx).
		Table("reviews").
		Select("AVG(rating) AS avg").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.Avg == nil {
		return 0, nil
	}
	return *row.Avg, nil
}

func (c *Composer) reviews(ctx context.Context, productID int64) ([]domain.ReviewView, error) {
	var rows []reviewRow
	err := c.db.WithContext(ctx).
		Table("reviews").
		Select(`reviews.id, reviews.rating, users.name AS author,
			comments.text AS comment_text, comments.image_url AS comment_image`).
		Joins("JOIN users ON users.id = reviews.user_id").
		Joins("LEFT JOIN comments ON comments.review_id = reviews.id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.ReviewView, 0, len(rows))
	for _, row := range rows {
		rv := domain.ReviewView{
			ID:     snowflake.ID(row.ID).String(),
			Author: row.Author,
			Rating: row.Rating,
		}
		if row.CommentText != nil || row.CommentImage != nil {
			rv.Comment = &domain.CommentView{
				Text:     row.CommentText,
				ImageURL: row.CommentImage,
			}
		}
		out = append(out, rv)
	}
	return out, nil
}

func formatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
