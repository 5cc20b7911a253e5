package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	"github.com/rahvarz/bazar/internal/review/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/db/pagination"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var orderColumns = map[string]bool{
	"rating":     true,
	"created_at": true,
	"updated_at": true,
}

type Params struct {
	fx.In

	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	productRepo productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("review.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, actor principal.Principal, req domain.CreateRequest) (*domain.Response, error) {
	ve := validation.New()
	if req.Rating < 0 || req.Rating > 5 {
		ve.Add("rating", "must be between 0 and 5")
	}

	productID, ok := parseID(ve, "product_id", req.ProductID)
	if ok {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			ve.Add("product_id", "does not exist")
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	review := &domain.Review{
		ID:        s.genID.Generate().Int64(),
		Rating:    req.Rating,
		UserID:    actor.UserID,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, review)
	return &resp, nil
}

func (s *Service) ListByProduct(ctx context.Context, productID int64, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{ProductID: productID}, req)
}

func (s *Service) ListMine(ctx context.Context, actor principal.Principal, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{UserID: actor.UserID}, req)
}

func (s *Service) list(ctx context.Context, filter domain.ListFilter, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	page := req.Pagination.Normalize()
	items, total, err := s.repo.List(ctx, filter,
		option.WithOrder(req.OrderBy, req.Direction, orderColumns),
		option.WithLimit(page.Limit()),
		option.WithOffset(page.Offset()),
	)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(ctx, item))
	}
	info := pagination.BuildPageInfo(page, total)
	return resp, &info, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, domain.ErrNotFound
	}
	resp := s.toResponse(ctx, review)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor principal.Principal, id int64, req domain.UpdateRequest) (*domain.Response, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, domain.ErrNotFound
	}
	if err := ownership.Check(actor, review.UserID); err != nil {
		return nil, err
	}

	rating := review.Rating
	if req.Rating != nil {
		rating = *req.Rating
		if rating < 0 || rating > 5 {
			ve := validation.New()
			ve.Add("rating", "must be between 0 and 5")
			return nil, ve.Err()
		}
	}

	updated, err := s.repo.Update(ctx, id, func(row *domain.Review) error {
		row.Rating = rating
		row.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, updated)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor principal.Principal, id int64) error {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return domain.ErrNotFound
	}
	if err := ownership.Check(actor, review.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) CreateComment(ctx context.Context, actor principal.Principal, req domain.CommentRequest) (*domain.CommentResponse, error) {
	ve := validation.New()

	text := trimPtr(req.Text)
	imageURL := trimPtr(req.ImageURL)
	if text == nil && imageURL == nil {
		ve.Add("text", "text or image_url is required")
	}

	reviewID, _ := parseID(ve, "review_id", req.ReviewID)
	if err := ve.Err(); err != nil {
		return nil, err
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, domain.ErrNotFound
	}
	// The comment must come from the review's author.
	if err := ownership.Check(actor, review.UserID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindCommentByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCommentExists
	}

	now := s.clock.Now()
	comment := &domain.Comment{
		ID:        s.genID.Generate().Int64(),
		Text:      text,
		ImageURL:  imageURL,
		ReviewID:  reviewID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *Service) UpdateComment(ctx context.Context, actor principal.Principal, id int64, req domain.CommentUpdateRequest) (*domain.CommentResponse, error) {
	comment, err := s.repo.FindCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if err := s.checkCommentOwner(ctx, actor, comment); err != nil {
		return nil, err
	}

	text := comment.Text
	if req.Text != nil {
		text = trimPtr(req.Text)
	}
	imageURL := comment.ImageURL
	if req.ImageURL != nil {
		imageURL = trimPtr(req.ImageURL)
	}
	if text == nil && imageURL == nil {
		ve := validation.New()
		ve.Add("text", "text or image_url is required")
		return nil, ve.Err()
	}

	updated, err := s.repo.UpdateComment(ctx, id, func(row *domain.Comment) error {
		row.Text = text
		row.ImageURL = imageURL
		row.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toCommentResponse(updated)
	return &resp, nil
}

func (s *Service) DeleteComment(ctx context.Context, actor principal.Principal, id int64) error {
	comment, err := s.repo.FindCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrCommentNotFound
	}
	if err := s.checkCommentOwner(ctx, actor, comment); err != nil {
		return err
	}
	return s.repo.DeleteComment(ctx, id)
}

func (s *Service) checkCommentOwner(ctx context.Context, actor principal.Principal, comment *domain.Comment) error {
	review, err := s.repo.FindByID(ctx, comment.ReviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return domain.ErrNotFound
	}
	return ownership.Check(actor, review.UserID)
}

func (s *Service) toResponse(ctx context.Context, r *domain.Review) domain.Response {
	resp := domain.Response{
		ID:        snowflake.ID(r.ID).String(),
		Rating:    r.Rating,
		UserID:    snowflake.ID(r.UserID).String(),
		ProductID: snowflake.ID(r.ProductID).String(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if comment, err := s.repo.FindCommentByReview(ctx, r.ID); err == nil && comment != nil {
		c := toCommentResponse(comment)
		resp.Comment = &c
	}
	return resp
}

func toCommentResponse(c *domain.Comment) domain.CommentResponse {
	return domain.CommentResponse{
		ID:        snowflake.ID(c.ID).String(),
		Text:      c.Text,
		ImageURL:  c.ImageURL,
		ReviewID:  snowflake.ID(c.ReviewID).String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseID(ve *validation.Errors, field, raw string) (int64, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, "must be a valid id")
		return 0, false
	}
	return id.Int64(), true
}
