package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/category/domain"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/db/pagination"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var orderColumns = map[string]bool{
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("category.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, actor principal.Principal, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.validateName(ctx, name, 0); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	category := &domain.Category{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	resp := toResponse(category)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	page := req.Pagination.Normalize()
	items, total, err := s.repo.List(ctx,
		option.WithOrder(req.OrderBy, req.Direction, orderColumns),
		option.WithLimit(page.Limit()),
		option.WithOffset(page.Offset()),
	)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	info := pagination.BuildPageInfo(page, total)
	return resp, &info, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(category)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor principal.Principal, id int64, req domain.UpdateRequest) (*domain.Response, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := s.validateName(ctx, name, id); err != nil {
			return nil, err
		}
		category.Name = name
	}

	updated, err := s.repo.Update(ctx, id, func(row *domain.Category) error {
		row.Name = category.Name
		row.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(updated)
	return &resp, nil
}

// Delete is blocked while products still reference the category, so a delete
// never silently cascades over listings.
func (s *Service) Delete(ctx context.Context, actor principal.Principal, id int64) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}

	products, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if err := ownership.NoChildren("products", products); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) validateName(ctx context.Context, name string, selfID int64) error {
	ve := validation.New()
	ve.Required("name", name)
	if len(name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}
	if err := ve.Err(); err != nil {
		return err
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		ve.Add("name", "has already been taken")
	}
	return ve.Err()
}

func toResponse(c *domain.Category) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(c.ID).String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
