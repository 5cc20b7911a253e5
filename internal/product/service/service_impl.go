package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/rahvarz/bazar/internal/category/domain"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/internal/product/domain"
	"github.com/rahvarz/bazar/internal/product/view"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/db/pagination"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var orderColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"created_at": true,
	"updated_at": true,
}

type Params struct {
	fx.In

	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	CategoryRepo categorydomain.Repository
	Composer     *view.Composer
}

type Service struct {
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	categoryRepo categorydomain.Repository
	composer     *view.Composer
}

func New(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("product.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		categoryRepo: p.CategoryRepo,
		composer:     p.Composer,
	}
}

func (s *Service) Create(ctx context.Context, actor principal.Principal, req domain.CreateRequest) (*domain.View, error) {
	ve := validation.New()

	name := strings.TrimSpace(req.Name)
	ve.Required("name", name)
	if len(name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}
	if req.Price < 0 {
		ve.Add("price", "must be greater than or equal to 0")
	}

	categoryID, ok := parseID(ve, "category_id", req.CategoryID)
	if ok {
		category, err := s.categoryRepo.FindByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			ve.Add("category_id", "does not exist")
		}
	}

	if name != "" {
		existing, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ve.Add("name", "has already been taken")
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	product := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		CategoryID:  categoryID,
		UserID:      actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.composer.Compose(ctx, product, false)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.View, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{
		CategoryID: req.CategoryID,
		Name:       strings.TrimSpace(req.Name),
	}, req)
}

func (s *Service) ListMine(ctx context.Context, actor principal.Principal, req domain.ListRequest) ([]domain.View, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{
		OwnerID:    actor.UserID,
		CategoryID: req.CategoryID,
		Name:       strings.TrimSpace(req.Name),
	}, req)
}

func (s *Service) list(ctx context.Context, filter domain.ListFilter, req domain.ListRequest) ([]domain.View, *pagination.PageInfo, error) {
	page := req.Pagination.Normalize()
	items, total, err := s.repo.List(ctx, filter,
		option.WithOrder(req.OrderBy, req.Direction, orderColumns),
		option.WithLimit(page.Limit()),
		option.WithOffset(page.Offset()),
	)
	if err != nil {
		return nil, nil, err
	}

	views := make([]domain.View, 0, len(items))
	for _, item := range items {
		v, err := s.composer.Compose(ctx, item, false)
		if err != nil {
			return nil, nil, err
		}
		views = append(views, *v)
	}
	info := pagination.BuildPageInfo(page, total)
	return views, &info, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.View, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return s.composer.Compose(ctx, product, true)
}

func (s *Service) Update(ctx context.Context, actor principal.Principal, id int64, req domain.UpdateRequest) (*domain.View, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := ownership.Check(actor, product.UserID); err != nil {
		return nil, err
	}

	ve := validation.New()

	name := product.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		ve.Required("name", name)
		if len(name) > 255 {
			ve.Add("name", "must be at most 255 characters")
		}
		if name != "" && name != product.Name {
			existing, err := s.repo.FindByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				ve.Add("name", "has already been taken")
			}
		}
	}

	price := product.Price
	if req.Price != nil {
		price = *req.Price
		if price < 0 {
			ve.Add("price", "must be greater than or equal to 0")
		}
	}

	categoryID := product.CategoryID
	if req.CategoryID != nil {
		if parsed, ok := parseID(ve, "category_id", *req.CategoryID); ok {
			category, err := s.categoryRepo.FindByID(ctx, parsed)
			if err != nil {
				return nil, err
			}
			if category == nil {
				ve.Add("category_id", "does not exist")
			}
			categoryID = parsed
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(row *domain.Product) error {
		row.Name = name
		row.Price = price
		row.CategoryID = categoryID
		if req.Description != nil {
			row.Description = strings.TrimSpace(*req.Description)
		}
		row.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.composer.Compose(ctx, updated, false)
}

// Delete refuses while inventory batches remain, so stock must be wound down
// (or swept) before a listing disappears.
func (s *Service) Delete(ctx context.Context, actor principal.Principal, id int64) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	batches, err := s.repo.CountWarehouses(ctx, id)
	if err != nil {
		return err
	}
	if err := ownership.Check(actor, product.UserID); err != nil {
		return err
	}
	if err := ownership.NoChildren("inventory batches", batches); err != nil {
		return err
	}

	return s.repo.DeleteCascade(ctx, id)
}

func parseID(ve *validation.Errors, field, raw string) (int64, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, "must be a valid id")
		return 0, false
	}
	return id.Int64(), true
}
