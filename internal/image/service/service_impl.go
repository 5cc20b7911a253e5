package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/image/domain"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

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
		log:         p.Log.Named("image.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, actor principal.Principal, req domain.CreateRequest) (*domain.Response, error) {
	ve := validation.New()
	url := strings.TrimSpace(req.URL)
	ve.Required("url", url)

	productID, ok := parseID(ve, "product_id", req.ProductID)
	var product *productdomain.Product
	if ok {
		var err error
		product, err = s.productRepo.FindByID(ctx, productID)
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
	if err := ownership.Check(actor, product.UserID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	image := &domain.Image{
		ID:        s.genID.Generate().Int64(),
		URL:       url,
		IsMain:    req.IsMain,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, err
	}

	resp := toResponse(image)
	return &resp, nil
}

func (s *Service) ListByProduct(ctx context.Context, productID int64) ([]domain.Response, error) {
	items, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, actor principal.Principal, id int64, req domain.UpdateRequest) (*domain.Response, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.checkOwner(ctx, actor, image.ProductID); err != nil {
		return nil, err
	}

	ve := validation.New()
	url := image.URL
	if req.URL != nil {
		url = strings.TrimSpace(*req.URL)
		ve.Required("url", url)
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(row *domain.Image) error {
		row.URL = url
		if req.IsMain != nil {
			row.IsMain = *req.IsMain
		}
		row.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor principal.Principal, id int64) error {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if image == nil {
		return domain.ErrNotFound
	}
	if err := s.checkOwner(ctx, actor, image.ProductID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkOwner(ctx context.Context, actor principal.Principal, productID int64) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return ownership.Check(actor, product.UserID)
}

func parseID(ve *validation.Errors, field, raw string) (int64, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, "must be a valid id")
		return 0, false
	}
	return id.Int64(), true
}

func toResponse(i *domain.Image) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(i.ID).String(),
		URL:       i.URL,
		IsMain:    i.IsMain,
		ProductID: snowflake.ID(i.ProductID).String(),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
