package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/expression/domain"
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
		log:         p.Log.Named("expression.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Set(ctx context.Context, actor principal.Principal, req domain.SetRequest) (*domain.Response, error) {
	ve := validation.New()

	var action *string
	if req.Action != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Action))
		switch normalized {
		case domain.ActionLike, domain.ActionDislike:
			action = &normalized
		case "":
			// cleared
		default:
			ve.Add("action", "must be like, dislike or empty")
		}
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

	existing, err := s.repo.FindByUserAndProduct(ctx, actor.UserID, productID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if existing == nil {
		expression := &domain.Expression{
			ID:        s.genID.Generate().Int64(),
			UserID:    actor.UserID,
			ProductID: productID,
			Action:    action,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, expression); err != nil {
			return nil, err
		}
		resp := toResponse(expression)
		return &resp, nil
	}

	updated, err := s.repo.Update(ctx, existing.ID, func(row *domain.Expression) error {
		row.Action = action
		row.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) GetMine(ctx context.Context, actor principal.Principal, productID int64) (*domain.Response, error) {
	existing, err := s.repo.FindByUserAndProduct(ctx, actor.UserID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(existing)
	return &resp, nil
}

func parseID(ve *validation.Errors, field, raw string) (int64, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, "must be a valid id")
		return 0, false
	}
	return id.Int64(), true
}

func toResponse(e *domain.Expression) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(e.ID).String(),
		UserID:    snowflake.ID(e.UserID).String(),
		ProductID: snowflake.ID(e.ProductID).String(),
		Action:    e.Action,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
