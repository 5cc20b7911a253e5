package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/offer/domain"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/db/pagination"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var orderColumns = map[string]bool{
	"discount_percentage": true,
	"start_date":          true,
	"end_date":            true,
	"created_at":          true,
	"updated_at":          true,
}

type Params struct {
	fx.In

	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	WarehouseRepo warehousedomain.Repository
	ProductRepo   productdomain.Repository
}

type Service struct {
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	warehouseRepo warehousedomain.Repository
	productRepo   productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:           p.Log.Named("offer.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		warehouseRepo: p.WarehouseRepo,
		productRepo:   p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, actor principal.Principal, req domain.CreateRequest) (*domain.Response, error) {
	ve := validation.New()

	if req.DiscountPercentage < 0 || req.DiscountPercentage > domain.MaxDiscountPercentage {
		ve.Add("discount_percentage", "must be between 0 and 99.99")
	}

	startDate, startOK := validation.ParseDate(ve, "start_date", req.StartDate)
	endDate, endOK := validation.ParseDate(ve, "end_date", req.EndDate)
	if startOK && endOK && endDate.Before(startDate) {
		ve.Add("end_date", "must be on or after start_date")
	}

	warehouseID, warehouseOK := parseID(ve, "warehouse_id", req.WarehouseID)
	var warehouse *warehousedomain.Warehouse
	if warehouseOK {
		var err error
		warehouse, err = s.warehouseRepo.FindByID(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			ve.Add("warehouse_id", "does not exist")
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, actor, warehouse.ProductID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	offer := &domain.Offer{
		ID:                 s.genID.Generate().Int64(),
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          startDate,
		EndDate:            endDate,
		WarehouseID:        warehouseID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, err
	}

	resp := toResponse(offer)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{WarehouseID: req.WarehouseID}, req)
}

func (s *Service) ListMine(ctx context.Context, actor principal.Principal, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{WarehouseID: req.WarehouseID, OwnerID: actor.UserID}, req)
}

func (s *Service) list(ctx context.Context, filter domain.ListFilter, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	if req.ActiveOnly {
		today := s.clock.Now().Truncate(24 * time.Hour)
		filter.EndsOnOrAfter = &today
	}

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
		resp = append(resp, toResponse(item))
	}
	info := pagination.BuildPageInfo(page, total)
	return resp, &info, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(offer)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor principal.Principal, id int64, req domain.UpdateRequest) (*domain.Response, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.checkOwnerOfWarehouse(ctx, actor, offer.WarehouseID); err != nil {
		return nil, err
	}

	ve := validation.New()

	discount := offer.DiscountPercentage
	if req.DiscountPercentage != nil {
		discount = *req.DiscountPercentage
		if discount < 0 || discount > domain.MaxDiscountPercentage {
			ve.Add("discount_percentage", "must be between 0 and 99.99")
		}
	}

	startDate := offer.StartDate
	if req.StartDate != nil {
		if parsed, ok := validation.ParseDate(ve, "start_date", *req.StartDate); ok {
			startDate = parsed
		}
	}

	endDate := offer.EndDate
	if req.EndDate != nil {
		if parsed, ok := validation.ParseDate(ve, "end_date", *req.EndDate); ok {
			endDate = parsed
		}
	}

	if endDate.Before(startDate) {
		ve.Add("end_date", "must be on or after start_date")
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(row *domain.Offer) error {
		row.DiscountPercentage = discount
		row.StartDate = startDate
		row.EndDate = endDate
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
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if offer == nil {
		return domain.ErrNotFound
	}
	if err := s.checkOwnerOfWarehouse(ctx, actor, offer.WarehouseID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Offers are owned through their batch's product; resolve the chain with
// explicit fetches.
func (s *Service) checkOwnerOfWarehouse(ctx context.Context, actor principal.Principal, warehouseID int64) error {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	return s.checkOwner(ctx, actor, warehouse.ProductID)
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

func toResponse(o *domain.Offer) domain.Response {
	return domain.Response{
		ID:                 snowflake.ID(o.ID).String(),
		DiscountPercentage: o.DiscountPercentage,
		Percentage:         strconv.FormatFloat(o.DiscountPercentage, 'f', -1, 64) + "%",
		StartDate:          o.StartDate.Format(validation.DateLayout),
		EndDate:            o.EndDate.Format(validation.DateLayout),
		WarehouseID:        snowflake.ID(o.WarehouseID).String(),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
