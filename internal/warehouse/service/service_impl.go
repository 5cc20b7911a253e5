package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	"github.com/rahvarz/bazar/internal/warehouse/domain"
	"github.com/rahvarz/bazar/pkg/db/option"
	"github.com/rahvarz/bazar/pkg/db/pagination"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var orderColumns = map[string]bool{
	"amount":       true,
	"pure_price":   true,
	"payment_date": true,
	"expiry_date":  true,
	"created_at":   true,
	"updated_at":   true,
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
		log:         p.Log.Named("warehouse.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		productRepo: p.ProductRepo,
	}
}

func (s *Service) Create(ctx context.Context, actor principal.Principal, req domain.CreateRequest) (*domain.Response, error) {
	ve := validation.New()

	if req.PurePrice < 0 {
		ve.Add("pure_price", "must be greater than or equal to 0")
	}
	if req.Amount < 0 {
		ve.Add("amount", "must be greater than or equal to 0")
	}

	paymentDate, paymentOK := validation.ParseDate(ve, "payment_date", req.PaymentDate)
	expiryDate, expiryOK := validation.ParseDate(ve, "expiry_date", req.ExpiryDate)
	if paymentOK && expiryOK && expiryDate.Before(paymentDate) {
		ve.Add("expiry_date", "must be on or after payment_date")
	}

	var settlementDate *time.Time
	if req.SettlementDate != nil {
		if parsed, ok := validation.ParseDate(ve, "settlement_date", *req.SettlementDate); ok {
			settlementDate = &parsed
			if paymentOK && expiryOK {
				checkSettlementWindow(ve, parsed, paymentDate, expiryDate)
			}
		}
	}

	productID, productOK := parseID(ve, "product_id", req.ProductID)
	var product *productdomain.Product
	if productOK {
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
	warehouse := &domain.Warehouse{
		ID:             s.genID.Generate().Int64(),
		PurePrice:      req.PurePrice,
		Amount:         req.Amount,
		PaymentDate:    paymentDate,
		SettlementDate: settlementDate,
		ExpiryDate:     expiryDate,
		ProductID:      productID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}

	resp := toResponse(warehouse)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{ProductID: req.ProductID}, req)
}

func (s *Service) ListMine(ctx context.Context, actor principal.Principal, req domain.ListRequest) ([]domain.Response, *pagination.PageInfo, error) {
	return s.list(ctx, domain.ListFilter{ProductID: req.ProductID, OwnerID: actor.UserID}, req)
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
		resp = append(resp, toResponse(item))
	}
	info := pagination.BuildPageInfo(page, total)
	return resp, &info, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(warehouse)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor principal.Principal, id int64, req domain.UpdateRequest) (*domain.Response, error) {
	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.checkOwner(ctx, actor, warehouse.ProductID); err != nil {
		return nil, err
	}

	ve := validation.New()

	// Expiry is fixed at creation; any attempt to change it fails, whatever
	// else the payload carries.
	if req.ExpiryDate != nil {
		ve.Add("expiry_date", "cannot be changed after creation")
	}

	purePrice := warehouse.PurePrice
	if req.PurePrice != nil {
		purePrice = *req.PurePrice
		if purePrice < 0 {
			ve.Add("pure_price", "must be greater than or equal to 0")
		}
	}

	amount := warehouse.Amount
	if req.Amount != nil {
		amount = *req.Amount
		if amount < 0 {
			ve.Add("amount", "must be greater than or equal to 0")
		}
	}

	paymentDate := warehouse.PaymentDate
	if req.PaymentDate != nil {
		if parsed, ok := validation.ParseDate(ve, "payment_date", *req.PaymentDate); ok {
			paymentDate = parsed
			if warehouse.ExpiryDate.Before(parsed) {
				ve.Add("payment_date", "must be on or before expiry_date")
			}
			// A settled batch keeps its window intact: payment can never
			// slide past the stored settlement.
			if warehouse.SettlementDate != nil && warehouse.SettlementDate.Before(parsed) {
				ve.Add("payment_date", "must be on or before settlement_date")
			}
		}
	}

	settlementDate := warehouse.SettlementDate
	if req.SettlementDate != nil {
		if warehouse.SettlementDate != nil {
			ve.Add("settlement_date", "cannot be changed once set")
		} else if parsed, ok := validation.ParseDate(ve, "settlement_date", *req.SettlementDate); ok {
			// Validate against the effective expiry: the stored value, since
			// expiry cannot change in this call.
			checkSettlementWindow(ve, parsed, paymentDate, warehouse.ExpiryDate)
			settlementDate = &parsed
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(row *domain.Warehouse) error {
		row.PurePrice = purePrice
		row.Amount = amount
		row.PaymentDate = paymentDate
		row.SettlementDate = settlementDate
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
	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if err := s.checkOwner(ctx, actor, warehouse.ProductID); err != nil {
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

func checkSettlementWindow(ve *validation.Errors, settlement, payment, expiry time.Time) {
	if settlement.Before(payment) {
		ve.Add("settlement_date", "must be on or after payment_date")
	}
	if settlement.After(expiry) {
		ve.Add("settlement_date", "must be on or before expiry_date")
	}
}

func parseID(ve *validation.Errors, field, raw string) (int64, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, "must be a valid id")
		return 0, false
	}
	return id.Int64(), true
}

func toResponse(w *domain.Warehouse) domain.Response {
	resp := domain.Response{
		ID:          snowflake.ID(w.ID).String(),
		PurePrice:   w.PurePrice,
		Amount:      w.Amount,
		PaymentDate: w.PaymentDate.Format(validation.DateLayout),
		ExpiryDate:  w.ExpiryDate.Format(validation.DateLayout),
		ProductID:   snowflake.ID(w.ProductID).String(),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if w.SettlementDate != nil {
		formatted := w.SettlementDate.Format(validation.DateLayout)
		resp.SettlementDate = &formatted
	}
	return resp
}
