package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/contact/domain"
	"github.com/rahvarz/bazar/internal/ownership"
	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

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
		log:   p.Log.Named("contact.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, actor principal.Principal, req domain.CreateRequest) (*domain.Response, error) {
	ve := validation.New()
	link := strings.TrimSpace(req.Link)
	ve.Required("link", link)

	typeID, ok := parseID(ve, "contact_type_id", req.ContactTypeID)
	var contactType *domain.ContactType
	if ok {
		var err error
		contactType, err = s.repo.FindType(ctx, typeID)
		if err != nil {
			return nil, err
		}
		if contactType == nil {
			ve.Add("contact_type_id", "does not exist")
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	contact := &domain.Contact{
		ID:            s.genID.Generate().Int64(),
		Link:          link,
		ContactTypeID: typeID,
		UserID:        actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	resp := toResponse(contact, contactType)
	return &resp, nil
}

func (s *Service) ListMine(ctx context.Context, actor principal.Principal) ([]domain.Response, error) {
	items, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		contactType, err := s.repo.FindType(ctx, item.ContactTypeID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, toResponse(item, contactType))
	}
	return resp, nil
}

func (s *Service) ListTypes(ctx context.Context) ([]domain.TypeResponse, error) {
	items, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.TypeResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toTypeResponse(item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, actor principal.Principal, id int64, req domain.UpdateRequest) (*domain.Response, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	if err := ownership.Check(actor, contact.UserID); err != nil {
		return nil, err
	}

	ve := validation.New()
	link := contact.Link
	if req.Link != nil {
		link = strings.TrimSpace(*req.Link)
		ve.Required("link", link)
	}

	typeID := contact.ContactTypeID
	if req.ContactTypeID != nil {
		if parsed, ok := parseID(ve, "contact_type_id", *req.ContactTypeID); ok {
			existing, err := s.repo.FindType(ctx, parsed)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				ve.Add("contact_type_id", "does not exist")
			}
			typeID = parsed
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(row *domain.Contact) error {
		row.Link = link
		row.ContactTypeID = typeID
		row.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	contactType, err := s.repo.FindType(ctx, updated.ContactTypeID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(updated, contactType)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor principal.Principal, id int64) error {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.ErrNotFound
	}
	if err := ownership.Check(actor, contact.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func parseID(ve *validation.Errors, field, raw string) (int64, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		ve.Add(field, "must be a valid id")
		return 0, false
	}
	return id.Int64(), true
}

func toResponse(c *domain.Contact, t *domain.ContactType) domain.Response {
	resp := domain.Response{
		ID:        snowflake.ID(c.ID).String(),
		Link:      c.Link,
		UserID:    snowflake.ID(c.UserID).String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if t != nil {
		resp.Type = toTypeResponse(t)
	}
	return resp
}

func toTypeResponse(t *domain.ContactType) domain.TypeResponse {
	return domain.TypeResponse{
		ID:     snowflake.ID(t.ID).String(),
		NameEN: t.NameEN,
		NameFA: t.NameFA,
	}
}
