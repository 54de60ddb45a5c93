package rentals

import (
	"context"
	"strings"
	"time"

	"github.com/rentbrasil/rentbrasil/internal/pricing"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Service implements the admin use cases for rentals.
type Service struct {
	repo        Repository
	loc         *time.Location
	invalidator shared.Invalidator
}

// NewService constructs a Service. A nil invalidator is allowed.
func NewService(repo Repository, loc *time.Location, invalidator shared.Invalidator) *Service {
	if invalidator == nil {
		invalidator = shared.NopInvalidator{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, loc: loc, invalidator: invalidator}
}

// List returns enriched admin rows, newest first.
func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]View, int, error) {
	list, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	return EnrichAll(list), total, nil
}

// All returns every rental joined with its item and tenant.
func (s *Service) All(ctx context.Context) ([]Rental, error) {
	list, _, err := s.repo.List(ctx, shared.ListFilters{})
	return list, err
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	if strings.TrimSpace(id) == "" {
		return View{}, shared.ErrInvalidID
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return Enrich(r), nil
}

func (s *Service) Create(ctx context.Context, draft Draft) (View, error) {
	draft, err := s.validate(draft)
	if err != nil {
		return View{}, err
	}
	r, err := s.repo.Create(ctx, draft)
	if err != nil {
		return View{}, err
	}
	s.invalidator.Invalidate(ctx)
	return Enrich(r), nil
}

func (s *Service) Update(ctx context.Context, id string, draft Draft) (View, error) {
	if strings.TrimSpace(id) == "" {
		return View{}, shared.ErrInvalidID
	}
	draft, err := s.validate(draft)
	if err != nil {
		return View{}, err
	}
	r, err := s.repo.Update(ctx, id, draft)
	if err != nil {
		return View{}, err
	}
	s.invalidator.Invalidate(ctx)
	return Enrich(r), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx)
	return nil
}

func (s *Service) validate(draft Draft) (Draft, error) {
	draft = draft.normalized()
	if err := shared.Validate(draft); err != nil {
		return draft, err
	}
	start, err := pricing.ParseDate(draft.StartDate, s.loc)
	if err != nil {
		return draft, shared.FieldError("data_inicio", "must be a YYYY-MM-DD date")
	}
	end, err := pricing.ParseDate(draft.EndDate, s.loc)
	if err != nil {
		return draft, shared.FieldError("data_fim", "must be a YYYY-MM-DD date")
	}
	if end.Before(start) {
		return draft, shared.FieldError("data_fim", "must not be before data_inicio")
	}
	return draft, nil
}
