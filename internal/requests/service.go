package requests

import (
	"context"
	"strings"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Service implements the admin use cases for item requests. Requests do not
// feed the dashboard, so writes only refresh the catalog snapshot.
type Service struct {
	repo        Repository
	invalidator shared.Invalidator
}

// NewService constructs a Service. A nil invalidator is allowed.
func NewService(repo Repository, invalidator shared.Invalidator) *Service {
	if invalidator == nil {
		invalidator = shared.NopInvalidator{}
	}
	return &Service{repo: repo, invalidator: invalidator}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Request, int, error) {
	return s.repo.List(ctx, filters)
}

// All returns every request ordered by item name.
func (s *Service) All(ctx context.Context) ([]Request, error) {
	list, _, err := s.repo.List(ctx, shared.ListFilters{})
	return list, err
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	if strings.TrimSpace(id) == "" {
		return Request{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, draft Draft) (Request, error) {
	draft, err := s.validate(draft)
	if err != nil {
		return Request{}, err
	}
	req, err := s.repo.Create(ctx, draft)
	if err != nil {
		return Request{}, err
	}
	s.invalidator.Invalidate(ctx)
	return req, nil
}

func (s *Service) Update(ctx context.Context, id string, draft Draft) (Request, error) {
	if strings.TrimSpace(id) == "" {
		return Request{}, shared.ErrInvalidID
	}
	draft, err := s.validate(draft)
	if err != nil {
		return Request{}, err
	}
	req, err := s.repo.Update(ctx, id, draft)
	if err != nil {
		return Request{}, err
	}
	s.invalidator.Invalidate(ctx)
	return req, nil
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
	if draft.IntendedDailyRate != nil && draft.IntendedDailyRate.IsNegative() {
		return draft, shared.FieldError("pretende_pagar_diario", "must be at least 0")
	}
	return draft, nil
}
