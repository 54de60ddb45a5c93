package condominiums

import (
	"context"
	"strings"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

// Service implements the admin use cases for condominiums.
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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Condominium, int, error) {
	return s.repo.List(ctx, filters)
}

// All returns every condominium, ordered by name.
func (s *Service) All(ctx context.Context) ([]Condominium, error) {
	list, _, err := s.repo.List(ctx, shared.ListFilters{})
	return list, err
}

func (s *Service) Get(ctx context.Context, id string) (Condominium, error) {
	if strings.TrimSpace(id) == "" {
		return Condominium{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, draft Draft) (Condominium, error) {
	draft = draft.normalized()
	if err := shared.Validate(draft); err != nil {
		return Condominium{}, err
	}
	p, err := s.repo.Create(ctx, draft)
	if err != nil {
		return Condominium{}, err
	}
	s.invalidator.Invalidate(ctx)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, draft Draft) (Condominium, error) {
	if strings.TrimSpace(id) == "" {
		return Condominium{}, shared.ErrInvalidID
	}
	draft = draft.normalized()
	if err := shared.Validate(draft); err != nil {
		return Condominium{}, err
	}
	p, err := s.repo.Update(ctx, id, draft)
	if err != nil {
		return Condominium{}, err
	}
	s.invalidator.Invalidate(ctx)
	return p, nil
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
