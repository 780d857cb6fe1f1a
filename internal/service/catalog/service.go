package catalog

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	itemrepo "storefront/internal/repository/item"
)

type Service struct {
	repo itemrepo.Repository
}

func New(repo itemrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// AddInput mirrors the admin item creation payload. Image is a URL
// reference; files themselves are not stored here.
type AddInput struct {
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Add creates (or refreshes) a catalog item.
func (s *Service) Add(ctx context.Context, in AddInput) (*domain.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	if in.PriceCents <= 0 {
		return nil, errors.New("price must be positive")
	}
	return s.repo.Upsert(ctx, domain.Item{
		Name:        name,
		PriceCents:  in.PriceCents,
		Image:       strings.TrimSpace(in.Image),
		Description: in.Description,
	})
}
