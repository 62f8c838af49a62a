package catalog

import (
	"context"
	"strings"

	"github.com/razat249/tabletop-reboxing/internal/domain"
)

// maxSuggestions caps the search dropdown.
const maxSuggestions = 6

// Service is the read-side of the catalog. Hidden products never leave this
// layer.
type Service struct {
	repo RepoInterface
}

func NewService(repo RepoInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	return visible(products), nil
}

func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.GetProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return visible(products), nil
}

func (s *Service) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	var featured []domain.Product
	for _, p := range products {
		if p.Featured && !p.Hidden {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// Product looks up a single product. Hidden products report not found, same
// as ids that never existed.
func (s *Service) Product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Hidden {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.GetCategories(ctx)
}

// Suggest returns up to six products whose name or category contains the
// query, case-insensitively. An empty query suggests nothing.
func (s *Service) Suggest(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	products, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	var matches []domain.Product
	for _, p := range products {
		if p.Hidden {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			matches = append(matches, p)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches, nil
}

func visible(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}
