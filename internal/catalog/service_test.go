package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/razat249/tabletop-reboxing/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	products   []domain.Product
	categories []domain.Category
	err        error
}

func (s *stubRepo) GetAllProducts(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubRepo) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *stubRepo) GetProductsByCategory(_ context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, s.err
}

func (s *stubRepo) GetCategories(context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubRepo) Close() error              { return nil }
func (s *stubRepo) RunMigrations(string) error { return nil }

func catalogFixture() *stubRepo {
	return &stubRepo{
		products: []domain.Product{
			{ID: "meeple-set", Name: "Painted Meeple Set", Category: "Meeples & Tokens", Price: 450, Featured: true},
			{ID: "dice-tray", Name: "Hexagon Dice Tray", Category: "Dice & Trays", Price: 700, Featured: true},
			{ID: "dice-tower", Name: "Compact Dice Tower", Category: "Dice & Trays", Price: 850},
			{ID: "proto", Name: "Prototype Dice Cup", Category: "Dice & Trays", Price: 999, Hidden: true},
		},
	}
}

func TestListProducts_FiltersHidden(t *testing.T) {
	svc := NewService(catalogFixture())

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.False(t, p.Hidden)
	}
}

func TestProduct_HiddenReportsNotFound(t *testing.T) {
	svc := NewService(catalogFixture())
	ctx := context.Background()

	p, err := svc.Product(ctx, "dice-tray")
	require.NoError(t, err)
	assert.Equal(t, "Hexagon Dice Tray", p.Name)

	_, err = svc.Product(ctx, "proto")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFeaturedProducts(t *testing.T) {
	svc := NewService(catalogFixture())

	featured, err := svc.FeaturedProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured, 2)
}

func TestSuggest_MatchesNameAndCategory(t *testing.T) {
	svc := NewService(catalogFixture())
	ctx := context.Background()

	byName, err := svc.Suggest(ctx, "tray")
	require.NoError(t, err)
	require.Len(t, byName, 2) // "Hexagon Dice Tray" by name, "Dice & Trays" category for the tower
	assert.Equal(t, "dice-tray", byName[0].ID)

	byCategory, err := svc.Suggest(ctx, "MEEPLE")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "meeple-set", byCategory[0].ID)
}

func TestSuggest_SkipsHiddenAndEmptyQuery(t *testing.T) {
	svc := NewService(catalogFixture())
	ctx := context.Background()

	results, err := svc.Suggest(ctx, "prototype")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Suggest(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSuggest_CapsAtSix(t *testing.T) {
	repo := &stubRepo{}
	for i := 0; i < 10; i++ {
		repo.products = append(repo.products, domain.Product{
			ID:       fmt.Sprintf("tray-%d", i),
			Name:     fmt.Sprintf("Dice Tray %d", i),
			Category: "Dice & Trays",
		})
	}
	svc := NewService(repo)

	results, err := svc.Suggest(context.Background(), "tray")
	require.NoError(t, err)
	assert.Len(t, results, 6)
}
