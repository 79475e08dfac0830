package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/mixlist/internal/models"
)

// --- MockDrinkProvider ---

// MockDrinkProvider is a mock implementation of cocktaildb.Provider.
type MockDrinkProvider struct {
	SearchDrinksFunc func(ctx context.Context, query string) ([]models.Drink, error)

	mu      sync.Mutex
	queries []string
}

func (m *MockDrinkProvider) SearchDrinks(ctx context.Context, query string) ([]models.Drink, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchDrinksFunc != nil {
		return m.SearchDrinksFunc(ctx, query)
	}
	return nil, fmt.Errorf("SearchDrinks not configured")
}

// Queries returns the queries looked up so far, in call order.
func (m *MockDrinkProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// CallCount returns how many lookups were issued.
func (m *MockDrinkProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}
