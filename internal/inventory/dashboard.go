package inventory

import "context"

// Summary is the dashboard snapshot: collection counts plus the
// low-inventory state.
type Summary struct {
	Categories      int    `json:"categories"`
	Products        int    `json:"products"`
	Users           int    `json:"users"`
	LowStock        int    `json:"low_stock"`
	InventoryStatus string `json:"inventory_status"`
}

// Inventory status labels shown on the dashboard.
const (
	StatusInStock      = "In Stock"
	StatusLowInventory = "Low Inventory"
)

// Dashboard computes the summary in one pass over the collections.
func (s *Service) Dashboard(ctx context.Context) (Summary, error) {
	categories, _, err := s.categories.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	products, _, err := s.products.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	users, _, err := s.users.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	low := 0
	for _, p := range products {
		if p.LowStock(s.lowStock) {
			low++
		}
	}

	status := StatusInStock
	if low > 0 {
		status = StatusLowInventory
	}

	return Summary{
		Categories:      len(categories),
		Products:        len(products),
		Users:           len(users),
		LowStock:        low,
		InventoryStatus: status,
	}, nil
}
