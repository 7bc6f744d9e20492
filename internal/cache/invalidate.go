package cache

// InvalidateOptions flags which entity changed. Ids narrow the per-document
// keys; the boolean flags select the key families to drop.
type InvalidateOptions struct {
	Product bool
	Order   bool
	Admin   bool

	UserID    string
	OrderID   string
	ProductID string
}

// Invalidate drops every cache entry the mutation made stale. It runs
// synchronously inside the mutating handler, so the next read recomputes.
func (s *Service) Invalidate(opts InvalidateOptions) {
	if opts.Product {
		keys := []string{KeyLatestProducts, KeyCategories, KeyAllProducts}
		if opts.ProductID != "" {
			keys = append(keys, KeyProduct(opts.ProductID))
		}
		s.Delete(keys...)
	}

	if opts.Order {
		keys := []string{KeyAllOrders}
		if opts.UserID != "" {
			keys = append(keys, KeyMyOrders(opts.UserID))
		}
		if opts.OrderID != "" {
			keys = append(keys, KeyOrder(opts.OrderID))
		}
		s.Delete(keys...)
	}

	if opts.Admin {
		s.Delete(KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts)
	}
}
