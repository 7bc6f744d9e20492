package cache

// Cache keys live in one place so handlers and the invalidation policy
// cannot drift apart.
const (
	KeyLatestProducts = "latest-products"
	KeyCategories     = "categories"
	KeyAllProducts    = "all-products"

	KeyAllOrders = "all-orders"

	KeyAdminStats      = "admin-stats"
	KeyAdminPieCharts  = "admin-pie-charts"
	KeyAdminBarCharts  = "admin-bar-charts"
	KeyAdminLineCharts = "admin-line-charts"
)

func KeyProduct(id string) string { return "product-" + id }

func KeyOrder(id string) string { return "order-" + id }

func KeyMyOrders(userID string) string { return "my-orders-" + userID }
