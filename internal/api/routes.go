package api

import "github.com/gin-gonic/gin"

// RegisterRoutes wires every handler under /api/v1 and exposes the upload
// directory as static files.
func RegisterRoutes(
	r *gin.Engine,
	products *ProductHandler,
	users *UserHandler,
	orders *OrderHandler,
	dashboard *StatsHandler,
	adminOnly gin.HandlerFunc,
	uploadDir string,
) {
	v1 := r.Group("/api/v1")

	user := v1.Group("/user")
	{
		user.POST("/new", users.Create)
		user.GET("/all", adminOnly, users.GetAll)
		user.GET("/:id", users.Get)
		user.DELETE("/:id", adminOnly, users.Delete)
	}

	product := v1.Group("/product")
	{
		product.POST("/new", adminOnly, products.Create)
		product.GET("/all", products.GetAll)
		product.GET("/latest", products.GetLatest)
		product.GET("/categories", products.GetCategories)
		product.GET("/admin-products", adminOnly, products.GetAdminProducts)
		product.GET("/:id", products.GetProduct)
		product.PUT("/:id", adminOnly, products.Update)
		product.DELETE("/:id", adminOnly, products.Delete)
	}

	order := v1.Group("/order")
	{
		order.POST("/new", orders.Create)
		order.GET("/my", orders.GetMy)
		order.GET("/all", adminOnly, orders.GetAll)
		order.GET("/:id", orders.Get)
		order.PUT("/:id", adminOnly, orders.Process)
		order.DELETE("/:id", adminOnly, orders.Delete)
	}

	stats := v1.Group("/dashboard", adminOnly)
	{
		stats.GET("/stats", dashboard.GetDashboardStats)
		stats.GET("/pie", dashboard.GetPieCharts)
		stats.GET("/bar", dashboard.GetBarCharts)
		stats.GET("/line", dashboard.GetLineCharts)
	}

	r.Static("/uploads", uploadDir)
}
