package api

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"swiftcart-backend/internal/cache"
	"swiftcart-backend/internal/domain"
	"swiftcart-backend/internal/repository"
	"swiftcart-backend/internal/stats"
)

type StatsHandler struct {
	products repository.ProductRepository
	users    repository.UserRepository
	orders   repository.OrderRepository
	cache    *cache.Service
}

func NewStatsHandler(
	products repository.ProductRepository,
	users repository.UserRepository,
	orders repository.OrderRepository,
	cache *cache.Service,
) *StatsHandler {
	return &StatsHandler{products: products, users: users, orders: orders, cache: cache}
}

// Field names below, misspellings included, are the dashboard client's wire
// contract.

type changePercentage struct {
	Revenue float64 `json:"revenue"`
	Product float64 `json:"product"`
	User    float64 `json:"user"`
	Order   float64 `json:"order"`
}

type countSummary struct {
	Revenue float64 `json:"revenue"`
	User    int64   `json:"user"`
	Product int64   `json:"product"`
	Order   int     `json:"order"`
}

type chartSeries struct {
	Order   []float64 `json:"order"`
	Revenue []float64 `json:"revenue"`
}

type userRatio struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

type latestTransaction struct {
	ID       primitive.ObjectID `json:"_id"`
	Discount float64            `json:"discount"`
	Amount   float64            `json:"amount"`
	Quantity int                `json:"quantity"`
	Status   string             `json:"status"`
}

type dashboardStats struct {
	CategoryCount      []map[string]int    `json:"categoryCount"`
	ChangePercentage   changePercentage    `json:"changePercentage"`
	Count              countSummary        `json:"count"`
	Chart              chartSeries         `json:"chart"`
	UserRatio          userRatio           `json:"userRatio"`
	LatestTransactions []latestTransaction `json:"latestTransactions"`
}

type orderFulfillment struct {
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
}

type stockAvailability struct {
	InStock    int64 `json:"inStock"`
	OutOfStock int64 `json:"outOfStock"`
}

type revenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

type usersAgeGroup struct {
	Teen  int `json:"teen"`
	Adult int `json:"adult"`
	Old   int `json:"old"`
}

type adminCustomer struct {
	Admin    int64 `json:"admin"`
	Customer int64 `json:"customer"`
}

type pieCharts struct {
	OrderFulfillment    orderFulfillment    `json:"orderFullfillment"`
	ProductCategories   []map[string]int    `json:"productCategories"`
	StockAvailability   stockAvailability   `json:"stockAvailibility"`
	RevenueDistribution revenueDistribution `json:"revenueDistribution"`
	AdminCustomer       adminCustomer       `json:"adminCustomer"`
	UsersAgeGroup       usersAgeGroup       `json:"usersAgeGroup"`
}

type barCharts struct {
	Users    []float64 `json:"users"`
	Products []float64 `json:"products"`
	Orders   []float64 `json:"orders"`
}

type lineCharts struct {
	Users    []float64 `json:"users"`
	Products []float64 `json:"products"`
	Discount []float64 `json:"discount"`
	Revenue  []float64 `json:"revenue"`
}

// GetDashboardStats serves the composed dashboard aggregate, recomputing at
// most once per concurrent burst of cache misses.
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	var result dashboardStats
	if !h.cache.TryGet(cache.KeyAdminStats, &result) {
		v, err := h.cache.Do(cache.KeyAdminStats, func() (interface{}, error) {
			computed, err := h.computeDashboardStats(c.Request.Context())
			if err != nil {
				return dashboardStats{}, err
			}
			h.cache.SetJSON(cache.KeyAdminStats, computed)
			return computed, nil
		})
		if err != nil {
			respondError(c, err)
			return
		}
		result = v.(dashboardStats)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": result})
}

func (h *StatsHandler) computeDashboardStats(ctx context.Context) (dashboardStats, error) {
	today := time.Now()
	sixMonthsAgo := today.AddDate(0, -6, 0)

	thisMonthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastMonthStart := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, today.Location())
	lastMonthEnd := time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, today.Location())

	var (
		thisMonthProducts, lastMonthProducts int64
		thisMonthUsers, lastMonthUsers       int64
		thisMonthOrders, lastMonthOrders     []domain.Order
		productsCount, usersCount            int64
		allOrders, lastSixMonthOrders        []domain.Order
		categories                           []string
		femaleUsers                          int64
		latestOrders                         []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		thisMonthProducts, err = h.products.CountCreatedBetween(gctx, thisMonthStart, today)
		return
	})
	g.Go(func() (err error) {
		lastMonthProducts, err = h.products.CountCreatedBetween(gctx, lastMonthStart, lastMonthEnd)
		return
	})
	g.Go(func() (err error) {
		thisMonthUsers, err = h.users.CountCreatedBetween(gctx, thisMonthStart, today)
		return
	})
	g.Go(func() (err error) {
		lastMonthUsers, err = h.users.CountCreatedBetween(gctx, lastMonthStart, lastMonthEnd)
		return
	})
	g.Go(func() (err error) {
		thisMonthOrders, err = h.orders.FindCreatedBetween(gctx, thisMonthStart, today)
		return
	})
	g.Go(func() (err error) {
		lastMonthOrders, err = h.orders.FindCreatedBetween(gctx, lastMonthStart, lastMonthEnd)
		return
	})
	g.Go(func() (err error) {
		productsCount, err = h.products.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		usersCount, err = h.users.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		allOrders, err = h.orders.FindAll(gctx)
		return
	})
	g.Go(func() (err error) {
		lastSixMonthOrders, err = h.orders.FindCreatedBetween(gctx, sixMonthsAgo, today)
		return
	})
	g.Go(func() (err error) {
		categories, err = h.products.Categories(gctx)
		return
	})
	g.Go(func() (err error) {
		femaleUsers, err = h.users.CountByGender(gctx, "female")
		return
	})
	g.Go(func() (err error) {
		latestOrders, err = h.orders.FindLatest(gctx, 4)
		return
	})
	if err := g.Wait(); err != nil {
		return dashboardStats{}, err
	}

	thisMonthRevenue := sumOrderTotals(thisMonthOrders)
	lastMonthRevenue := sumOrderTotals(lastMonthOrders)
	revenue := sumOrderTotals(allOrders)

	categoryCount, err := stats.Inventories(ctx, h.products, categories, productsCount)
	if err != nil {
		return dashboardStats{}, err
	}

	transactions := make([]latestTransaction, 0, len(latestOrders))
	for _, order := range latestOrders {
		transactions = append(transactions, latestTransaction{
			ID:       order.ID,
			Discount: order.Discount,
			Amount:   order.Total,
			Quantity: len(order.OrderItems),
			Status:   order.Status,
		})
	}

	return dashboardStats{
		CategoryCount: categoryCount,
		ChangePercentage: changePercentage{
			Revenue: stats.CalculatePercentage(thisMonthRevenue, lastMonthRevenue),
			Product: stats.CalculatePercentage(float64(thisMonthProducts), float64(lastMonthProducts)),
			User:    stats.CalculatePercentage(float64(thisMonthUsers), float64(lastMonthUsers)),
			Order:   stats.CalculatePercentage(float64(len(thisMonthOrders)), float64(len(lastMonthOrders))),
		},
		Count: countSummary{
			Revenue: revenue,
			User:    usersCount,
			Product: productsCount,
			Order:   len(allOrders),
		},
		Chart: chartSeries{
			Order:   stats.ChartData(6, today, orderDocs(lastSixMonthOrders, countValue)),
			Revenue: stats.ChartData(6, today, orderDocs(lastSixMonthOrders, orderTotal)),
		},
		UserRatio: userRatio{
			Male:   usersCount - femaleUsers,
			Female: femaleUsers,
		},
		LatestTransactions: transactions,
	}, nil
}

func (h *StatsHandler) GetPieCharts(c *gin.Context) {
	var result pieCharts
	if !h.cache.TryGet(cache.KeyAdminPieCharts, &result) {
		v, err := h.cache.Do(cache.KeyAdminPieCharts, func() (interface{}, error) {
			computed, err := h.computePieCharts(c.Request.Context())
			if err != nil {
				return pieCharts{}, err
			}
			h.cache.SetJSON(cache.KeyAdminPieCharts, computed)
			return computed, nil
		})
		if err != nil {
			respondError(c, err)
			return
		}
		result = v.(pieCharts)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "charts": result})
}

func (h *StatsHandler) computePieCharts(ctx context.Context) (pieCharts, error) {
	var (
		processing, shipped, delivered int64
		categories                     []string
		productsCount, outOfStock      int64
		allOrders                      []domain.Order
		allUsers                       []domain.User
		adminUsers, customerUsers      int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		processing, err = h.orders.CountByStatus(gctx, domain.StatusProcessing)
		return
	})
	g.Go(func() (err error) {
		shipped, err = h.orders.CountByStatus(gctx, domain.StatusShipped)
		return
	})
	g.Go(func() (err error) {
		delivered, err = h.orders.CountByStatus(gctx, domain.StatusDelivered)
		return
	})
	g.Go(func() (err error) {
		categories, err = h.products.Categories(gctx)
		return
	})
	g.Go(func() (err error) {
		productsCount, err = h.products.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		outOfStock, err = h.products.CountOutOfStock(gctx)
		return
	})
	g.Go(func() (err error) {
		allOrders, err = h.orders.FindAll(gctx)
		return
	})
	g.Go(func() (err error) {
		allUsers, err = h.users.FindAll(gctx)
		return
	})
	g.Go(func() (err error) {
		adminUsers, err = h.users.CountByRole(gctx, domain.RoleAdmin)
		return
	})
	g.Go(func() (err error) {
		customerUsers, err = h.users.CountByRole(gctx, domain.RoleUser)
		return
	})
	if err := g.Wait(); err != nil {
		return pieCharts{}, err
	}

	productCategories, err := stats.Inventories(ctx, h.products, categories, productsCount)
	if err != nil {
		return pieCharts{}, err
	}

	var grossIncome, discount, productionCost, burnt float64
	for _, order := range allOrders {
		grossIncome += order.Total
		discount += order.Discount
		productionCost += order.ShippingCharges
		burnt += order.Tax
	}
	marketingCost := math.Round(grossIncome * (30.0 / 100))
	netMargin := grossIncome - discount - productionCost - burnt - marketingCost

	now := time.Now()
	var ages usersAgeGroup
	for _, user := range allUsers {
		switch age := user.Age(now); {
		case age < 20:
			ages.Teen++
		case age < 40:
			ages.Adult++
		default:
			ages.Old++
		}
	}

	return pieCharts{
		OrderFulfillment: orderFulfillment{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: productCategories,
		StockAvailability: stockAvailability{
			InStock:    productsCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: revenueDistribution{
			NetMargin:      netMargin,
			Discount:       discount,
			ProductionCost: productionCost,
			Burnt:          burnt,
			MarketingCost:  marketingCost,
		},
		AdminCustomer: adminCustomer{
			Admin:    adminUsers,
			Customer: customerUsers,
		},
		UsersAgeGroup: ages,
	}, nil
}

func (h *StatsHandler) GetBarCharts(c *gin.Context) {
	var result barCharts
	if !h.cache.TryGet(cache.KeyAdminBarCharts, &result) {
		v, err := h.cache.Do(cache.KeyAdminBarCharts, func() (interface{}, error) {
			computed, err := h.computeBarCharts(c.Request.Context())
			if err != nil {
				return barCharts{}, err
			}
			h.cache.SetJSON(cache.KeyAdminBarCharts, computed)
			return computed, nil
		})
		if err != nil {
			respondError(c, err)
			return
		}
		result = v.(barCharts)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "charts": result})
}

func (h *StatsHandler) computeBarCharts(ctx context.Context) (barCharts, error) {
	today := time.Now()
	sixMonthsAgo := today.AddDate(0, -6, 0)
	twelveMonthsAgo := today.AddDate(0, -12, 0)

	var (
		products []domain.Product
		users    []domain.User
		orders   []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = h.products.FindCreatedBetween(gctx, sixMonthsAgo, today)
		return
	})
	g.Go(func() (err error) {
		users, err = h.users.FindCreatedBetween(gctx, sixMonthsAgo, today)
		return
	})
	g.Go(func() (err error) {
		orders, err = h.orders.FindCreatedBetween(gctx, twelveMonthsAgo, today)
		return
	})
	if err := g.Wait(); err != nil {
		return barCharts{}, err
	}

	return barCharts{
		Users:    stats.ChartData(6, today, userDocs(users)),
		Products: stats.ChartData(6, today, productDocs(products)),
		Orders:   stats.ChartData(12, today, orderDocs(orders, countValue)),
	}, nil
}

func (h *StatsHandler) GetLineCharts(c *gin.Context) {
	var result lineCharts
	if !h.cache.TryGet(cache.KeyAdminLineCharts, &result) {
		v, err := h.cache.Do(cache.KeyAdminLineCharts, func() (interface{}, error) {
			computed, err := h.computeLineCharts(c.Request.Context())
			if err != nil {
				return lineCharts{}, err
			}
			h.cache.SetJSON(cache.KeyAdminLineCharts, computed)
			return computed, nil
		})
		if err != nil {
			respondError(c, err)
			return
		}
		result = v.(lineCharts)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "charts": result})
}

func (h *StatsHandler) computeLineCharts(ctx context.Context) (lineCharts, error) {
	today := time.Now()
	twelveMonthsAgo := today.AddDate(0, -12, 0)

	var (
		products []domain.Product
		users    []domain.User
		orders   []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = h.products.FindCreatedBetween(gctx, twelveMonthsAgo, today)
		return
	})
	g.Go(func() (err error) {
		users, err = h.users.FindCreatedBetween(gctx, twelveMonthsAgo, today)
		return
	})
	g.Go(func() (err error) {
		orders, err = h.orders.FindCreatedBetween(gctx, twelveMonthsAgo, today)
		return
	})
	if err := g.Wait(); err != nil {
		return lineCharts{}, err
	}

	return lineCharts{
		Users:    stats.ChartData(12, today, userDocs(users)),
		Products: stats.ChartData(12, today, productDocs(products)),
		Discount: stats.ChartData(12, today, orderDocs(orders, orderDiscount)),
		Revenue:  stats.ChartData(12, today, orderDocs(orders, orderTotal)),
	}, nil
}

func sumOrderTotals(orders []domain.Order) float64 {
	var total float64
	for _, order := range orders {
		total += order.Total
	}
	return total
}

func countValue(domain.Order) float64      { return 1 }
func orderTotal(o domain.Order) float64    { return o.Total }
func orderDiscount(o domain.Order) float64 { return o.Discount }

func orderDocs(orders []domain.Order, value func(domain.Order) float64) []stats.ChartDoc {
	docs := make([]stats.ChartDoc, 0, len(orders))
	for _, order := range orders {
		docs = append(docs, stats.ChartDoc{CreatedAt: order.CreatedAt, Value: value(order)})
	}
	return docs
}

func productDocs(products []domain.Product) []stats.ChartDoc {
	docs := make([]stats.ChartDoc, 0, len(products))
	for _, product := range products {
		docs = append(docs, stats.ChartDoc{CreatedAt: product.CreatedAt, Value: 1})
	}
	return docs
}

func userDocs(users []domain.User) []stats.ChartDoc {
	docs := make([]stats.ChartDoc, 0, len(users))
	for _, user := range users {
		docs = append(docs, stats.ChartDoc{CreatedAt: user.CreatedAt, Value: 1})
	}
	return docs
}
