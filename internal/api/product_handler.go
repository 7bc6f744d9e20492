package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftcart-backend/internal/cache"
	"swiftcart-backend/internal/domain"
	"swiftcart-backend/internal/repository"
)

const latestProductLimit = 5

type ProductHandler struct {
	products  repository.ProductRepository
	cache     *cache.Service
	uploadDir string
	perPage   int
}

func NewProductHandler(products repository.ProductRepository, cache *cache.Service, uploadDir string, perPage int) *ProductHandler {
	return &ProductHandler{products: products, cache: cache, uploadDir: uploadDir, perPage: perPage}
}

// GetLatest serves the five newest products, cached until the next product
// or order mutation.
func (h *ProductHandler) GetLatest(c *gin.Context) {
	var products []domain.Product
	if !h.cache.TryGet(cache.KeyLatestProducts, &products) {
		var err error
		products, err = h.products.FindLatest(c.Request.Context(), latestProductLimit)
		if err != nil {
			respondError(c, err)
			return
		}
		h.cache.SetJSON(cache.KeyLatestProducts, products)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *ProductHandler) GetCategories(c *gin.Context) {
	var categories []string
	if !h.cache.TryGet(cache.KeyCategories, &categories) {
		var err error
		categories, err = h.products.Categories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		h.cache.SetJSON(cache.KeyCategories, categories)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

func (h *ProductHandler) GetAdminProducts(c *gin.Context) {
	var products []domain.Product
	if !h.cache.TryGet(cache.KeyAllProducts, &products) {
		var err error
		products, err = h.products.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		h.cache.SetJSON(cache.KeyAllProducts, products)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	var product domain.Product
	if !h.cache.TryGet(cache.KeyProduct(id), &product) {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			respondError(c, errNotFound("Product Not Found"))
			return
		}
		found, err := h.products.FindByID(c.Request.Context(), oid)
		if err != nil {
			respondError(c, err)
			return
		}
		product = *found
		h.cache.SetJSON(cache.KeyProduct(id), product)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// GetAll lists products with the storefront filters. Uncached: the filter
// space is unbounded.
func (h *ProductHandler) GetAll(c *gin.Context) {
	query := domain.SearchQuery{
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Category: c.Query("category"),
	}
	if price, err := strconv.ParseFloat(c.Query("price"), 64); err == nil {
		query.Price = price
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		query.Page = page
	}

	products, total, err := h.products.Search(c.Request.Context(), query, h.perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	totalPage := (total + int64(h.perPage) - 1) / int64(h.perPage)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"products":  products,
		"totalPage": totalPage,
	})
}

// Create stores an admin-uploaded product. The photo lands on disk before
// field validation, so a rejected request has to clean it up again.
func (h *ProductHandler) Create(c *gin.Context) {
	photoPath, err := savePhoto(c, h.uploadDir)
	if err != nil {
		respondError(c, err)
		return
	}

	name := c.PostForm("name")
	price, priceErr := strconv.ParseFloat(c.PostForm("price"), 64)
	stock, stockErr := strconv.Atoi(c.PostForm("stock"))
	category := c.PostForm("category")

	if name == "" || category == "" || priceErr != nil || stockErr != nil || price < 0 || stock < 0 {
		removePhoto(photoPath)
		respondError(c, errBadRequest("Please enter All Fields"))
		return
	}

	product := domain.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: strings.ToLower(category),
		Photo:    photoPath,
	}
	if err := h.products.Insert(c.Request.Context(), &product); err != nil {
		removePhoto(photoPath)
		respondError(c, err)
		return
	}

	h.cache.Invalidate(cache.InvalidateOptions{Product: true, Admin: true})

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product Created Successfully"})
}

// Update patches the provided fields; a new photo replaces the stored file.
func (h *ProductHandler) Update(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, errNotFound("Product Not Found"))
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), oid)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, ferr := c.FormFile("photo"); ferr == nil {
		photoPath, serr := savePhoto(c, h.uploadDir)
		if serr != nil {
			respondError(c, serr)
			return
		}
		removePhoto(product.Photo)
		product.Photo = photoPath
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if price, perr := strconv.ParseFloat(c.PostForm("price"), 64); perr == nil && price >= 0 {
		product.Price = price
	}
	if stock, serr := strconv.Atoi(c.PostForm("stock")); serr == nil && stock >= 0 {
		product.Stock = stock
	}
	if category := c.PostForm("category"); category != "" {
		product.Category = strings.ToLower(category)
	}

	if err := h.products.Update(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(cache.InvalidateOptions{
		Product:   true,
		Admin:     true,
		ProductID: product.ID.Hex(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Updated Successfully"})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, errNotFound("Product Not Found"))
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), oid)
	if err != nil {
		respondError(c, err)
		return
	}

	removePhoto(product.Photo)

	if err := h.products.Delete(c.Request.Context(), oid); err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(cache.InvalidateOptions{
		Product:   true,
		Admin:     true,
		ProductID: product.ID.Hex(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Deleted Successfully"})
}
