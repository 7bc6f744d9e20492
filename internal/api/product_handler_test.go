package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftcart-backend/internal/cache"
	"swiftcart-backend/internal/domain"
	"swiftcart-backend/internal/repository"
	"swiftcart-backend/internal/repository/mocks"
)

func newProductRouter(repo *mocks.MockProductRepository, svc *cache.Service, uploadDir string) *gin.Engine {
	h := NewProductHandler(repo, svc, uploadDir, 8)
	r := gin.New()
	r.POST("/product/new", h.Create)
	r.GET("/product/all", h.GetAll)
	r.GET("/product/latest", h.GetLatest)
	r.GET("/product/categories", h.GetCategories)
	r.GET("/product/:id", h.GetProduct)
	r.PUT("/product/:id", h.Update)
	r.DELETE("/product/:id", h.Delete)
	return r
}

func newMultipartRequest(t *testing.T, method, url string, fields map[string]string, withPhoto bool) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withPhoto {
		fw, err := mw.CreateFormFile("photo", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("not-really-a-png"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func uploadCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestProductCreate(t *testing.T) {
	fields := map[string]string{
		"name":     "Gaming Mouse",
		"price":    "59.99",
		"stock":    "10",
		"category": "Peripherals",
	}

	t.Run("Missing photo is a 400", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		r := newProductRouter(repo, cache.NewService(), t.TempDir())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newMultipartRequest(t, http.MethodPost, "/product/new", fields, false))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please Add Photo", decodeEnvelope(t, w).Message)
	})

	t.Run("Missing fields is a 400 and the stored photo is cleaned up", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		dir := t.TempDir()
		r := newProductRouter(repo, cache.NewService(), dir)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newMultipartRequest(t, http.MethodPost, "/product/new", map[string]string{"name": "No Price"}, true))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please enter All Fields", decodeEnvelope(t, w).Message)
		assert.Equal(t, 0, uploadCount(t, dir))
	})

	t.Run("Valid upload creates the product and invalidates product caches", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		svc := cache.NewService()
		svc.SetJSON(cache.KeyLatestProducts, "stale")
		svc.SetJSON(cache.KeyCategories, "stale")
		svc.SetJSON(cache.KeyAllProducts, "stale")
		svc.SetJSON(cache.KeyAdminStats, "stale")

		var created domain.Product
		repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Product")).
			Run(func(args mock.Arguments) { created = *args.Get(1).(*domain.Product) }).
			Return(nil).Once()

		dir := t.TempDir()
		r := newProductRouter(repo, svc, dir)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newMultipartRequest(t, http.MethodPost, "/product/new", fields, true))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Product Created Successfully", decodeEnvelope(t, w).Message)

		assert.Equal(t, "Gaming Mouse", created.Name)
		assert.Equal(t, 59.99, created.Price)
		assert.Equal(t, 10, created.Stock)
		assert.Equal(t, "peripherals", created.Category, "category is stored lower-cased")
		assert.Equal(t, 1, uploadCount(t, dir))

		var out string
		assert.False(t, svc.TryGet(cache.KeyLatestProducts, &out))
		assert.False(t, svc.TryGet(cache.KeyCategories, &out))
		assert.False(t, svc.TryGet(cache.KeyAllProducts, &out))
		assert.False(t, svc.TryGet(cache.KeyAdminStats, &out))
		repo.AssertExpectations(t)
	})
}

func TestProductReads(t *testing.T) {
	t.Run("Latest products are served from cache on the second read", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		repo.On("FindLatest", mock.Anything, 5).
			Return([]domain.Product{{Name: "fresh"}}, nil).Once()

		r := newProductRouter(repo, cache.NewService(), t.TempDir())

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/latest", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
		repo.AssertExpectations(t)
	})

	t.Run("Invalidation forces a recompute that reflects new data", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		repo.On("Categories", mock.Anything).Return([]string{"laptop"}, nil).Once()
		repo.On("Categories", mock.Anything).Return([]string{"laptop", "shoes"}, nil).Once()

		svc := cache.NewService()
		r := newProductRouter(repo, svc, t.TempDir())

		read := func() []string {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/categories", nil))
			require.Equal(t, http.StatusOK, w.Code)
			var resp struct {
				Categories []string `json:"categories"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			return resp.Categories
		}

		assert.Equal(t, []string{"laptop"}, read())
		assert.Equal(t, []string{"laptop"}, read(), "second read is cached")

		svc.Invalidate(cache.InvalidateOptions{Product: true})
		assert.Equal(t, []string{"laptop", "shoes"}, read())
		repo.AssertExpectations(t)
	})

	t.Run("Unknown product id is a 404", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		oid := primitive.NewObjectID()
		repo.On("FindByID", mock.Anything, oid).Return(nil, repository.ErrProductNotFound).Once()

		r := newProductRouter(repo, cache.NewService(), t.TempDir())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/"+oid.Hex(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Product Not Found", decodeEnvelope(t, w).Message)
	})

	t.Run("Malformed product id is a 404 without touching the store", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		r := newProductRouter(repo, cache.NewService(), t.TempDir())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/not-an-id", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestProductGetAll(t *testing.T) {
	t.Run("Filters are forwarded and totalPage is ceil of matches over limit", func(t *testing.T) {
		repo := new(mocks.MockProductRepository)
		want := domain.SearchQuery{Search: "mouse", Sort: "asc", Price: 100, Page: 2}
		repo.On("Search", mock.Anything, want, 8).
			Return([]domain.Product{{Name: "mouse"}}, int64(17), nil).Once()

		r := newProductRouter(repo, cache.NewService(), t.TempDir())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/all?search=mouse&sort=asc&price=100&page=2", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success   bool             `json:"success"`
			Products  []domain.Product `json:"products"`
			TotalPage int64            `json:"totalPage"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Len(t, resp.Products, 1)
		assert.Equal(t, int64(3), resp.TotalPage)
		repo.AssertExpectations(t)
	})
}

func TestProductDelete(t *testing.T) {
	t.Run("Delete removes the photo file and invalidates the product snapshot", func(t *testing.T) {
		dir := t.TempDir()
		photo, err := os.CreateTemp(dir, "photo-*.png")
		require.NoError(t, err)
		require.NoError(t, photo.Close())

		oid := primitive.NewObjectID()
		repo := new(mocks.MockProductRepository)
		repo.On("FindByID", mock.Anything, oid).
			Return(&domain.Product{ID: oid, Name: "doomed", Photo: photo.Name()}, nil).Once()
		repo.On("Delete", mock.Anything, oid).Return(nil).Once()

		svc := cache.NewService()
		svc.SetJSON(cache.KeyProduct(oid.Hex()), "stale")

		r := newProductRouter(repo, svc, dir)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/product/"+oid.Hex(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Product Deleted Successfully", decodeEnvelope(t, w).Message)
		assert.NoFileExists(t, photo.Name())

		var out string
		assert.False(t, svc.TryGet(cache.KeyProduct(oid.Hex()), &out))
		repo.AssertExpectations(t)
	})
}
