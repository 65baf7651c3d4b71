package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"luxreplica-backend/middleware"
	"luxreplica-backend/models"
	"luxreplica-backend/storage"
	"luxreplica-backend/utils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.RegisterJSONFieldNames()
	os.Exit(m.Run())
}

// ==================== Fixtures ====================

// catalogFixture holds the ids created by seedStore.
type catalogFixture struct {
	hoodies, pants models.Category
	// hoodie costs 100 and has a primary image; tee has two unflagged images
	// and three reviews; shorts has no images at all.
	hoodie, tee, cargo, shorts models.Product
}

func seedStore(t *testing.T) (*storage.MemStorage, catalogFixture) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemStorage()
	var f catalogFixture

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	var err error
	f.hoodies, err = store.CreateCategory(ctx, models.Category{Name: "Hoodies", Slug: "hoodies", ImageURL: "/images/hoodies.png"})
	must(err)
	f.pants, err = store.CreateCategory(ctx, models.Category{Name: "Pants", Slug: "pants", ImageURL: "/images/pants.png"})
	must(err)

	original := 150.0
	f.hoodie, err = store.CreateProduct(ctx, models.Product{Name: "Hoodie", Slug: "hoodie", Price: 100, OriginalPrice: &original, InStock: true, CategoryID: f.hoodies.ID, Featured: true})
	must(err)
	f.tee, err = store.CreateProduct(ctx, models.Product{Name: "Tee", Slug: "tee", Price: 50, InStock: true, CategoryID: f.hoodies.ID, NewArrival: true})
	must(err)
	f.cargo, err = store.CreateProduct(ctx, models.Product{Name: "Cargo", Slug: "cargo", Price: 80, InStock: true, CategoryID: f.pants.ID, Featured: true, BestSeller: true})
	must(err)
	f.shorts, err = store.CreateProduct(ctx, models.Product{Name: "Shorts", Slug: "shorts", Price: 40, CategoryID: f.pants.ID, TopRated: true})
	must(err)

	for _, img := range []models.ProductImage{
		{ProductID: f.hoodie.ID, ImageURL: "/images/hoodie-back.png"},
		{ProductID: f.hoodie.ID, ImageURL: "/images/hoodie.png", IsPrimary: true},
		{ProductID: f.tee.ID, ImageURL: "/images/tee-1.png"},
		{ProductID: f.tee.ID, ImageURL: "/images/tee-2.png"},
		{ProductID: f.cargo.ID, ImageURL: "/images/cargo.png", IsPrimary: true},
	} {
		_, err = store.CreateProductImage(ctx, img)
		must(err)
	}

	for _, size := range []string{"S", "M", "L"} {
		_, err = store.CreateProductSize(ctx, models.ProductSize{ProductID: f.hoodie.ID, Size: size, Available: size != "L"})
		must(err)
	}
	_, err = store.CreateProductColor(ctx, models.ProductColor{ProductID: f.hoodie.ID, Color: "#000000", ColorName: "Black"})
	must(err)

	for _, rating := range []int{5, 4, 4} {
		_, err = store.CreateReview(ctx, models.Review{
			ProductID:  f.tee.ID,
			Rating:     rating,
			Title:      "Review",
			Content:    "Content",
			AuthorName: "Sam",
			Date:       time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC),
		})
		must(err)
	}

	return store, f
}

// ==================== Routers ====================

func setupCategoryRouter(store storage.CatalogStore) *gin.Engine {
	r := gin.New()
	h := &CategoryHandler{Store: store}
	r.GET("/api/categories", h.GetCategories)
	r.GET("/api/categories/:slug", h.GetCategory)
	return r
}

func setupProductRouter(store storage.CatalogStore) *gin.Engine {
	r := gin.New()
	h := &ProductHandler{Store: store}
	r.GET("/api/products", h.GetProducts)
	r.GET("/api/products/:slug", h.GetProduct)
	return r
}

func setupCartRouter(store storage.CartStore) *gin.Engine {
	r := gin.New()
	h := &CartHandler{Store: store}
	cart := r.Group("/api/cart", middleware.CartSession(middleware.SessionConfig{MaxAge: 30 * 24 * time.Hour}))
	cart.GET("", h.GetCart)
	cart.POST("", h.AddToCart)
	cart.PUT("/:id", h.UpdateCartItem)
	cart.DELETE("/:id", h.RemoveFromCart)
	cart.DELETE("", h.ClearCart)
	return r
}

// ==================== Request Helpers ====================

// jsonRequest creates an HTTP request with a JSON body.
func jsonRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// sessionRequest creates a JSON request carrying the cart session cookie.
func sessionRequest(method, url string, body interface{}, sessionID string) *http.Request {
	req := jsonRequest(method, url, body)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CartCookieName, Value: sessionID})
	}
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// sessionCookie returns the cartSessionId cookie set by the response, if any.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.CartCookieName {
			return cookie
		}
	}
	return nil
}

// ==================== Response Helpers ====================

// parseResponse reads the response body into a map.
func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// parseResponseArray reads the response body into a slice.
func parseResponseArray(w *httptest.ResponseRecorder) []interface{} {
	var result []interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

func ids(items []interface{}) []float64 {
	out := make([]float64, 0, len(items))
	for _, item := range items {
		out = append(out, item.(map[string]interface{})["id"].(float64))
	}
	return out
}

func equalIDs(got []float64, want ...int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != float64(want[i]) {
			return false
		}
	}
	return true
}
