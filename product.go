package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// ProductQuery narrows a catalog fetch server-side.
type ProductQuery struct {
	CategoryID int64
	Search     string
	Page       int
}

func (q ProductQuery) encode() string {
	values := url.Values{}
	if q.CategoryID > 0 {
		values.Set("categoryId", fmt.Sprint(q.CategoryID))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Page > 0 {
		values.Set("page", fmt.Sprint(q.Page))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

type productsPayload struct {
	Products []ProductSummary `json:"products"`
}

type productPayload struct {
	Product ProductSummary `json:"product"`
}

type categoriesPayload struct {
	Categories []Category `json:"categories"`
}

type promotionsPayload struct {
	Promotions []Promotion `json:"promotions"`
}

// CatalogStore mirrors the product, category and promotion collections.
// Filtered views are recomputed from the current snapshot on every read.
type CatalogStore struct {
	gw       *Gateway
	fallback FallbackSupplier

	products   *Collection[ProductSummary]
	categories *Collection[Category]
	promotions *Collection[Promotion]

	mu         sync.Mutex
	categoryID int64
	query      string
}

func newCatalogStore(gw *Gateway, fallback FallbackSupplier) *CatalogStore {
	if fallback == nil {
		fallback = DefaultFallback()
	}
	return &CatalogStore{
		gw:         gw,
		fallback:   fallback,
		products:   NewCollection[ProductSummary](),
		categories: NewCollection[Category](),
		promotions: NewCollection[Promotion](),
	}
}

// FetchProducts replaces the product collection from GET /products. When the
// service is unreachable the fallback dataset is adopted instead and the
// store reports degraded mode; validation and authorization failures do not
// trigger the fallback.
func (s *CatalogStore) FetchProducts(ctx context.Context, q ProductQuery) error {
	s.products.BeginFetch()
	payload, err := Fetch[productsPayload](ctx, s.gw, http.MethodGet, "/products"+q.encode(), nil)
	if err != nil {
		if IsConnectionError(err) {
			s.products.AdoptFallback(s.fallback.Products(), err.Error())
			return nil
		}
		s.products.FailFetch(err.Error())
		return err
	}
	s.products.CompleteFetch(payload.Products)
	return nil
}

// FetchCategories replaces the category collection from GET /categories.
func (s *CatalogStore) FetchCategories(ctx context.Context) error {
	s.categories.BeginFetch()
	payload, err := Fetch[categoriesPayload](ctx, s.gw, http.MethodGet, "/categories", nil)
	if err != nil {
		if IsConnectionError(err) {
			s.categories.AdoptFallback(s.fallback.Categories(), err.Error())
			return nil
		}
		s.categories.FailFetch(err.Error())
		return err
	}
	s.categories.CompleteFetch(payload.Categories)
	return nil
}

// FetchPromotions replaces the promotion collection from GET /promotions.
func (s *CatalogStore) FetchPromotions(ctx context.Context) error {
	s.promotions.BeginFetch()
	payload, err := Fetch[promotionsPayload](ctx, s.gw, http.MethodGet, "/promotions", nil)
	if err != nil {
		if IsConnectionError(err) {
			s.promotions.AdoptFallback(s.fallback.Promotions(), err.Error())
			return nil
		}
		s.promotions.FailFetch(err.Error())
		return err
	}
	s.promotions.CompleteFetch(payload.Promotions)
	return nil
}

// FetchProduct loads a single product detail from GET /products/{id} without
// touching the cached collection.
func (s *CatalogStore) FetchProduct(ctx context.Context, id int64) (ProductSummary, error) {
	payload, err := Fetch[productPayload](ctx, s.gw, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return ProductSummary{}, err
	}
	return payload.Product, nil
}

// Products returns the unfiltered product snapshot.
func (s *CatalogStore) Products() []ProductSummary { return s.products.Items() }

// Categories returns the category snapshot.
func (s *CatalogStore) Categories() []Category { return s.categories.Items() }

// Promotions returns the promotion snapshot.
func (s *CatalogStore) Promotions() []Promotion { return s.promotions.Items() }

// ProductsStatus returns the product collection's cache flags.
func (s *CatalogStore) ProductsStatus() Status { return s.products.Status() }

// CategoriesStatus returns the category collection's cache flags.
func (s *CatalogStore) CategoriesStatus() Status { return s.categories.Status() }

// PromotionsStatus returns the promotion collection's cache flags.
func (s *CatalogStore) PromotionsStatus() Status { return s.promotions.Status() }

// SetCategoryFilter narrows FilteredProducts to one category; zero clears it.
func (s *CatalogStore) SetCategoryFilter(categoryID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryID = categoryID
}

// SetSearchQuery narrows FilteredProducts to a case-insensitive substring
// match over name and short description.
func (s *CatalogStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// ClearFilters resets both filters.
func (s *CatalogStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryID = 0
	s.query = ""
}

// FilteredProducts recomputes the filtered view from the current snapshot
// and filter parameters.
func (s *CatalogStore) FilteredProducts() []ProductSummary {
	s.mu.Lock()
	categoryID := s.categoryID
	query := strings.ToLower(s.query)
	s.mu.Unlock()

	return s.products.Filter(func(p ProductSummary) bool {
		if categoryID > 0 && p.CategoryID != categoryID {
			return false
		}
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.ShortDescription), query)
	})
}

// ProductByID is a point lookup over the current snapshot.
func (s *CatalogStore) ProductByID(id int64) (ProductSummary, bool) {
	return s.products.Find(func(p ProductSummary) bool { return p.ID == id })
}

// CategoryByID is a point lookup over the current snapshot.
func (s *CatalogStore) CategoryByID(id int64) (Category, bool) {
	return s.categories.Find(func(c Category) bool { return c.ID == id })
}
