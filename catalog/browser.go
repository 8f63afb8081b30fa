// Package catalog composes the backend client, the import pipeline and the
// product form into the admin view: load reference data, filter the product
// table, run mutations with refresh-after-write.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"catalog-admin/client"
	"catalog-admin/form"
	"catalog-admin/importer"
	"catalog-admin/models"
)

// Mutation guard errors.
var (
	// ErrMutationInFlight rejects a second mutation on a record whose
	// previous mutation has not completed, so duplicate submissions
	// cannot race each other.
	ErrMutationInFlight = errors.New("another operation on this product is still in progress")

	// ErrDeleteCancelled is returned when the user declines the delete
	// confirmation; no request is issued.
	ErrDeleteCancelled = errors.New("delete cancelled")
)

const deleteConfirmPrompt = "Are you sure you want to delete this product? This action cannot be undone."

// CatalogAPI is what the Browser needs from the backend client.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListSubCategories(ctx context.Context) ([]models.SubCategory, error)
	ListStores(ctx context.Context) ([]models.Store, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Browser holds the admin view's in-memory state: the cached product list
// and the reference collections. All entities are server-owned; the cache
// is for display only and every mutation is followed by a full re-fetch so
// the view reflects server state, not client-reconstructed state.
type Browser struct {
	api       CatalogAPI
	notifier  Notifier
	confirmer Confirmer

	mu       sync.Mutex
	products []models.Product
	refs     form.References
	loading  bool
	inFlight map[string]bool
}

type BrowserOption func(*Browser)

func WithNotifier(n Notifier) BrowserOption {
	return func(b *Browser) { b.notifier = n }
}

func WithConfirmer(c Confirmer) BrowserOption {
	return func(b *Browser) { b.confirmer = c }
}

func NewBrowser(api CatalogAPI, opts ...BrowserOption) *Browser {
	b := &Browser{
		api:      api,
		notifier: LogNotifier{},
		inFlight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LoadAll fetches the four collections concurrently with all-settle
// semantics: one failing collection does not block the others. Each
// failure is notified individually; the returned error joins them so the
// caller still sees an overall outcome. The aggregate loading flag only
// tracks overall completion.
func (b *Browser) LoadAll(ctx context.Context) error {
	b.setLoading(true)
	defer b.setLoading(false)

	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		if err := b.loadProducts(ctx); err != nil {
			errs[0] = err
			b.notifyError("Error", "Failed to load products")
		}
	}()
	go func() {
		defer wg.Done()
		categories, err := b.api.ListCategories(ctx)
		if err != nil {
			errs[1] = fmt.Errorf("load categories: %w", err)
			b.notifyError("Error", "Failed to load categories")
			return
		}
		b.mu.Lock()
		b.refs.Categories = categories
		b.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		subCategories, err := b.api.ListSubCategories(ctx)
		if err != nil {
			errs[2] = fmt.Errorf("load subcategories: %w", err)
			b.notifyError("Error", "Failed to load subcategories")
			return
		}
		b.mu.Lock()
		b.refs.SubCategories = subCategories
		b.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		stores, err := b.api.ListStores(ctx)
		if err != nil {
			errs[3] = fmt.Errorf("load stores: %w", err)
			b.notifyError("Error", "Failed to load stores")
			return
		}
		b.mu.Lock()
		b.refs.Stores = stores
		b.mu.Unlock()
	}()
	wg.Wait()

	return errors.Join(errs...)
}

// RefreshProducts re-fetches the product list. This is both the manual
// refresh action and the hook run after every mutation.
func (b *Browser) RefreshProducts(ctx context.Context) error {
	if err := b.loadProducts(ctx); err != nil {
		b.notifyError("Error", "Failed to load products")
		return err
	}
	return nil
}

func (b *Browser) loadProducts(ctx context.Context) error {
	products, err := b.api.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	b.mu.Lock()
	b.products = products
	b.mu.Unlock()
	return nil
}

// Products returns a copy of the cached product list.
func (b *Browser) Products() []models.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Product, len(b.products))
	copy(out, b.products)
	return out
}

// References returns the cached reference collections.
func (b *Browser) References() form.References {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refs
}

// Loading reports whether an initial load is in progress.
func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// VisibleProducts applies the filter triple to the cached list.
func (b *Browser) VisibleProducts(f Filter) []models.Product {
	return f.Apply(b.Products())
}

// EmptyStateMessage distinguishes "no data at all" from "filters excluded
// everything" when the visible list is empty.
func (b *Browser) EmptyStateMessage(f Filter) string {
	if f.Empty() {
		return "Get started by adding your first product"
	}
	return "Try adjusting your search or filters"
}

// CreateProduct submits a create-mode form. Validation failures block the
// submission before any network call; on success the product list is
// refreshed from the server.
func (b *Browser) CreateProduct(ctx context.Context, f *form.ProductForm) (models.Product, error) {
	draft, err := f.Submit()
	if err != nil {
		b.notifyError("Error", err.Error())
		return models.Product{}, err
	}

	created, err := b.api.CreateProduct(ctx, draft)
	if err != nil {
		b.notifyError("Error", mutationMessage(err, "Failed to create product"))
		return models.Product{}, err
	}

	b.notifySuccess("Success!", "Product created successfully!")
	b.refreshAfterWrite(ctx)
	return created, nil
}

// UpdateProduct submits an edit-mode form for the given product id.
func (b *Browser) UpdateProduct(ctx context.Context, id string, f *form.ProductForm) (models.Product, error) {
	if !b.acquire(id) {
		return models.Product{}, ErrMutationInFlight
	}
	defer b.release(id)

	draft, err := f.Submit()
	if err != nil {
		b.notifyError("Error", err.Error())
		return models.Product{}, err
	}

	updated, err := b.api.UpdateProduct(ctx, id, draft)
	if err != nil {
		b.notifyError("Error", mutationMessage(err, "Failed to update product"))
		return models.Product{}, err
	}

	b.notifySuccess("Success!", "Product updated successfully!")
	b.refreshAfterWrite(ctx)
	return updated, nil
}

// DeleteProduct asks for explicit confirmation, then issues the delete and
// refreshes the list. Declining the confirmation issues no request.
func (b *Browser) DeleteProduct(ctx context.Context, id string) error {
	if !b.acquire(id) {
		return ErrMutationInFlight
	}
	defer b.release(id)

	if b.confirmer != nil && !b.confirmer.Confirm(deleteConfirmPrompt) {
		return ErrDeleteCancelled
	}

	if err := b.api.DeleteProduct(ctx, id); err != nil {
		b.notifyError("Error", mutationMessage(err, "Failed to delete product"))
		return err
	}

	b.notifySuccess("Success!", "Product deleted successfully!")
	b.refreshAfterWrite(ctx)
	return nil
}

// ImportCSV runs the bulk-import pipeline and reports its outcome. The
// bulk path is guarded as a whole so only one import runs at a time.
func (b *Browser) ImportCSV(ctx context.Context, p *importer.Pipeline, file io.Reader, filename, contentType string, size int64) (*importer.Report, error) {
	if !b.acquire("bulk-import") {
		return nil, ErrMutationInFlight
	}
	defer b.release("bulk-import")

	report, err := p.Import(ctx, file, filename, contentType, size)
	if err != nil {
		b.notifyError("CSV Upload Error", err.Error())
		return nil, err
	}

	if report.Partial() {
		b.notifier.Notify(newNotification(NoticeError, "CSV Upload Completed with Errors", report.Summary(), 10*time.Second))
	} else {
		b.notifier.Notify(newNotification(NoticeSuccess, "Bulk Upload Success!", report.Summary(), 5*time.Second))
	}
	return report, nil
}

// FindCategory resolves a category name for table rendering.
func (b *Browser) FindCategory(id int64) string {
	for _, c := range b.References().Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}

// FindSubCategory resolves a subcategory name for table rendering.
func (b *Browser) FindSubCategory(id int64) string {
	for _, sc := range b.References().SubCategories {
		if sc.ID == id {
			return sc.Name
		}
	}
	return "Unknown"
}

// FindStore resolves a store name for table rendering.
func (b *Browser) FindStore(id string) string {
	for _, s := range b.References().Stores {
		if s.ID == id {
			return s.Name
		}
	}
	return "Unknown"
}

func (b *Browser) refreshAfterWrite(ctx context.Context) {
	if err := b.loadProducts(ctx); err != nil {
		zap.L().Warn("refresh after write failed", zap.Error(err))
	}
}

func (b *Browser) acquire(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFlight[key] {
		return false
	}
	b.inFlight[key] = true
	return true
}

func (b *Browser) release(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inFlight, key)
}

func (b *Browser) setLoading(v bool) {
	b.mu.Lock()
	b.loading = v
	b.mu.Unlock()
}

func (b *Browser) notifySuccess(title, message string) {
	b.notifier.Notify(newNotification(NoticeSuccess, title, message, 3*time.Second))
}

func (b *Browser) notifyError(title, message string) {
	b.notifier.Notify(newNotification(NoticeError, title, message, 5*time.Second))
}

// mutationMessage prefers the backend-supplied message of a non-2xx
// response over the generic fallback.
func mutationMessage(err error, fallback string) string {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
