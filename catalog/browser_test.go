package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-admin/form"
	"catalog-admin/importer"
	"catalog-admin/models"
)

type fakeAPI struct {
	mu sync.Mutex

	products      []models.Product
	categories    []models.Category
	subCategories []models.SubCategory
	stores        []models.Store

	listProductsErr      error
	listSubCategoriesErr error
	createErr            error
	deleteErr            error

	listProductsCalls int
	createCalls       int
	updateCalls       int
	deleteCalls       int

	updateBlock   chan struct{}
	updateEntered chan struct{}
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	f.listProductsCalls++
	f.mu.Unlock()
	if f.listProductsErr != nil {
		return nil, f.listProductsErr
	}
	return f.products, nil
}

func (f *fakeAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeAPI) ListSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	if f.listSubCategoriesErr != nil {
		return nil, f.listSubCategoriesErr
	}
	return f.subCategories, nil
}

func (f *fakeAPI) ListStores(ctx context.Context) ([]models.Store, error) {
	return f.stores, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()
	if f.createErr != nil {
		return models.Product{}, f.createErr
	}
	p.ID = "created"
	return p, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, p models.Product) (models.Product, error) {
	f.mu.Lock()
	f.updateCalls++
	f.mu.Unlock()
	if f.updateEntered != nil {
		f.updateEntered <- struct{}{}
	}
	if f.updateBlock != nil {
		<-f.updateBlock
	}
	p.ID = id
	return p, nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.products[:0]
	for _, p := range f.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) byType(kind string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.notices {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

type staticConfirmer bool

func (c staticConfirmer) Confirm(string) bool { return bool(c) }

func seededAPI() *fakeAPI {
	return &fakeAPI{
		products: []models.Product{
			{ID: "p1", Name: "Runner Pro", CategoryID: 1, StoreID: "s1"},
		},
		categories:    []models.Category{{ID: 1, Name: "Shoes"}},
		subCategories: []models.SubCategory{{ID: 1, Name: "Running", CategoryID: 1}},
		stores:        []models.Store{{ID: "s1", Name: "Main"}},
	}
}

func TestLoadAll(t *testing.T) {
	api := seededAPI()
	b := NewBrowser(api)

	require.NoError(t, b.LoadAll(context.Background()))

	assert.Len(t, b.Products(), 1)
	refs := b.References()
	assert.Len(t, refs.Categories, 1)
	assert.Len(t, refs.SubCategories, 1)
	assert.Len(t, refs.Stores, 1)
	assert.False(t, b.Loading())
}

func TestLoadAllOneFailureDoesNotBlockOthers(t *testing.T) {
	api := seededAPI()
	api.listSubCategoriesErr = errors.New("connection refused")
	notifier := &recordingNotifier{}
	b := NewBrowser(api, WithNotifier(notifier))

	err := b.LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load subcategories")

	// The collections that did load are cached.
	assert.Len(t, b.Products(), 1)
	refs := b.References()
	assert.Len(t, refs.Categories, 1)
	assert.Empty(t, refs.SubCategories)
	assert.Len(t, refs.Stores, 1)

	failures := notifier.byType(NoticeError)
	require.Len(t, failures, 1)
	assert.Equal(t, "Failed to load subcategories", failures[0].Message)
}

func TestEmptyStateMessage(t *testing.T) {
	b := NewBrowser(seededAPI())

	assert.Equal(t, "Get started by adding your first product", b.EmptyStateMessage(Filter{}))
	assert.Equal(t, "Try adjusting your search or filters", b.EmptyStateMessage(Filter{Search: "x"}))
}

func TestCreateProductValidationFailureIssuesNoCall(t *testing.T) {
	api := seededAPI()
	b := NewBrowser(api, WithNotifier(&recordingNotifier{}))

	f := form.NewCreate(form.References{
		Categories:    api.categories,
		SubCategories: api.subCategories,
		Stores:        api.stores,
	})
	// Store left unselected.
	_, err := b.CreateProduct(context.Background(), f)
	require.ErrorIs(t, err, form.ErrStoreRequired)
	assert.Zero(t, api.createCalls)
}

func TestCreateProductRefreshesAfterWrite(t *testing.T) {
	api := seededAPI()
	notifier := &recordingNotifier{}
	b := NewBrowser(api, WithNotifier(notifier))

	f := form.NewCreate(form.References{
		Categories:    api.categories,
		SubCategories: api.subCategories,
		Stores:        api.stores,
	})
	f.SetStore("s1")

	created, err := b.CreateProduct(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "created", created.ID)
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 1, api.listProductsCalls, "a successful create re-fetches the list")

	successes := notifier.byType(NoticeSuccess)
	require.Len(t, successes, 1)
	assert.Equal(t, "Product created successfully!", successes[0].Message)
}

func TestCreateProductBackendFailureNotifies(t *testing.T) {
	api := seededAPI()
	api.createErr = errors.New("boom")
	notifier := &recordingNotifier{}
	b := NewBrowser(api, WithNotifier(notifier))

	f := form.NewCreate(form.References{
		Categories:    api.categories,
		SubCategories: api.subCategories,
		Stores:        api.stores,
	})
	f.SetStore("s1")

	_, err := b.CreateProduct(context.Background(), f)
	require.Error(t, err)
	assert.Zero(t, api.listProductsCalls, "a failed create must not refresh")

	failures := notifier.byType(NoticeError)
	require.Len(t, failures, 1)
	assert.Equal(t, "Failed to create product", failures[0].Message)
}

func TestUpdateProductInFlightGuard(t *testing.T) {
	api := seededAPI()
	api.updateBlock = make(chan struct{})
	api.updateEntered = make(chan struct{}, 1)
	b := NewBrowser(api, WithNotifier(&recordingNotifier{}))

	newForm := func() *form.ProductForm {
		f := form.NewEdit(models.Product{ID: "p1", Name: "Runner Pro", StoreID: "s1"}, form.References{
			Categories:    api.categories,
			SubCategories: api.subCategories,
			Stores:        api.stores,
		})
		return f
	}

	done := make(chan error, 1)
	go func() {
		_, err := b.UpdateProduct(context.Background(), "p1", newForm())
		done <- err
	}()

	// Wait until the first update holds the guard and is blocked in the API.
	<-api.updateEntered

	_, err := b.UpdateProduct(context.Background(), "p1", newForm())
	assert.ErrorIs(t, err, ErrMutationInFlight)

	close(api.updateBlock)
	require.NoError(t, <-done)

	// Once released, the same id can be mutated again.
	api.updateBlock = nil
	api.updateEntered = nil
	_, err = b.UpdateProduct(context.Background(), "p1", newForm())
	assert.NoError(t, err)
}

func TestDeleteProductDeclinedIssuesNoCall(t *testing.T) {
	api := seededAPI()
	b := NewBrowser(api, WithConfirmer(staticConfirmer(false)))

	err := b.DeleteProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrDeleteCancelled)
	assert.Zero(t, api.deleteCalls)
}

func TestDeleteProductConfirmed(t *testing.T) {
	api := seededAPI()
	notifier := &recordingNotifier{}
	b := NewBrowser(api, WithNotifier(notifier), WithConfirmer(staticConfirmer(true)))

	require.NoError(t, b.LoadAll(context.Background()))
	require.Len(t, b.Products(), 1)

	require.NoError(t, b.DeleteProduct(context.Background(), "p1"))
	assert.Equal(t, 1, api.deleteCalls)

	// The re-fetched list no longer carries the deleted id.
	for _, p := range b.Products() {
		assert.NotEqual(t, "p1", p.ID)
	}
	assert.Empty(t, b.Products())

	successes := notifier.byType(NoticeSuccess)
	require.Len(t, successes, 1)
	assert.Equal(t, "Product deleted successfully!", successes[0].Message)
}

func TestImportCSVPartial(t *testing.T) {
	api := seededAPI()
	notifier := &recordingNotifier{}
	b := NewBrowser(api, WithNotifier(notifier))

	pipeline := importer.New(uploaderFunc(func() (*models.ImportResult, error) {
		return &models.ImportResult{
			Uploaded:   2,
			Errors:     []string{"Row 3: invalid price"},
			ErrorCount: 1,
		}, nil
	}), importer.WithRefresh(b.RefreshProducts))

	report, err := b.ImportCSV(context.Background(), pipeline, strings.NewReader("csv"), "data.csv", "text/csv", 3)
	require.NoError(t, err)
	assert.True(t, report.Partial())
	assert.Equal(t, 1, api.listProductsCalls, "a terminal import re-fetches the list")

	failures := notifier.byType(NoticeError)
	require.Len(t, failures, 1)
	assert.Equal(t, "CSV Upload Completed with Errors", failures[0].Title)
	assert.Contains(t, failures[0].Message, "Row 3: invalid price")
}

func TestImportCSVSuccess(t *testing.T) {
	api := seededAPI()
	notifier := &recordingNotifier{}
	b := NewBrowser(api, WithNotifier(notifier))

	pipeline := importer.New(uploaderFunc(func() (*models.ImportResult, error) {
		return &models.ImportResult{Uploaded: 4}, nil
	}), importer.WithRefresh(b.RefreshProducts))

	report, err := b.ImportCSV(context.Background(), pipeline, strings.NewReader("csv"), "data.csv", "text/csv", 3)
	require.NoError(t, err)
	assert.False(t, report.Partial())

	successes := notifier.byType(NoticeSuccess)
	require.Len(t, successes, 1)
	assert.Equal(t, "Bulk Upload Success!", successes[0].Title)
}

func TestImportCSVRejectedFileNotifies(t *testing.T) {
	api := seededAPI()
	notifier := &recordingNotifier{}
	b := NewBrowser(api, WithNotifier(notifier))

	pipeline := importer.New(uploaderFunc(func() (*models.ImportResult, error) {
		t.Fatal("uploader must not be called for a rejected file")
		return nil, nil
	}))

	_, err := b.ImportCSV(context.Background(), pipeline, strings.NewReader("x"), "data.txt", "text/plain", 3)
	require.Error(t, err)

	failures := notifier.byType(NoticeError)
	require.Len(t, failures, 1)
	assert.Equal(t, "CSV Upload Error", failures[0].Title)
}

func TestFindersFallBackToUnknown(t *testing.T) {
	b := NewBrowser(seededAPI())
	require.NoError(t, b.LoadAll(context.Background()))

	assert.Equal(t, "Shoes", b.FindCategory(1))
	assert.Equal(t, "Unknown", b.FindCategory(99))
	assert.Equal(t, "Running", b.FindSubCategory(1))
	assert.Equal(t, "Unknown", b.FindSubCategory(99))
	assert.Equal(t, "Main", b.FindStore("s1"))
	assert.Equal(t, "Unknown", b.FindStore("nope"))
}

// uploaderFunc adapts a closure to importer.Uploader.
type uploaderFunc func() (*models.ImportResult, error)

func (f uploaderFunc) BulkImport(ctx context.Context, file io.Reader, filename string, progress func(int)) (*models.ImportResult, error) {
	return f()
}
