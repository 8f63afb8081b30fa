// Package form holds the editable draft of one product record and the
// cross-field rules the admin screen enforces before submission.
package form

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"catalog-admin/models"
)

// Unselected marks an empty category/subcategory selection.
const Unselected int64 = 0

// Required-selection errors, in the order they are checked on submit. The
// first violated rule blocks submission; no partial submission happens.
var (
	ErrStoreRequired       = errors.New("please select a store")
	ErrCategoryRequired    = errors.New("please select a category")
	ErrSubCategoryRequired = errors.New("please select a subcategory")
)

// References are the read-only lookup collections backing the selectors.
type References struct {
	Categories    []models.Category
	SubCategories []models.SubCategory
	Stores        []models.Store
}

// ProductForm is a state machine over a single product draft with two
// entry states: create (NewCreate) and edit (NewEdit).
type ProductForm struct {
	refs     References
	draft    models.Product
	editing  bool
	validate *validator.Validate
}

// NewCreate opens a blank draft: numeric fields zero, active on, featured
// off, identifiers empty. Category and subcategory are backfilled to the
// first available reference value so the selectors open populated; the
// store deliberately stays unset and must be chosen.
func NewCreate(refs References) *ProductForm {
	f := &ProductForm{
		refs:     refs,
		validate: validator.New(),
		draft: models.Product{
			IsActive:   true,
			IsFeatured: false,
		},
	}
	f.backfill()
	return f
}

// NewEdit seeds the draft from an existing product. Falsy category or
// subcategory values are backfilled from the first available reference
// value rather than leaving the field unset; that keeps the form
// submittable but can silently change the implied category of the loaded
// record.
func NewEdit(p models.Product, refs References) *ProductForm {
	f := &ProductForm{
		refs:     refs,
		draft:    p,
		editing:  true,
		validate: validator.New(),
	}
	f.backfill()
	return f
}

func (f *ProductForm) backfill() {
	if f.draft.CategoryID == Unselected && len(f.refs.Categories) > 0 {
		f.draft.CategoryID = f.refs.Categories[0].ID
	}
	if f.draft.SubCategoryID == Unselected && len(f.refs.SubCategories) > 0 {
		f.draft.SubCategoryID = f.refs.SubCategories[0].ID
	}
}

// Editing reports whether the form was opened on an existing product.
func (f *ProductForm) Editing() bool {
	return f.editing
}

// Draft returns a copy of the current draft.
func (f *ProductForm) Draft() models.Product {
	return f.draft
}

// Apply overwrites the draft's editable fields from p. Unset selections in
// p keep the form's current values, and the category/subcategory
// consistency rule stays intact: the category change is routed through
// SetCategory, then the requested subcategory is applied only if it
// belongs to the new category.
func (f *ProductForm) Apply(p models.Product) {
	id := f.draft.ID
	categoryID := p.CategoryID
	if categoryID == Unselected {
		categoryID = f.draft.CategoryID
	}
	subCategoryID := p.SubCategoryID
	if subCategoryID == Unselected {
		subCategoryID = f.draft.SubCategoryID
	}
	storeID := p.StoreID
	if storeID == "" {
		storeID = f.draft.StoreID
	}

	f.draft = p
	f.draft.ID = id
	f.draft.StoreID = storeID
	f.draft.SubCategoryID = Unselected
	f.SetCategory(categoryID)
	f.SetSubCategory(subCategoryID)
}

// SetCategory changes the selected category. If the currently selected
// subcategory no longer belongs to the category, the subcategory is reset
// to unselected and must be re-chosen from SubCategoryOptions.
func (f *ProductForm) SetCategory(id int64) {
	f.draft.CategoryID = id
	if sub, ok := f.subCategory(f.draft.SubCategoryID); ok && sub.CategoryID != id {
		f.draft.SubCategoryID = Unselected
	}
}

// SetSubCategory selects a subcategory. A subcategory owned by a different
// category than the current selection is refused.
func (f *ProductForm) SetSubCategory(id int64) {
	if id == Unselected {
		f.draft.SubCategoryID = Unselected
		return
	}
	if sub, ok := f.subCategory(id); ok && sub.CategoryID == f.draft.CategoryID {
		f.draft.SubCategoryID = id
	}
}

// SetStore selects a store.
func (f *ProductForm) SetStore(id string) {
	f.draft.StoreID = id
}

// SubCategoryOptions lists the subcategories owned by the currently
// selected category.
func (f *ProductForm) SubCategoryOptions() []models.SubCategory {
	var options []models.SubCategory
	for _, sub := range f.refs.SubCategories {
		if sub.CategoryID == f.draft.CategoryID {
			options = append(options, sub)
		}
	}
	return options
}

// Validate runs submission validation. Required selections are checked
// first, in order: store, category, subcategory; then the subcategory must
// belong to the selected category, then field constraints (non-negative
// prices, quantity and dimensions, bounded media lists).
func (f *ProductForm) Validate() error {
	if f.draft.StoreID == "" {
		return ErrStoreRequired
	}
	if f.draft.CategoryID == Unselected {
		return ErrCategoryRequired
	}
	if f.draft.SubCategoryID == Unselected {
		return ErrSubCategoryRequired
	}

	if sub, ok := f.subCategory(f.draft.SubCategoryID); ok && sub.CategoryID != f.draft.CategoryID {
		return fmt.Errorf("subcategory %q belongs to a different category", sub.Name)
	}

	if err := f.validate.Struct(f.draft); err != nil {
		return fmt.Errorf("invalid product fields: %w", err)
	}
	return nil
}

// Submit validates the draft and, if it passes, returns the product to
// send to the backend.
func (f *ProductForm) Submit() (models.Product, error) {
	if err := f.Validate(); err != nil {
		return models.Product{}, err
	}
	return f.draft, nil
}

func (f *ProductForm) subCategory(id int64) (models.SubCategory, bool) {
	for _, sub := range f.refs.SubCategories {
		if sub.ID == id {
			return sub, true
		}
	}
	return models.SubCategory{}, false
}
