package catalog

import (
	"strings"

	"catalog-admin/models"
)

// Filter is the table filter triple. Zero values mean "no constraint".
type Filter struct {
	Search     string
	CategoryID int64
	StoreID    string
}

// Empty reports whether no constraint is set.
func (f Filter) Empty() bool {
	return f.Search == "" && f.CategoryID == 0 && f.StoreID == ""
}

// Apply returns exactly the products satisfying all three predicates:
// case-insensitive substring match over name/product code/SKU, AND
// category equality, AND store equality. Pure and fully restartable; it is
// recomputed whenever products or filter inputs change.
func (f Filter) Apply(products []models.Product) []models.Product {
	search := strings.ToLower(f.Search)

	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.ProductCode), search) &&
			!strings.Contains(strings.ToLower(p.SKUID), search) {
			continue
		}
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if f.StoreID != "" && p.StoreID != f.StoreID {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}
