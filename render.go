package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"catalog-admin/catalog"
	"catalog-admin/models"
)

// renderProductTable prints the admin table: product, code/SKU, price with
// struck-through MRP, stock, category/subcategory, store and status flags.
func renderProductTable(w io.Writer, b *catalog.Browser, products []models.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tCODE/SKU\tPRICE\tSTOCK\tCATEGORY\tSTORE\tSTATUS")

	for _, p := range products {
		name := p.Name
		if p.ProductType != "" {
			name = fmt.Sprintf("%s (%s)", p.Name, p.ProductType)
		}

		price := fmt.Sprintf("₹%.2f", p.SellingPrice)
		if p.MRP > 0 && p.MRP != p.SellingPrice {
			price = fmt.Sprintf("%s (MRP ₹%.2f)", price, p.MRP)
		}

		stock := "Out of stock"
		if p.Quantity > 0 {
			stock = fmt.Sprintf("%d in stock", p.Quantity)
		}

		status := "Inactive"
		if p.IsActive {
			status = "Active"
		}
		if p.IsFeatured {
			status += ", Featured"
		}

		fmt.Fprintf(tw, "%s\t%s / %s\t%s\t%s\t%s / %s\t%s\t%s\n",
			name,
			p.ProductCode, p.SKUID,
			price,
			stock,
			b.FindCategory(p.CategoryID), b.FindSubCategory(p.SubCategoryID),
			b.FindStore(p.StoreID),
			status,
		)
	}

	tw.Flush()
}
