package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalog-admin/catalog"
	"catalog-admin/form"
	"catalog-admin/models"
)

func newProductsCommand(a *app) *cobra.Command {
	products := &cobra.Command{
		Use:   "products",
		Short: "List and mutate catalog products",
	}

	products.AddCommand(newProductsListCommand(a))
	products.AddCommand(newProductsCreateCommand(a))
	products.AddCommand(newProductsUpdateCommand(a))
	products.AddCommand(newProductsDeleteCommand(a))

	return products
}

func newProductsListCommand(a *app) *cobra.Command {
	var (
		search     string
		categoryID int64
		storeID    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.browser.LoadAll(ctx); err != nil {
				// Partial reference failures are already notified; only a
				// missing product list makes the table pointless.
				if len(a.browser.Products()) == 0 {
					return err
				}
			}

			filter := catalog.Filter{Search: search, CategoryID: categoryID, StoreID: storeID}
			visible := a.browser.VisibleProducts(filter)

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(visible)
			}

			fmt.Printf("Products (%d)\n", len(visible))
			if len(visible) == 0 {
				fmt.Println("No products found.", a.browser.EmptyStateMessage(filter))
				return nil
			}
			renderProductTable(os.Stdout, a.browser, visible)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Substring match over name, product code and SKU")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "Filter by category id")
	cmd.Flags().StringVar(&storeID, "store", "", "Filter by store id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the filtered list as JSON")

	return cmd
}

func newProductsCreateCommand(a *app) *cobra.Command {
	var draftFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product from a JSON draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.browser.LoadAll(ctx); err != nil {
				return err
			}

			draft, err := readDraft(draftFile)
			if err != nil {
				return err
			}

			f := form.NewCreate(a.browser.References())
			f.Apply(draft)

			created, err := a.browser.CreateProduct(ctx, f)
			if err != nil {
				return err
			}
			fmt.Printf("Created product %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&draftFile, "file", "f", "", "JSON file holding the product draft (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newProductsUpdateCommand(a *app) *cobra.Command {
	var draftFile string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing product from a JSON draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			if err := a.browser.LoadAll(ctx); err != nil {
				return err
			}

			existing, ok := findProduct(a.browser.Products(), id)
			if !ok {
				return fmt.Errorf("product %s not found", id)
			}

			draft, err := readDraft(draftFile)
			if err != nil {
				return err
			}

			f := form.NewEdit(existing, a.browser.References())
			f.Apply(draft)

			updated, err := a.browser.UpdateProduct(ctx, id, f)
			if err != nil {
				return err
			}
			fmt.Printf("Updated product %s (%s)\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&draftFile, "file", "f", "", "JSON file holding the product draft (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newProductsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.browser.DeleteProduct(cmd.Context(), args[0])
			if errors.Is(err, catalog.ErrDeleteCancelled) {
				fmt.Println("Aborted.")
				return nil
			}
			return err
		},
	}
}

func readDraft(path string) (models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Product{}, fmt.Errorf("read draft file: %w", err)
	}
	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Product{}, fmt.Errorf("parse draft file: %w", err)
	}
	return p, nil
}

func findProduct(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
