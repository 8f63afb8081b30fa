package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"catalog-admin/importer"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk-import products from a CSV file",
		Long: `Bulk-import products from a CSV file. The file is validated locally
(extension/MIME type, size), uploaded in one multipart request, and the
backend's per-row outcome is reported: uploaded count plus the first ten
row errors with a count of the remainder. Rows that succeeded are kept
even when other rows fail. The product list is re-fetched afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open csv file: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat csv file: %w", err)
			}

			contentType := mime.TypeByExtension(filepath.Ext(path))
			report, err := a.browser.ImportCSV(
				cmd.Context(),
				a.newImportPipeline(),
				f,
				filepath.Base(path),
				contentType,
				info.Size(),
			)
			if err != nil {
				return err
			}

			fmt.Println(report.Summary())
			return nil
		},
	}
}

func newTemplateCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the CSV upload template",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := importer.SaveTemplate(output); err != nil {
				return err
			}
			fmt.Printf("Template written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", importer.TemplateFilename, "Where to write the template")
	return cmd
}
