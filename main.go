// catalog-admin is the product-catalog administration console: a headless
// counterpart of the back-office screen that lists, creates, edits and
// deletes products and bulk-imports them from CSV against the catalog REST
// backend.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initLogger installs the global logger the packages log through.
func initLogger(env string) error {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}
