package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"catalog-admin/catalog"
	"catalog-admin/client"
	"catalog-admin/importer"
)

// app carries the wired dependencies shared by all subcommands.
type app struct {
	cfg     *Config
	client  *client.Client
	browser *catalog.Browser

	configFile string
	baseURL    string
	assumeYes  bool
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "catalog-admin",
		Short: "Product catalog administration console",
		Long: `catalog-admin manages the product catalog of the e-commerce backend:
list and filter products, create/edit/delete records, and bulk-import
products from a CSV file with per-row error reporting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to a config file (yaml)")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Backend API base URL (overrides config)")
	root.PersistentFlags().BoolVarP(&a.assumeYes, "yes", "y", false, "Assume yes on confirmation prompts")

	root.AddCommand(newProductsCommand(a))
	root.AddCommand(newRefsCommand(a))
	root.AddCommand(newImportCommand(a))
	root.AddCommand(newTemplateCommand(a))

	return root
}

func (a *app) init() error {
	cfg, err := LoadConfig(a.configFile)
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	a.cfg = cfg

	if err := initLogger(cfg.Env); err != nil {
		return err
	}

	a.client = client.New(cfg.BaseURL, client.WithTimeout(cfg.Timeout))

	confirmer := catalog.Confirmer(promptConfirmer{})
	if a.assumeYes {
		confirmer = autoConfirmer{}
	}
	a.browser = catalog.NewBrowser(a.client,
		catalog.WithNotifier(consoleNotifier{}),
		catalog.WithConfirmer(confirmer),
	)
	return nil
}

// newImportPipeline wires the bulk-import pipeline with refresh-after-write
// and a console progress line.
func (a *app) newImportPipeline() *importer.Pipeline {
	return importer.New(a.client,
		importer.WithRefresh(a.browser.RefreshProducts),
		importer.WithProgress(func(percent int) {
			fmt.Printf("\rUploading... %d%%", percent)
			if percent == 100 {
				fmt.Println()
			}
		}),
	)
}

// consoleNotifier is the toast analogue: transient outcome reports printed
// to the terminal.
type consoleNotifier struct{}

func (consoleNotifier) Notify(n catalog.Notification) {
	if n.Type == catalog.NoticeError {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Title, n.Message)
		return
	}
	fmt.Printf("[%s] %s\n", n.Title, n.Message)
}

// promptConfirmer asks on stdin before destructive operations.
type promptConfirmer struct{}

func (promptConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// autoConfirmer backs the --yes flag.
type autoConfirmer struct{}

func (autoConfirmer) Confirm(string) bool { return true }
