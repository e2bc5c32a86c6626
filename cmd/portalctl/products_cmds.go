package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hochfrequenz/automation-portal/internal/apiclient"
	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/view"
)

var (
	productFilter   view.ProductFilter
	productSort     string
	productDesc     bool
	productPage     int
	productPageSize int
	productFile     string
	productRename   string
)

// productFileDoc is the YAML representation of a product form
type productFileDoc struct {
	Name              string   `yaml:"name"`
	Vendor            string   `yaml:"vendor"`
	Cron              string   `yaml:"cron"`
	Enabled           *bool    `yaml:"enabled"`
	Debug             *bool    `yaml:"debug"`
	AutomationScripts []string `yaml:"automation_scripts"`

	FileSizeCheck *struct {
		URL string `yaml:"url"`
	} `yaml:"file_size_check"`
	NiniteCheck *struct {
		ProductName string `yaml:"product_name"`
	} `yaml:"ninite_check"`
	VendorWebsiteCheck *struct {
		URL   string `yaml:"url"`
		Regex string `yaml:"regex"`
	} `yaml:"vendor_website_check"`
}

func init() {
	productsCmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage automation products",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE:  runProductsList,
	}
	listCmd.Flags().StringVar(&productFilter.Search, "search", "", "match name, vendor or id")
	listCmd.Flags().StringVar(&productFilter.Status, "status", "", "last run status contains")
	listCmd.Flags().StringVar(&productFilter.Enabled, "enabled", "", "enabled or disabled")
	listCmd.Flags().StringVar(&productFilter.Vendor, "vendor", "", "exact vendor")
	listCmd.Flags().StringVar(&productSort, "sort", string(view.SortByID), "sort key: id, name, vendor, updated")
	listCmd.Flags().BoolVar(&productDesc, "desc", false, "sort descending")
	listCmd.Flags().IntVar(&productPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&productPageSize, "page-size", view.DefaultPageSize, "rows per page")
	productsCmd.AddCommand(listCmd)

	productsCmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductsGet,
	})

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product from a YAML file",
		RunE:  runProductsCreate,
	}
	createCmd.Flags().StringVarP(&productFile, "file", "f", "", "product YAML file")
	createCmd.MarkFlagRequired("file")
	productsCmd.AddCommand(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a product's settings from a YAML file",
		Long: `Change a product's settings from a YAML file. Fields the file omits keep
their saved values, including the last run time and status.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runProductsUpdate,
	}
	updateCmd.Flags().StringVarP(&productFile, "file", "f", "", "product YAML file")
	updateCmd.Flags().StringVar(&productRename, "name", "", "new product name (defaults to the name in the file)")
	updateCmd.MarkFlagRequired("file")
	productsCmd.AddCommand(updateCmd)

	productsCmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductsDelete,
	})

	productsCmd.AddCommand(&cobra.Command{
		Use:   "search QUERY",
		Short: "Search products on the server",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductsSearch,
	})

	productsCmd.AddCommand(&cobra.Command{
		Use:   "scripts",
		Short: "List the automation scripts available for pipeline stages",
		RunE:  runProductsScripts,
	})

	rootCmd.AddCommand(productsCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		products, err := a.client.Products().List(cmd.Context(), nil)
		if err != nil {
			return err
		}
		list := view.NewProductList(products)
		list.SetOrder(func(ps []domain.Product) []domain.Product {
			return view.SortProducts(ps, view.ProductSortKey(productSort), productDesc)
		})
		list.SetPageSize(productPageSize)
		list.SetFilter(productFilter)
		list.SetPage(productPage)

		page := list.Current()
		if err := printProducts(a, page.Items); err != nil {
			return err
		}
		if page.TotalItems > 0 {
			a.out.line("page %d of %d, %d products", page.Number, page.TotalPages, page.TotalItems)
		}
		return nil
	})
}

func printProducts(a *app, products []domain.Product) error {
	now := time.Now()
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		next := view.NotAvailable
		if p.Metadata.Enabled {
			if t, err := view.NextRun(p.Metadata.Cron, now); err == nil {
				next = view.RelativeTime(t.Format(time.RFC3339), now)
			}
		}
		rows = append(rows, table.Row{
			p.ID, p.Name, p.Metadata.Vendor, yesNo(p.Metadata.Enabled),
			statusText(p.LastRunStatus()), view.RelativeTime(p.Metadata.LastRanAt, now), next,
		})
	}
	return a.out.table(products, table.Row{"ID", "Name", "Vendor", "Enabled", "Last Run", "Ran", "Next Run"}, rows)
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		p, err := a.client.Products().Get(cmd.Context(), id)
		if apiclient.IsNotFound(err) {
			return fmt.Errorf("no product %d, see 'portalctl products list': %w", id, err)
		}
		if err != nil {
			return err
		}
		return printProduct(a, p)
	})
}

func printProduct(a *app, p domain.Product) error {
	if a.out.json {
		return a.out.JSON(p)
	}
	m := p.Metadata
	rows := []table.Row{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Vendor", m.Vendor},
		{"Schedule", m.Cron},
		{"Enabled", yesNo(m.Enabled)},
		{"Debug", yesNo(m.Debug)},
		{"Last run", fmt.Sprintf("%s (%s)", statusText(p.LastRunStatus()), view.FormatTimestamp(m.LastRanAt))},
		{"Updated", fmt.Sprintf("%s by %s", view.FormatTimestamp(p.LastUpdated), p.LastModifiedBy)},
	}
	for i, script := range m.AutomationScripts {
		rows = append(rows, table.Row{domain.StageForIndex(i).Name, script})
	}
	if m.NeedsFileSizeCheck {
		rows = append(rows, table.Row{"File size check", m.FileSizeURL})
	}
	if m.NeedsNiniteCheck {
		rows = append(rows, table.Row{"Ninite check", m.NiniteProductName})
	}
	if m.NeedsVendorWebsiteCheck {
		rows = append(rows, table.Row{"Vendor website check", m.VendorWebsiteURL + "  " + m.VendorWebsiteRegex})
	}
	return a.out.table(p, table.Row{"Field", "Value"}, rows)
}

func runProductsCreate(cmd *cobra.Command, args []string) error {
	form, err := readProductFile(productFile)
	if err != nil {
		return err
	}
	if err := view.ValidateProductForm(form); err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		p, err := a.client.Products().Create(cmd.Context(), form)
		if err != nil {
			return err
		}
		a.out.line("Created product %d", p.ID)
		return printProduct(a, p)
	})
}

func runProductsUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	doc, err := loadProductFile(productFile)
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		current, err := a.client.Products().Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		form := doc.apply(domain.FormFromProduct(current))
		if productRename != "" {
			form.Name = productRename
		}
		if err := view.ValidateProductForm(form); err != nil {
			return err
		}
		p, err := a.client.Products().Update(cmd.Context(), id, form.Name, form)
		if err != nil {
			return err
		}
		a.out.line("Updated product %d", p.ID)
		return printProduct(a, p)
	})
}

func runProductsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		if err := a.client.Products().Delete(cmd.Context(), id); err != nil {
			return err
		}
		a.out.line("Deleted product %d", id)
		return nil
	})
}

func runProductsSearch(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		products, err := a.client.Products().Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printProducts(a, products)
	})
}

func runProductsScripts(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		return listScripts(cmd.Context(), a)
	})
}

func listScripts(ctx context.Context, a *app) error {
	scripts, err := a.client.Products().Scripts(ctx)
	if err != nil {
		return err
	}
	rows := make([]table.Row, 0, len(scripts))
	for _, s := range scripts {
		rows = append(rows, table.Row{s.Name, s.Path})
	}
	return a.out.table(scripts, table.Row{"Name", "Path"}, rows)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

// readProductFile loads a product form from YAML. Omitted fields keep the
// blank-form defaults, so enabled is true unless the file says otherwise.
func readProductFile(path string) (domain.ProductForm, error) {
	doc, err := loadProductFile(path)
	if err != nil {
		return domain.ProductForm{}, err
	}
	return doc.apply(domain.DefaultProductForm()), nil
}

func loadProductFile(path string) (productFileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return productFileDoc{}, err
	}
	var doc productFileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return productFileDoc{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// apply overlays the fields present in the file onto form
func (d productFileDoc) apply(form domain.ProductForm) domain.ProductForm {
	if d.Name != "" {
		form.Name = d.Name
	}
	if d.Vendor != "" {
		form.Vendor = d.Vendor
	}
	if d.Cron != "" {
		form.Cron = d.Cron
	}
	if d.Enabled != nil {
		form.Enabled = *d.Enabled
	}
	if d.Debug != nil {
		form.Debug = *d.Debug
	}
	if d.AutomationScripts != nil {
		form.AutomationScripts = d.AutomationScripts
	}
	if d.FileSizeCheck != nil {
		form.NeedsFileSizeCheck = true
		form.FileSizeURL = d.FileSizeCheck.URL
	}
	if d.NiniteCheck != nil {
		form.NeedsNiniteCheck = true
		form.NiniteProductName = d.NiniteCheck.ProductName
	}
	if d.VendorWebsiteCheck != nil {
		form.NeedsVendorWebsiteCheck = true
		form.VendorWebsiteURL = d.VendorWebsiteCheck.URL
		form.VendorWebsiteRegex = d.VendorWebsiteCheck.Regex
	}
	return form
}
