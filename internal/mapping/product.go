package mapping

import (
	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

// Product maps a wire product to its presentation record
func Product(w wire.Product) domain.Product {
	return domain.Product{
		ID:             w.ID,
		Name:           w.Name,
		LastUpdated:    deref(w.LastUpdated),
		LastModifiedBy: deref(w.LastModifiedBy),
		Metadata:       Metadata(w.Metadata),
	}
}

// Products maps a product list, preserving order
func Products(ws []wire.Product) []domain.Product {
	out := make([]domain.Product, 0, len(ws))
	for _, w := range ws {
		out = append(out, Product(w))
	}
	return out
}

// Metadata maps a wire metadata block
func Metadata(w wire.ProductMetadata) domain.ProductMetadata {
	return domain.ProductMetadata{
		Cron:                    w.Cron,
		Name:                    w.Name,
		Debug:                   w.Debug,
		Vendor:                  w.Vendor,
		Enabled:                 w.Enabled,
		LastRanAt:               deref(w.LastRanAt),
		LastRanStatus:           deref(w.LastRanStatus),
		AutomationScripts:       copyStrings(w.AutomationScripts),
		NeedsFileSizeCheck:      w.NeedsFileSizeCheck,
		FileSizeURL:             deref(w.FileSizeURL),
		NeedsVendorWebsiteCheck: w.NeedsVendorWebsiteCheck,
		VendorWebsiteURL:        deref(w.VendorWebsiteURL),
		VendorWebsiteRegex:      deref(w.VendorWebsiteRegex),
		NeedsNiniteCheck:        w.NeedsNiniteCheck,
		NiniteProductName:       deref(w.NiniteProductName),
	}
}

// ProductToWire maps a presentation product back to its wire shape.
// Optional text fields are always emitted, so a fully populated wire product
// survives Product followed by ProductToWire unchanged.
func ProductToWire(p domain.Product) wire.Product {
	return wire.Product{
		ID:             p.ID,
		Name:           p.Name,
		LastUpdated:    wire.String(p.LastUpdated),
		LastModifiedBy: wire.String(p.LastModifiedBy),
		Metadata:       MetadataToWire(p.Metadata),
	}
}

// MetadataToWire maps a metadata block or product form to its wire shape
func MetadataToWire(m domain.ProductMetadata) wire.ProductMetadata {
	return wire.ProductMetadata{
		Cron:                    m.Cron,
		Name:                    m.Name,
		Debug:                   m.Debug,
		Vendor:                  m.Vendor,
		Enabled:                 m.Enabled,
		LastRanAt:               wire.String(m.LastRanAt),
		LastRanStatus:           wire.String(m.LastRanStatus),
		AutomationScripts:       copyStrings(m.AutomationScripts),
		NeedsNiniteCheck:        m.NeedsNiniteCheck,
		NiniteProductName:       wire.String(m.NiniteProductName),
		NeedsFileSizeCheck:      m.NeedsFileSizeCheck,
		FileSizeURL:             wire.String(m.FileSizeURL),
		NeedsVendorWebsiteCheck: m.NeedsVendorWebsiteCheck,
		VendorWebsiteRegex:      wire.String(m.VendorWebsiteRegex),
		VendorWebsiteURL:        wire.String(m.VendorWebsiteURL),
	}
}

// CreateProductRequest builds the POST /products body from a submitted form
func CreateProductRequest(form domain.ProductForm) wire.CreateProductRequest {
	return wire.CreateProductRequest{
		Name:     form.Name,
		Metadata: MetadataToWire(form),
	}
}

// UpdateProductRequest builds the PUT /products/:id body. The product name is
// sent alongside the metadata so a rename in the form reaches both places.
func UpdateProductRequest(name string, form domain.ProductForm) wire.UpdateProductRequest {
	md := MetadataToWire(form)
	return wire.UpdateProductRequest{
		Name:     wire.String(name),
		Metadata: &md,
	}
}

// Scripts maps the scripts listing
func Scripts(w wire.ScriptsResponse) []domain.Script {
	out := make([]domain.Script, 0, len(w.Files))
	for _, f := range w.Files {
		out = append(out, domain.Script{Name: f.Name, Path: f.Path})
	}
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
