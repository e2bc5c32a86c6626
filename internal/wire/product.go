package wire

// ProductMetadata is the automation settings block of a product
type ProductMetadata struct {
	Cron              string   `json:"cron"`
	Name              string   `json:"name"`
	Debug             bool     `json:"debug"`
	Vendor            string   `json:"vendor"`
	Enabled           bool     `json:"enabled"`
	LastRanAt         *string  `json:"last_ran_at,omitempty"`
	LastRanStatus     *string  `json:"last_ran_status,omitempty"`
	AutomationScripts []string `json:"automation_scripts"`

	NeedsNiniteCheck  bool    `json:"needs_ninite_check"`
	NiniteProductName *string `json:"ninite_product_name,omitempty"`

	NeedsFileSizeCheck bool    `json:"needs_file_size_check"`
	FileSizeURL        *string `json:"file_size_url,omitempty"`

	NeedsVendorWebsiteCheck bool    `json:"needs_vendor_website_check"`
	VendorWebsiteRegex      *string `json:"vendor_website_regex,omitempty"`
	VendorWebsiteURL        *string `json:"vendor_website_url,omitempty"`
}

// Product is a product as returned by the products endpoints
type Product struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	LastUpdated    *string         `json:"last_updated,omitempty"`
	LastModifiedBy *string         `json:"last_modified_by,omitempty"`
	Metadata       ProductMetadata `json:"metadata"`
}

// CreateProductRequest is the body of POST /products
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Metadata ProductMetadata `json:"metadata"`
}

// UpdateProductRequest is the partial body of PUT /products/:id.
// Nil fields are left unchanged by the server.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Metadata *ProductMetadata `json:"metadata,omitempty"`
}

// Script is an automation script published in the scripts repository
type Script struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ScriptsResponse is the body of GET /github_scripts
type ScriptsResponse struct {
	Files []Script `json:"files"`
}
