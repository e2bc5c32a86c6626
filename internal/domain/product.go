package domain

import (
	"fmt"
	"time"
)

// MaxAutomationScripts is the number of pipeline stages a product can script
const MaxAutomationScripts = 4

// ProductMetadata holds the automation settings of a product
type ProductMetadata struct {
	Cron              string
	Name              string
	Debug             bool
	Vendor            string
	Enabled           bool
	LastRanAt         string
	LastRanStatus     string
	AutomationScripts []string

	NeedsFileSizeCheck bool
	FileSizeURL        string

	NeedsVendorWebsiteCheck bool
	VendorWebsiteURL        string
	VendorWebsiteRegex      string

	NeedsNiniteCheck  bool
	NiniteProductName string
}

// Product is a managed automation product
type Product struct {
	ID             int
	Name           string
	LastUpdated    string
	LastModifiedBy string
	Metadata       ProductMetadata
}

// LastRunStatus returns the normalized status of the product's last run
func (p *Product) LastRunStatus() StandardStatus {
	return NormalizeStatus(p.Metadata.LastRanStatus)
}

// LastUpdatedTime parses LastUpdated, returning the zero time when absent or malformed
func (p *Product) LastUpdatedTime() time.Time {
	return ParseTimestamp(p.LastUpdated)
}

// ProductForm is the editable part of a product. The write path submits it as metadata.
type ProductForm = ProductMetadata

// DefaultProductForm returns the blank form used when creating a product
func DefaultProductForm() ProductForm {
	return ProductForm{
		Enabled:           true,
		AutomationScripts: []string{},
	}
}

// FormFromProduct returns an editable copy of a saved product's metadata
func FormFromProduct(p Product) ProductForm {
	form := p.Metadata
	form.AutomationScripts = append([]string(nil), p.Metadata.AutomationScripts...)
	if form.Name == "" {
		form.Name = p.Name
	}
	return form
}

// Script is an automation script available for a pipeline stage
type Script struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// ScriptStage describes one pipeline stage an automation script is bound to
type ScriptStage struct {
	ID          string
	Index       int
	Name        string
	Description string
}

// ScriptStages are the pipeline stages in execution order
var ScriptStages = []ScriptStage{
	{ID: "NOTIFICATION", Index: 0, Name: "Gather Notification", Description: "Monitor vendor channels and collect patch release notifications"},
	{ID: "CREATE_PATCH", Index: 1, Name: "Create Patch", Description: "Download vendor releases and generate patches"},
	{ID: "CREATE_BUILD", Index: 2, Name: "Generate QA Build", Description: "Prepare the build by QA testing environment"},
	{ID: "DEPLOY_VALIDATION", Index: 3, Name: "Deploy & Validate Build", Description: "Deploy & Execute test, and verify installation"},
}

// StageForIndex returns the pipeline stage for a script position.
// Positions outside the known stages get a generic label.
func StageForIndex(i int) ScriptStage {
	if i >= 0 && i < len(ScriptStages) {
		return ScriptStages[i]
	}
	return ScriptStage{ID: "SCRIPT", Index: -1, Name: fmt.Sprintf("Script %d", i+1), Description: "Automation Script"}
}
