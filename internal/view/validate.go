package view

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

// FieldIssue is one failed validation rule
type FieldIssue struct {
	Field   string
	Message string
}

// ValidationError aggregates every failed rule of a form. A form that
// produces one must not be submitted.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Field + ": " + issue.Message
	}
	return "invalid product: " + strings.Join(msgs, "; ")
}

// Fields returns the names of the failing fields in rule order
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.Field
	}
	return out
}

// Has reports whether field failed at least one rule
func (e *ValidationError) Has(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// ValidateProductForm checks a product form before it is sent. It returns nil
// or a *ValidationError listing one issue per failing rule.
func ValidateProductForm(form domain.ProductForm) error {
	var issues []FieldIssue
	add := func(field, msg string) {
		issues = append(issues, FieldIssue{Field: field, Message: msg})
	}

	if blank(form.Cron) {
		add("cron", "Cron schedule is required.")
	} else if _, err := ParseCron(form.Cron); err != nil {
		add("cron", fmt.Sprintf("Cron schedule is not valid: %v.", err))
	}
	if blank(form.Name) {
		add("name", "Product name is required.")
	}
	if blank(form.Vendor) {
		add("vendor", "Vendor is required.")
	}
	if len(form.AutomationScripts) > domain.MaxAutomationScripts {
		add("automationScripts", fmt.Sprintf("At most %d automation scripts can be configured.", domain.MaxAutomationScripts))
	}
	if form.NeedsFileSizeCheck && blank(form.FileSizeURL) {
		add("fileSizeUrl", "File Size URL is required if file size check is enabled.")
	}
	if form.NeedsNiniteCheck && blank(form.NiniteProductName) {
		add("niniteProductName", "Ninite product name is required if Ninite check is enabled.")
	}
	if form.NeedsVendorWebsiteCheck {
		if blank(form.VendorWebsiteURL) || blank(form.VendorWebsiteRegex) {
			add("vendorWebsiteUrl", "Vendor website URL and regex are required if check is enabled.")
		} else if _, err := regexp.Compile(form.VendorWebsiteRegex); err != nil {
			add("vendorWebsiteRegex", "Vendor website regex does not compile.")
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
