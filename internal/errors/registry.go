package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reactive Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryReactive,
		Message:  "List index out of range",
		Detail:   "The index passed to an observable list operation is outside the list bounds. The list was left unchanged and no handler fired.",
	},
	"E102": {
		Category: CategoryReactive,
		Message:  "Tracker frame underflow",
		Detail:   "EndFrame was called without a matching BeginFrame on the same tracker.",
	},
	"E103": {
		Category: CategoryReactive,
		Message:  "Record path invalid",
		Detail:   "A record path must be a non-empty, dot-separated list of field names.",
	},

	// ============================================
	// Component Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryComponent,
		Message:  "Async producer panicked",
		Detail:   "The producer of an asynchronous component panicked. The error variant was rendered instead.",
	},
	"E202": {
		Category: CategoryComponent,
		Message:  "Mount container missing",
		Detail:   "The document has no container element to mount the root component into.",
	},
	"E203": {
		Category: CategoryComponent,
		Message:  "List container is not an element",
		Detail:   "A list component needs a container component that renders to an element node.",
	},

	// ============================================
	// Config and Export Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryExport,
		Message:  "Snapshot export failed",
		Detail:   "The rendered document could not be uploaded to object storage.",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "storefront.json contains an invalid value.",
	},
	"E303": {
		Category: CategoryConfig,
		Message:  "Configuration unreadable",
		Detail:   "storefront.json exists but could not be read or parsed.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
