package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Configuration (E120-E149)
	"E120": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check that notesweb.json is valid JSON",
	},
	"E121": {
		Category:   CategoryConfig,
		Message:    "Invalid base path",
		Suggestion: `Use a path such as "/" or "/notes/"`,
	},
	"E122": {
		Category:   CategoryConfig,
		Message:    "Invalid listen address",
		Suggestion: `Use host:port with a port between 0 and 65535, e.g. ":5173"`,
	},
	"E123": {
		Category:   CategoryConfig,
		Message:    "Invalid history mode",
		Suggestion: `Set "history" to "web" or "memory"`,
	},
	"E124": {
		Category:   CategoryConfig,
		Message:    "Invalid log settings",
		Suggestion: `Use level debug, info, warn or error and format text or json`,
	},
	"E125": {
		Category:   CategoryConfig,
		Message:    "Invalid metrics path",
		Suggestion: `Use an absolute path such as "/metrics"`,
	},
	"E141": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create notesweb.json or pass --config",
	},

	// Routing (E200-E219)
	"E201": {
		Category:   CategoryRouting,
		Message:    "Duplicate route",
		Suggestion: "Every route needs a unique name and a unique path",
	},
	"E202": {
		Category: CategoryRouting,
		Message:  "Route not found",
	},
	"E203": {
		Category:   CategoryRouting,
		Message:    "Invalid route",
		Suggestion: "Route paths are literal, start with / and have no trailing slash",
	},

	// Server (E300-E319)
	"E301": {
		Category:   CategoryServer,
		Message:    "Server failed to start",
		Suggestion: "Check that the address is free, or pick another with --addr",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template Template) {
	registry[code] = template
}
