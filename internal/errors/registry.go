package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Lifecycle Errors
	// ============================================

	"E101": {
		Category:   CategoryLifecycle,
		Message:    "Component suspended without a Suspense boundary",
		Detail:     "A component's View returned a pending Suspension, but no ancestor renders a Suspense boundary that could show a fallback.",
		Suggestion: "Wrap the component (or one of its ancestors) in bundle.SuspenseBoundary.",
		DocURL:     "https://vango.dev/docs/errors/E101",
	},
	"E102": {
		Category:   CategoryLifecycle,
		Message:    "Component view failed",
		Detail:     "View may only fail with a *Suspension. Other errors cannot be reconciled and abort the render.",
		Suggestion: "Render an error state from View instead of returning an error.",
		DocURL:     "https://vango.dev/docs/errors/E102",
	},
	"E106": {
		Category: CategoryLifecycle,
		Message:  "Component definition has no create function",
		Detail:   "bundle.Define requires a non-nil function that creates the component instance.",
		DocURL:   "https://vango.dev/docs/errors/E106",
	},

	// ============================================
	// Reconcile Errors
	// ============================================

	"E103": {
		Category:   CategoryReconcile,
		Message:    "Portal has no host",
		Detail:     "A portal node must name the surface element that receives its content.",
		Suggestion: "Pass a non-nil host to vdom.Portal.",
		DocURL:     "https://vango.dev/docs/errors/E103",
	},
	"E105": {
		Category: CategoryReconcile,
		Message:  "Unknown node kind",
		Detail:   "The virtual node carries a Kind the reconciler does not know.",
		DocURL:   "https://vango.dev/docs/errors/E105",
	},
	"E107": {
		Category: CategoryReconcile,
		Message:  "Component node without descriptor",
		Detail:   "A KindComponent node must carry a Comp built by a bundle.Definition.",
		DocURL:   "https://vango.dev/docs/errors/E107",
	},

	// ============================================
	// Surface Errors
	// ============================================

	"E104": {
		Category: CategorySurface,
		Message:  "Surface invariant violated",
		Detail:   "The rendering surface rejected a mutation. This usually means a node was moved or removed outside the reconciler.",
		DocURL:   "https://vango.dev/docs/errors/E104",
	},

	// ============================================
	// Protocol Errors
	// ============================================

	"E160": {
		Category: CategoryProtocol,
		Message:  "Malformed patch frame",
		Detail:   "A patch frame could not be decoded.",
		DocURL:   "https://vango.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryProtocol,
		Message:  "WebSocket connection failed",
		Detail:   "The live session could not upgrade or write to the WebSocket connection.",
		DocURL:   "https://vango.dev/docs/errors/E161",
	},

	// ============================================
	// Config / CLI Errors
	// ============================================

	"E180": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Detail:     "The configuration file could not be parsed or failed validation.",
		Suggestion: "Check reconcile.json (or reconcile.yaml) against the documented fields.",
		DocURL:     "https://vango.dev/docs/errors/E180",
	},
	"E181": {
		Category: CategoryCLI,
		Message:  "Unknown demo scenario",
		Detail:   "The requested scenario is not registered.",
		DocURL:   "https://vango.dev/docs/errors/E181",
	},
	"E182": {
		Category: CategoryCLI,
		Message:  "Snapshot store failed",
		Detail:   "The rendered snapshot could not be written to its store.",
		DocURL:   "https://vango.dev/docs/errors/E182",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
