package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldIntent      = "intent"
	FieldItemsAdded  = "items_added"
	FieldRecordID    = "record_id"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldChartKind   = "chart_kind"
	FieldModel       = "model"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStore     = "store"
	ComponentAgent     = "agent"
	ComponentLLM       = "llm"
	ComponentChart     = "chart"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpFilter   = "filter"
	OpExtract  = "extract"
	OpResolve  = "resolve"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
