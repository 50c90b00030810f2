package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldUserID      = "user_id"
	FieldEmail       = "email"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldPeriod      = "period"
	FieldExportRef   = "export_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentConsole = "console"
	ComponentUser    = "user"
	ComponentTx      = "transaction"
	ComponentBudget  = "budget"
	ComponentGoal    = "goal"
	ComponentAdmin   = "admin"
	ComponentStorage = "storage"
	ComponentNotify  = "notify"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpExport   = "export"
	OpNotify   = "notify"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
