package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldUsername    = "username"
	FieldProcessedBy = "processed_by"
	FieldEvent       = "event"
	FieldPurpose     = "purpose"
	FieldAccount     = "account"
	FieldField       = "field"
	FieldRows        = "rows"
	FieldMembers     = "members"
	FieldForms       = "forms"
	FieldSkipped     = "skipped"
	FieldDuration    = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentSheets   = "sheets"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentForm     = "form"
	ComponentDelivery = "delivery"
	ComponentBackend  = "backend"
)

// Operations defines standard operation names
const (
	OpLoad    = "load"
	OpParse   = "parse"
	OpSync    = "sync"
	OpRender  = "render"
	OpDeliver = "deliver"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeTypeMismatch  = "type_mismatch"
	ErrorTypeMissingMember = "missing_member"
	ErrorTypeUnclassified  = "unclassified_account"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNetwork       = "network_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(kind string) LogFields {
	f[FieldErrorType] = kind
	return f
}

// WithReimbursement adds the fields identifying one reimbursement row
func (f LogFields) WithReimbursement(username, event, purpose string) LogFields {
	f[FieldUsername] = username
	if event != "" {
		f[FieldEvent] = event
	}
	if purpose != "" {
		f[FieldPurpose] = purpose
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
