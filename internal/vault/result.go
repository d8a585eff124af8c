package vault

// Problem and warning codes reported by the validator, in the order the
// checks run.
const (
	CodeVaultNotFound         = "VAULT_NOT_FOUND"
	CodeVaultNotDirectory     = "VAULT_NOT_DIRECTORY"
	CodeObsidianConfigMissing = "OBSIDIAN_CONFIG_MISSING"
	CodeConfigFileMissing     = "OBSIDIAN_CONFIG_FILE_MISSING"
	CodeConfigFileMalformed   = "OBSIDIAN_CONFIG_MALFORMED"
	CodePluginsDirMissing     = "PLUGINS_DIR_MISSING"
	CodeConflictingPlugin     = "CONFLICTING_PLUGIN"
	CodeNoMarkdownFiles       = "NO_MARKDOWN_FILES"
	CodeLargeAttachmentDir    = "LARGE_ATTACHMENT_DIR"
	CodeVaultTooLarge         = "VAULT_TOO_LARGE"
	CodeDeepNesting           = "DEEP_NESTING"
	CodeLargeFile             = "LARGE_FILE"
)

// Severity of a validation problem. Only SeverityError affects validity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is a structural defect that makes the vault unusable for export.
type Problem struct {
	Code     string
	Message  string
	Path     string
	Severity Severity
}

// Warning flags something worth fixing that does not block the export.
type Warning struct {
	Code       string
	Message    string
	Path       string
	Suggestion string
}

// Result is the outcome of one vault validation pass. It is immutable once
// returned: the validator builds a fresh value per call.
type Result struct {
	Valid       bool
	Errors      []Problem
	Warnings    []Warning
	Suggestions []string
}

func (r *Result) addError(code, message, path string) {
	r.Errors = append(r.Errors, Problem{
		Code:     code,
		Message:  message,
		Path:     path,
		Severity: SeverityError,
	})
}

func (r *Result) addWarning(code, message, path, suggestion string) {
	r.Warnings = append(r.Warnings, Warning{
		Code:       code,
		Message:    message,
		Path:       path,
		Suggestion: suggestion,
	})
	if suggestion != "" {
		r.Suggestions = append(r.Suggestions, suggestion)
	}
}

// finish computes overall validity from the error list. Warnings never
// affect validity.
func (r *Result) finish() {
	r.Valid = true
	for _, p := range r.Errors {
		if p.Severity == SeverityError {
			r.Valid = false
			return
		}
	}
}
