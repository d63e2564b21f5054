package substitute

import (
	"fmt"

	"github.com/arthur-debert/scaffold/pkg/types"
)

// Validation severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationResult is one finding from required-variable validation
type ValidationResult struct {
	// Template is the name of the template the finding belongs to
	Template string

	// Variable is the offending variable name
	Variable string

	Severity string
	Message  string
}

// ValidateRequired checks that every variable the template declares as
// required has an entry in provided. One error-severity result is returned
// per unmet requirement so callers can aggregate findings across a batch
// and report them together before any write happens.
func ValidateRequired(tmpl *types.Template, provided map[string]string) []ValidationResult {
	var results []ValidationResult

	for _, v := range tmpl.Variables {
		if !v.Required {
			continue
		}
		if _, ok := provided[v.Name]; ok {
			continue
		}

		results = append(results, ValidationResult{
			Template: tmpl.Name,
			Variable: v.Name,
			Severity: SeverityError,
			Message:  fmt.Sprintf("template %q requires variable %q", tmpl.Name, v.Name),
		})
	}

	return results
}
