package calc

import "fmt"

// Severity classifies a validation issue. Only errors block a successful result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single validation finding.
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Issues is the validator's output in rule order.
type Issues []Issue

func (is Issues) filter(s Severity) []Issue {
	out := make([]Issue, 0)
	for _, i := range is {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Errors returns the error-severity issues.
func (is Issues) Errors() []Issue { return is.filter(SeverityError) }

// Warnings returns the warning-severity issues.
func (is Issues) Warnings() []Issue { return is.filter(SeverityWarning) }

// Info returns the informational issues.
func (is Issues) Info() []Issue { return is.filter(SeverityInfo) }

// HasErrors reports whether any issue blocks the result.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Field returns the issues reported against field.
func (is Issues) Field(field string) []Issue {
	out := make([]Issue, 0)
	for _, i := range is {
		if i.Field == field {
			out = append(out, i)
		}
	}
	return out
}

type collector struct {
	issues Issues
}

func (c *collector) add(s Severity, field, format string, args ...any) {
	c.issues = append(c.issues, Issue{Field: field, Message: fmt.Sprintf(format, args...), Severity: s})
}

func (c *collector) errorf(field, format string, args ...any) {
	c.add(SeverityError, field, format, args...)
}

func (c *collector) warnf(field, format string, args ...any) {
	c.add(SeverityWarning, field, format, args...)
}

func (c *collector) infof(field, format string, args ...any) {
	c.add(SeverityInfo, field, format, args...)
}
