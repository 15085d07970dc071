package config

import "fmt"

// Severity ranks a validation finding.
type Severity int

const (
	// SeverityWarning marks a finding the model tolerates fail-soft (the
	// affected contribution becomes zero at run time).
	SeverityWarning Severity = iota

	// SeverityError marks a finding that must be fixed before the
	// scenario can run (unknown names, out-of-range values).
	SeverityError
)

// String returns the display label for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue is one validation finding against a scenario file.
type Issue struct {
	Severity Severity
	Year     int
	Site     string
	Message  string
}

// String renders the issue for CLI output.
func (i Issue) String() string {
	scope := ""
	if i.Year != 0 {
		scope = fmt.Sprintf("year %d", i.Year)
	}
	if i.Site != "" {
		if scope != "" {
			scope += ", "
		}
		scope += "site " + i.Site
	}
	if scope != "" {
		return fmt.Sprintf("%s [%s]: %s", i.Severity, scope, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Issues is a list of validation findings.
type Issues []Issue

// HasErrors reports whether any finding is error severity.
func (is Issues) HasErrors() bool {
	for _, issue := range is {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity findings.
func (is Issues) Errors() Issues {
	var out Issues
	for _, issue := range is {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

func (is Issues) errorf(year int, site, format string, args ...any) Issues {
	return append(is, Issue{
		Severity: SeverityError,
		Year:     year,
		Site:     site,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (is Issues) warnf(year int, site, format string, args ...any) Issues {
	return append(is, Issue{
		Severity: SeverityWarning,
		Year:     year,
		Site:     site,
		Message:  fmt.Sprintf(format, args...),
	})
}
