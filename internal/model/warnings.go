package model

import (
	"fmt"

	"github.com/agrata/carbonsense/internal/refdata"
)

// WarningCode classifies a configuration problem detected during
// evaluation. The model is fail-soft: problems zero out the affected
// contribution and are reported, never raised as errors or panics.
type WarningCode int

const (
	// WarnMixNot100 marks an active site whose cell-mix percentages do not
	// sum to exactly 100. The site-year contributes zero.
	WarnMixNot100 WarningCode = iota

	// WarnMissingSilicon marks an active silicon-bearing cell type with no
	// silicon selection and no configured default. The site-year
	// contributes zero.
	WarnMissingSilicon

	// WarnSourcingIgnored marks a sourcing category whose weights are
	// present but do not sum to exactly 100. The category contributes
	// zero; the rest of the site-year is unaffected.
	WarnSourcingIgnored

	// WarnUnknownSource marks a sourcing weight naming a source that does
	// not exist in the reference tables. The entry is ignored.
	WarnUnknownSource
)

// String returns the stable code name used in logs and JSON output.
func (c WarningCode) String() string {
	switch c {
	case WarnMixNot100:
		return "mix_not_100"
	case WarnMissingSilicon:
		return "missing_silicon_selection"
	case WarnSourcingIgnored:
		return "sourcing_incomplete"
	case WarnUnknownSource:
		return "unknown_source"
	default:
		return fmt.Sprintf("warning_%d", int(c))
	}
}

// MarshalJSON encodes the code as its stable string name.
func (c WarningCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Warning describes one configuration problem for one site-year.
type Warning struct {
	Code   WarningCode  `json:"code"`
	Site   refdata.Site `json:"-"`
	Year   int          `json:"year,omitempty"`
	Detail string       `json:"detail"`
}

// MarshalSite is exposed for renderers; JSON carries the display name.
func (w Warning) MarshalSite() string { return w.Site.String() }

// String renders the warning for logs and plain output.
func (w Warning) String() string {
	if w.Year != 0 {
		return fmt.Sprintf("[%s] %s %d: %s", w.Code, w.Site, w.Year, w.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Code, w.Site, w.Detail)
}
