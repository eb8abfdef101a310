package normalize

import (
	"github.com/ChrisMcGann/QuantNorm/pkg/core"
)

// requiredFields must exist after renaming, whatever the layout.
var requiredFields = []string{core.ColProteins, core.ColSequence, core.ColCharge}

// CheckSchema verifies that table can be converted with settings without modifying it.
// Mapper keys are checked in declaration order and the first absent one is reported
// as a *core.MissingColumnError. Canonical fields that will not exist after renaming
// are reported as *core.MissingFieldError.
func CheckSchema(table *core.Table, settings *core.Settings) error {
	for _, k := range settings.Mapper.Keys() {
		if !table.HasColumn(k) {
			return &core.MissingColumnError{Column: k}
		}
	}

	renamed := make(map[string]bool)
	for _, c := range table.Columns() {
		name := c
		if to, ok := settings.Mapper.Get(c); ok {
			name = to
		}
		if renamed[name] {
			return &core.DuplicateColumnError{Column: name}
		}
		renamed[name] = true
	}

	for _, f := range requiredFields {
		if !renamed[f] {
			return &core.MissingFieldError{Field: f, Row: -1}
		}
	}

	switch settings.Layout() {
	case core.LayoutLong:
		if !renamed[core.ColIntensity] {
			return &core.MissingFieldError{Field: core.ColIntensity, Row: -1}
		}
	case core.LayoutWide:
		for _, raw := range settings.RawFiles() {
			if !renamed[raw] {
				return &core.MissingColumnError{Column: raw}
			}
		}
		if renamed[core.ColIntensity] {
			return &core.DuplicateColumnError{Column: core.ColIntensity}
		}
	}

	return nil
}
