package domain

// FieldSelection is the set of field names enabled for export. One selection
// applies to both CSV columns and KML extended fields. A nil or empty
// selection means "all fields".
type FieldSelection map[string]bool

// NewFieldSelection builds a selection from enabled field names.
func NewFieldSelection(names ...string) FieldSelection {
	if len(names) == 0 {
		return nil
	}
	sel := make(FieldSelection, len(names))
	for _, name := range names {
		sel[name] = true
	}
	return sel
}

// Enabled reports whether the named field is exported.
func (s FieldSelection) Enabled(name string) bool {
	if len(s) == 0 {
		return true
	}
	return s[name]
}

// Columns projects the full (stable-ordered) field-name list onto the
// selection, preserving order. This is the one place column order and
// field filtering are decided for every exporter.
func (s FieldSelection) Columns(all []string) []string {
	cols := make([]string, 0, len(all))
	for _, name := range all {
		if s.Enabled(name) {
			cols = append(cols, name)
		}
	}
	return cols
}

// TimecodeRange is an optional inclusive [From, To] export window. A zero
// endpoint (00:00:00:00) means unbounded on that side, mirroring the
// original tool's all-zero "unset" convention.
type TimecodeRange struct {
	From Timecode
	To   Timecode
}

// Contains reports whether tc falls inside the window.
func (r TimecodeRange) Contains(tc Timecode) bool {
	if !r.From.IsZero() && tc.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && tc.After(r.To) {
		return false
	}
	return true
}

// IsUnbounded reports whether the range filters nothing.
func (r TimecodeRange) IsUnbounded() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// ExportConfig carries the per-export options. Every stride is a keep-every-
// Nth interval where 1 means no reduction; the placemark stride applies to
// the full record set, independent of the KML track stride.
type ExportConfig struct {
	CSVStride       int
	KMLStride       int
	AddPlacemarks   bool
	PlacemarkStride int
	Range           TimecodeRange
}

// Validate rejects non-positive strides.
func (c ExportConfig) Validate() error {
	if c.CSVStride < 1 || c.KMLStride < 1 || c.PlacemarkStride < 1 {
		return ErrInvalidStride
	}
	return nil
}
