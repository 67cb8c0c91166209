package domain

import (
	"sort"
	"strconv"
)

// ValueKind tags the scalar type of a parsed field value.
type ValueKind string

const (
	ValueKindNumber ValueKind = "NUMBER" // numeric field (stored as float64)
	ValueKindText   ValueKind = "TEXT"   // opaque text (also: unknown field types)
)

// Value is one scalar field value inside a Record.
// Numeric values keep their source literal in Raw so exports reproduce the
// original formatting instead of a re-rendered float.
type Value struct {
	Kind ValueKind
	Num  float64
	Raw  string
}

// Number builds a numeric Value from a parsed float and its source literal.
func Number(num float64, raw string) Value {
	return Value{Kind: ValueKindNumber, Num: num, Raw: raw}
}

// Text builds an opaque text Value.
func Text(s string) Value {
	return Value{Kind: ValueKindText, Raw: s}
}

// String renders the value the way it is written into export cells.
func (v Value) String() string {
	if v.Raw != "" || v.Kind == ValueKindText {
		return v.Raw
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

// Well-known field names of the .dlog schema. Everything else is carried as
// an opaque field for forward compatibility with new log schemas.
const (
	FieldTimecode  = "tc"
	FieldLatitude  = "latitudeValue"
	FieldLongitude = "longitudeValue"
	FieldAltitude  = "altitudeValue"
)

// Position is a geospatial sample derived from a Record's position fields.
type Position struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Record is one telemetry sample: a timecode plus named scalar fields.
// Immutable once parsed.
type Record struct {
	TC     Timecode
	Fields map[string]Value
}

// Get returns the named field value.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Position derives the geospatial position from the record's well-known
// position fields. Latitude and longitude are required; a missing altitude
// defaults to zero (ground level).
func (r Record) Position() (Position, bool) {
	lat, ok := r.Fields[FieldLatitude]
	if !ok || lat.Kind != ValueKindNumber {
		return Position{}, false
	}
	lon, ok := r.Fields[FieldLongitude]
	if !ok || lon.Kind != ValueKindNumber {
		return Position{}, false
	}
	p := Position{Latitude: lat.Num, Longitude: lon.Num}
	if alt, ok := r.Fields[FieldAltitude]; ok && alt.Kind == ValueKindNumber {
		p.Altitude = alt.Num
	}
	return p, true
}

// RecordSet is the timecode-ordered aggregation of all records parsed from
// one working folder. It is rebuilt wholesale on every refresh, never
// incrementally mutated.
type RecordSet struct {
	Records []Record
	Files   int // number of .dlog files that contributed records
}

// Len returns the number of records in the set.
func (s *RecordSet) Len() int { return len(s.Records) }

// SortByTimecode orders the set by ascending timecode. The sort is stable so
// records sharing a timecode keep their file order.
func (s *RecordSet) SortByTimecode() {
	sort.SliceStable(s.Records, func(i, j int) bool {
		return s.Records[i].TC.Milliseconds() < s.Records[j].TC.Milliseconds()
	})
}

// FieldNames returns the sorted union of field names across all records.
// The sorted order is the stable column order used by every exporter.
func (s *RecordSet) FieldNames() []string {
	seen := make(map[string]struct{})
	for _, r := range s.Records {
		for name := range r.Fields {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Timecodes returns the first and last timecode of the (sorted) set.
func (s *RecordSet) Timecodes() (first, last Timecode, ok bool) {
	if len(s.Records) == 0 {
		return Timecode{}, Timecode{}, false
	}
	return s.Records[0].TC, s.Records[len(s.Records)-1].TC, true
}
