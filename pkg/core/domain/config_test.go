package domain_test

import (
	"reflect"
	"testing"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
)

func TestFieldSelectionColumns(t *testing.T) {
	all := []string{"altitudeValue", "latitudeValue", "longitudeValue", "speed", "tc"}

	// Explicit selection: exported columns equal exactly the enabled set,
	// in the stable order of the full list.
	sel := domain.NewFieldSelection("speed", "tc", "latitudeValue")
	got := sel.Columns(all)
	want := []string{"latitudeValue", "speed", "tc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("projection wrong: expected %v, got %v", want, got)
	}

	// Empty selection means all fields.
	if got := domain.NewFieldSelection().Columns(all); !reflect.DeepEqual(got, all) {
		t.Errorf("empty selection must keep all columns, got %v", got)
	}

	// Names absent from the set do not invent columns.
	if got := domain.NewFieldSelection("nonexistent").Columns(all); len(got) != 0 {
		t.Errorf("unknown field must project to nothing, got %v", got)
	}
}

func TestTimecodeRangeInclusive(t *testing.T) {
	from, _ := domain.ParseTimecode("00:00:05:00")
	to, _ := domain.ParseTimecode("00:00:10:00")
	r := domain.TimecodeRange{From: from, To: to}

	inside, _ := domain.ParseTimecode("00:00:07:00")
	before, _ := domain.ParseTimecode("00:00:04:29")
	after, _ := domain.ParseTimecode("00:00:10:01")

	// Both endpoints are inclusive.
	for _, tc := range []domain.Timecode{from, to, inside} {
		if !r.Contains(tc) {
			t.Errorf("expected %s inside [%s, %s]", tc, from, to)
		}
	}
	for _, tc := range []domain.Timecode{before, after} {
		if r.Contains(tc) {
			t.Errorf("expected %s outside [%s, %s]", tc, from, to)
		}
	}

	// A zero endpoint is unbounded on that side.
	open := domain.TimecodeRange{To: to}
	if !open.Contains(before) {
		t.Errorf("open start must pass early timecodes")
	}
	if !(domain.TimecodeRange{}).IsUnbounded() {
		t.Errorf("zero range must be unbounded")
	}
}

func TestExportConfigValidate(t *testing.T) {
	good := domain.ExportConfig{CSVStride: 1, KMLStride: 10, PlacemarkStride: 3}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := domain.ExportConfig{CSVStride: 0, KMLStride: 1, PlacemarkStride: 1}
	if err := bad.Validate(); err == nil {
		t.Fatalf("zero stride must be rejected")
	}
}
