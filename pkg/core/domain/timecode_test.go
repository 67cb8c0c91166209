package domain_test

import (
	"testing"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
)

func TestParseTimecode(t *testing.T) {
	tc, err := domain.ParseTimecode("01:02:03:15")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tc.Hours != 1 || tc.Minutes != 2 || tc.Seconds != 3 || tc.Frames != 15 {
		t.Fatalf("wrong components: %+v", tc)
	}
	if got := tc.String(); got != "01:02:03:15" {
		t.Errorf("String: expected 01:02:03:15, got %s", got)
	}

	// (1*3600 + 2*60 + 3) * 1000 + 15 * (1000/30) = 3723000 + 500
	if got := tc.Milliseconds(); got != 3723500 {
		t.Errorf("Milliseconds: expected 3723500, got %d", got)
	}
}

func TestParseTimecodeRejectsBadInput(t *testing.T) {
	bad := []string{
		"",
		"01:02:03",       // too few parts
		"01:02:03:04:05", // too many parts
		"01:02:03:30",    // frames >= frame rate
		"01:60:00:00",    // minutes out of range
		"aa:00:00:00",    // not a number
		"-1:00:00:00",    // negative
	}
	for _, s := range bad {
		if _, err := domain.ParseTimecode(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestTimecodeOrdering(t *testing.T) {
	early, _ := domain.ParseTimecode("00:00:01:00")
	late, _ := domain.ParseTimecode("00:00:01:01")

	if !early.Before(late) {
		t.Errorf("expected %s before %s", early, late)
	}
	if !late.After(early) {
		t.Errorf("expected %s after %s", late, early)
	}
	if early.Before(early) || early.After(early) {
		t.Errorf("a timecode must not order against itself")
	}
}

func TestTimecodeZero(t *testing.T) {
	var zero domain.Timecode
	if !zero.IsZero() {
		t.Errorf("zero value must report IsZero")
	}
	tc, _ := domain.ParseTimecode("00:00:00:01")
	if tc.IsZero() {
		t.Errorf("00:00:00:01 must not report IsZero")
	}
}
