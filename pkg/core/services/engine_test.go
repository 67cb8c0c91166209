package services_test

import (
	"fmt"
	"testing"

	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
	"github.com/gripreality/TelemLogger-Explorer/pkg/core/services"
)

// makeRecords builds n records with one-second timecode spacing and an
// "index" field holding the 1-based original position. Seconds roll into
// minutes so sets beyond one minute stay valid.
func makeRecords(t *testing.T, n int) []domain.Record {
	t.Helper()
	records := make([]domain.Record, n)
	for i := 0; i < n; i++ {
		tc, err := domain.ParseTimecode(fmt.Sprintf("00:%02d:%02d:00", i/60, i%60))
		if err != nil {
			t.Fatalf("bad test timecode: %v", err)
		}
		records[i] = domain.Record{
			TC: tc,
			Fields: map[string]domain.Value{
				"index": domain.Number(float64(i+1), fmt.Sprintf("%d", i+1)),
			},
		}
	}
	return records
}

func position(t *testing.T, rec domain.Record) int {
	t.Helper()
	v, ok := rec.Get("index")
	if !ok {
		t.Fatalf("record has no index field")
	}
	return int(v.Num)
}

func TestDownsampleProperties(t *testing.T) {
	// For all strides N >= 1: the result has length ceil(len/N) and its
	// i-th element is the input's element at (i-1)*N.
	for _, size := range []int{0, 1, 2, 9, 10, 11, 100, 121} {
		records := makeRecords(t, size)
		for stride := 1; stride <= 12; stride++ {
			out := services.Downsample(records, stride)

			wantLen := (size + stride - 1) / stride
			if len(out) != wantLen {
				t.Fatalf("size=%d stride=%d: expected %d records, got %d", size, stride, wantLen, len(out))
			}
			for i, rec := range out {
				if got, want := position(t, rec), i*stride+1; got != want {
					t.Fatalf("size=%d stride=%d: element %d is position %d, expected %d", size, stride, i, got, want)
				}
			}
		}
	}
}

func TestDownsampleKnownCases(t *testing.T) {
	// 10 records with stride 3 keep original positions 1, 4, 7, 10.
	out := services.Downsample(makeRecords(t, 10), 3)
	want := []int{1, 4, 7, 10}
	if len(out) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(out))
	}
	for i, rec := range out {
		if got := position(t, rec); got != want[i] {
			t.Errorf("element %d: expected position %d, got %d", i, want[i], got)
		}
	}

	// Stride 1 is the identity (aside from copying).
	records := makeRecords(t, 5)
	if out := services.Downsample(records, 1); len(out) != 5 {
		t.Errorf("stride 1 must keep all records, got %d", len(out))
	}

	// A stride beyond the set size keeps exactly the first record.
	out = services.Downsample(records, 50)
	if len(out) != 1 || position(t, out[0]) != 1 {
		t.Errorf("oversized stride must keep only the first record, got %d records", len(out))
	}

	// Empty input yields empty output.
	if out := services.Downsample(nil, 3); len(out) != 0 {
		t.Errorf("empty set must downsample to empty, got %d", len(out))
	}
}

func TestPlacemarkStrideIndependence(t *testing.T) {
	// Placemark downsampling runs against the full set, not against the
	// KML-downsampled view: 12 records with placemark stride 5 select
	// positions 1, 6, 11 regardless of the track stride.
	records := makeRecords(t, 12)

	for _, kmlStride := range []int{1, 2, 4, 7} {
		track := services.Downsample(records, kmlStride)
		placemarks := services.Downsample(records, 5)

		want := []int{1, 6, 11}
		if len(placemarks) != len(want) {
			t.Fatalf("kmlStride=%d: expected %d placemarks, got %d", kmlStride, len(want), len(placemarks))
		}
		for i, rec := range placemarks {
			if got := position(t, rec); got != want[i] {
				t.Errorf("kmlStride=%d: placemark %d at position %d, expected %d", kmlStride, i, got, want[i])
			}
		}
		_ = track // track density varies; placemark positions must not
	}
}

func TestFilterRange(t *testing.T) {
	records := makeRecords(t, 10) // 00:00:00:00 .. 00:00:09:00

	from, _ := domain.ParseTimecode("00:00:03:00")
	to, _ := domain.ParseTimecode("00:00:06:00")
	out := services.FilterRange(records, domain.TimecodeRange{From: from, To: to})

	// Inclusive on both ends: positions 4..7.
	if len(out) != 4 {
		t.Fatalf("expected 4 records, got %d", len(out))
	}
	if position(t, out[0]) != 4 || position(t, out[3]) != 7 {
		t.Errorf("wrong window: first=%d last=%d", position(t, out[0]), position(t, out[3]))
	}

	// Unbounded range passes everything through.
	if out := services.FilterRange(records, domain.TimecodeRange{}); len(out) != 10 {
		t.Errorf("unbounded range must keep all records, got %d", len(out))
	}
}
