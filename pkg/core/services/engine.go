package services

import (
	"github.com/gripreality/TelemLogger-Explorer/pkg/core/domain"
)

// Downsample keeps every Nth record (1-indexed: positions 1, N+1, 2N+1, ...)
// preserving order. The result length is ceil(len/stride); stride 1 returns
// a copy of the input; a stride beyond the set size keeps only the first
// record. A stride below 1 is treated as 1.
func Downsample(records []domain.Record, stride int) []domain.Record {
	if stride < 1 {
		stride = 1
	}
	if len(records) == 0 {
		return nil
	}
	out := make([]domain.Record, 0, (len(records)+stride-1)/stride)
	for i := 0; i < len(records); i += stride {
		out = append(out, records[i])
	}
	return out
}

// FilterRange keeps the records whose timecode falls inside the inclusive
// window. The unbounded range returns the input unchanged.
func FilterRange(records []domain.Record, r domain.TimecodeRange) []domain.Record {
	if r.IsUnbounded() {
		return records
	}
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.TC) {
			out = append(out, rec)
		}
	}
	return out
}
