package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameRate is the fixed frame rate of .dlog timecodes.
const FrameRate = 30

// Timecode is an HH:MM:SS:FF timecode at 30 fps. It is the timestamp of
// every telemetry record and the basis for ordering and range filtering.
type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
	Frames  int
}

// ParseTimecode parses "HH:MM:SS:FF". Each part must be a non-negative
// integer; minutes/seconds below 60 and frames below the frame rate.
func ParseTimecode(s string) (Timecode, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return Timecode{}, fmt.Errorf("timecode %q: expected HH:MM:SS:FF", s)
	}
	nums := make([]int, 4)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return Timecode{}, fmt.Errorf("timecode %q: bad component %q", s, part)
		}
		nums[i] = n
	}
	tc := Timecode{Hours: nums[0], Minutes: nums[1], Seconds: nums[2], Frames: nums[3]}
	if tc.Minutes > 59 || tc.Seconds > 59 || tc.Frames >= FrameRate {
		return Timecode{}, fmt.Errorf("timecode %q: component out of range", s)
	}
	return tc, nil
}

// String renders the canonical zero-padded form.
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds, t.Frames)
}

// Milliseconds converts the timecode to absolute milliseconds. The frame
// part truncates (1000/30 ms per frame), matching the source logs.
func (t Timecode) Milliseconds() int64 {
	secs := int64(t.Hours)*3600 + int64(t.Minutes)*60 + int64(t.Seconds)
	return secs*1000 + int64(float64(t.Frames)*1000.0/float64(FrameRate))
}

// IsZero reports whether the timecode is 00:00:00:00.
func (t Timecode) IsZero() bool {
	return t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0 && t.Frames == 0
}

// Before reports whether t is strictly earlier than u.
func (t Timecode) Before(u Timecode) bool {
	return t.Milliseconds() < u.Milliseconds()
}

// After reports whether t is strictly later than u.
func (t Timecode) After(u Timecode) bool {
	return t.Milliseconds() > u.Milliseconds()
}
