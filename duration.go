package countdown

import (
	"strconv"
	"strings"
	"time"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// Parts is a countdown broken down into whole units.
// All fields are non-negative.
type Parts struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// TotalSeconds reassembles the parts into a number of seconds.
func (p Parts) TotalSeconds() int64 {
	return int64(p.Days)*secondsPerDay + int64(p.Hours)*secondsPerHour +
		int64(p.Minutes)*secondsPerMinute + int64(p.Seconds)
}

// Breakdown splits the remaining time into days, hours, minutes and seconds.
// Negative durations clamp to zero so the countdown freezes once the target
// has passed. Sub-second remainders are truncated.
//
// A time.Duration spans about 292 years; use Remaining for instants that
// may be further apart.
func Breakdown(diff time.Duration) Parts {
	return breakdownSeconds(int64(diff / time.Second))
}

// Remaining breaks down the whole seconds from now until target. Unlike
// target.Sub(now) it does not saturate, so any pair of valid instants is
// exact.
func Remaining(target, now time.Time) Parts {
	secs := target.Unix() - now.Unix()
	if target.Nanosecond() < now.Nanosecond() {
		secs--
	}
	return breakdownSeconds(secs)
}

func breakdownSeconds(total int64) Parts {
	if total < 0 {
		total = 0
	}
	return Parts{
		Days:    int(total / secondsPerDay),
		Hours:   int(total % secondsPerDay / secondsPerHour),
		Minutes: int(total % secondsPerHour / secondsPerMinute),
		Seconds: int(total % secondsPerMinute),
	}
}

// Pad formats v with at least two digits.
func Pad(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// Bucket quantizes nowMs (Unix milliseconds) down to the start of its
// bucketSeconds-wide window. bucketSeconds is clamped to
// [1, MaxBucketSeconds].
//
// Every instant inside one window maps to the same value, which is what
// makes repeated renders within a window byte-identical.
func Bucket(nowMs int64, bucketSeconds int) int64 {
	width := int64(min(max(1, bucketSeconds), MaxBucketSeconds)) * 1000
	q := nowMs / width
	if nowMs%width != 0 && nowMs < 0 {
		q--
	}
	return q * width
}

// BucketTime is Bucket for a time.Time, returned as a UTC instant.
func BucketTime(now time.Time, bucketSeconds int) time.Time {
	return time.UnixMilli(Bucket(now.UnixMilli(), bucketSeconds)).UTC()
}

// WantsAnimation reports whether the caller asked for an animated image.
// The first non-empty value decides; it must be "1", "true" or "gif",
// compared case-insensitively. No value means a static image.
func WantsAnimation(values ...string) bool {
	for _, v := range values {
		if v == "" {
			continue
		}
		switch strings.ToLower(v) {
		case "1", "true", "gif":
			return true
		}
		return false
	}
	return false
}
