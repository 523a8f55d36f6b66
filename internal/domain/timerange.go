package domain

import "time"

// TimeRange is a closed interval [Start, End].
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LastDays returns the range ending at now and starting days*24h earlier.
func LastDays(now time.Time, days int) TimeRange {
	return TimeRange{Start: now.AddDate(0, 0, -days), End: now}
}

// Validate rejects ranges whose end precedes their start.
func (r TimeRange) Validate() error {
	if r.End.Before(r.Start) {
		return NewValidationError("end", "End must not be before start")
	}
	return nil
}

// Contains reports whether t falls within the range, bounds included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StoragePrecision is the resolution of stored timestamps.
const StoragePrecision = time.Microsecond

// Stored narrows r to whole microseconds: Start is rounded up and End down,
// so a stored timestamp falls inside the result exactly when it falls
// inside r.
func (r TimeRange) Stored() TimeRange {
	start := r.Start.UTC().Truncate(StoragePrecision)
	if start.Before(r.Start) {
		start = start.Add(StoragePrecision)
	}
	return TimeRange{Start: start, End: r.End.UTC().Truncate(StoragePrecision)}
}
