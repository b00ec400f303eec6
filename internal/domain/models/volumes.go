package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UnknownBucket is the label assigned to periods whose index falls outside
// the canonical 1..24 range. Kept deterministic so a malformed upstream
// payload still produces a readable report row instead of a crash.
const UnknownBucket = "unknown"

// CanonicalPeriods is the number of hourly periods on a normal trading day.
const CanonicalPeriods = 24

// BucketLabel maps a period index to its local-time bucket label.
// The trading day starts at 23:00 the previous calendar day, so period 1
// is "23:00" and period k>1 is hour k-2.
func BucketLabel(index int) string {
	if index == 1 {
		return "23:00"
	}
	if index < 1 || index > CanonicalPeriods {
		return UnknownBucket
	}
	return fmt.Sprintf("%02d:00", index-2)
}

// bucketSortKey orders labels so "23:00" comes first, then ascending hours.
// The unknown bucket sorts last.
func bucketSortKey(label string) int {
	h, _, ok := strings.Cut(label, ":")
	if !ok {
		return CanonicalPeriods
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return CanonicalPeriods
	}
	if hour == 23 {
		return -1
	}
	return hour
}

// AggregatedVolumes is an ordered mapping of bucket label to summed volume.
// Built fresh per extraction cycle, never persisted.
type AggregatedVolumes struct {
	sums   map[string]float64
	labels []string
}

// NewAggregatedVolumes returns an empty mapping.
func NewAggregatedVolumes() *AggregatedVolumes {
	return &AggregatedVolumes{sums: make(map[string]float64)}
}

// Add accumulates volume into the bucket, creating it at zero if absent.
func (v *AggregatedVolumes) Add(label string, volume float64) {
	if _, ok := v.sums[label]; !ok {
		v.labels = append(v.labels, label)
	}
	v.sums[label] += volume
}

// Get returns the summed volume for a bucket.
func (v *AggregatedVolumes) Get(label string) (float64, bool) {
	s, ok := v.sums[label]
	return s, ok
}

// Len returns the number of buckets.
func (v *AggregatedVolumes) Len() int { return len(v.labels) }

// Labels returns bucket labels in canonical order: "23:00" first, then
// ascending hours.
func (v *AggregatedVolumes) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	sort.SliceStable(out, func(i, j int) bool {
		return bucketSortKey(out[i]) < bucketSortKey(out[j])
	})
	return out
}
