package usecase

import "PowerPos/internal/domain/models"

// Aggregate sums period volumes across all trades into hourly buckets.
// Pure: no I/O, no shared state. Empty input yields an empty mapping.
func Aggregate(trades []*models.Trade) *models.AggregatedVolumes {
	vols := models.NewAggregatedVolumes()
	for _, t := range trades {
		if t == nil {
			continue
		}
		for _, p := range t.Periods {
			vols.Add(models.BucketLabel(p.Index), p.Volume)
		}
	}
	return vols
}

// EmptyVolumes returns the canonical 24 buckets at zero. Used when the
// provider returned no trades without failing.
func EmptyVolumes() *models.AggregatedVolumes {
	vols := models.NewAggregatedVolumes()
	for i := 1; i <= models.CanonicalPeriods; i++ {
		vols.Add(models.BucketLabel(i), 0)
	}
	return vols
}

// ErrorVolumes returns the canonical 24 buckets for a fallback report.
// Values are irrelevant; the serializer substitutes the ERROR placeholder.
func ErrorVolumes() *models.AggregatedVolumes {
	return EmptyVolumes()
}
