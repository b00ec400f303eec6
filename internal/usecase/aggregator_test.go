package usecase

import (
	"testing"

	"PowerPos/internal/domain/models"
)

func mkTrade(volumes ...float64) *models.Trade {
	t := &models.Trade{}
	for i, v := range volumes {
		t.Periods = append(t.Periods, models.Period{Index: i + 1, Volume: v})
	}
	return t
}

func TestAggregateEmpty(t *testing.T) {
	vols := Aggregate(nil)
	if vols.Len() != 0 {
		t.Fatalf("expected empty mapping, got %d buckets", vols.Len())
	}
}

func TestAggregateSumsAcrossTrades(t *testing.T) {
	vols := Aggregate([]*models.Trade{
		mkTrade(100, 200, 150),
		mkTrade(50, 75, 100),
	})

	want := map[string]float64{"23:00": 150, "00:00": 275, "01:00": 250}
	for label, sum := range want {
		got, ok := vols.Get(label)
		if !ok {
			t.Fatalf("missing bucket %s", label)
		}
		if got != sum {
			t.Fatalf("bucket %s: got %v want %v", label, got, sum)
		}
	}

	labels := vols.Labels()
	wantOrder := []string{"23:00", "00:00", "01:00"}
	if len(labels) != len(wantOrder) {
		t.Fatalf("unexpected label count %d", len(labels))
	}
	for i, l := range wantOrder {
		if labels[i] != l {
			t.Fatalf("labels[%d]=%s want %s", i, labels[i], l)
		}
	}
}

func TestAggregateNegativeVolumes(t *testing.T) {
	vols := Aggregate([]*models.Trade{mkTrade(100), mkTrade(-40)})
	got, _ := vols.Get("23:00")
	if got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
}

func TestAggregateSkipsNilTrades(t *testing.T) {
	vols := Aggregate([]*models.Trade{nil, mkTrade(10)})
	if vols.Len() != 1 {
		t.Fatalf("expected 1 bucket, got %d", vols.Len())
	}
}

func TestBucketLabelRoundTrip(t *testing.T) {
	seen := make(map[string]bool)
	for i := 1; i <= 24; i++ {
		l := models.BucketLabel(i)
		if seen[l] {
			t.Fatalf("duplicate label %s for index %d", l, i)
		}
		seen[l] = true
	}
	if !seen["23:00"] {
		t.Fatalf("missing 23:00")
	}
	for h := 0; h < 23; h++ {
		l := models.BucketLabel(h + 2)
		if !seen[l] {
			t.Fatalf("missing label %s", l)
		}
	}
}

func TestBucketLabelMapping(t *testing.T) {
	cases := map[int]string{1: "23:00", 2: "00:00", 3: "01:00", 13: "11:00", 24: "22:00"}
	for idx, want := range cases {
		if got := models.BucketLabel(idx); got != want {
			t.Fatalf("BucketLabel(%d)=%s want %s", idx, got, want)
		}
	}
}

func TestBucketLabelInvalidIndex(t *testing.T) {
	for _, idx := range []int{0, -1, 25, 100} {
		if got := models.BucketLabel(idx); got != models.UnknownBucket {
			t.Fatalf("BucketLabel(%d)=%s want %s", idx, got, models.UnknownBucket)
		}
	}
}

func TestUnknownBucketSortsLast(t *testing.T) {
	vols := models.NewAggregatedVolumes()
	vols.Add(models.UnknownBucket, 5)
	vols.Add("23:00", 1)
	vols.Add("00:00", 2)
	labels := vols.Labels()
	if labels[0] != "23:00" || labels[len(labels)-1] != models.UnknownBucket {
		t.Fatalf("unexpected order %v", labels)
	}
}

func TestEmptyVolumesCanonical(t *testing.T) {
	vols := EmptyVolumes()
	if vols.Len() != 24 {
		t.Fatalf("expected 24 buckets, got %d", vols.Len())
	}
	labels := vols.Labels()
	if labels[0] != "23:00" {
		t.Fatalf("expected 23:00 first, got %s", labels[0])
	}
	if labels[1] != "00:00" || labels[23] != "22:00" {
		t.Fatalf("unexpected ordering %v", labels)
	}
	for _, l := range labels {
		if v, _ := vols.Get(l); v != 0 {
			t.Fatalf("bucket %s not zero", l)
		}
	}
}
