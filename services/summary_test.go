package services

import (
	"bytes"
	"strings"
	"testing"

	"car-integration/models"
)

func sampleResult() *models.Result {
	return &models.Result{
		RunID:      "run-1",
		RawRows:    9,
		Aggregated: make([]*models.AggregatedRecord, 4),
		Integrated: []*models.IntegratedRecord{
			{CarType: "SUV", Color: "Black", Condition: "Used", Zip: "4000", Make: str("Audi")},
			{CarType: "SUV", Color: "White", Condition: "Used", Zip: "Other", Make: str("BMW")},
			{CarType: "Saloon", Color: "Black", Condition: "New", Zip: "4000", Make: str("Audi")},
			{CarType: "Other", Color: "Other", Condition: "Other", Zip: "Other"},
		},
	}
}

func TestSummaryCounts(t *testing.T) {
	svc := NewSummaryService(newTestLogger())
	s := svc.Generate(sampleResult())

	if s.RunID != "run-1" || s.RawRows != 9 || s.Vehicles != 4 || s.Integrated != 4 {
		t.Errorf("totals: got %+v", s)
	}
	if s.ByCarType["SUV"] != 2 {
		t.Errorf("SUV count: got %d, want 2", s.ByCarType["SUV"])
	}
	if s.ByColor["Black"] != 2 {
		t.Errorf("Black count: got %d, want 2", s.ByColor["Black"])
	}
	if s.ByZip["4000"] != 2 || s.ByZip["Other"] != 2 {
		t.Errorf("zip counts: got %v", s.ByZip)
	}
	if s.ByMake["null"] != 1 {
		t.Errorf("missing make should be counted as null, got %v", s.ByMake)
	}
}

func TestSummaryNilResult(t *testing.T) {
	svc := NewSummaryService(newTestLogger())
	s := svc.Generate(nil)
	if s.Integrated != 0 || len(s.ByCarType) != 0 {
		t.Errorf("expected empty summary for nil result, got %+v", s)
	}
}

func TestSortedCounts(t *testing.T) {
	got := SortedCounts(map[string]int{"b": 2, "a": 2, "c": 5})
	want := []LabelCount{{"c", 5}, {"a", 2}, {"b", 2}}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummaryPrint(t *testing.T) {
	svc := NewSummaryService(newTestLogger())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleResult()))

	out := buf.String()
	for _, want := range []string{"run-1", "Integrated records", "carType", "SUV", "Saloon", "4000"} {
		if !strings.Contains(out, want) {
			t.Errorf("printed summary missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	got := truncate("a very long make name indeed", 10)
	if len([]rune(got)) > 10 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate(long) = %q", got)
	}
}
