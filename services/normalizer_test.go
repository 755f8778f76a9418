package services

import (
	"database/sql"
	"testing"

	"car-integration/models"
)

var null = sql.NullString{}

func TestNormalizeCarType(t *testing.T) {
	tests := []struct {
		seats    sql.NullString
		bodyType sql.NullString
		want     string
	}{
		{str("1"), str("Limousine"), "Single seater"},
		{str("1"), null, "Single seater"},
		{str("1.0"), str("Kombi"), "Single seater"},
		{str("5"), str("Coupé"), "Coupé"},
		{str("5"), str("Limousine"), "Saloon"},
		{str("2"), str("Cabriolet"), "Convertible / Roadster"},
		{str("5"), str("Kombi"), "Station Wagon"},
		{str("5"), str("SUV / Geländewagen"), "SUV"},
		{str("5"), str("Pick-up"), "Other"},
		{str("5"), null, "Other"},
		{null, null, "Other"},
		{str("abc"), str("Kombi"), "Station Wagon"},
	}

	for _, tt := range tests {
		got := NormalizeCarType(tt.seats, tt.bodyType)
		if got != tt.want {
			t.Errorf("NormalizeCarType(%v, %v) = %q; want %q", tt.seats, tt.bodyType, got, tt.want)
		}
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		raw  sql.NullString
		want string
	}{
		{str("schwarz metallic"), "Black"},
		{str("xyz"), "Other"},
		{str("silber mét."), "Silver"},
		{str("anthrazit"), "Gray"},
		{str("dunkelgrau"), "Gray"},
		{str("bordeaux"), "Red"},
		{str("grün"), "Green"},
		{str("Schwarz"), "Other"},
		{str("blau-schwarz"), "Black"},
		{str("weiss/blau"), "Blue"},
		{str(""), "Other"},
		{null, "Other"},
	}

	for _, tt := range tests {
		got := NormalizeColor(tt.raw)
		if got != tt.want {
			t.Errorf("NormalizeColor(%v) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		raw  sql.NullString
		want string
	}{
		{str("Occasion"), "Used"},
		{str("Oldtimer"), "Restored"},
		{str("Neu"), "New"},
		{str("Vorführmodell"), "Original Condition"},
		{str("neu"), "Other"},
		{null, "Other"},
	}

	for _, tt := range tests {
		got := NormalizeCondition(tt.raw)
		if got != tt.want {
			t.Errorf("NormalizeCondition(%v) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeVariant(t *testing.T) {
	tests := []struct {
		model, modelType, typeName sql.NullString
		want                       sql.NullString
	}{
		{str("A4"), str("A4 Avant"), str("A4 Avant 2.0"), str("Avant")},
		{str("A4"), str("Q5 Sportback"), str("Q5 Sportback 45"), str("Q5 Sportback 45")},
		{str(" a4 "), str("  A4   Avant quattro "), str("x"), str("Avant quattro")},
		{str("A4"), str("A4"), str("x"), str("")},
		{str("A4"), str("A4Avant"), str("x"), str("Avant")},
		{str("Golf"), str("Go"), str("Golf GTI"), str("Golf GTI")},
		{str("Mégane"), str("MÉGANE Grandtour"), str("x"), str("Grandtour")},
		{null, str("A4 Avant"), str("A4 Avant 2.0"), str("A4 Avant 2.0")},
		{str("A4"), null, str("A4 2.0"), str("A4 2.0")},
		{str("A4"), str("Q5"), null, null},
		{str(""), str("Avant"), str("x"), str("Avant")},
	}

	for _, tt := range tests {
		got := NormalizeVariant(tt.model, tt.modelType, tt.typeName)
		if got != tt.want {
			t.Errorf("NormalizeVariant(%v, %v, %v) = %v; want %v",
				tt.model, tt.modelType, tt.typeName, got, tt.want)
		}
	}
}

func TestNormalizeZip(t *testing.T) {
	tests := []struct {
		city sql.NullString
		want string
	}{
		{str("Basel"), "4000"},
		{str("Zuzwil"), "9524"},
		{str("Porrentruy"), "2900"},
		{str("Sursee"), "6210"},
		{str("Safenwil"), "5745"},
		{str("St. Galen"), "9000"},
		{str("Zurich"), "Other"},
		{str("basel"), "Other"},
		{null, "Other"},
	}

	for _, tt := range tests {
		got := NormalizeZip(tt.city)
		if got != tt.want {
			t.Errorf("NormalizeZip(%v) = %q; want %q", tt.city, got, tt.want)
		}
	}
}

func TestRulesAreFixedAndOrdered(t *testing.T) {
	want := []string{ColumnCarType, ColumnColor, ColumnCondition, ColumnVariant, ColumnZip}
	got := Rules()
	if len(got) != len(want) {
		t.Fatalf("Rules(): got %d rules, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.Column != want[i] {
			t.Errorf("rule %d: got column %q, want %q", i, r.Column, want[i])
		}
	}

	got[0] = Rule{Column: "tampered"}
	if Rules()[0].Column != ColumnCarType {
		t.Error("modifying the returned slice must not change the rule set")
	}
}

func aggregatedVehicle() *models.AggregatedRecord {
	rec := &models.AggregatedRecord{
		VehicleKey: models.VehicleKey{
			ID:            models.IntID(5),
			MakeText:      str("Audi"),
			TypeName:      str("A4"),
			TypeNameFull:  str("Audi A4"),
			ModelText:     str("A4"),
			ModelTypeText: str("A4 Avant"),
		},
	}
	rec.Set("Seats", str("5"))
	rec.Set("BodyTypeText", str("Kombi"))
	rec.Set("BodyColorText", str("grau mét."))
	rec.Set("ConditionTypeText", str("Occasion"))
	rec.Set("City", str("Sursee"))
	rec.Set("Km", str("12000"))
	return rec
}

func TestNormalizeRecord(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	in := aggregatedVehicle()

	got := n.Normalize([]*models.AggregatedRecord{in})
	if len(got) != 1 {
		t.Fatalf("expected 1 normalized record, got %d", len(got))
	}
	out := got[0]

	checks := map[string]string{
		ColumnCarType:   "Station Wagon",
		ColumnColor:     "Gray",
		ColumnCondition: "Used",
		ColumnVariant:   "Avant",
		ColumnZip:       "6210",
		"Km":            "12000",
		"City":          "Sursee",
	}
	for col, want := range checks {
		if v := out.Attr(col); !v.Valid || v.String != want {
			t.Errorf("%s: got %v, want %q", col, v, want)
		}
	}
	if out.VehicleKey != in.VehicleKey {
		t.Errorf("identity changed: got %v, want %v", out.VehicleKey, in.VehicleKey)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	in := aggregatedVehicle()

	n.Normalize([]*models.AggregatedRecord{in})

	if v := in.Attr("BodyTypeText").String; v != "Kombi" {
		t.Errorf("input BodyTypeText mutated to %q", v)
	}
	if v := in.Attr("BodyColorText").String; v != "grau mét." {
		t.Errorf("input BodyColorText mutated to %q", v)
	}
	if _, ok := in.Attributes[ColumnZip]; ok {
		t.Error("input gained a Zip column")
	}
	if len(in.Order) != 6 {
		t.Errorf("input attribute order changed: %v", in.Order)
	}
}

func TestNormalizeMissingAttributes(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	in := &models.AggregatedRecord{VehicleKey: models.VehicleKey{ID: models.IntID(1), TypeName: str("X1")}}

	out := n.Normalize([]*models.AggregatedRecord{in})[0]

	for _, col := range []string{ColumnCarType, ColumnColor, ColumnCondition, ColumnZip} {
		if v := out.Attr(col).String; v != Other {
			t.Errorf("%s: got %q, want %q", col, v, Other)
		}
	}
	if v := out.Attr(ColumnVariant); v.String != "X1" {
		t.Errorf("Variant: got %v, want fallback X1", v)
	}
}
