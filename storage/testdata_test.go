package storage

import (
	"database/sql"

	"car-integration/models"
)

func sampleResult() *models.Result {
	a := &models.AggregatedRecord{VehicleKey: models.VehicleKey{
		ID:            models.IntID(5),
		MakeText:      models.Text("Audi"),
		TypeName:      models.Text("A4"),
		TypeNameFull:  models.Text("Audi A4"),
		ModelText:     models.Text("A4"),
		ModelTypeText: models.Text("A4 Avant"),
	}}
	a.Set("Seats", models.Text("1"))
	a.Set("BodyColorText", models.Text("schwarz"))

	b := &models.AggregatedRecord{VehicleKey: models.VehicleKey{ID: models.IntID(7), MakeText: models.Text("BMW")}}
	b.Set("City", models.Text("Basel"))

	na := &models.NormalizedRecord{AggregatedRecord: *a.Clone()}
	na.Set("BodyTypeText", models.Text("Single seater"))
	na.Set("BodyColorText", models.Text("Black"))
	na.Set("Zip", models.Text("Other"))
	nb := &models.NormalizedRecord{AggregatedRecord: *b.Clone()}
	nb.Set("BodyTypeText", models.Text("Other"))
	nb.Set("BodyColorText", models.Text("Other"))
	nb.Set("Zip", models.Text("4000"))

	return &models.Result{
		RunID:      "test-run",
		RawRows:    3,
		Aggregated: []*models.AggregatedRecord{a, b},
		Normalized: []*models.NormalizedRecord{na, nb},
		Integrated: []*models.IntegratedRecord{
			{
				CarType: "Single seater", Color: "Black", Condition: "Other", Currency: "CHF", Drive: "LHD",
				Country: "CH", Make: models.Text("Audi"), MileageUnit: "kilometer", Model: models.Text("A4"),
				ModelVariant: models.Text("Avant"), Type: "car", Zip: "Other",
			},
			{
				CarType: "Other", Color: "Other", Condition: "Other", Currency: "CHF", Drive: "LHD",
				City: models.Text("Basel"), Country: "CH", Make: models.Text("BMW"), MileageUnit: "kilometer",
				ModelVariant: sql.NullString{}, Type: "car", Zip: "4000",
			},
		},
	}
}
