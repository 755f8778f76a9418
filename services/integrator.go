package services

import (
	"database/sql"

	"car-integration/models"
	"car-integration/utils"
)

// Constant values of the target schema. Every supplier listing is a car sold
// in Switzerland.
const (
	TargetCurrency        = "CHF"
	TargetDrive           = "LHD"
	TargetCountry         = "CH"
	TargetMileageUnit     = "kilometer"
	TargetType            = "car"
	TargetFuelUnit        = "l_km_consumption"
	consumptionNullMarker = "null"
)

// Integrator projects normalized records into the target schema.
type Integrator struct {
	logger *utils.Logger
}

// NewIntegrator creates an Integrator with the given logger.
func NewIntegrator(logger *utils.Logger) *Integrator {
	return &Integrator{logger: logger}
}

// Integrate maps every normalized record to exactly one integrated record.
func (in *Integrator) Integrate(records []*models.NormalizedRecord) []*models.IntegratedRecord {
	result := make([]*models.IntegratedRecord, 0, len(records))
	for _, rec := range records {
		result = append(result, Project(rec))
	}
	in.logger.Info("[integrator] Integrated %d records", len(result))
	return result
}

// Project builds the target record for one normalized vehicle. It reads
// nothing but rec.
func Project(rec *models.NormalizedRecord) *models.IntegratedRecord {
	return &models.IntegratedRecord{
		CarType:             rec.Attr(ColumnCarType).String,
		Color:               rec.Attr(ColumnColor).String,
		Condition:           rec.Attr(ColumnCondition).String,
		Currency:            TargetCurrency,
		Drive:               TargetDrive,
		City:                rec.Attr(AttrCity),
		Country:             TargetCountry,
		Make:                rec.MakeText,
		ManufactureYear:     rec.Attr(AttrFirstRegYear),
		Mileage:             rec.Attr(AttrKm),
		MileageUnit:         TargetMileageUnit,
		Model:               rec.ModelText,
		ModelVariant:        rec.Attr(ColumnVariant),
		PriceOnRequest:      sql.NullString{},
		Type:                TargetType,
		Zip:                 rec.Attr(ColumnZip).String,
		ManufactureMonth:    rec.Attr(AttrFirstRegMonth),
		FuelConsumptionUnit: fuelConsumptionUnit(rec.Attr(AttrConsumption)),
	}
}

func fuelConsumptionUnit(consumption sql.NullString) sql.NullString {
	if !consumption.Valid || consumption.String == "" || consumption.String == consumptionNullMarker {
		return sql.NullString{}
	}
	return models.Text(TargetFuelUnit)
}
