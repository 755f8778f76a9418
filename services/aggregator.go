package services

import (
	"errors"
	"fmt"
	"sort"

	"car-integration/models"
	"car-integration/utils"
)

// ErrInvalidID is returned when a raw row's identifier is not a number.
var ErrInvalidID = errors.New("invalid vehicle identifier")

// Aggregator collapses attribute-per-row supplier data into one record per vehicle.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate groups rows by their identity key and merges each group's
// attribute pairs in input order; a repeated attribute name keeps the last
// value. Records are returned by ascending ID, ties in first-seen order.
func (a *Aggregator) Aggregate(rows []*models.RawRow) ([]*models.AggregatedRecord, error) {
	groups := make(map[models.VehicleKey]*models.AggregatedRecord)
	result := make([]*models.AggregatedRecord, 0)

	for i, row := range rows {
		id, err := parseID(row.ID)
		if err != nil {
			return nil, fmt.Errorf("aggregator: row %d: %w", i+1, err)
		}

		key := models.VehicleKey{
			ID:            id,
			MakeText:      row.MakeText,
			TypeName:      row.TypeName,
			TypeNameFull:  row.TypeNameFull,
			ModelText:     row.ModelText,
			ModelTypeText: row.ModelTypeText,
		}

		rec, ok := groups[key]
		if !ok {
			rec = &models.AggregatedRecord{VehicleKey: key}
			groups[key] = rec
			result = append(result, rec)
		}

		for _, attr := range row.Attributes {
			if attr.Name == "" {
				continue
			}
			rec.Set(attr.Name, attr.Value)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ID.Less(result[j].ID)
	})

	a.logger.Info("[aggregator] Aggregated %d rows → %d vehicles", len(rows), len(result))
	return result, nil
}

func parseID(raw string) (models.VehicleID, error) {
	id, ok := models.ParseVehicleID(raw)
	if !ok {
		return models.VehicleID{}, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
