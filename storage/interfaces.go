package storage

import "car-integration/models"

// RowReader is the interface any supplier catalog source must satisfy.
type RowReader interface {
	ReadAll() ([]*models.RawRow, error)
}

// ResultWriter is the interface any export backend must satisfy.
type ResultWriter interface {
	Write(result *models.Result) error
	Close() error
}
