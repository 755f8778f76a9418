package models

import "database/sql"

// Attribute is a single name/value observation carried by a supplier row.
type Attribute struct {
	Name  string
	Value sql.NullString
}

// RawRow holds one supplier catalog line exactly as read from the JSONL file.
// ID is kept as text; the aggregator decides whether it is a usable number.
type RawRow struct {
	ID            string
	MakeText      sql.NullString
	TypeName      sql.NullString
	TypeNameFull  sql.NullString
	ModelText     sql.NullString
	ModelTypeText sql.NullString
	Attributes    []Attribute
}

// VehicleKey identifies one vehicle listing. It is comparable, so it can be
// used directly as a map key; two null fields are equal to each other.
type VehicleKey struct {
	ID            VehicleID
	MakeText      sql.NullString
	TypeName      sql.NullString
	TypeNameFull  sql.NullString
	ModelText     sql.NullString
	ModelTypeText sql.NullString
}

// KeyColumns lists the identity columns in export order.
var KeyColumns = []string{"ID", "MakeText", "TypeName", "TypeNameFull", "ModelText", "ModelTypeText"}

// Column returns the value of one identity column.
func (k VehicleKey) Column(name string) (sql.NullString, bool) {
	switch name {
	case "ID":
		return Text(k.ID.String()), true
	case "MakeText":
		return k.MakeText, true
	case "TypeName":
		return k.TypeName, true
	case "TypeNameFull":
		return k.TypeNameFull, true
	case "ModelText":
		return k.ModelText, true
	case "ModelTypeText":
		return k.ModelTypeText, true
	}
	return sql.NullString{}, false
}

// AggregatedRecord is one vehicle with all of its attribute rows merged.
// Order keeps attribute names in the order they were first seen.
type AggregatedRecord struct {
	VehicleKey
	Attributes map[string]sql.NullString
	Order      []string
}

// Attr returns the named attribute, or null when the vehicle never had it.
func (r *AggregatedRecord) Attr(name string) sql.NullString {
	return r.Attributes[name]
}

// Set writes an attribute, appending the name to Order on first use.
func (r *AggregatedRecord) Set(name string, value sql.NullString) {
	if r.Attributes == nil {
		r.Attributes = make(map[string]sql.NullString)
	}
	if _, ok := r.Attributes[name]; !ok {
		r.Order = append(r.Order, name)
	}
	r.Attributes[name] = value
}

// Clone returns a deep copy that shares no mutable state with r.
func (r *AggregatedRecord) Clone() *AggregatedRecord {
	c := &AggregatedRecord{
		VehicleKey: r.VehicleKey,
		Attributes: make(map[string]sql.NullString, len(r.Attributes)),
		Order:      append([]string(nil), r.Order...),
	}
	for k, v := range r.Attributes {
		c.Attributes[k] = v
	}
	return c
}

// Value returns a column by name, looking at identity columns first.
func (r *AggregatedRecord) Value(column string) sql.NullString {
	if v, ok := r.VehicleKey.Column(column); ok {
		return v
	}
	return r.Attr(column)
}

// NormalizedRecord has the same shape as an AggregatedRecord, with the
// normalized columns rewritten into the target vocabulary.
type NormalizedRecord struct {
	AggregatedRecord
}

// IntegratedRecord is the final fixed-schema row for one vehicle.
type IntegratedRecord struct {
	CarType             string
	Color               string
	Condition           string
	Currency            string
	Drive               string
	City                sql.NullString
	Country             string
	Make                sql.NullString
	ManufactureYear     sql.NullString
	Mileage             sql.NullString
	MileageUnit         string
	Model               sql.NullString
	ModelVariant        sql.NullString
	PriceOnRequest      sql.NullString
	Type                string
	Zip                 string
	ManufactureMonth    sql.NullString
	FuelConsumptionUnit sql.NullString
}

// IntegratedColumns is the target schema in export order.
var IntegratedColumns = []string{
	"carType", "color", "condition", "currency", "drive", "city", "country",
	"make", "manufacture_year", "mileage", "mileage_unit", "model",
	"model_variant", "price_on_request", "type", "zip", "manufacture_month",
	"fuel_consumption_unit",
}

// Values returns the record's fields in IntegratedColumns order.
func (r *IntegratedRecord) Values() []sql.NullString {
	return []sql.NullString{
		Text(r.CarType),
		Text(r.Color),
		Text(r.Condition),
		Text(r.Currency),
		Text(r.Drive),
		r.City,
		Text(r.Country),
		r.Make,
		r.ManufactureYear,
		r.Mileage,
		Text(r.MileageUnit),
		r.Model,
		r.ModelVariant,
		r.PriceOnRequest,
		Text(r.Type),
		Text(r.Zip),
		r.ManufactureMonth,
		r.FuelConsumptionUnit,
	}
}

// Result holds the three stage outputs of one pipeline run.
type Result struct {
	RunID      string
	RawRows    int
	Aggregated []*AggregatedRecord
	Normalized []*NormalizedRecord
	Integrated []*IntegratedRecord
}

// Text wraps a present string value.
func Text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
