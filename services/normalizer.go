package services

import (
	"database/sql"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"car-integration/models"
	"car-integration/utils"
)

// Columns written by the normalizer. The first two rewrite supplier columns
// in place, the others are added to the record.
const (
	ColumnCarType   = "BodyTypeText"
	ColumnColor     = "BodyColorText"
	ColumnCondition = "Condition"
	ColumnVariant   = "Variant"
	ColumnZip       = "Zip"
)

// Supplier attribute names read by the rules.
const (
	AttrSeats         = "Seats"
	AttrBodyType      = "BodyTypeText"
	AttrBodyColor     = "BodyColorText"
	AttrConditionType = "ConditionTypeText"
	AttrCity          = "City"
	AttrFirstRegYear  = "FirstRegYear"
	AttrFirstRegMonth = "FirstRegMonth"
	AttrKm            = "Km"
	AttrConsumption   = "ConsumptionTotalText"
)

// Other is the canonical value for anything no rule recognises.
const Other = "Other"

const singleSeater = "Single seater"

var carTypes = map[string]string{
	"Coupé":              "Coupé",
	"Limousine":          "Saloon",
	"Cabriolet":          "Convertible / Roadster",
	"Kombi":              "Station Wagon",
	"SUV / Geländewagen": "SUV",
}

// colors is ordered: the first entry with a matching substring wins.
var colors = []struct {
	english string
	german  []string
}{
	{"Black", []string{"schwarz"}},
	{"Silver", []string{"silber"}},
	{"Blue", []string{"blau"}},
	{"Gray", []string{"grau", "anthrazit"}},
	{"White", []string{"weiss"}},
	{"Red", []string{"red", "bordeaux"}},
	{"Green", []string{"grün"}},
	{"Yellow", []string{"gelb"}},
	{"Purple", []string{"violett"}},
	{"Gold", []string{"gold"}},
	{"Brown", []string{"braun"}},
	{"Orange", []string{"orange"}},
	{"Beige", []string{"beige"}},
}

var conditions = map[string]string{
	"Occasion":      "Used",
	"Oldtimer":      "Restored",
	"Neu":           "New",
	"Vorführmodell": "Original Condition",
}

var zipCodes = map[string]string{
	"Zuzwil":     "9524",
	"Porrentruy": "2900",
	"Sursee":     "6210",
	"Safenwil":   "5745",
	"Basel":      "4000",
	"St. Galen":  "9000",
}

// Rule rewrites one column of a vehicle record from the record's supplier values.
type Rule struct {
	Column string
	Apply  func(rec *models.AggregatedRecord) sql.NullString
}

var rules = []Rule{
	{ColumnCarType, func(rec *models.AggregatedRecord) sql.NullString {
		return models.Text(NormalizeCarType(rec.Attr(AttrSeats), rec.Attr(AttrBodyType)))
	}},
	{ColumnColor, func(rec *models.AggregatedRecord) sql.NullString {
		return models.Text(NormalizeColor(rec.Attr(AttrBodyColor)))
	}},
	{ColumnCondition, func(rec *models.AggregatedRecord) sql.NullString {
		return models.Text(NormalizeCondition(rec.Attr(AttrConditionType)))
	}},
	{ColumnVariant, func(rec *models.AggregatedRecord) sql.NullString {
		return NormalizeVariant(rec.ModelText, rec.ModelTypeText, rec.TypeName)
	}},
	{ColumnZip, func(rec *models.AggregatedRecord) sql.NullString {
		return models.Text(NormalizeZip(rec.Attr(AttrCity)))
	}},
}

// Rules returns the normalization rules in application order. Every rule
// reads only supplier values, so the order does not change the outcome.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// NormalizeCarType maps the supplier body type to a target car type. A
// single-seat vehicle is always a single seater.
func NormalizeCarType(seats, bodyType sql.NullString) string {
	if seats.Valid {
		if n, err := strconv.ParseFloat(strings.TrimSpace(seats.String), 64); err == nil && n == 1 {
			return singleSeater
		}
	}
	if !bodyType.Valid {
		return Other
	}
	if t, ok := carTypes[bodyType.String]; ok {
		return t
	}
	return Other
}

// NormalizeColor returns the English name of the first color whose German
// fragment occurs anywhere in the supplier text.
func NormalizeColor(color sql.NullString) string {
	if !color.Valid {
		return Other
	}
	for _, c := range colors {
		for _, fragment := range c.german {
			if strings.Contains(color.String, fragment) {
				return c.english
			}
		}
	}
	return Other
}

// NormalizeCondition maps the supplier condition type to a target condition.
func NormalizeCondition(condition sql.NullString) string {
	if !condition.Valid {
		return Other
	}
	if c, ok := conditions[condition.String]; ok {
		return c
	}
	return Other
}

// NormalizeVariant strips the model name from the front of the model type
// text. When the model type does not start with the model, the supplier type
// name is used as is.
func NormalizeVariant(model, modelType, typeName sql.NullString) sql.NullString {
	if !model.Valid || !modelType.Valid {
		return typeName
	}

	m := []rune(strings.TrimSpace(model.String))
	mt := []rune(strings.TrimSpace(modelType.String))
	if len(m) > len(mt) {
		return typeName
	}

	lower := cases.Lower(language.Und)
	if lower.String(string(mt[:len(m)])) != lower.String(string(m)) {
		return typeName
	}
	return models.Text(strings.TrimSpace(string(mt[len(m):])))
}

// NormalizeZip looks up the postal code of a known supplier city.
func NormalizeZip(city sql.NullString) string {
	if !city.Valid {
		return Other
	}
	if z, ok := zipCodes[city.String]; ok {
		return z
	}
	return Other
}

// Normalizer rewrites aggregated records into the target vocabulary.
type Normalizer struct {
	logger *utils.Logger
	rules  []Rule
}

// NewNormalizer creates a Normalizer applying Rules().
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger, rules: Rules()}
}

// Normalize returns one normalized copy per record. Inputs are not modified.
func (n *Normalizer) Normalize(records []*models.AggregatedRecord) []*models.NormalizedRecord {
	result := make([]*models.NormalizedRecord, 0, len(records))
	misses := make(map[string]int, len(n.rules))

	for _, rec := range records {
		out := &models.NormalizedRecord{AggregatedRecord: *rec.Clone()}
		for _, rule := range n.rules {
			v := rule.Apply(rec)
			if v.Valid && v.String == Other {
				misses[rule.Column]++
			}
			out.Set(rule.Column, v)
		}
		result = append(result, out)
	}

	for _, rule := range n.rules {
		if misses[rule.Column] > 0 {
			n.logger.Debug("[normalizer] %s: %d of %d records fell back to %q",
				rule.Column, misses[rule.Column], len(records), Other)
		}
	}
	n.logger.Info("[normalizer] Normalized %d records (%d rules)", len(result), len(n.rules))
	return result
}
