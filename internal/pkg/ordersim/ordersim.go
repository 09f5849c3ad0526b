// Package ordersim generates randomized order documents, on the same format as the ones
// processed by the service, for use in tests and for producing sample input files.
package ordersim

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	DefaultMaxFractionDigits  = 2
	DefaultStartOrderId       = 1000
	TimestampLayoutIsoSeconds = "2006-01-02T15:04:05Z"
	TimestampLayoutIsoMillis  = "2006-01-02T15:04:05.000Z"
	TimestampLayoutDate       = "2006-01-02"
)

var DefaultCharset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

// Spec specifies the shape of the generated documents.
type Spec struct {

	// Number of orders in each document, and number of products in each order.
	// Setting Products.MinCount to 0 enables generation of orders without products.
	Orders   Count `json:"orders"`
	Products Count `json:"products"`

	// First order ID to use. Order IDs are increasing by one for each generated order.
	StartOrderId int64 `json:"startOrderId"`

	// Field generation for each order and each product, respectively. The order_id and
	// total_amount fields of orders are always set by the generator, with total_amount
	// being the sum of price * quantity of the products.
	OrderFields   []FieldSpec `json:"orderFields"`
	ProductFields []FieldSpec `json:"productFields"`
}

// Count specifies a random count between MinCount and MaxCount (inclusive).
type Count struct {
	MinCount int `json:"minCount"`
	MaxCount int `json:"maxCount"`
}

// FieldSpec specifies how each field should be generated
type FieldSpec struct {

	// Name of the field on sjson format (see github.com/tidwall/sjson)
	Field string `json:"field"`

	// One of the below options can be present in each field spec
	PredefinedValues []PredefinedValue `json:"predefinedValues"`
	RandomizedValue  *RandomizedValue  `json:"randomizedValue"`
	SetOfStrings     *SetOfStrings     `json:"setOfStrings"`
}

// PredefinedValue enables a field to have one of many provided values set with a probability
// based on the FrequencyFactor.
type PredefinedValue struct {

	// Value can be any json scalar value (string, number, boolean, null)
	Value any `json:"value"`

	// FrequencyFactor specifies the probability of each provided pre-defined value
	// to be set. If 0, it is set to 1.
	FrequencyFactor int `json:"frequencyFactor"`
}

// RandomizedValue generates a random value for a field.
type RandomizedValue struct {

	// Type is mandatory and have the following supported values:
	//
	//     "int", "integer"
	//     "float"
	//     "string"
	//     "isoTimestampSeconds"
	//     "isoTimestampMilliseconds"
	//     "date"
	//     "uuid"
	//
	Type string `json:"type"`

	// Min and Max specifies the range of the randomized value. For string types it is the
	// range of the string length, and for the timestamp/date types it is the range in
	// days back from the generator's current time.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// Charset is only applicable for "string" type. If omitted DefaultCharset is used.
	Charset string `json:"charset"`

	// MaxFractionDigits is only applicable for "float" type. If omitted DefaultMaxFractionDigits
	// is used.
	MaxFractionDigits int `json:"maxFractionDigits"`
}

// SetOfStrings generates a set of string values on the format "<prefix>n", where 'n' is a
// number from 1 to Amount, from which a random value will be assigned to the field.
// Values in ExcludeValues are not part of the set.
type SetOfStrings struct {
	Amount        int      `json:"amount"`
	Prefix        string   `json:"prefix"`
	ExcludeValues []string `json:"excludeValues"`
}

// DefaultSpec returns a spec generating valid order documents with 1 to 10 orders, each
// with 0 to 5 products.
func DefaultSpec() Spec {
	return Spec{
		Orders:       Count{MinCount: 1, MaxCount: 10},
		Products:     Count{MinCount: 0, MaxCount: 5},
		StartOrderId: DefaultStartOrderId,
		OrderFields: []FieldSpec{
			{Field: "order_date", RandomizedValue: &RandomizedValue{Type: "date", Min: 0, Max: 30}},
			{Field: "customer.customer_id", RandomizedValue: &RandomizedValue{Type: "int", Min: 1, Max: 100000}},
			{Field: "customer.name", SetOfStrings: &SetOfStrings{Amount: 500, Prefix: "customer"}},
			{Field: "customer.email", RandomizedValue: &RandomizedValue{Type: "string", Min: 5, Max: 12}},
			{Field: "customer.address", RandomizedValue: &RandomizedValue{Type: "string", Min: 10, Max: 30}},
		},
		ProductFields: []FieldSpec{
			{Field: "product_id", RandomizedValue: &RandomizedValue{Type: "int", Min: 1, Max: 5000}},
			{Field: "name", SetOfStrings: &SetOfStrings{Amount: 200, Prefix: "product"}},
			{Field: "category", PredefinedValues: []PredefinedValue{
				{Value: "electronics", FrequencyFactor: 3},
				{Value: "stationery", FrequencyFactor: 5},
				{Value: "tools", FrequencyFactor: 2},
			}},
			{Field: "price", RandomizedValue: &RandomizedValue{Type: "float", Min: 1, Max: 500}},
			{Field: "quantity", RandomizedValue: &RandomizedValue{Type: "int", Min: 1, Max: 10}},
		},
	}
}

// NewSpec creates a Spec from its JSON representation.
func NewSpec(specData []byte) (Spec, error) {
	var spec Spec
	if err := json.Unmarshal(specData, &spec); err != nil {
		return spec, fmt.Errorf("invalid ordersim spec: %v", err)
	}
	return spec, nil
}

// Generator creates order documents. It is not safe for concurrent use.
type Generator struct {
	spec            Spec
	charsets        map[string][]rune
	frequencyRanges map[string][]FieldFrequencyRange
	rnd             *rand.Rand
	nextOrderId     int64
	now             func() time.Time
}

// New creates a Generator. Custom character sets for random string generation can be
// provided in charsets, referenced by name in RandomizedValue.Charset. Generators created
// with the same seed and spec produce the same sequence of documents, apart from any
// "uuid" typed fields.
func New(spec Spec, charsets map[string][]rune, seed int64) (*Generator, error) {

	spec.OrderFields = append(spec.OrderFields, GenerateFieldsFromSetOfStringsSpec(spec.OrderFields)...)
	spec.ProductFields = append(spec.ProductFields, GenerateFieldsFromSetOfStringsSpec(spec.ProductFields)...)

	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	ranges := createFrequencyRanges("order.", spec.OrderFields)
	for k, v := range createFrequencyRanges("product.", spec.ProductFields) {
		ranges[k] = v
	}

	return &Generator{
		spec:            spec,
		charsets:        charsets,
		frequencyRanges: ranges,
		rnd:             rand.New(rand.NewSource(seed)),
		nextOrderId:     spec.StartOrderId,
		now:             time.Now,
	}, nil
}

func validateSpec(spec Spec) error {
	for _, c := range []Count{spec.Orders, spec.Products} {
		if c.MinCount < 0 || c.MaxCount < 0 {
			return errors.New("minCount and maxCount cannot be negative")
		}
		if c.MinCount > c.MaxCount {
			return errors.New("minCount cannot be higher than maxCount")
		}
	}
	for _, f := range append(spec.OrderFields, spec.ProductFields...) {
		if f.Field == "" {
			return errors.New("field name missing in field spec")
		}
		if f.RandomizedValue != nil && f.RandomizedValue.Min > f.RandomizedValue.Max {
			return fmt.Errorf("min cannot be higher than max in randomizedValue spec for field %s", f.Field)
		}
	}
	return nil
}

// Document generates a JSON array of orders.
func (g *Generator) Document() ([]byte, error) {
	return g.Orders(g.randInt(g.spec.Orders.MinCount, g.spec.Orders.MaxCount))
}

// Orders generates a JSON array with the specified number of orders.
func (g *Generator) Orders(n int) (doc []byte, err error) {
	doc = []byte("[]")
	for i := 0; i < n; i++ {
		var order []byte
		if order, err = g.createOrder(); err != nil {
			return nil, err
		}
		if doc, err = sjson.SetRawBytes(doc, "-1", order); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (g *Generator) createOrder() (order []byte, err error) {

	order, err = g.createObject("order.", g.spec.OrderFields)
	if err != nil {
		return nil, err
	}

	order, err = sjson.SetBytes(order, "order_id", g.nextOrderId)
	if err != nil {
		return nil, err
	}
	g.nextOrderId++

	order, err = sjson.SetRawBytes(order, "products", []byte("[]"))
	if err != nil {
		return nil, err
	}

	var total float64
	nbProducts := g.randInt(g.spec.Products.MinCount, g.spec.Products.MaxCount)
	for i := 0; i < nbProducts; i++ {
		var product []byte
		if product, err = g.createObject("product.", g.spec.ProductFields); err != nil {
			return nil, err
		}
		total += gjson.GetBytes(product, "price").Float() * float64(gjson.GetBytes(product, "quantity").Int())
		if order, err = sjson.SetRawBytes(order, "products.-1", product); err != nil {
			return nil, err
		}
	}

	return sjson.SetBytes(order, "total_amount", formatFloat(total, DefaultMaxFractionDigits))
}

// createObject generates a single random JSON object based on the field specs
func (g *Generator) createObject(rangePrefix string, fields []FieldSpec) (object []byte, err error) {

	object = []byte("{}")
	for _, fieldSpec := range fields {

		var value any
		switch {
		case len(fieldSpec.PredefinedValues) > 0:
			value = g.createFieldValueWithFrequencyFactor(g.frequencyRanges[rangePrefix+fieldSpec.Field])
		case fieldSpec.RandomizedValue != nil:
			value, err = g.createRandomizedFieldValue(fieldSpec)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		if object, err = sjson.SetBytes(object, fieldSpec.Field, value); err != nil {
			return nil, err
		}
	}
	return object, nil
}

// createRandomizedFieldValue handles the fieldSpec option "randomizedValue"
func (g *Generator) createRandomizedFieldValue(f FieldSpec) (value any, err error) {

	v := f.RandomizedValue
	switch v.Type {

	case "int", "integer":
		value = g.randInt(int(v.Min), int(v.Max))

	case "float":
		digits := v.MaxFractionDigits
		if digits == 0 {
			digits = DefaultMaxFractionDigits
		}
		value = formatFloat(v.Min+g.rnd.Float64()*(v.Max-v.Min), digits)

	case "string":
		charset, ok := g.charsets[v.Charset]
		if !ok {
			charset = DefaultCharset
		}
		value = g.randString(int(v.Min), int(v.Max), charset)

	case "isoTimestampSeconds":
		value = g.randDaysBack(v).Format(TimestampLayoutIsoSeconds)

	case "isoTimestampMilliseconds":
		value = g.randDaysBack(v).Format(TimestampLayoutIsoMillis)

	case "date":
		value = g.randDaysBack(v).Format(TimestampLayoutDate)

	case "uuid":
		value = uuid.New().String()

	default:
		err = fmt.Errorf("unsupported type for randomized values: %s", v.Type)
	}
	return
}

// randInt creates a random int between min and max (including max)
func (g *Generator) randInt(min, max int) int {
	return g.rnd.Intn(max+1-min) + min
}

func (g *Generator) randString(min, max int, charset []rune) string {
	var sb strings.Builder
	n := g.randInt(min, max)
	for i := 0; i < n; i++ {
		sb.WriteRune(charset[g.rnd.Intn(len(charset))])
	}
	return sb.String()
}

func (g *Generator) randDaysBack(v *RandomizedValue) time.Time {
	maxSeconds := int64((v.Max - v.Min) * 24 * 3600)
	back := time.Duration(v.Min*24*3600) * time.Second
	if maxSeconds > 0 {
		back += time.Duration(g.rnd.Int63n(maxSeconds+1)) * time.Second
	}
	return g.now().UTC().Add(-back)
}

// formatFloat returns the float as a json.Number, keeping the requested number of
// fraction digits without floating point noise when set via sjson.
func formatFloat(f float64, fractionDigits int) json.Number {
	return json.Number(strconv.FormatFloat(f, 'f', fractionDigits, 64))
}

// FieldFrequencyRange is used for internal conversion of predefined values into ranges
// matching their frequency factor.
type FieldFrequencyRange struct {
	Start int
	End   int
	Max   int
	Value any
}

// createFrequencyRanges prepares the data to be used for picking predefined values
// with the requested distribution.
func createFrequencyRanges(prefix string, fields []FieldSpec) map[string][]FieldFrequencyRange {

	ranges := make(map[string][]FieldFrequencyRange)
	for _, fieldSpec := range fields {
		if len(fieldSpec.PredefinedValues) == 0 {
			continue
		}

		var freqFactorSum int
		for _, value := range fieldSpec.PredefinedValues {
			freqFactorSum += frequencyFactor(value)
		}

		var (
			index      int
			fieldRange []FieldFrequencyRange
		)
		for _, value := range fieldSpec.PredefinedValues {
			r := FieldFrequencyRange{
				Start: index,
				End:   index + frequencyFactor(value),
				Max:   freqFactorSum,
				Value: value.Value,
			}
			index = r.End
			fieldRange = append(fieldRange, r)
		}
		ranges[prefix+fieldSpec.Field] = fieldRange
	}
	return ranges
}

func frequencyFactor(value PredefinedValue) int {
	if value.FrequencyFactor <= 0 {
		return 1
	}
	return value.FrequencyFactor
}

func (g *Generator) createFieldValueWithFrequencyFactor(fields []FieldFrequencyRange) any {
	n := g.rnd.Intn(fields[0].Max)
	for _, field := range fields {
		if n >= field.Start && n < field.End {
			return field.Value
		}
	}
	return fields[len(fields)-1].Value
}
