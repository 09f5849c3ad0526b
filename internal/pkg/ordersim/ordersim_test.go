package ordersim

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/zpiroux/orderetl/entity"
)

const printDocuments = false

func TestDefaultSpecDocuments(t *testing.T) {

	g, err := New(DefaultSpec(), nil, 42)
	require.NoError(t, err)

	nextOrderId := int64(DefaultStartOrderId)
	for i := 0; i < 20; i++ {
		doc, err := g.Document()
		require.NoError(t, err)
		tPrintf("document: %s\n", doc)

		orders, err := entity.DecodeOrders(doc)
		require.NoError(t, err)
		assert.True(t, len(orders) >= 1 && len(orders) <= 10)

		for _, order := range orders {
			assert.Equal(t, strconv.FormatInt(nextOrderId, 10), order.OrderId.String())
			nextOrderId++
			assert.LessOrEqual(t, len(order.Products), 5)

			var total float64
			for _, p := range order.Products {
				assert.Contains(t, []string{"electronics", "stationery", "tools"}, *p.Category)
				assert.Regexp(t, `^product\d+$`, *p.Name)
				assert.True(t, p.Quantity >= 1 && p.Quantity <= 10)
				assert.True(t, p.Price >= 1 && p.Price <= 500)
				total += p.Price * float64(p.Quantity)
			}
			assert.InDelta(t, total, order.TotalAmount, 0.01)
			_, err := time.Parse(TimestampLayoutDate, order.OrderDate.String())
			assert.NoError(t, err)
		}
	}
}

func TestDeterministicGeneration(t *testing.T) {

	g1, err := New(DefaultSpec(), nil, 7)
	require.NoError(t, err)
	g2, err := New(DefaultSpec(), nil, 7)
	require.NoError(t, err)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g1.now = func() time.Time { return now }
	g2.now = func() time.Time { return now }

	doc1, err := g1.Orders(5)
	require.NoError(t, err)
	doc2, err := g2.Orders(5)
	require.NoError(t, err)
	assert.Equal(t, string(doc1), string(doc2))
	assert.Equal(t, int64(5), gjson.GetBytes(doc1, "#").Int())
}

func TestRandomizedValues(t *testing.T) {

	spec := Spec{
		Orders:   Count{MinCount: 1, MaxCount: 1},
		Products: Count{MinCount: 1, MaxCount: 1},
		OrderFields: []FieldSpec{
			{Field: "str", RandomizedValue: &RandomizedValue{Type: "string", Min: 3, Max: 3}},
			{Field: "numStr", RandomizedValue: &RandomizedValue{Type: "string", Charset: "numbers", Min: 4, Max: 7}},
			{Field: "int", RandomizedValue: &RandomizedValue{Type: "int", Min: 5, Max: 5}},
			{Field: "float", RandomizedValue: &RandomizedValue{Type: "float", Min: 2, Max: 3, MaxFractionDigits: 3}},
			{Field: "ts", RandomizedValue: &RandomizedValue{Type: "isoTimestampSeconds", Min: 1, Max: 1}},
			{Field: "tsMillis", RandomizedValue: &RandomizedValue{Type: "isoTimestampMilliseconds"}},
			{Field: "id", RandomizedValue: &RandomizedValue{Type: "uuid"}},
			{Field: "fixed", PredefinedValues: []PredefinedValue{{Value: "always"}}},
		},
	}

	g, err := New(spec, map[string][]rune{"numbers": []rune("0123456789")}, 1)
	require.NoError(t, err)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	doc, err := g.Document()
	require.NoError(t, err)
	tPrintf("document: %s\n", doc)
	order := gjson.GetBytes(doc, "0")

	assert.Len(t, order.Get("str").String(), 3)
	assert.Regexp(t, `^[0-9]{4,7}$`, order.Get("numStr").String())
	assert.Equal(t, int64(5), order.Get("int").Int())
	assert.Regexp(t, `^[23]\.\d{3}$`, order.Get("float").Raw)
	assert.Equal(t, "2024-04-30T12:00:00Z", order.Get("ts").String())
	assert.Equal(t, "2024-05-01T12:00:00.000Z", order.Get("tsMillis").String())
	assert.Len(t, order.Get("id").String(), 36)
	assert.Equal(t, "always", order.Get("fixed").String())
	assert.Equal(t, int64(0), order.Get("order_id").Int())
	assert.Equal(t, int64(1), order.Get("products.#").Int())
}

func TestPredefinedValueFrequency(t *testing.T) {

	spec := Spec{
		Orders:   Count{MinCount: 1, MaxCount: 1},
		Products: Count{MinCount: 0, MaxCount: 0},
		OrderFields: []FieldSpec{
			{Field: "channel", PredefinedValues: []PredefinedValue{
				{Value: "web", FrequencyFactor: 9},
				{Value: "store", FrequencyFactor: 1},
			}},
		},
	}
	g, err := New(spec, nil, 3)
	require.NoError(t, err)

	doc, err := g.Orders(2000)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, v := range gjson.GetBytes(doc, "#.channel").Array() {
		counts[v.String()]++
	}
	assert.Len(t, counts, 2)
	assert.Greater(t, counts["web"], 5*counts["store"])
	assert.Equal(t, int64(0), gjson.GetBytes(doc, "0.products.#").Int())
	assert.Equal(t, "0.00", gjson.GetBytes(doc, "0.total_amount").Raw)
}

func TestInvalidSpec(t *testing.T) {

	specs := map[string]Spec{
		"negative count":  {Orders: Count{MinCount: -1, MaxCount: 1}},
		"min above max":   {Products: Count{MinCount: 3, MaxCount: 1}},
		"no field name":   {OrderFields: []FieldSpec{{PredefinedValues: []PredefinedValue{{Value: 1}}}}},
		"min above max 2": {ProductFields: []FieldSpec{{Field: "f", RandomizedValue: &RandomizedValue{Type: "int", Min: 2, Max: 1}}}},
	}
	for name, spec := range specs {
		_, err := New(spec, nil, 1)
		assert.Error(t, err, name)
	}

	g, err := New(Spec{
		Orders:      Count{MinCount: 1, MaxCount: 1},
		OrderFields: []FieldSpec{{Field: "f", RandomizedValue: &RandomizedValue{Type: "complex"}}},
	}, nil, 1)
	require.NoError(t, err)
	_, err = g.Document()
	assert.Error(t, err)
}

func TestNewSpec(t *testing.T) {
	spec, err := NewSpec([]byte(`{
		"orders": {"minCount": 2, "maxCount": 2},
		"products": {"minCount": 1, "maxCount": 3},
		"startOrderId": 1,
		"productFields": [
			{"field": "category", "setOfStrings": {"amount": 3, "prefix": "cat"}}
		]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, spec.Orders.MaxCount)
	assert.Equal(t, int64(1), spec.StartOrderId)

	g, err := New(spec, nil, 1)
	require.NoError(t, err)
	doc, err := g.Document()
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.GetBytes(doc, "#").Int())
	assert.Equal(t, []any{int64(1), int64(2)}, []any{gjson.GetBytes(doc, "0.order_id").Int(), gjson.GetBytes(doc, "1.order_id").Int()})
	assert.Regexp(t, `^cat[123]$`, gjson.GetBytes(doc, "0.products.0.category").String())

	_, err = NewSpec([]byte(`{"orders": "many"}`))
	assert.Error(t, err)
}

func tPrintf(format string, a ...any) {
	if printDocuments {
		fmt.Printf(format, a...)
	}
}
