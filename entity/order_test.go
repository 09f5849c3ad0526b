package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var scenarioOrders = []byte(`[
  {
    "order_id": 1,
    "order_date": "2024-01-01",
    "total_amount": 20,
    "customer": {"customer_id": 9, "name": "A", "email": "a@x.com", "address": "addr"},
    "products": [
      {"product_id": 5, "name": "Widget", "category": "tools", "price": 10, "quantity": 2}
    ]
  }
]`)

func TestDecodeOrders(t *testing.T) {

	orders, err := DecodeOrders(scenarioOrders)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	date := Scalar("2024-01-01")
	expected := Order{
		OrderId:     "1",
		OrderDate:   &date,
		TotalAmount: 20,
		Customer:    Customer{CustomerId: "9", Name: str("A"), Email: str("a@x.com"), Address: str("addr")},
		Products:    []Product{{ProductId: "5", Name: str("Widget"), Category: str("tools"), Price: 10, Quantity: 2}},
	}
	assert.Equal(t, expected, orders[0])
	assert.Equal(t, 1, NumProducts(orders))

	// Empty array is a valid document without orders
	orders, err = DecodeOrders([]byte(`[]`))
	assert.NoError(t, err)
	assert.Len(t, orders, 0)

	// Orders without products are valid
	orders, err = DecodeOrders([]byte(`[{"order_id": 2, "order_date": "2024-02-02", "total_amount": 0,
		"customer": {"customer_id": 1, "name": "B", "email": "b@x.com", "address": "b"}, "products": []}]`))
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 0, NumProducts(orders))

	// Unknown fields are ignored
	_, err = DecodeOrders([]byte(`[{"order_id": 2, "order_date": "x", "total_amount": 1.5, "status": "NEW",
		"customer": {"customer_id": 1, "name": "B", "email": "b@x.com", "address": "b", "vip": true}, "products": []}]`))
	assert.NoError(t, err)
}

func TestDecodeOrders_LooselyTyped(t *testing.T) {

	orders, err := DecodeOrders([]byte(`[
		{"order_id": "ORD-1", "order_date": 1704067200, "total_amount": 20,
		 "customer": {"customer_id": "C-9", "name": "A", "email": null, "address": null},
		 "products": [{"product_id": "SKU-5", "name": null, "category": "tools", "price": 10, "quantity": 2}]},
		{"order_id": 12345678901234567890, "order_date": null, "total_amount": 1,
		 "customer": {"customer_id": 7, "name": "", "email": "b@x.com", "address": "b"}, "products": []}
	]`))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, Scalar("ORD-1"), orders[0].OrderId)
	assert.Equal(t, str("1704067200"), orders[0].OrderDate.Ptr())
	assert.Equal(t, Scalar("C-9"), orders[0].Customer.CustomerId)
	assert.Nil(t, orders[0].Customer.Email)
	assert.Nil(t, orders[0].Customer.Address)
	assert.Equal(t, str("A"), orders[0].Customer.Name)
	assert.Equal(t, Scalar("SKU-5"), orders[0].Products[0].ProductId)
	assert.Nil(t, orders[0].Products[0].Name)

	// Large integer ids keep their literal text
	assert.Equal(t, "12345678901234567890", orders[1].OrderId.String())
	assert.Nil(t, orders[1].OrderDate)
	assert.Nil(t, orders[1].OrderDate.Ptr())
	assert.Equal(t, Scalar("7"), orders[1].Customer.CustomerId)
	assert.Equal(t, str(""), orders[1].Customer.Name)
}

func TestScalar_UnmarshalJSON(t *testing.T) {

	var s Scalar
	require.NoError(t, s.UnmarshalJSON([]byte(`"a\"b"`)))
	assert.Equal(t, Scalar(`a"b`), s)
	require.NoError(t, s.UnmarshalJSON([]byte(`1.5e3`)))
	assert.Equal(t, Scalar("1.5e3"), s)
	require.NoError(t, s.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, Scalar("1.5e3"), s)

	assert.Error(t, s.UnmarshalJSON([]byte(`true`)))
	assert.Error(t, s.UnmarshalJSON([]byte(`{"id": 1}`)))
}

func TestDecodeOrders_Malformed(t *testing.T) {

	malformed := map[string]string{
		"empty":            ``,
		"notJson":          `this is not json`,
		"notArray":         `{"order_id": 1}`,
		"missingCustomer":  `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "products": []}]`,
		"missingProducts":  `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "email": "a@x.com", "address": "addr"}}]`,
		"missingEmail":     `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "address": "addr"}, "products": []}]`,
		"missingQuantity":  `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "email": "a@x.com", "address": "addr"}, "products": [{"product_id": 5, "name": "Widget", "category": "tools", "price": 10}]}]`,
		"productsNotArray": `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "email": "a@x.com", "address": "addr"}, "products": {}}]`,
		"idAsFloat":        `[{"order_id": 1.5, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "email": "a@x.com", "address": "addr"}, "products": []}]`,
		"idAsObject":       `[{"order_id": {"id": 1}, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "email": "a@x.com", "address": "addr"}, "products": []}]`,
		"nullCustomerId":   `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": null, "name": "A", "email": "a@x.com", "address": "addr"}, "products": []}]`,
		"emailAsNumber":    `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "email": 5, "address": "addr"}, "products": []}]`,
		"priceAsString":    `[{"order_id": 1, "order_date": "2024-01-01", "total_amount": 20, "customer": {"customer_id": 9, "name": "A", "email": "a@x.com", "address": "addr"}, "products": [{"product_id": 5, "name": "Widget", "category": "tools", "price": "10", "quantity": 2}]}]`,
	}

	for name, doc := range malformed {
		orders, err := DecodeOrders([]byte(doc))
		assert.ErrorIs(t, err, ErrDecode, name)
		assert.Nil(t, orders, name)
	}
}

func str(s string) *string {
	return &s
}

func TestNewRefreshRequest(t *testing.T) {
	ts := time.Date(2024, 3, 4, 5, 6, 7, 8000, time.UTC)
	msg, err := NewRefreshRequest("etl_serverless_parquet", ts)
	require.NoError(t, err)
	assert.Equal(t, "etl_serverless_parquet", gjson.GetBytes(msg, "job").String())
	assert.Equal(t, "2024-03-04T05:06:07.000008Z", gjson.GetBytes(msg, "requestedAt").String())
}

func TestNotifyLevel(t *testing.T) {
	assert.Equal(t, NotifyLevelWarn, NotifyLevel(NotifyLevelStrWarn))
	assert.Equal(t, NotifyLevelInvalid, NotifyLevel("LOUD"))
	assert.Equal(t, NotifyLevelStrError, NotifyLevelName(NotifyLevelError))
	assert.Equal(t, NotifyLevelStrInvalid, NotifyLevelName(42))
}
