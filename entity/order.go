package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Order is a single customer purchase as found in the source document.
// The source document is a JSON array of orders.
// Identifiers may be JSON integers or strings, and text fields may be null; both are
// passed through as is. Amounts, prices and quantities are always numbers.
type Order struct {
	OrderId     Scalar    `json:"order_id"`
	OrderDate   *Scalar   `json:"order_date"` // passed through as is, never parsed
	TotalAmount float64   `json:"total_amount"`
	Customer    Customer  `json:"customer"`
	Products    []Product `json:"products"`
}

type Customer struct {
	CustomerId Scalar  `json:"customer_id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
}

type Product struct {
	ProductId Scalar  `json:"product_id"`
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

// Scalar holds a JSON string or number as text. Numbers keep their literal form,
// e.g. 1001 is held as "1001" and 1.5e3 as "1.5e3".
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*s = Scalar(n)
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// Ptr returns a pointer to the scalar's text, or nil if s is nil.
func (s *Scalar) Ptr() *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}

// DecodeOrders validates the raw document against the order schema before
// unmarshalling it. Any deviation fails the whole document with ErrDecode.
func DecodeOrders(data []byte) ([]Order, error) {
	var orders []Order
	if len(data) == 0 {
		return nil, fmt.Errorf("%w, details: %v", ErrDecode, errors.New("no order data provided"))
	}

	if err := validateRawJson(data); err != nil {
		return nil, fmt.Errorf("%w, details: %v", ErrDecode, err)
	}

	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("%w, details: %v", ErrDecode, err)
	}
	return orders, nil
}

// NumProducts returns the total number of products across all orders, which is
// also the number of rows the orders flatten into.
func NumProducts(orders []Order) int {
	n := 0
	for _, order := range orders {
		n += len(order.Products)
	}
	return n
}
