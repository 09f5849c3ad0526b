package entity

import "fmt"

// FlatRow is the denormalized output row, one per (order, product) pair.
// Order and customer fields are repeated for every product of the same order.
// The parquet tags define the column names of the output file. Identifiers are
// string columns holding the source value as text, and the pointer fields are
// optional columns, null when the source value is null.
type FlatRow struct {
	OrderId     string  `json:"order_id" parquet:"order_id"`
	OrderDate   *string `json:"order_date" parquet:"order_date"`
	TotalAmount float64 `json:"total_amount" parquet:"total_amount"`
	CustomerId  string  `json:"customer_id" parquet:"customer_id"`
	Name        *string `json:"name" parquet:"name"`
	Email       *string `json:"email" parquet:"email"`
	Address     *string `json:"address" parquet:"address"`
	ProductId   string  `json:"product_id" parquet:"product_id"`
	ProductName *string `json:"product_name" parquet:"product_name"`
	Category    *string `json:"category" parquet:"category"`
	Price       float64 `json:"price" parquet:"price"`
	Quantity    int64   `json:"quantity" parquet:"quantity"`
}

// Columns lists the output column names in file order.
var Columns = []string{
	"order_id",
	"order_date",
	"total_amount",
	"customer_id",
	"name",
	"email",
	"address",
	"product_id",
	"product_name",
	"category",
	"price",
	"quantity",
}

func (r FlatRow) String() string {
	return fmt.Sprintf(
		"{ order_id: %s, order_date: %s, total_amount: %v, customer_id: %s, name: %s, email: %s, address: %s, "+
			"product_id: %s, product_name: %s, category: %s, price: %v, quantity: %d }",
		r.OrderId, nullable(r.OrderDate), r.TotalAmount, r.CustomerId, nullable(r.Name), nullable(r.Email),
		nullable(r.Address), r.ProductId, nullable(r.ProductName), nullable(r.Category), r.Price, r.Quantity)
}

func nullable(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}
