package transform

import (
	"context"

	"github.com/zpiroux/orderetl/entity"
)

// Transformer decodes raw order documents and flattens them (stateless, immutable).
type Transformer struct {
	onEmptyOrder func(order entity.Order)
}

// NewTransformer creates a Transformer. If onEmptyOrder is non-nil it is called for
// each order having no products, since such orders do not produce any rows.
func NewTransformer(onEmptyOrder func(order entity.Order)) *Transformer {
	return &Transformer{onEmptyOrder: onEmptyOrder}
}

// Transform decodes the raw JSON order document and returns its flattened rows.
// A document not matching the order shape fails as a whole, wrapping entity.ErrDecode.
// A valid document without any products results in an empty, non-nil, row slice.
func (t *Transformer) Transform(ctx context.Context, data []byte) ([]entity.FlatRow, error) {
	_, rows, err := t.TransformOrders(ctx, data)
	return rows, err
}

// TransformOrders is like Transform but also returns the decoded orders, including
// the ones not contributing any rows.
func (t *Transformer) TransformOrders(ctx context.Context, data []byte) ([]entity.Order, []entity.FlatRow, error) {

	orders, err := entity.DecodeOrders(data)
	if err != nil {
		return nil, nil, err
	}

	if t.onEmptyOrder != nil {
		for _, order := range orders {
			if len(order.Products) == 0 {
				t.onEmptyOrder(order)
			}
		}
	}

	return orders, Flatten(orders), nil
}

// Flatten returns one row per (order, product) pair. Rows keep the input order of
// orders and, within each order, of its products. Values are copied as is, with
// identifiers in their text form.
func Flatten(orders []entity.Order) []entity.FlatRow {

	rows := make([]entity.FlatRow, 0, entity.NumProducts(orders))

	for _, order := range orders {
		for _, product := range order.Products {
			rows = append(rows, flatRow(order, product))
		}
	}
	return rows
}

func flatRow(order entity.Order, product entity.Product) entity.FlatRow {
	return entity.FlatRow{
		OrderId:     order.OrderId.String(),
		OrderDate:   order.OrderDate.Ptr(),
		TotalAmount: order.TotalAmount,
		CustomerId:  order.Customer.CustomerId.String(),
		Name:        order.Customer.Name,
		Email:       order.Customer.Email,
		Address:     order.Customer.Address,
		ProductId:   product.ProductId.String(),
		ProductName: product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Quantity:    product.Quantity,
	}
}
