package entity

import (
	"errors"

	"github.com/xeipuuv/gojsonschema"
)

var orderSchemaLoader = gojsonschema.NewBytesLoader(orderSchema)

func validateRawJson(data []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(orderSchemaLoader, documentLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		docErrors := ""
		for _, desc := range result.Errors() {
			docErrors += " - " + desc.String()
		}
		err = errors.New(docErrors)
	}
	return err
}

// Only structure is checked, plus the JSON types of amounts, prices and quantities.
// Identifiers can be integers or strings, order_date any scalar, and text fields
// strings or null. Values are not range checked and additional properties are
// allowed (and ignored).
var orderSchema = []byte(`
{
  "$schema": "http://json-schema.org/draft-07/schema",
  "type": "array",
  "items": {
    "$ref": "#/definitions/order"
  },
  "definitions": {
    "order": {
      "type": "object",
      "required": [
        "order_id",
        "order_date",
        "total_amount",
        "customer",
        "products"
      ],
      "properties": {
        "order_id": {
          "type": ["integer", "string"]
        },
        "order_date": {
          "type": ["string", "number", "null"]
        },
        "total_amount": {
          "type": "number"
        },
        "customer": {
          "$ref": "#/definitions/customer"
        },
        "products": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/product"
          }
        }
      }
    },
    "customer": {
      "type": "object",
      "required": [
        "customer_id",
        "name",
        "email",
        "address"
      ],
      "properties": {
        "customer_id": {
          "type": ["integer", "string"]
        },
        "name": {
          "type": ["string", "null"]
        },
        "email": {
          "type": ["string", "null"]
        },
        "address": {
          "type": ["string", "null"]
        }
      }
    },
    "product": {
      "type": "object",
      "required": [
        "product_id",
        "name",
        "category",
        "price",
        "quantity"
      ],
      "properties": {
        "product_id": {
          "type": ["integer", "string"]
        },
        "name": {
          "type": ["string", "null"]
        },
        "category": {
          "type": ["string", "null"]
        },
        "price": {
          "type": "number"
        },
        "quantity": {
          "type": "integer"
        }
      }
    }
  }
}
`)
