package ordersim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOfStrings(t *testing.T) {

	fieldSpec := []FieldSpec{
		{
			Field: "customer.name",
			SetOfStrings: &SetOfStrings{
				Amount:        5,
				Prefix:        "customer",
				ExcludeValues: []string{"customer2"},
			},
		},
		{
			Field:            "category",
			PredefinedValues: []PredefinedValue{{Value: "tools"}},
		},
	}

	expectedOutSpec := []FieldSpec{
		{
			Field: "customer.name",
			PredefinedValues: []PredefinedValue{
				{Value: "customer1"},
				{Value: "customer3"},
				{Value: "customer4"},
				{Value: "customer5"},
			},
		},
	}

	outSpec := GenerateFieldsFromSetOfStringsSpec(fieldSpec)
	assert.ElementsMatch(t, expectedOutSpec, outSpec)
}
