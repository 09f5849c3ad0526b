package ordersim

import "fmt"

// GenerateFieldsFromSetOfStringsSpec processes the provided field specs and returns
// new field specs with the generated set of predefined values, as specified in the
// setOfStrings part of each input field spec.
func GenerateFieldsFromSetOfStringsSpec(fields []FieldSpec) (generatedFields []FieldSpec) {
	for _, field := range fields {
		if field.SetOfStrings != nil {
			generatedFields = append(generatedFields, fieldFromSetOfStrings(field))
		}
	}
	return
}

// fieldFromSetOfStrings assumes inField.SetOfStrings is not nil
func fieldFromSetOfStrings(inField FieldSpec) (outField FieldSpec) {
	outField.Field = inField.Field
	spec := inField.SetOfStrings

	for i := 0; i < spec.Amount; i++ {
		value := fmt.Sprintf("%s%d", spec.Prefix, i+1)
		if contains(value, spec.ExcludeValues) {
			continue
		}
		outField.PredefinedValues = append(outField.PredefinedValues, PredefinedValue{Value: value})
	}
	return
}

func contains(str string, strs []string) bool {
	for _, s := range strs {
		if str == s {
			return true
		}
	}
	return false
}
