package output

import (
	"reflect"
)

type structMeta struct {
	fields []string
	labels []string
	values []interface{}
}

// parseStructMeta collects the exported fields of a struct. Fields are labelled by their `label` tag, or by their
// name when untagged, and skipped when tagged with `label:"-"`.
func parseStructMeta(v interface{}) (structMeta, error) {
	structRfl := reflect.ValueOf(v)

	info := structMeta{}
	for i := 0; i < structRfl.Type().NumField(); i++ {
		fieldRfl := structRfl.Type().Field(i)
		valueRfl := structRfl.Field(i)

		if !fieldRfl.IsExported() {
			continue
		}

		label := fieldRfl.Name
		if v, ok := fieldRfl.Tag.Lookup("label"); ok {
			if v == "-" {
				continue
			}
			label = v
		}

		info.fields = append(info.fields, fieldRfl.Name)
		info.labels = append(info.labels, label)
		info.values = append(info.values, valueRfl.Interface())
	}

	return info, nil
}

func parseSlice(v interface{}) []interface{} {
	sliceRfl := reflect.ValueOf(v)

	result := make([]interface{}, 0, sliceRfl.Len())
	for i := 0; i < sliceRfl.Len(); i++ {
		result = append(result, sliceRfl.Index(i).Interface())
	}
	return result
}
