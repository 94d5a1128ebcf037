package stac

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// EOBandsProperty is the asset property whose presence marks an asset as
// carrying electro-optical band references
const EOBandsProperty = "eo:bands"

// CopyValue deep-copies a document value: nested maps and slices are
// duplicated, scalars are returned as is
func CopyValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return copyMap(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = CopyValue(elem)
		}
		return out
	case []string:
		return append([]string{}, v...)
	case []int:
		return append([]int{}, v...)
	case []float64:
		return append([]float64{}, v...)
	default:
		return v
	}
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = CopyValue(v)
	}
	return out
}

// CopyProperties returns a deep copy of a property map; a nil input yields an
// empty, non-nil map
func CopyProperties(properties map[string]interface{}) map[string]interface{} {
	if properties == nil {
		return map[string]interface{}{}
	}
	return copyMap(properties)
}

// stringAt reads an optional string; absent or null values yield ""
func stringAt(doc map[string]interface{}, key string) string {
	value, ok := doc[key]
	if !ok || value == nil {
		return ""
	}
	return cast.ToString(value)
}

// mapAt reads an optional nested object
func mapAt(doc map[string]interface{}, key string) (map[string]interface{}, error) {
	value, ok := doc[key]
	if !ok || value == nil {
		return nil, nil
	}
	return cast.ToStringMapE(value)
}

// sliceAt reads an optional array
func sliceAt(doc map[string]interface{}, key string) ([]interface{}, error) {
	value, ok := doc[key]
	if !ok || value == nil {
		return nil, nil
	}
	return ToSlice(value)
}

// ToSlice converts any slice or array value into a []interface{}
func ToSlice(value interface{}) ([]interface{}, error) {
	if s, err := cast.ToSliceE(value); err == nil {
		return s, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("unable to cast %#v of type %T to []interface{}", value, value)
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
