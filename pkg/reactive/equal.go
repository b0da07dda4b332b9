package reactive

import (
	"math"
	"reflect"
)

// defaultEquals is the change test used when no custom equality is set.
//
// Floats compare with same-value semantics (NaN equals NaN). Comparable
// values use ==, so pointers compare by identity. Everything else falls
// back to reflect.DeepEqual.
func defaultEquals[T any](a, b T) bool {
	x, y := any(a), any(b)

	switch xv := x.(type) {
	case nil:
		return y == nil
	case float64:
		yv, ok := y.(float64)
		return ok && sameFloat(xv, yv)
	case float32:
		yv, ok := y.(float32)
		return ok && sameFloat(float64(xv), float64(yv))
	case int:
		yv, ok := y.(int)
		return ok && xv == yv
	case string:
		yv, ok := y.(string)
		return ok && xv == yv
	case bool:
		yv, ok := y.(bool)
		return ok && xv == yv
	}

	if y == nil {
		return false
	}
	tx, ty := reflect.TypeOf(x), reflect.TypeOf(y)
	if tx != ty {
		return false
	}
	if tx.Comparable() && !hasInterfaceField(tx) {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

// hasInterfaceField reports whether == on t could panic at runtime because
// an interface inside it holds an uncomparable value.
func hasInterfaceField(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasInterfaceField(t.Field(i).Type) {
				return true
			}
		}
	case reflect.Array:
		return hasInterfaceField(t.Elem())
	}
	return false
}
