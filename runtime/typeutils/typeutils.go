package typeutils

import (
	"reflect"
)

// IsInterfaceNil checks if the given interface is nil or holds a nil value of a nillable kind.
func IsInterfaceNil(param any) bool {
	if param == nil {
		return true
	}

	switch value := reflect.ValueOf(param); value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return value.IsNil()
	default:
		return false
	}
}

// IsComparableEqual returns true if a == b. Values that can not be compared with == (like structs holding a slice) are
// never equal, instead of causing a panic.
func IsComparableEqual(a, b any) bool {
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}

	return a == b
}
