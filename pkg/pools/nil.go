package pools

import "reflect"

// isNil reports whether v holds a nil value behind its interface. The type
// parameter T is interface-constrained, so typed-nil pointers would slip
// past a plain comparison.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
