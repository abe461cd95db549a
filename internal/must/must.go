// Package must provides helper functions to assert program invariants.
// The program will panic if an invariant is violated.
//
// Use it for failures that can only be caused by a broken build,
// like embedded assets that don't load.
package must

import "fmt"

// panicf panics with the printf-style message.
func panicf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// NotErrorf panics with the given message if the error is not nil.
func NotErrorf(err error, format string, args ...any) {
	if err != nil {
		panicf("unexpected error: %v\n%v", err, fmt.Sprintf(format, args...))
	}
}

// Get returns v if err is nil, and panics otherwise.
//
//	static := must.Get(fs.Sub(_staticFS, "static"))
func Get[T any](v T, err error) T {
	NotErrorf(err, "expected a %T", v)
	return v
}
