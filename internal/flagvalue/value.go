// Package flagvalue provides flag.Value implementations
// shared by blogkit's flags.
package flagvalue

import "flag"

// Getter is a constraint satisfied by pointers to types
// which implement flag.Getter.
//
// Types like style.Declaration satisfy it
// and may be collected with ListOf.
type Getter[T any] interface {
	*T
	flag.Getter
}
