package flagvalue

import (
	"strings"

	"braces.dev/errtrace"
)

// List is a generic flag.Getter
// that accepts zero or more instances of the same flag
// and combines them into a list.
type List[T any, PT Getter[T]] []T

// ListOf wraps a slice of flag.Getter objects
// to accept zero or more instances of that flag.
//
//	var decls []style.Declaration
//	flag.Var(flagvalue.ListOf(&decls), "card-style", ...)
//
// With that, "-card-style width=100% -card-style color=red"
// records two declarations in order.
// So does "-card-style 'width=100%; color=red'".
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the values recorded so far
// as a slice of the underlying type.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String returns a semicolon separated list of the values in this list.
func (lv *List[T, PT]) String() string {
	var sb strings.Builder
	for i := range *lv {
		if i > 0 {
			sb.WriteString("; ")
		}
		// Values often implement String on the pointer.
		sb.WriteString(PT(&(*lv)[i]).String())
	}
	return sb.String()
}

// Set receives a single flag argument into this list.
// The argument may hold several semicolon separated values,
// so the output of String can be fed back into Set.
// Empty values are ignored.
// If any value is invalid, the list is left unchanged.
func (lv *List[T, PT]) Set(s string) error {
	items := *lv
	for part := range strings.SplitSeq(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var v T
		if err := PT(&v).Set(part); err != nil {
			return errtrace.Wrap(err)
		}
		items = append(items, v)
	}
	*lv = items
	return nil
}
