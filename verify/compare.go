package verify

import (
	"cmp"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator is a total order: negative when a sorts before b, zero when they
// are equal for ordering purposes, positive otherwise.
type Comparator[T any] func(a, b T) int

// Natural is the natural order of T.
func Natural[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Descending reverses c. Equal elements stay equal, so a stable sort under the
// reversed order keeps ties in document order.
func Descending[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Collated orders strings by the collation rules of tag.
func Collated(tag language.Tag) Comparator[string] {
	var mu sync.Mutex
	col := collate.New(tag)
	return func(a, b string) int {
		mu.Lock()
		defer mu.Unlock()
		return col.CompareString(a, b)
	}
}
