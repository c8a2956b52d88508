package verify

import (
	"context"
	"errors"
	"fmt"
	"saucedemo-e2e/utils"
	"slices"
	"time"

	gocmp "github.com/google/go-cmp/cmp"
)

// ErrNoValues is returned when a check has nothing to compare: the selector
// matched no element or every text was dropped.
var ErrNoValues = errors.New("no values to verify")

// Check describes one order verification.
type Check[T any] struct {
	Selector  string
	Transform Transform[T]
	Compare   Comparator[T]
}

// Invalid is a text dropped during extraction.
type Invalid struct {
	Position int
	Raw      string
	Err      error
}

// Extraction is what one read of the page produced. Raw keeps every text so a
// report can show the page as seen, even for texts missing from Values.
type Extraction[T any] struct {
	Raw     []string
	Values  []T
	Dropped []Invalid
}

// Result adds the sorted copy of Values the observed order was compared with.
type Result[T any] struct {
	Extraction[T]
	Expected []T
	Passed   bool
}

// OrderError reports the first position where the observed sequence differs
// from the sorted one.
type OrderError struct {
	Index int
	Got   string
	Want  string
	Diff  string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("out of order at position %d: got %s, want %s", e.Index, e.Got, e.Want)
}

// Extract reads every text matching selector and transforms it, keeping
// document order. Texts the transform rejects are dropped.
func Extract[T any](ctx context.Context, src Source, selector string, transform Transform[T]) (Extraction[T], error) {
	raw, err := src.Texts(ctx, selector)
	if err != nil {
		return Extraction[T]{}, fmt.Errorf("extract %q: %w", selector, err)
	}

	ext := Extraction[T]{
		Raw:    raw,
		Values: make([]T, 0, len(raw)),
	}
	for i, text := range raw {
		v, err := transform(text)
		if err != nil {
			utils.Warn("Dropping %q at position %d: %v", text, i, err)
			ext.Dropped = append(ext.Dropped, Invalid{Position: i, Raw: text, Err: err})
			continue
		}
		ext.Values = append(ext.Values, v)
	}
	return ext, nil
}

// Sorted returns a copy of values sorted by c. Values equal under c keep their
// relative order.
func Sorted[T any](values []T, c Comparator[T]) []T {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, c)
	return sorted
}

// CheckOrder reports whether values already equal Sorted(values, c).
func CheckOrder[T any](values []T, c Comparator[T]) error {
	if len(values) == 0 {
		return ErrNoValues
	}

	want := Sorted(values, c)
	for i := range values {
		if c(values[i], want[i]) != 0 {
			return &OrderError{
				Index: i,
				Got:   fmt.Sprint(values[i]),
				Want:  fmt.Sprint(want[i]),
				Diff:  gocmp.Diff(want, values),
			}
		}
	}
	return nil
}

// Verify extracts the values check describes from src and checks their order.
// The returned Result is filled in even when the order check fails.
func Verify[T any](ctx context.Context, src Source, check Check[T]) (Result[T], error) {
	ext, err := Extract(ctx, src, check.Selector, check.Transform)
	if err != nil {
		return Result[T]{}, err
	}

	res := Result[T]{
		Extraction: ext,
		Expected:   Sorted(ext.Values, check.Compare),
	}
	if err := CheckOrder(ext.Values, check.Compare); err != nil {
		return res, err
	}
	res.Passed = true
	return res, nil
}

// WaitStable polls src until selector yields the same non-empty sequence for
// at least quiet, and at least twice in a row, then returns that sequence. It
// gives up when ctx ends.
func WaitStable(ctx context.Context, src Source, selector string, interval, quiet time.Duration) ([]string, error) {
	var (
		prev  []string
		since time.Time
	)
	err := utils.Poll(ctx, interval, func(ctx context.Context) (bool, error) {
		texts, err := src.Texts(ctx, selector)
		if err != nil {
			return false, utils.Retryable(err)
		}
		if len(texts) == 0 {
			prev = nil
			return false, nil
		}
		if !slices.Equal(prev, texts) {
			prev = texts
			since = time.Now()
			return false, nil
		}
		return time.Since(since) >= quiet, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q did not settle: %w", selector, err)
	}
	return prev, nil
}
