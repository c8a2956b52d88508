package saucedemo

import (
	"context"
	"errors"
	"fmt"
	"saucedemo-e2e/models"
	"saucedemo-e2e/utils"
	"saucedemo-e2e/verify"
	"strconv"
)

// NameCheck and PriceCheck are the order checks behind each sort mode.
func NameCheck(dir models.Direction) verify.Check[string] {
	return verify.Check[string]{
		Selector:  itemNameSelector,
		Transform: verify.NameKey,
		Compare:   direct(verify.Natural[string](), dir),
	}
}

func PriceCheck(dir models.Direction) verify.Check[float64] {
	return verify.Check[float64]{
		Selector:  itemPriceSelector,
		Transform: verify.Price("$"),
		Compare:   direct(verify.Natural[float64](), dir),
	}
}

func direct[T any](c verify.Comparator[T], dir models.Direction) verify.Comparator[T] {
	if dir == models.Desc {
		return verify.Descending(c)
	}
	return c
}

// Check verifies that src currently lists the inventory in mode's order. The
// result is filled in whether or not the check passes; the returned error is
// the reason it did not.
func Check(ctx context.Context, src verify.Source, mode models.SortMode) (models.CheckResult, error) {
	res := models.CheckResult{Mode: mode, Divergence: -1}

	var err error
	switch mode.Field {
	case models.FieldName:
		var r verify.Result[string]
		r, err = verify.Verify(ctx, src, NameCheck(mode.Direction))
		fill(&res, r, func(v string) string { return v })
	case models.FieldPrice:
		var r verify.Result[float64]
		r, err = verify.Verify(ctx, src, PriceCheck(mode.Direction))
		fill(&res, r, func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) })
	default:
		err = fmt.Errorf("%w: field %q", models.ErrUnknownSortMode, mode.Field)
	}

	utils.Info("[%s] extracted %d values: %v", mode, len(res.Raw), res.Raw)

	var oe *verify.OrderError
	if errors.As(err, &oe) {
		res.Divergence = oe.Index
		utils.Debug("[%s] expected vs observed (-want +got):\n%s", mode, oe.Diff)
	}
	if err != nil {
		res.Err = err.Error()
		return res, err
	}
	return res, nil
}

func fill[T any](res *models.CheckResult, r verify.Result[T], format func(T) string) {
	res.Raw = r.Raw
	res.Passed = r.Passed
	res.Values = make([]string, len(r.Values))
	for i, v := range r.Values {
		res.Values[i] = format(v)
	}
	for _, d := range r.Dropped {
		res.Dropped = append(res.Dropped, models.Dropped{
			Position: d.Position,
			Raw:      d.Raw,
			Reason:   d.Err.Error(),
		})
	}
}
