// Package verify checks that a rendered list is already in a given order.
//
// A check reads the text of every element matching a selector from a Source,
// turns each text into a comparable value, and compares the sequence with a
// sorted copy of itself:
//
//	res, err := verify.Verify(ctx, src, verify.Check[float64]{
//		Selector:  ".inventory_item_price",
//		Transform: verify.Price("$"),
//		Compare:   verify.Descending(verify.Natural[float64]()),
//	})
//
// Texts whose transform fails are dropped and listed in Extraction.Dropped.
// An empty sequence is an error (ErrNoValues), never a vacuous pass.
package verify
