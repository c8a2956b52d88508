//go:build e2e

package e2e

import (
	"context"
	"saucedemo-e2e/models"
	"saucedemo-e2e/scraper/saucedemo"
	"saucedemo-e2e/verify"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLandsOnInventory(t *testing.T) {
	sess, ctx := loggedIn(t)

	url, err := sess.URL(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.InventoryURL, url)
}

func TestLoginWithWrongPassword(t *testing.T) {
	sess, err := browser.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	err = sess.Login(context.Background(), models.Credentials{Username: cfg.Username, Password: "wrong"})
	assert.ErrorIs(t, err, saucedemo.ErrLoginRejected)
}

func TestInventorySortedZA(t *testing.T) {
	t.Parallel()
	sess, ctx := loggedIn(t)
	require.NoError(t, sess.ExpectURL(ctx, cfg.InventoryURL))

	require.NoError(t, sess.SelectSort(ctx, models.SortNameDesc))

	res, err := saucedemo.Check(ctx, sess, models.SortNameDesc)
	require.NoError(t, err)
	t.Logf("names: %v", res.Raw)

	reversed := slices.Clone(res.Raw)
	sort.Sort(sort.Reverse(sort.StringSlice(reversed)))
	assert.Equal(t, reversed, res.Raw)
}

func TestInventorySortedHighToLow(t *testing.T) {
	t.Parallel()
	sess, ctx := loggedIn(t)
	require.NoError(t, sess.ExpectURL(ctx, cfg.InventoryURL))

	require.NoError(t, sess.SelectSort(ctx, models.SortPriceDesc))

	res, err := saucedemo.Check(ctx, sess, models.SortPriceDesc)
	require.NoError(t, err)
	t.Logf("prices: %v", res.Values)
	assert.Empty(t, res.Dropped)
}

func TestExtractionIsRepeatable(t *testing.T) {
	t.Parallel()
	sess, ctx := loggedIn(t)

	first, err := sess.Texts(ctx, ".inventory_item_name")
	require.NoError(t, err)
	second, err := sess.Texts(ctx, ".inventory_item_name")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestSuiteDefaultCases(t *testing.T) {
	results := saucedemo.NewSuite(browser, cfg).Run(context.Background(), saucedemo.DefaultCases())
	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s", r.Case, r.Err)
	}
}

func TestPriceTransformOnLivePage(t *testing.T) {
	t.Parallel()
	sess, ctx := loggedIn(t)

	ext, err := verify.Extract(ctx, sess, ".inventory_item_price", verify.Price("$"))
	require.NoError(t, err)
	assert.Len(t, ext.Values, len(ext.Raw))
}
