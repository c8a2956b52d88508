//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"saucedemo-e2e/config"
	"saucedemo-e2e/models"
	"saucedemo-e2e/scraper/saucedemo"
	"saucedemo-e2e/utils"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	cfg     *config.Config
	browser *saucedemo.Browser
)

func TestMain(m *testing.M) {
	var err error
	cfg, err = config.Load(os.Getenv("SAUCE_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	browser, err = saucedemo.NewBrowser(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()
	browser.Close()
	utils.Sync()
	os.Exit(code)
}

// loggedIn opens a fresh session and logs in, the precondition of every test.
func loggedIn(t *testing.T) (*saucedemo.Session, context.Context) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.RequestTimeout)
	t.Cleanup(cancel)

	sess, err := browser.NewSession()
	require.NoError(t, err)
	t.Cleanup(sess.Close)

	require.NoError(t, sess.Login(ctx, models.Credentials{Username: cfg.Username, Password: cfg.Password}))
	return sess, ctx
}
