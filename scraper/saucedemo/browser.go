package saucedemo

import (
	"context"
	"fmt"
	"saucedemo-e2e/config"
	"saucedemo-e2e/utils"

	"github.com/chromedp/chromedp"
)

// Browser owns one Chrome process. Every Session opens its own tab in a
// fresh browser context, so cookies and storage never leak between cases.
type Browser struct {
	cfg           *config.Config
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewBrowser launches Chrome with the options from utils.BrowserOpts. The
// process lives until Close; sessions only open and close tabs in it.
func NewBrowser(cfg *config.Config) (*Browser, error) {
	utils.Info("Launching Chrome browser (headless=%v)...", cfg.Headless)
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		utils.BrowserOpts(cfg.Headless)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the process; it must use the NewContext ctx itself
	// so that no timeout can kill the browser later.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("could not start browser: %w", err)
	}

	utils.Success("Browser ready")
	return &Browser{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

func (b *Browser) Close() {
	utils.Info("Closing browser...")
	b.browserCancel()
	b.allocCancel()
}

// NewSession opens an isolated tab.
func (b *Browser) NewSession() (*Session, error) {
	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx, chromedp.WithNewBrowserContext())
	listenConsole(tabCtx)

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("could not open tab: %w", err)
	}

	return &Session{
		cfg:       b.cfg,
		tabCtx:    tabCtx,
		tabCancel: tabCancel,
	}, nil
}
