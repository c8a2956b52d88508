package utils

import (
	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BrowserOpts returns the exec allocator options for the test browser.
//
// Sauce Demo renders the inventory in a responsive grid; a fixed desktop
// window keeps one layout for every run.
func BrowserOpts(headless bool) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("mute-audio", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	}

	if headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}

	return opts
}
