package saucedemo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"saucedemo-e2e/config"
	"saucedemo-e2e/models"
	"saucedemo-e2e/utils"
	"saucedemo-e2e/verify"
	"strings"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const (
	usernameInput     = `input[data-test="username"]`
	passwordInput     = `input[data-test="password"]`
	loginButton       = `[data-test="login-button"]`
	loginError        = `[data-test="error"]`
	sortControl       = `[data-test="product-sort-container"]`
	itemNameSelector  = ".inventory_item_name"
	itemPriceSelector = ".inventory_item_price"
)

var (
	ErrEmptyCredentials = errors.New("username and password must not be empty")
	ErrLoginRejected    = errors.New("login rejected")
)

// LoginError carries the message of the login form's error banner.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login rejected: %s", e.Message)
}

func (e *LoginError) Is(target error) bool {
	return target == ErrLoginRejected
}

// URLMismatchError is returned by ExpectURL. The comparison is verbatim, so a
// redirect that only adds a query string or a trailing slash still counts.
type URLMismatchError struct {
	Got  string
	Want string
}

func (e *URLMismatchError) Error() string {
	return fmt.Sprintf("unexpected url %q, want %q", e.Got, e.Want)
}

// Session is one browser tab. Its methods are not safe for concurrent use;
// a test case drives its session strictly in sequence.
type Session struct {
	cfg       *config.Config
	tabCtx    context.Context
	tabCancel context.CancelFunc
}

func (s *Session) Close() {
	s.tabCancel()
}

// opContext bounds one browser operation by timeout and by ctx.
func (s *Session) opContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
		timeout = time.Until(dl)
	}
	opCtx, cancel := context.WithTimeout(s.tabCtx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

type loginState struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Login opens the entry page, fills both credential fields and submits. It
// returns once the browser has left the login page, or with a *LoginError
// when the form shows its error banner instead.
func (s *Session) Login(ctx context.Context, creds models.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return ErrEmptyCredentials
	}

	opCtx, cancel := s.opContext(ctx, s.cfg.RequestTimeout)
	defer cancel()

	// The browser normalizes the address ("https://host" loads as
	// "https://host/"), so leaving the page is judged against the location it
	// actually shows, not against BaseURL.
	var loginURL string
	err := chromedp.Run(opCtx,
		chromedp.Navigate(s.cfg.BaseURL),
		chromedp.WaitVisible(usernameInput, chromedp.ByQuery),
		chromedp.Location(&loginURL),
		chromedp.SendKeys(usernameInput, creds.Username, chromedp.ByQuery),
		chromedp.SendKeys(passwordInput, creds.Password, chromedp.ByQuery),
		chromedp.Click(loginButton, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("login form: %w", err)
	}

	script := fmt.Sprintf(`(() => ({
		url: location.href,
		error: (document.querySelector(%s)?.textContent || '').trim()
	}))()`, jsString(loginError))

	var rejected string
	err = utils.Poll(opCtx, s.cfg.PollInterval, func(ctx context.Context) (bool, error) {
		var state loginState
		if err := chromedp.Run(ctx, chromedp.Evaluate(script, &state)); err != nil {
			return false, utils.Retryable(err)
		}
		if state.Error != "" {
			rejected = state.Error
			return true, nil
		}
		return state.URL != loginURL, nil
	})
	if err != nil {
		return fmt.Errorf("waiting for login: %w", err)
	}
	if rejected != "" {
		return &LoginError{Message: rejected}
	}

	utils.Info("Logged in as %s", creds.Username)
	return nil
}

// URL returns the current location of the tab.
func (s *Session) URL(ctx context.Context) (string, error) {
	opCtx, cancel := s.opContext(ctx, s.cfg.RequestTimeout)
	defer cancel()

	var url string
	if err := chromedp.Run(opCtx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return url, nil
}

// ExpectURL compares the current location with want verbatim.
func (s *Session) ExpectURL(ctx context.Context, want string) error {
	got, err := s.URL(ctx)
	if err != nil {
		return err
	}
	if got != want {
		return &URLMismatchError{Got: got, Want: want}
	}
	return nil
}

// SelectSort picks mode in the sort control, then waits until the control
// reports the new value and the rendered list has not changed for SettleTime.
func (s *Session) SelectSort(ctx context.Context, mode models.SortMode) error {
	opCtx, cancel := s.opContext(ctx, s.cfg.RequestTimeout)
	defer cancel()

	// React ignores a plain value assignment, so go through the native
	// setter and fire the change event the control listens to.
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return '';
		const setter = Object.getOwnPropertyDescriptor(HTMLSelectElement.prototype, 'value').set;
		setter.call(el, %s);
		el.dispatchEvent(new Event('change', { bubbles: true }));
		return el.value;
	})()`, jsString(sortControl), jsString(mode.Value))

	var selected string
	err := chromedp.Run(opCtx,
		chromedp.WaitVisible(sortControl, chromedp.ByQuery),
		chromedp.Evaluate(script, &selected),
	)
	if err != nil {
		return fmt.Errorf("select sort %s: %w", mode, err)
	}
	if selected == "" {
		return fmt.Errorf("select sort %s: control rejected value %q", mode, mode.Value)
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, s.cfg.StableTimeout)
	defer waitCancel()

	err = utils.Poll(waitCtx, s.cfg.PollInterval, func(ctx context.Context) (bool, error) {
		var value string
		if err := s.run(ctx, chromedp.Value(sortControl, &value, chromedp.ByQuery)); err != nil {
			return false, utils.Retryable(err)
		}
		return value == mode.Value, nil
	})
	if err != nil {
		return fmt.Errorf("sort control did not switch to %s: %w", mode, err)
	}

	if _, err := verify.WaitStable(waitCtx, s, selectorFor(mode.Field), s.cfg.PollInterval, s.cfg.SettleTime); err != nil {
		return err
	}

	utils.Info("Sorted inventory by %s", mode)
	return nil
}

// Texts implements verify.Source over the live DOM.
func (s *Session) Texts(ctx context.Context, selector string) ([]string, error) {
	script := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%s)).map(el => (el.textContent || '').trim())`,
		jsString(selector),
	)

	var texts []string
	if err := s.run(ctx, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, fmt.Errorf("read %q: %w", selector, err)
	}
	return texts, nil
}

// HTML returns the serialized document, for offline re-checks.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return html, nil
}

func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	opCtx, cancel := s.opContext(ctx, s.cfg.RequestTimeout)
	defer cancel()
	return chromedp.Run(opCtx, actions...)
}

func listenConsole(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch ev := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			if ev.Type != runtime.APITypeError {
				return
			}
			args := make([]string, len(ev.Args))
			for i, arg := range ev.Args {
				args[i] = string(arg.Value)
			}
			utils.Debug("page console error: %s", strings.Join(args, " "))
		case *runtime.EventExceptionThrown:
			if ev.ExceptionDetails != nil {
				utils.Warn("page exception: %s", ev.ExceptionDetails.Text)
			}
		}
	})
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func selectorFor(field models.Field) string {
	if field == models.FieldPrice {
		return itemPriceSelector
	}
	return itemNameSelector
}
