package saucedemo

import (
	"context"
	"saucedemo-e2e/config"
	"saucedemo-e2e/models"
	"saucedemo-e2e/storage"
	"saucedemo-e2e/utils"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func DefaultCases() []models.Case {
	return []models.Case{
		{Name: "items sorted Z-A by name", Mode: models.SortNameDesc},
		{Name: "items sorted high-low by price", Mode: models.SortPriceDesc},
	}
}

// Suite runs cases against one Browser. Cases are independent: each gets its
// own session, and a failing case never stops the others.
type Suite struct {
	browser *Browser
	cfg     *config.Config
	runID   string
	dumps   *storage.PageDump
}

func NewSuite(browser *Browser, cfg *config.Config) *Suite {
	s := &Suite{
		browser: browser,
		cfg:     cfg,
		runID:   uuid.NewString(),
	}
	if cfg.DumpDir != "" {
		s.dumps = storage.NewPageDump(cfg.DumpDir)
	}
	return s
}

func (s *Suite) RunID() string {
	return s.runID
}

// Run executes cases with at most MaxWorkers in flight and returns their
// results in case order.
func (s *Suite) Run(ctx context.Context, cases []models.Case) []models.CheckResult {
	utils.Section("Run " + s.runID)
	results := make([]models.CheckResult, len(cases))

	var g errgroup.Group
	g.SetLimit(s.cfg.MaxWorkers)
	for i, c := range cases {
		g.Go(func() error {
			results[i] = s.RunCase(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	utils.Success("Cases passed: %d | Failed: %d", passed, len(results)-passed)
	return results
}

// RunCase drives one case: session, login, URL check, sort, verification.
func (s *Suite) RunCase(ctx context.Context, c models.Case) models.CheckResult {
	start := time.Now()
	res := models.CheckResult{Mode: c.Mode, Divergence: -1}

	fail := func(err error) models.CheckResult {
		utils.Error("[%s] %v", c.Name, err)
		res.RunID = s.runID
		res.Case = c.Name
		res.Err = err.Error()
		res.Duration = time.Since(start)
		res.CheckedAt = start
		return res
	}

	sess, err := s.browser.NewSession()
	if err != nil {
		return fail(err)
	}
	defer sess.Close()

	creds := models.Credentials{Username: s.cfg.Username, Password: s.cfg.Password}
	if err := sess.Login(ctx, creds); err != nil {
		return fail(err)
	}
	if err := sess.ExpectURL(ctx, s.cfg.InventoryURL); err != nil {
		return fail(err)
	}
	if err := sess.SelectSort(ctx, c.Mode); err != nil {
		return fail(err)
	}

	res, err = Check(ctx, sess, c.Mode)
	if err != nil {
		s.dump(ctx, sess, c)
		return fail(err)
	}

	res.RunID = s.runID
	res.Case = c.Name
	res.Duration = time.Since(start)
	res.CheckedAt = start
	utils.Success("[%s] %s in %v", c.Name, c.Mode, res.Duration.Round(time.Millisecond))
	return res
}

func (s *Suite) dump(ctx context.Context, sess *Session, c models.Case) {
	if s.dumps == nil {
		return
	}
	html, err := sess.HTML(ctx)
	if err != nil {
		utils.Warn("[%s] could not capture page: %v", c.Name, err)
		return
	}
	if _, err := s.dumps.Write(s.runID+"-"+c.Mode.Value, html); err != nil {
		utils.Warn("[%s] could not save page: %v", c.Name, err)
	}
}
