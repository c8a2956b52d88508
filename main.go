package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"saucedemo-e2e/config"
	"saucedemo-e2e/models"
	"saucedemo-e2e/scraper/saucedemo"
	"saucedemo-e2e/services"
	"saucedemo-e2e/storage"
	"saucedemo-e2e/utils"
	"saucedemo-e2e/verify"
	"syscall"

	"github.com/spf13/cobra"
)

var errCasesFailed = errors.New("one or more cases failed")

var (
	configPath string
	verbose    bool
	cfg        *config.Config

	runCases    []string
	runHeadless bool
	runCSV      string
	runDB       bool

	checkFile string
	checkMode string
)

var rootCmd = &cobra.Command{
	Use:           "saucedemo-e2e",
	Short:         "Browser checks for the Sauce Demo inventory sort order",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		utils.SetLogger(utils.NewConsoleLogger(verbose))

		var err error
		cfg, err = config.Load(configPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		utils.Sync()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log in and verify each sort mode in a live browser",
	Long: `Launches Chrome, logs in to the store once per case and verifies that the
inventory is listed in the selected order.

Example:
  saucedemo-e2e run --case za --case hilo --headless=false`,
	RunE: runSuite,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the sort order of a saved inventory page",
	Long: `Reads an HTML page saved by a previous run (see dump_dir) and verifies it
against a sort mode without starting a browser.`,
	RunE: checkPage,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd.Flags().StringSliceVar(&runCases, "case", nil, "sort mode to verify (az, za, lohi, hilo); default za and hilo")
	runCmd.Flags().BoolVar(&runHeadless, "headless", true, "run Chrome headless")
	runCmd.Flags().StringVar(&runCSV, "csv", "", "CSV file for results (overrides csv_path)")
	runCmd.Flags().BoolVar(&runDB, "db", false, "also store results in PostgreSQL")

	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "saved HTML page")
	checkCmd.Flags().StringVarP(&checkMode, "mode", "m", "za", "sort mode the page should be in")
	_ = checkCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(runCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCasesFailed) {
			utils.Error("%v", err)
		}
		os.Exit(1)
	}
}

func runSuite(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("headless") {
		cfg.Headless = runHeadless
	}
	if runCSV != "" {
		cfg.CSVPath = runCSV
	}
	if runDB {
		cfg.DBEnabled = true
	}

	cases, err := casesFromFlags(runCases)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.Info("Suite starting | cases=%d workers=%d url=%s", len(cases), cfg.MaxWorkers, cfg.BaseURL)

	browser, err := saucedemo.NewBrowser(cfg)
	if err != nil {
		return fmt.Errorf("could not start browser: %w", err)
	}
	defer browser.Close()

	suite := saucedemo.NewSuite(browser, cfg)
	results := suite.Run(ctx, cases)

	if cfg.CSVPath != "" {
		if err := storage.NewCSVWriter(cfg.CSVPath).Write(results); err != nil {
			utils.Error("Failed to save CSV: %v", err)
		}
	}

	if cfg.DBEnabled {
		if err := saveToPostgres(ctx, results); err != nil {
			utils.Error("Failed to save results to PostgreSQL: %v", err)
		} else {
			utils.Success("Saved %d results to PostgreSQL", len(results))
		}
	}

	report := services.GenerateReport(results)
	services.PrintReport(os.Stdout, report)
	if !report.OK() {
		return errCasesFailed
	}
	return nil
}

func saveToPostgres(ctx context.Context, results []models.CheckResult) error {
	pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer pgWriter.Close()

	if err := pgWriter.EnsureSchema(ctx); err != nil {
		return err
	}
	return pgWriter.WriteBatch(ctx, results)
}

func casesFromFlags(values []string) ([]models.Case, error) {
	if len(values) == 0 {
		return saucedemo.DefaultCases(), nil
	}

	// Case names key stored results and page dumps within a run, so each
	// mode runs once even when given twice ("za" and "name-desc" included).
	seen := make(map[models.SortMode]bool, len(values))
	cases := make([]models.Case, 0, len(values))
	for _, v := range values {
		mode, err := models.ParseSortMode(v)
		if err != nil {
			return nil, err
		}
		if seen[mode] {
			utils.Warn("Skipping duplicate case %q (%s)", v, mode)
			continue
		}
		seen[mode] = true
		cases = append(cases, models.Case{Name: "items sorted " + mode.String(), Mode: mode})
	}
	return cases, nil
}

func checkPage(cmd *cobra.Command, args []string) error {
	mode, err := models.ParseSortMode(checkMode)
	if err != nil {
		return err
	}

	f, err := os.Open(checkFile)
	if err != nil {
		return fmt.Errorf("could not open page: %w", err)
	}
	defer f.Close()

	src, err := verify.NewHTMLSource(f)
	if err != nil {
		return err
	}

	res, err := saucedemo.Check(cmd.Context(), src, mode)
	res.Case = checkFile
	report := services.GenerateReport([]models.CheckResult{res})
	services.PrintReport(os.Stdout, report)
	if err != nil {
		return errCasesFailed
	}
	return nil
}
