// Command goledger is a terminal client for the accounting backend. It drives the
// goLedger engine: login/logout, chart of accounts, vouchers, payments, receipts,
// reports with PDF export, search, and a watchable dashboard.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (-config), then environment variables (GOLEDGER_*, loaded from .env when
// present), then flags.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	goledger "github.com/MrEthical07/goLedger"
)

type fileConfig struct {
	API struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		Path       string `yaml:"path"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"session"`
	Dashboard struct {
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"dashboard"`
}

type envConfig struct {
	BaseURL     string `env:"GOLEDGER_API_URL"`
	SessionPath string `env:"GOLEDGER_SESSION_PATH"`
	Verbose     bool   `env:"GOLEDGER_VERBOSE,default=false"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if err := run(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "goledger: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: goledger <command> [flags]

commands:
  login        authenticate and store a session
  logout       clear the stored session
  whoami       validate the session and print the profile
  register     create a new account
  accounts     list the chart of accounts
  vouchers     list vouchers (-pending for pending only)
  voucher      create a voucher from a YAML draft file
  payments     list payments
  receipts     list receipts
  receipt-pdf  download a receipt PDF
  report       fetch a report (-pdf to export)
  search       search vouchers, payments, receipts, and accounts
  dashboard    show the dashboard summary (-watch to refresh)`)
}

func run(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "path to a YAML config file")
		baseURL    = fs.String("api-url", "", "backend base URL (overrides config and env)")
		verbose    = fs.Bool("v", false, "verbose logging")
	)

	eng, logger, err := setup(fs, args, configPath, baseURL, verbose, cmd)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "login":
		return cmdLogin(ctx, eng, fs)
	case "logout":
		return eng.Logout(ctx)
	case "whoami":
		return cmdWhoami(ctx, eng)
	case "register":
		return cmdRegister(ctx, eng, fs)
	case "accounts":
		return printJSONResult(eng.Accounts(ctx))
	case "vouchers":
		return cmdVouchers(ctx, eng, fs)
	case "voucher":
		return cmdVoucherCreate(ctx, eng, fs)
	case "payments":
		return printJSONResult(eng.Payments(ctx))
	case "receipts":
		return printJSONResult(eng.Receipts(ctx))
	case "receipt-pdf":
		return cmdReceiptPDF(ctx, eng, fs)
	case "report":
		return cmdReport(ctx, eng, fs)
	case "search":
		return cmdSearch(ctx, eng, fs)
	case "dashboard":
		return cmdDashboard(ctx, eng, fs, logger)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// setup layers configuration and builds the engine. Flags registered on fs by the
// command handlers are parsed here so every command shares the global flags.
func setup(fs *flag.FlagSet, args []string, configPath, baseURL *string, verbose *bool, cmd string) (*goledger.Engine, zerolog.Logger, error) {
	registerCommandFlags(fs, cmd)
	if err := fs.Parse(args); err != nil {
		return nil, zerolog.Nop(), err
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	var env envConfig
	if err := envdecode.Decode(&env); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, zerolog.Nop(), fmt.Errorf("decode environment: %w", err)
	}

	cfg := goledger.DefaultConfig()
	cfg.API.UserAgent = "goledger-cli"

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return nil, zerolog.Nop(), fmt.Errorf("read config: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, zerolog.Nop(), fmt.Errorf("parse config: %w", err)
		}
		applyFileConfig(&cfg, fc)
	}

	if env.BaseURL != "" {
		cfg.API.BaseURL = env.BaseURL
	}
	if env.SessionPath != "" {
		cfg.Storage.Path = env.SessionPath
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}

	level := zerolog.WarnLevel
	if *verbose || env.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	eng, err := goledger.New().
		WithConfig(cfg).
		WithLogger(logger).
		Build()
	if err != nil {
		return nil, logger, err
	}
	return eng, logger, nil
}

func applyFileConfig(cfg *goledger.Config, fc fileConfig) {
	if fc.API.BaseURL != "" {
		cfg.API.BaseURL = fc.API.BaseURL
	}
	if fc.API.Timeout > 0 {
		cfg.API.Timeout = fc.API.Timeout
	}
	if fc.Session.Path != "" {
		cfg.Storage.Path = fc.Session.Path
	}
	if fc.Session.CookieName != "" {
		cfg.Session.CookieName = fc.Session.CookieName
	}
	if fc.Dashboard.RefreshInterval > 0 {
		cfg.Dashboard.RefreshInterval = fc.Dashboard.RefreshInterval
	}
}

/*
====================================
COMMAND FLAGS
====================================
*/

var (
	flagUsername *string
	flagPassword *string
	flagName     *string
	flagEmail    *string
	flagDraft    *string
	flagType     *string
	flagFrom     *string
	flagTo       *string
	flagOut      *string
	flagQuery    *string
	flagKind     *string
	flagID       *int
	flagAccount  *int
	flagPending  *bool
	flagPDF      *bool
	flagWatch    *bool
)

func registerCommandFlags(fs *flag.FlagSet, cmd string) {
	switch cmd {
	case "login":
		flagUsername = fs.String("username", "", "account username")
		flagPassword = fs.String("password", "", "account password")
	case "register":
		flagUsername = fs.String("username", "", "account username")
		flagPassword = fs.String("password", "", "account password")
		flagName = fs.String("name", "", "display name")
		flagEmail = fs.String("email", "", "email address")
	case "vouchers":
		flagPending = fs.Bool("pending", false, "only vouchers awaiting approval")
	case "voucher":
		flagDraft = fs.String("draft", "", "YAML draft file with date, narration, and lines")
	case "receipt-pdf":
		flagID = fs.Int("id", 0, "receipt id")
		flagOut = fs.String("out", "", "output file (default receipt-<id>.pdf)")
	case "report":
		flagType = fs.String("type", string(goledger.ReportTrialBalance), "report type")
		flagFrom = fs.String("from", "", "start date (YYYY-MM-DD)")
		flagTo = fs.String("to", "", "end date (YYYY-MM-DD)")
		flagAccount = fs.Int("account", 0, "account id (AccountLedger only)")
		flagPDF = fs.Bool("pdf", false, "export as PDF")
		flagOut = fs.String("out", "", "PDF output file")
	case "search":
		flagQuery = fs.String("q", "", "search term")
		flagKind = fs.String("kind", "", "voucher|payment|receipt|account")
		flagFrom = fs.String("from", "", "start date")
		flagTo = fs.String("to", "", "end date")
	case "dashboard":
		flagWatch = fs.Bool("watch", false, "keep refreshing")
	}
}

/*
====================================
COMMANDS
====================================
*/

func cmdLogin(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet) error {
	if *flagUsername == "" || *flagPassword == "" {
		return fmt.Errorf("login requires -username and -password")
	}
	profile, err := eng.Login(ctx, *flagUsername, *flagPassword)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", profile.Username, profile.Role)
	return nil
}

func cmdWhoami(ctx context.Context, eng *goledger.Engine) error {
	profile, err := eng.Validate(ctx)
	if err != nil {
		return err
	}
	return printJSON(profile)
}

func cmdRegister(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet) error {
	err := eng.Register(ctx, goledger.RegisterRequest{
		Name:     *flagName,
		Username: *flagUsername,
		Email:    *flagEmail,
		Password: *flagPassword,
	})
	if err != nil {
		return err
	}
	fmt.Println("registered; log in to continue")
	return nil
}

func cmdVouchers(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet) error {
	if *flagPending {
		return printJSONResult(eng.PendingVouchers(ctx))
	}
	return printJSONResult(eng.Vouchers(ctx))
}

type draftFile struct {
	Date      string `yaml:"date"`
	Narration string `yaml:"narration"`
	Lines     []struct {
		AccountID int     `yaml:"account_id"`
		Narration string  `yaml:"narration"`
		Debit     float64 `yaml:"debit"`
		Credit    float64 `yaml:"credit"`
	} `yaml:"lines"`
}

func cmdVoucherCreate(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet) error {
	if *flagDraft == "" {
		return fmt.Errorf("voucher requires -draft")
	}
	data, err := os.ReadFile(*flagDraft)
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}
	var df draftFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return fmt.Errorf("parse draft: %w", err)
	}

	draft := goledger.NewVoucherDraft(df.Date, df.Narration)
	for _, l := range df.Lines {
		if l.Debit != 0 {
			draft.AddDebit(l.AccountID, l.Debit, l.Narration)
		} else {
			draft.AddCredit(l.AccountID, l.Credit, l.Narration)
		}
	}

	number, err := eng.NewVoucherNumber(ctx)
	if err != nil {
		return err
	}
	v, err := eng.CreateVoucher(ctx, number, draft)
	if err != nil {
		return err
	}
	fmt.Printf("created voucher %s (id %d)\n", v.VoucherNumber, v.ID)
	return nil
}

func cmdReceiptPDF(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet) error {
	if *flagID <= 0 {
		return fmt.Errorf("receipt-pdf requires -id")
	}
	data, err := eng.ReceiptPDF(ctx, *flagID)
	if err != nil {
		return err
	}
	out := *flagOut
	if out == "" {
		out = fmt.Sprintf("receipt-%d.pdf", *flagID)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
	return nil
}

func cmdReport(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet) error {
	filter := goledger.ReportFilter{
		From:      *flagFrom,
		To:        *flagTo,
		AccountID: *flagAccount,
	}
	t := goledger.ReportType(*flagType)

	if *flagPDF {
		data, err := eng.ExportReportPDF(ctx, t, filter)
		if err != nil {
			return err
		}
		out := *flagOut
		if out == "" {
			out = fmt.Sprintf("%s.pdf", *flagType)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
		return nil
	}

	return printJSONResult(eng.Report(ctx, t, filter))
}

func cmdSearch(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet) error {
	return printJSONResult(eng.Search(ctx, goledger.SearchQuery{
		Term: *flagQuery,
		Kind: *flagKind,
		From: *flagFrom,
		To:   *flagTo,
	}))
}

func cmdDashboard(ctx context.Context, eng *goledger.Engine, fs *flag.FlagSet, logger zerolog.Logger) error {
	if !*flagWatch {
		return printJSONResult(eng.Dashboard(ctx))
	}

	err := eng.StartDashboardRefresh(ctx, func(s *goledger.DashboardSummary) {
		if err := printJSON(s); err != nil {
			logger.Error().Err(err).Msg("print summary")
		}
	})
	if err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func printJSONResult[T any](v T, err error) error {
	if err != nil {
		return err
	}
	return printJSON(v)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
