package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/recordparser"
	"github.com/go-petr/pet-ledger/internal/reportprinter"
	"github.com/go-petr/pet-ledger/internal/reportservice"
	"github.com/go-petr/pet-ledger/internal/transferservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

func newRootCmd() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Apply transfers to bank accounts and report their final state",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "directory holding app.env")

	rootCmd.AddCommand(newRunCmd(&configDir), newServeCmd(&configDir))

	return rootCmd
}

func newRunCmd(configDir *string) *cobra.Command {
	var (
		format  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "run <accountsFile> <transfersFile>",
		Short: "Process a batch of transfers and print the account reports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configpkg.Load(*configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if cmd.Flags().Changed("format") {
				config.ReportFormat = format
			}

			if cmd.Flags().Changed("no-color") {
				config.NoColor = noColor
			}

			logger := middleware.NewLogger(config, cmd.ErrOrStderr())
			ctx := logger.WithContext(cmd.Context())

			return runBatch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), config, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&format, "format", FormatText, "report format: text or json")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored risk lines")

	return cmd
}

func newServeCmd(configDir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <accountsFile>",
		Short: "Load accounts and serve the ledger over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configpkg.Load(*configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if cmd.Flags().Changed("addr") {
				config.ServerAddress = addr
			}

			logger := middleware.NewLogger(config, cmd.ErrOrStderr())
			ctx := logger.WithContext(cmd.Context())

			server, err := newServer(ctx, logger, config, args[0])
			if err != nil {
				return err
			}

			logger.Info().Str("address", config.ServerAddress).Msg("LEDGER API SERVER HAS STARTED")

			return server.Engine.Run(config.ServerAddress)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", configpkg.DefaultServerAddress, "listen address")

	return cmd
}

type ledger struct {
	accounts  *accountservice.Service
	transfers *transferservice.Service
	reports   *reportservice.Service
}

func newLedger(config configpkg.Config) (*ledger, error) {
	mode, err := domain.ParsePenaltyMode(config.SavingsPenaltyMode)
	if err != nil {
		return nil, err
	}

	repo := accountrepo.New()
	transfers := transferservice.New(repo)

	return &ledger{
		accounts:  accountservice.New(repo, accountservice.Options{PenaltyMode: mode}),
		transfers: transfers,
		reports:   reportservice.New(repo).WithLocker(transfers.Locker()),
	}, nil
}

func (l *ledger) loadAccounts(ctx context.Context, path string) error {
	records, lineErrs, err := recordparser.ReadAccountsFile(path)
	if err != nil {
		return fmt.Errorf("read accounts: %w", err)
	}

	logLineErrors(ctx, path, lineErrs)
	l.accounts.Load(ctx, records)

	return nil
}

func newServer(ctx context.Context, logger zerolog.Logger, config configpkg.Config, accountsFile string) (*httpserver.Server, error) {
	l, err := newLedger(config)
	if err != nil {
		return nil, err
	}

	if err := l.loadAccounts(ctx, accountsFile); err != nil {
		return nil, err
	}

	return httpserver.New(l.accounts, l.transfers, l.reports, logger, config), nil
}

func runBatch(ctx context.Context, out, errOut io.Writer, config configpkg.Config, accountsFile, transfersFile string) error {
	format := strings.ToLower(config.ReportFormat)
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("unknown report format %q", config.ReportFormat)
	}

	l, err := newLedger(config)
	if err != nil {
		return err
	}

	if err := l.loadAccounts(ctx, accountsFile); err != nil {
		return err
	}

	reqs, lineErrs, err := recordparser.ReadTransfersFile(transfersFile)
	if err != nil {
		return fmt.Errorf("read transfers: %w", err)
	}

	logLineErrors(ctx, transfersFile, lineErrs)

	results := l.transfers.Process(ctx, reqs)
	reports := l.reports.Accounts(ctx)

	if format == FormatJSON {
		if err := reportprinter.Rejections(errOut, results); err != nil {
			return err
		}

		return reportprinter.JSON(out, reports)
	}

	if err := reportprinter.Rejections(out, results); err != nil {
		return err
	}

	return reportprinter.Text(out, reports, reportprinter.Options{NoColor: config.NoColor})
}

func logLineErrors(ctx context.Context, path string, lineErrs []recordparser.LineError) {
	l := zerolog.Ctx(ctx)

	for _, le := range lineErrs {
		l.Warn().Str("file", path).Int("line", le.Line).Err(le.Err).Msg("line skipped")
	}
}
