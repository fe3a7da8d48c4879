package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ledger-console/config"
	"ledger-console/internal/adapter/cli"
	"ledger-console/internal/core/domain"
	"ledger-console/internal/service"
	"ledger-console/pkg/apperror"
	"ledger-console/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev" // set by the linker

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

// newRootCmd builds the root command. Tests call it for a fresh instance.
func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Interactive single-owner ledger account",
		Long: `Ledger opens one in-memory account and reads commands from standard input:
balance, deposit <amount>, withdraw <amount>, owner <name>, help, quit.

Amounts are exact decimals rounded half-up to two places. The account is
never persisted; it vanishes when the session ends.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Version:      version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	cmd.Flags().String(config.FlagOwner, "User", "account owner name")
	cmd.Flags().String(config.FlagBalance, "", "initial balance, e.g. 100.00 (default 0.00)")
	cmd.Flags().String(config.FlagPrompt, cli.DefaultPrompt, "prompt written before each command")
	cmd.Flags().String(config.FlagLogLevel, "info", `log level ("debug", "info", "warn", "error")`)
	cmd.Flags().Bool(config.FlagLogPretty, false, "human-readable log output")

	return cmd
}

// run wires the account, service and session for one interactive session.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) error {
	log := logger.NewWithOutput(cfg.Log.Level, cfg.Log.Pretty || isTerminal(errOut), errOut)

	initial := openingBalance(cfg.Account.InitialBalance, errOut, log)

	account, err := domain.NewAccount(cfg.Account.Owner, initial)
	if err != nil {
		// openingBalance never returns a negative amount.
		return fmt.Errorf("opening account: %w", err)
	}

	log.Info().
		Str("account_id", account.ID.String()).
		Str("owner", account.Owner()).
		Str("balance", account.CheckBalance().String()).
		Str("version", version).
		Msg("Starting ledger session")

	svc := service.NewAccountService(account, log)
	session := cli.NewSession(svc, in, out, log, cli.WithPrompt(cfg.Session.Prompt))

	return session.Run(ctx)
}

// openingBalance parses the configured initial balance. Empty text means
// 0.00. Unparsable or negative text is reported and also falls back to 0.00.
func openingBalance(text string, errOut io.Writer, log zerolog.Logger) domain.Money {
	if strings.TrimSpace(text) == "" {
		return domain.Zero
	}

	m, err := domain.ParseMoney(text)
	if err == nil && m.IsNegative() {
		err = apperror.InvalidAmount("Initial balance cannot be negative")
	}
	if err != nil {
		fmt.Fprintf(errOut, "Warning: invalid initial balance %q, starting at 0.00\n", text)
		log.Warn().Err(err).Str("initial_balance", text).Msg("invalid initial balance, defaulting to 0.00")
		return domain.Zero
	}

	return m
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
