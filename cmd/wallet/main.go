package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"wallet-client/internal/app"
	"wallet-client/internal/config"
	"wallet-client/internal/logger"
	"wallet-client/internal/model"
	"wallet-client/internal/store"
)

const usage = `usage: wallet <command> [flags] [args]

commands:
  status                              print the session state
  create <username> [balance]         create a wallet and sign in
  login <username>                    sign in to an existing wallet
  refresh                             reload the current wallet
  set-balance <wallet-id> <amount>    overwrite a wallet balance
  transfer <to-wallet-id> <amount>    send from the current wallet
  send <to-username> <amount>         send by username from the current wallet
  redeem <code>                       redeem a CDK into the current wallet
  validate <code>                     check a CDK without redeeming it
  history [-page n] [-limit n] [-direction all|sent|received] [-q text]
  rate                                print the latest exchange rate
  logout                              sign out and clear local storage

With WALLET_BACKEND=demo every run starts a fresh in-memory ledger, so local
storage defaults to memory and each run begins signed out.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	log := logger.New(true, "warn")

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load config")
		return 1
	}
	log = logger.New(cfg.App.LogPretty, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start wallet client")
		return 1
	}
	defer a.Close()

	if err := dispatch(ctx, a, args[0], args[1:], out); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		fmt.Fprintln(os.Stderr, "error:", model.Message(err))
		return 1
	}
	return 0
}

var errUsage = errors.New("usage")

func dispatch(ctx context.Context, a *app.App, cmd string, args []string, out io.Writer) error {
	svc := a.Service

	switch cmd {
	case "status":
		return printJSON(out, a.Store.Snapshot())

	case "create":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		balance := decimal.Zero
		if len(args) == 2 {
			var err error
			if balance, err = parseAmount(args[1]); err != nil {
				return err
			}
		}
		w, err := svc.CreateWallet(ctx, args[0], balance)
		if err != nil {
			return err
		}
		return printJSON(out, w)

	case "login":
		if len(args) != 1 {
			return errUsage
		}
		w, err := svc.LoginWallet(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(out, w)

	case "refresh":
		current, err := currentWallet(a)
		if err != nil {
			return err
		}
		w, err := svc.RefreshWallet(ctx, current.ID)
		if err != nil {
			return err
		}
		return printJSON(out, w)

	case "set-balance":
		if len(args) != 2 {
			return errUsage
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		w, err := svc.SetBalance(ctx, args[0], amount)
		if err != nil {
			return err
		}
		return printJSON(out, w)

	case "transfer", "send":
		if len(args) != 2 {
			return errUsage
		}
		current, err := currentWallet(a)
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		var res *model.TransferResult
		if cmd == "transfer" {
			res, err = svc.Transfer(ctx, current.ID, args[0], amount)
		} else {
			res, err = svc.TransferByUsername(ctx, current.Username, args[0], amount)
		}
		if err != nil {
			return err
		}
		return printJSON(out, res)

	case "redeem":
		if len(args) != 1 {
			return errUsage
		}
		current, err := currentWallet(a)
		if err != nil {
			return err
		}
		res, err := svc.RedeemCdk(ctx, args[0], current.Username)
		if err != nil {
			return err
		}
		return printJSON(out, res)

	case "validate":
		if len(args) != 1 {
			return errUsage
		}
		res, err := svc.ValidateCdk(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(out, res)

	case "history":
		return history(ctx, a, args, out)

	case "rate":
		a.Rates.Refresh(ctx)
		rate, ok := a.Rates.Latest()
		if !ok {
			return errors.New("exchange rate unavailable")
		}
		return printJSON(out, rate)

	case "logout":
		svc.Logout(ctx)
		return printJSON(out, a.Store.Snapshot())

	default:
		return errUsage
	}
}

func history(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", model.DefaultPageLimit, "page size")
	direction := fs.String("direction", "all", "all, sent or received")
	query := fs.String("q", "", "search text")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	current, err := currentWallet(a)
	if err != nil {
		return err
	}
	res, err := a.Service.GetTransactionHistory(ctx, current.ID, *page, *limit)
	if err != nil {
		return err
	}

	txs := store.FilterTransactions(res.Transactions, current.ID, store.Filter{
		Direction: store.ParseDirection(*direction),
		Query:     *query,
	})
	return printJSON(out, model.TransactionPage{Transactions: txs, Pagination: res.Pagination})
}

func currentWallet(a *app.App) (*model.Wallet, error) {
	w := a.Store.Snapshot().CurrentWallet
	if w == nil {
		return nil, errors.New("not signed in: run create or login first")
	}
	return w, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, model.NewValidationError(fmt.Sprintf("invalid amount %q", s))
	}
	return d, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
