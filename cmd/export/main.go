package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akxxtz/lesger2/internal/config"
	"github.com/akxxtz/lesger2/internal/ledger"
	"github.com/akxxtz/lesger2/internal/logger"
	"github.com/akxxtz/lesger2/internal/report"
	"github.com/akxxtz/lesger2/internal/store"
)

// export writes a user's full statement CSV without going through the
// interactive menu.
func main() {
	log := logger.New()

	configPath := flag.String("config", "", "path to YAML config file (optional)")
	email := flag.String("email", "", "email of the user to export")
	outDir := flag.String("out", "", "output directory (defaults to the configured reports dir)")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: export -email ADDRESS [-config PATH] [-out DIR]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	st, err := store.Open(cfg.Data.Dir, store.Files{
		Users:        cfg.Data.UsersFile,
		Transactions: cfg.Data.TransactionsFile,
		Savings:      cfg.Data.SavingsFile,
		Loans:        cfg.Data.LoansFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}

	svc, err := ledger.NewService(st, log)
	if err != nil {
		log.Fatal().Err(err).Msg("hydrating ledger")
	}

	acct, ok := svc.Account(*email)
	if !ok {
		log.Fatal().Str("email", *email).Msg("no such user")
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Join(cfg.Data.Dir, cfg.Data.ReportsDir)
	}
	lines := report.BuildStatement(svc.UserTransactions(acct.UserID))
	path, err := report.ExportStatement(dir, acct.UserID, lines)
	if err != nil {
		log.Fatal().Err(err).Msg("exporting statement")
	}

	fmt.Printf("Exported %d transactions to %s\n", len(lines), path)
}
