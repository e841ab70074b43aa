package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akxxtz/lesger2/internal/config"
	"github.com/akxxtz/lesger2/internal/ledger"
	"github.com/akxxtz/lesger2/internal/logger"
	"github.com/akxxtz/lesger2/internal/rates"
	"github.com/akxxtz/lesger2/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, closer, err := logger.OpenFile(filepath.Join(cfg.Data.Dir, cfg.Log.File), cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: opening log file:", err)
		os.Exit(1)
	}
	defer closer.Close()

	st, err := store.Open(cfg.Data.Dir, store.Files{
		Users:        cfg.Data.UsersFile,
		Transactions: cfg.Data.TransactionsFile,
		Savings:      cfg.Data.SavingsFile,
		Loans:        cfg.Data.LoansFile,
	})
	if err != nil {
		log.Error().Err(err).Msg("opening store")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ratesPath := filepath.Join(cfg.Data.Dir, cfg.Data.RatesFile)
	if err := rates.EnsureFile(ratesPath); err != nil {
		log.Error().Err(err).Msg("seeding rates file")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	svc, err := ledger.NewService(st, log)
	if err != nil {
		log.Error().Err(err).Msg("hydrating ledger")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	m := &menu{
		svc:        svc,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		ratesPath:  ratesPath,
		reportsDir: filepath.Join(cfg.Data.Dir, cfg.Data.ReportsDir),
	}
	m.run()
}
