package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/centavo-dev/centavo/internal/common"
	"github.com/centavo-dev/centavo/internal/config"
	"github.com/centavo-dev/centavo/internal/model"
	"github.com/centavo-dev/centavo/internal/reconcile"
	"github.com/centavo-dev/centavo/internal/service"
	"github.com/centavo-dev/centavo/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/centavo/centavo.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open database at %s", dbPath), err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// matcherConfig builds the reconciliation heuristics, with config-file
// overrides for the tolerance knobs.
func matcherConfig() reconcile.Config {
	cfg := reconcile.DefaultConfig()
	if viper.IsSet("reconcile.amount_tolerance") {
		cfg.AmountTolerance = viper.GetFloat64("reconcile.amount_tolerance")
	}
	if viper.IsSet("reconcile.grace_days") {
		cfg.GraceDays = viper.GetInt("reconcile.grace_days")
	}
	return cfg
}

func newPaymentService(store service.Storage) *service.PaymentService {
	return service.NewPaymentService(store, reconcile.NewMatcher(matcherConfig()))
}

func newObligationService(store service.Storage) *service.ObligationService {
	return service.NewObligationService(store, viper.GetInt("schedule.horizon_months"))
}

// resolvePeriod turns optional --month/--year flag values into a concrete
// budget period, defaulting to the current month.
func resolvePeriod(monthFlag, yearFlag string) (time.Month, int, error) {
	now := time.Now()
	month := now.Month()
	year := now.Year()

	if monthFlag != "" {
		m, err := model.ParseMonth(monthFlag)
		if err != nil {
			return 0, 0, err
		}
		month = m
	}
	if yearFlag != "" {
		y, err := strconv.Atoi(yearFlag)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q: %w", yearFlag, err)
		}
		year = y
	}
	return month, year, nil
}

// parseMonthYear parses a "January 2026" style pair of arguments.
func parseMonthYear(monthArg, yearArg string) (model.MonthYear, error) {
	month, err := model.ParseMonth(monthArg)
	if err != nil {
		return model.MonthYear{}, err
	}
	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return model.MonthYear{}, fmt.Errorf("invalid year %q: %w", yearArg, err)
	}
	return model.MonthYear{Month: month, Year: year}, nil
}
