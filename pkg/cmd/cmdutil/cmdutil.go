// Package cmdutil holds the setup steps shared by the drt commands.
package cmdutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgx-contrib/pgxtrace"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/config"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/db/postgres"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/trackdata"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/utils"
)

// Env carries the loggers and telemetry created by Setup.
type Env struct {
	Logger    *log.Logger
	SQLLogger *log.Logger
	Telemetry *config.Telemetry
}

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// Setup creates the loggers from the config values, installs the default
// logger and starts telemetry if enabled.
func Setup(ctx context.Context) (*Env, error) {
	opts := []log.Option{log.WithCaller(true), log.AddCallerSkip(1)}
	if config.LogFilter != "" {
		filter, err := log.WithFilter(config.LogFilter)
		if err != nil {
			return nil, fmt.Errorf("invalid log filter: %w", err)
		}
		opts = append(opts, filter)
	}
	ret := &Env{}
	switch config.LogFormat {
	case "json":
		ret.Logger = log.New(os.Stderr,
			ParseLogLevel(config.LogLevel, log.InfoLevel), opts...)
		ret.SQLLogger = log.New(os.Stderr,
			ParseLogLevel(config.SQLLogLevel, log.InfoLevel), opts...)
	default:
		ret.Logger = log.DevLogger(os.Stderr,
			ParseLogLevel(config.LogLevel, log.InfoLevel), opts...)
		ret.SQLLogger = log.DevLogger(os.Stderr,
			ParseLogLevel(config.SQLLogLevel, log.InfoLevel), opts...)
	}
	log.ResetDefault(ret.Logger)

	if config.EnableTelemetry {
		log.Info("Enabling telemetry")
		t, err := config.SetupTelemetry(ctx)
		if err != nil {
			log.Warn("Could not setup telemetry", log.ErrorField(err))
		} else {
			ret.Telemetry = t
		}
	}
	return ret, nil
}

// Close flushes telemetry and loggers
func (e *Env) Close() {
	if e.Telemetry != nil {
		e.Telemetry.Shutdown()
	}
	//nolint:errcheck // stderr sync errors are not relevant
	e.Logger.Sync()
}

// OpenPool waits for the database and creates a connection pool.
// Queries are logged by the sql logger and traced if telemetry is active.
func (e *Env) OpenPool(ctx context.Context) (*pgxpool.Pool, error) {
	if err := WaitForDB(ctx); err != nil {
		return nil, err
	}
	pgTracer := pgxtrace.CompositeQueryTracer{
		postgres.NewMyTracer(e.SQLLogger, log.DebugLevel),
	}
	if e.Telemetry != nil {
		pgTracer = append(pgTracer, postgres.NewOtlpTracer())
	}
	return postgres.InitWithURL(ctx, config.DB, postgres.WithTracer(pgTracer))
}

// WaitForDB waits up to WaitForServices for the database port.
func WaitForDB(ctx context.Context) error {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	addr := utils.ExtractFromDBURL(config.DB)
	if addr == "" {
		return fmt.Errorf("cannot extract database address from %q", config.DB)
	}
	if err := utils.WaitForTCP(ctx, addr, timeout); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

// TrackSource returns a track source configured by TrackDir and TrackBaseURL.
func (e *Env) TrackSource() *trackdata.Source {
	opts := []trackdata.SourceOption{
		trackdata.WithDir(config.TrackDir),
		trackdata.WithLogger(e.Logger.Named("trackdata")),
	}
	if config.TrackBaseURL != "" {
		opts = append(opts, trackdata.WithBaseURL(config.TrackBaseURL))
	}
	return trackdata.NewSource(opts...)
}
