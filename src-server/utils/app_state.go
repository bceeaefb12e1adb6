package utils

import (
	"database/sql"
	"log/slog"
	"os"
	"sync"

	"gridcal/src-server/repo"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config      *Config
	RawDB       *sql.DB
	BunDB       *bun.DB
	EventRepo   repo.EventRepo
	When        *when.Parser
	MetricChans *Metric

	AppCloseSignalChan chan os.Signal

	gracefulShutdownChans []*chan struct{}
	gracefulShutdownMutex sync.Mutex
}

func NewAppState() *AppState {
	as := &AppState{
		AppCloseSignalChan: make(chan os.Signal, 1),
	}
	as.MetricChans = NewMetric()

	// date parser for the quick-add endpoint
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	switch as.Config.GetDatabaseBackend() {
	case "memory":
		as.EventRepo = repo.NewMemRepo()
	default:
		var err error
		as.RawDB, err = sql.Open(sqliteshim.ShimName, as.Config.GetDatabasePath()+"?mode=rwc")
		if err != nil {
			slog.Error("cannot open sqlite database", "error", err)
			os.Exit(1)
		}
		as.RawDB.SetMaxIdleConns(8)

		as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
		as.BunDB.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
		as.EventRepo = repo.NewBunRepo(as.BunDB)
	}

	return as
}

// CreateGracefulShutdownChan hands out a channel that is closed when
// the app shuts down; long-running goroutines select on it to clean up.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownMutex.Lock()
	defer as.gracefulShutdownMutex.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownMutex.Lock()
	defer as.gracefulShutdownMutex.Unlock()
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil
	if as.RawDB != nil {
		if err := as.RawDB.Close(); err != nil {
			slog.Warn("can't close database", "error", err)
		}
	}
}
