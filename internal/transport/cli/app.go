package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/chapterdex/internal/config"
	dbRedis "github.com/kailas-cloud/chapterdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/chapterdex/internal/logger"
	"github.com/kailas-cloud/chapterdex/internal/metrics"
	chapterrepo "github.com/kailas-cloud/chapterdex/internal/repository/chapter"
	masterrepo "github.com/kailas-cloud/chapterdex/internal/repository/master"
	healthuc "github.com/kailas-cloud/chapterdex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/chapterdex/internal/usecase/index"
)

type options struct {
	configPath  string
	logLevel    string
	metricsFile string
}

// app carries what every command needs once flags are parsed.
type app struct {
	opts    options
	env     string
	cfg     config.Config
	logger  *zap.Logger
	runID   string
	batch   bool // write the metrics textfile on exit
	closers []func()
}

// backend is the master index store selected by storage.driver.
type backend struct {
	store    indexuc.MasterStore
	stage    func() indexuc.StagedMaster
	pinger   healthuc.DBPinger // nil for the file driver
	location string
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.env = config.GetEnv()

	var err error
	if a.opts.configPath != "" {
		a.cfg, err = config.LoadFile(a.opts.configPath)
	} else {
		a.cfg, err = config.LoadOrDefault(a.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := a.cfg.Logging.Level
	if a.opts.logLevel != "" {
		level = a.opts.logLevel
	}
	base, err := logpkg.NewLogger(a.env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger, a.runID = logpkg.WithRun(base, cmd.Name())

	metrics.RegisterIndexerMetrics()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logpkg.ContextWithLogger(ctx, a.logger))
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil

	var err error
	if path := a.textfile(); a.batch && path != "" {
		if err = metrics.WriteTextfile(path); err == nil {
			a.logger.Debug("metrics textfile written", zap.String("path", path))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func (a *app) textfile() string {
	if a.opts.metricsFile != "" {
		return a.opts.metricsFile
	}
	return a.cfg.Metrics.Textfile
}

// openBackend connects to the configured master index store.
func (a *app) openBackend(ctx context.Context) (*backend, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverRedis, config.DriverValkey:
		st, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    a.cfg.Storage.Addrs,
			Username: a.cfg.Storage.Username,
			Password: a.cfg.Storage.Password,
			DB:       a.cfg.Storage.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", a.cfg.Storage.Driver, err)
		}
		a.closers = append(a.closers, st.Close)

		timeout := time.Duration(a.cfg.Storage.ReadinessTimeout) * time.Second
		if err := st.WaitForReady(ctx, timeout); err != nil {
			return nil, fmt.Errorf("%s not ready: %w", a.cfg.Storage.Driver, err)
		}
		repo := masterrepo.NewKV(st, a.cfg.Storage.KeyPrefix)
		a.logger.Info("connected to master store",
			zap.String("driver", a.cfg.Storage.Driver),
			zap.Strings("addrs", a.cfg.Storage.Addrs),
			zap.String("key", repo.Key()),
		)
		return &backend{
			store:    repo,
			stage:    func() indexuc.StagedMaster { return repo.Stage() },
			pinger:   st,
			location: repo.Key(),
		}, nil
	default:
		repo := masterrepo.NewFile(a.cfg.Paths.MasterPath)
		return &backend{
			store:    repo,
			stage:    func() indexuc.StagedMaster { return repo.Stage() },
			location: repo.Path(),
		}, nil
	}
}

// indexService wires the indexing use case against the configured stores.
func (a *app) indexService(ctx context.Context) (*indexuc.Service, *backend, error) {
	b, err := a.openBackend(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := indexuc.New(chapterrepo.New(), b.store, a.logger).WithStaging(b.stage)
	if a.cfg.Storage.Driver == config.DriverFile {
		svc = svc.WithExclude(a.cfg.Paths.MasterPath)
	}
	return svc, b, nil
}
