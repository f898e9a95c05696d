package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-vanet-cluster/internal/api/adapter/inbound/http"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/adapter/outbound/node_client"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/config"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/service"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/idgen"
	"github.com/anthanhphan/go-vanet-cluster/pkg/scorelog"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg        *config.Config
	server     *httpHandler.Server
	nodeClient *node_client.NodeClient
	sink       io.Closer
	redis      *redis.Client
	pollStop   context.CancelFunc
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Initialize Redis and Snowflake IDGen
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	redisClock := idgen.NewRedisClock(redisClient, 0)
	idGen, err := idgen.New(cfg.App.WorkerID, redisClock)
	if err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}

	// 4. Score log
	var sink election.ScoreSink
	switch cfg.ScoreLog.Backend {
	case "csv":
		csvSink, err := scorelog.NewCSVSink(cfg.ScoreLog.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to init score log: %w", err)
		}
		sink = csvSink
	default:
		sink = scorelog.NewRedisSink(redisClient, scorelog.RedisSinkConfig{
			KeyPrefix:        cfg.ScoreLog.KeyPrefix,
			FailureThreshold: cfg.ScoreLog.FailureThreshold,
			OpenTimeout:      time.Duration(cfg.ScoreLog.OpenTimeoutMS) * time.Millisecond,
		})
	}
	asyncSink := scorelog.NewAsyncSink(sink, scorelog.AsyncConfig{
		Workers:      cfg.ScoreLog.Workers,
		QueueSize:    cfg.ScoreLog.QueueSize,
		WriteTimeout: time.Duration(cfg.ScoreLog.WriteTimeoutMS) * time.Millisecond,
	})

	// 5. Node client (topology polling and control)
	nodeClient := node_client.NewNodeClient(cfg.Cluster.Nodes, cfg.Cluster.PollInterval())

	// 6. Services
	ranking := service.NewRankingService(asyncSink, idGen)
	topology := service.NewTopologyService(nodeClient, nodeClient)

	// 7. HTTP Server
	httpServer := httpHandler.NewServer(cfg, ranking, topology)

	return &App{
		cfg:        cfg,
		server:     httpServer,
		nodeClient: nodeClient,
		sink:       asyncSink,
		redis:      redisClient,
	}, nil
}

func (a *App) Run() error {
	// Start node polling
	pollCtx, cancel := context.WithCancel(context.Background())
	a.pollStop = cancel
	go a.nodeClient.Run(pollCtx)

	// Start HTTP
	logger.Infow("Gateway starting", "addr", a.cfg.Server.Addr, "nodes", len(a.cfg.Cluster.Nodes))
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Gateway server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down gateway")
	a.pollStop()
	a.nodeClient.Close()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := a.server.Stop(shutdownCtx); err != nil {
		logger.Errorw("Gateway shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if err := a.sink.Close(); err != nil {
		logger.Warnw("Score log close failed", "error", err.Error())
	}
	if err := a.redis.Close(); err != nil {
		logger.Warnw("Redis close failed", "error", err.Error())
	}

	return runErr
}
