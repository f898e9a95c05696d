package app

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"

	grpcHandler "github.com/anthanhphan/go-vanet-cluster/internal/node/adapter/inbound/grpc"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/adapter/outbound/gossip"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/adapter/outbound/udp"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/config"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/go-vanet-cluster/internal/node/service"
	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/idgen"
	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
	"github.com/anthanhphan/go-vanet-cluster/pkg/sched"
	"github.com/anthanhphan/go-vanet-cluster/pkg/scorelog"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg        *config.Config
	id         wire.NodeID
	server     *grpc.Server
	sched      *sched.Real
	gossip     *gossip.GossipAdapter
	clustering *service.ClusteringServiceImpl
	election   *service.ElectionServiceImpl
	advertiser port.Advertiser
	sink       io.Closer
	redis      *redis.Client
	advertTick sched.Handle
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	a := &App{
		cfg:   cfg,
		id:    cfg.ResolveNodeID(),
		sched: sched.NewReal(),
	}

	// 3. Transport
	var transport port.Transport
	switch cfg.Transport.Kind {
	case config.TransportGossip:
		g, err := gossip.NewGossipAdapter(cfg.NodeName(), cfg.Server.Hostname, cfg.Transport.Gossip.Port, a.advertisement(domain.Snapshot{State: wire.StateIsolated}))
		if err != nil {
			return nil, fmt.Errorf("failed to init gossip: %w", err)
		}
		a.gossip = g
		a.advertiser = g
		transport = g
	default:
		u := cfg.Transport.UDP
		t, err := udp.New(udp.Config{
			ListenAddr:    u.ListenAddr,
			Port:          u.Port,
			Group:         u.Group,
			Interface:     u.Interface,
			TTL:           u.TTL,
			AdvertiseAddr: u.AdvertiseAddr,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init udp transport: %w", err)
		}
		transport = t
	}

	// 4. Clustering
	a.clustering = service.NewClusteringService(service.Identity{ID: a.id}, transport, a.sched, service.ClusteringConfig{
		DiscoveryInterval: cfg.Clustering.DiscoveryInterval(),
		RTTThreshold:      cfg.Clustering.RTTThreshold(),
		Expiration:        cfg.Clustering.Expiration(),
		HeadGracePeriod:   cfg.Clustering.HeadGracePeriod(),
	})
	if a.advertiser != nil {
		a.clustering.OnTransition(func(domain.Transition) { a.advertise() })
	}

	// 5. Head ranking
	if cfg.Election.Enabled {
		if err := a.initElection(transport); err != nil {
			return nil, err
		}
	}

	// 6. gRPC Server
	grpcServer := grpc.NewServer()
	var elections port.ElectionService
	if a.election != nil {
		elections = a.election
	}
	nodeapi.RegisterClusterNodeServer(grpcServer, grpcHandler.NewServer(a.clustering, elections))
	a.server = grpcServer

	return a, nil
}

func (a *App) initElection(transport port.Transport) error {
	cfg := a.cfg
	methods, err := cfg.Election.ParsedMethods()
	if err != nil {
		return fmt.Errorf("invalid election methods: %w", err)
	}

	var (
		sink  election.ScoreSink
		clock idgen.Clock = idgen.SystemClock{}
	)
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		clock = idgen.NewRedisClock(a.redis, 0)
		sink = scorelog.NewRedisSink(a.redis, scorelog.RedisSinkConfig{KeyPrefix: cfg.Redis.KeyPrefix})
	} else {
		csvSink, err := scorelog.NewCSVSink(cfg.Election.ScoreDir)
		if err != nil {
			return fmt.Errorf("failed to init score log: %w", err)
		}
		sink = csvSink
	}
	async := scorelog.NewAsyncSink(sink, scorelog.AsyncConfig{})
	a.sink = async

	ids, err := idgen.New(idgen.WorkerIDFor(uint32(a.id)), clock)
	if err != nil {
		return fmt.Errorf("failed to init snowflake: %w", err)
	}

	elector := election.NewElector(election.Config{
		Methods:      methods,
		Weights:      cfg.Election.Weights,
		RTTThreshold: cfg.Clustering.RTTThreshold(),
	}, async)

	var directory port.CandidateDirectory
	if a.gossip != nil {
		directory = a.gossip
	}
	a.election = service.NewElectionService(a.clustering, directory, elector, ids, a.sched, cfg.Election.Profile, cfg.Election.Interval())
	return nil
}

func (a *App) advertisement(snap domain.Snapshot) domain.Advertisement {
	return domain.Advertisement{
		ID:        a.id,
		Profile:   a.cfg.Election.Profile,
		Neighbors: len(snap.Neighbors),
		State:     snap.State,
	}
}

func (a *App) advertise() {
	if err := a.advertiser.Advertise(a.advertisement(a.clustering.Snapshot())); err != nil {
		logger.Debugw("Advertise failed", "error", err.Error())
	}
}

func (a *App) Run() error {
	// Join gossip before clustering so broadcasts have somewhere to go.
	if a.gossip != nil {
		a.joinGossip()
	}

	if err := a.clustering.Start(); err != nil {
		return fmt.Errorf("failed to start clustering: %w", err)
	}
	if a.election != nil {
		a.election.Start()
	}
	if a.advertiser != nil {
		a.advertTick = a.sched.Every(a.cfg.Election.AdvertiseInterval(), a.advertise)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", a.cfg.Server.Port))
	if err != nil {
		a.shutdown()
		return fmt.Errorf("failed to listen on port %d: %w", a.cfg.Server.Port, err)
	}

	logger.Infow("Clustering node starting",
		"id", a.id,
		"name", a.cfg.NodeName(),
		"port", a.cfg.Server.Port,
		"transport", a.cfg.Transport.Kind)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Serve(listener); err != nil {
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
		// Ignore expected stop errors.
		errMsg := err.Error()
		if !strings.Contains(errMsg, "use of closed network connection") && !errors.Is(err, grpc.ErrServerStopped) {
			runErr = fmt.Errorf("gRPC server failed: %w", err)
			logger.Errorw("Node gRPC server exited unexpectedly", "error", errMsg)
		}
	}

	logger.Info("Shutting down clustering node")
	a.server.GracefulStop()
	a.shutdown()
	return runErr
}

func (a *App) joinGossip() {
	selfSeedSuffix := fmt.Sprintf(":%d", a.cfg.Transport.Gossip.Port)
	seeds := make([]string, 0, len(a.cfg.Transport.Gossip.Seeds))
	for _, seed := range a.cfg.Transport.Gossip.Seeds {
		if seed == "" {
			continue
		}
		if strings.HasSuffix(seed, selfSeedSuffix) && strings.Contains(seed, a.cfg.Server.Hostname) {
			continue
		}
		seeds = append(seeds, seed)
	}
	if len(seeds) == 0 {
		return
	}

	var joinErr error
	for i := 0; i < 5; i++ {
		joinErr = a.gossip.Join(seeds)
		if joinErr == nil {
			return
		}
		logger.Warnw("Failed to join cluster, retrying...", "attempt", i+1, "error", joinErr.Error())
		time.Sleep(2 * time.Second)
	}
	logger.Errorw("Failed to join cluster after retries", "error", joinErr.Error())
}

func (a *App) shutdown() {
	if a.advertiser != nil {
		a.sched.Cancel(a.advertTick)
	}
	if a.election != nil {
		a.election.Stop()
	}
	if err := a.clustering.Stop(); err != nil {
		logger.Warnw("Clustering stop failed", "error", err.Error())
	}
	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			logger.Warnw("Score log close failed", "error", err.Error())
		}
	}
	if a.gossip != nil {
		if err := a.gossip.Leave(); err != nil {
			logger.Warnw("Gossip leave failed", "error", err.Error())
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warnw("Redis close failed", "error", err.Error())
		}
	}
}

