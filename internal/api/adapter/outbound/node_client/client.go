package node_client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/nodeapi"
	"github.com/anthanhphan/gosdk/logger"
)

// NodeClient polls the control RPC of a fixed set of clustering nodes and
// forwards control calls to them. Nodes that fail are skipped with an
// exponential backoff.
type NodeClient struct {
	addrs         []string
	known         map[string]struct{}
	clients       map[string]nodeapi.ClusterNodeClient
	conns         map[string]*grpc.ClientConn
	targetBackoff map[string]time.Time
	targetFails   map[string]int
	views         map[string]domain.NodeView
	mu            sync.RWMutex
	stop          chan struct{}
	stopOnce      sync.Once
	pollInterval  time.Duration
	callTimeout   time.Duration
	clientFactory ClientFactory
	now           func() time.Time
}

var (
	_ port.NodeControl    = (*NodeClient)(nil)
	_ port.TopologySource = (*NodeClient)(nil)
)

type ClientFactory func(addr string) (nodeapi.ClusterNodeClient, error)

func NewNodeClient(addrs []string, pollInterval time.Duration) *NodeClient {
	known := make(map[string]struct{}, len(addrs))
	unique := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if _, dup := known[a]; dup || a == "" {
			continue
		}
		known[a] = struct{}{}
		unique = append(unique, a)
	}
	return &NodeClient{
		addrs:         unique,
		known:         known,
		clients:       make(map[string]nodeapi.ClusterNodeClient),
		conns:         make(map[string]*grpc.ClientConn),
		targetBackoff: make(map[string]time.Time),
		targetFails:   make(map[string]int),
		views:         make(map[string]domain.NodeView),
		stop:          make(chan struct{}),
		pollInterval:  pollInterval,
		callTimeout:   2 * time.Second,
		now:           time.Now,
	}
}

// Run polls every pollInterval until ctx ends or Close is called.
func (c *NodeClient) Run(ctx context.Context) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// Initial poll
	c.PollNodes(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
			c.PollNodes(ctx)
		}
	}
}

// Close stops polling and releases every connection.
func (c *NodeClient) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, conn := range c.conns {
		_ = conn.Close()
		delete(c.conns, addr)
	}
	clear(c.clients)
}

// PollNodes fetches the state of every node outside its backoff window.
func (c *NodeClient) PollNodes(ctx context.Context) {
	now := c.now()
	targets := make([]string, 0, len(c.addrs))
	for _, addr := range c.addrs {
		if c.shouldSkipTarget(addr, now) {
			continue
		}
		targets = append(targets, addr)
	}

	var wg sync.WaitGroup
	for _, addr := range targets {
		wg.Add(1)
		go func(a string) {
			defer wg.Done()
			state, err := c.GetState(ctx, a)
			view := domain.NodeView{Addr: a, State: state, PolledAt: c.now()}
			if err != nil {
				if isIgnorablePollError(err) {
					return
				}
				c.recordTargetFailure(a)
				view.Error = err.Error()
				logger.Debugw("Failed to poll node state", "addr", a, "error", err.Error())
			} else {
				c.recordTargetSuccess(a)
			}
			c.mu.Lock()
			c.views[a] = view
			c.mu.Unlock()
		}(addr)
	}
	wg.Wait()
}

// Nodes returns the last view of every polled node in configuration order.
func (c *NodeClient) Nodes() []domain.NodeView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.NodeView, 0, len(c.views))
	for _, addr := range c.addrs {
		if v, ok := c.views[addr]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (c *NodeClient) Known(addr string) bool {
	_, ok := c.known[addr]
	return ok
}

func (c *NodeClient) GetState(ctx context.Context, addr string) (*nodeapi.NodeState, error) {
	client, err := c.getClient(addr)
	if err != nil {
		return nil, err
	}
	tCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	st, err := client.GetState(tCtx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	state, err := nodeapi.FromStruct(st)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", addr, err)
	}
	return state, nil
}

func (c *NodeClient) Start(ctx context.Context, addr string) (bool, error) {
	client, err := c.getClient(addr)
	if err != nil {
		return false, err
	}
	tCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := client.Start(tCtx, &emptypb.Empty{})
	if err != nil {
		return false, err
	}
	return resp.GetValue(), nil
}

func (c *NodeClient) Stop(ctx context.Context, addr string) (bool, error) {
	client, err := c.getClient(addr)
	if err != nil {
		return false, err
	}
	tCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := client.Stop(tCtx, &emptypb.Empty{})
	if err != nil {
		return false, err
	}
	return resp.GetValue(), nil
}

func (c *NodeClient) getClient(addr string) (nodeapi.ClusterNodeClient, error) {
	c.mu.RLock()
	client, ok := c.clients[addr]
	c.mu.RUnlock()
	if ok {
		return client, nil
	}

	var (
		newClient nodeapi.ClusterNodeClient
		newConn   *grpc.ClientConn
		err       error
	)
	if c.clientFactory != nil {
		newClient, err = c.clientFactory(addr)
	} else {
		newConn, err = grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err == nil {
			newClient = nodeapi.NewClusterNodeClient(newConn)
		}
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[addr]; ok {
		if newConn != nil {
			_ = newConn.Close()
		}
		return client, nil
	}

	c.clients[addr] = newClient
	if newConn != nil {
		c.conns[addr] = newConn
	}
	return newClient, nil
}

// SetClientFactory sets the client factory for testing purposes
func (c *NodeClient) SetClientFactory(f ClientFactory) {
	c.clientFactory = f
}

func isIgnorablePollError(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	return status.Code(err) == codes.Canceled
}

func (c *NodeClient) shouldSkipTarget(addr string, now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	next, ok := c.targetBackoff[addr]
	return ok && now.Before(next)
}

func (c *NodeClient) recordTargetFailure(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.targetFails[addr]++
	failCount := c.targetFails[addr]
	if failCount > 6 {
		failCount = 6
	}
	backoff := c.pollInterval * time.Duration(1<<failCount)
	if backoff > time.Minute {
		backoff = time.Minute
	}
	c.targetBackoff[addr] = c.now().Add(backoff)
	c.dropClientLocked(addr)
}

func (c *NodeClient) recordTargetSuccess(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.targetFails, addr)
	delete(c.targetBackoff, addr)
}

func (c *NodeClient) dropClientLocked(addr string) {
	if conn, ok := c.conns[addr]; ok {
		_ = conn.Close()
		delete(c.conns, addr)
	}
	delete(c.clients, addr)
}
