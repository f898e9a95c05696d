package memnet

import (
	"net/netip"
	"testing"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/anthanhphan/go-vanet-cluster/pkg/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inbox struct {
	frames [][]byte
	from   []netip.Addr
}

func (i *inbox) handler() port.InboundHandler {
	return func(payload []byte, from netip.Addr) {
		i.frames = append(i.frames, payload)
		i.from = append(i.from, from)
	}
}

func TestNetwork_BroadcastAfterLatency(t *testing.T) {
	clock := sched.NewManual()
	n := NewNetwork(clock, 5*time.Millisecond)
	a, b, c := n.NewEndpoint(), n.NewEndpoint(), n.NewEndpoint()

	var ia, ib, ic inbox
	require.NoError(t, a.Open(ia.handler()))
	require.NoError(t, b.Open(ib.handler()))
	require.NoError(t, c.Open(ic.handler()))

	require.NoError(t, a.SendBroadcast([]byte("hello")))
	clock.Advance(4 * time.Millisecond)
	assert.Empty(t, ib.frames)

	clock.Advance(time.Millisecond)
	assert.Empty(t, ia.frames)
	require.Len(t, ib.frames, 1)
	require.Len(t, ic.frames, 1)
	assert.Equal(t, []byte("hello"), ib.frames[0])
	assert.Equal(t, a.LocalAddr(), ib.from[0])

	delivered, lost := n.Stats()
	assert.Equal(t, uint64(2), delivered)
	assert.Equal(t, uint64(0), lost)
}

func TestNetwork_UnicastPartitionAndLoss(t *testing.T) {
	clock := sched.NewManual()
	n := NewNetwork(clock, time.Millisecond)
	a, b := n.NewEndpoint(), n.NewEndpoint()
	var ib inbox
	require.NoError(t, a.Open(func([]byte, netip.Addr) {}))
	require.NoError(t, b.Open(ib.handler()))

	n.Partition(b.LocalAddr(), a.LocalAddr())
	require.NoError(t, a.SendUnicast(b.LocalAddr(), []byte{1}))
	clock.Advance(time.Second)
	assert.Empty(t, ib.frames)

	n.Heal()
	n.SetLoss(func(from, to netip.Addr) bool { return true })
	require.NoError(t, a.SendUnicast(b.LocalAddr(), []byte{2}))
	clock.Advance(time.Second)
	assert.Empty(t, ib.frames)

	n.SetLoss(nil)
	require.NoError(t, a.SendUnicast(b.LocalAddr(), []byte{3}))
	clock.Advance(time.Second)
	require.Len(t, ib.frames, 1)
	assert.Equal(t, []byte{3}, ib.frames[0])

	_, lost := n.Stats()
	assert.Equal(t, uint64(2), lost)
}

func TestEndpoint_ClosedAndReopened(t *testing.T) {
	clock := sched.NewManual()
	n := NewNetwork(clock, time.Millisecond)
	a, b := n.NewEndpoint(), n.NewEndpoint()

	assert.ErrorIs(t, a.SendBroadcast([]byte{1}), port.ErrTransportClosed)

	var ib inbox
	require.NoError(t, a.Open(func([]byte, netip.Addr) {}))
	require.NoError(t, b.Open(ib.handler()))
	require.NoError(t, a.SendUnicast(b.LocalAddr(), []byte{1}))
	require.NoError(t, b.Close())
	clock.Advance(time.Second)
	assert.Empty(t, ib.frames, "frames in flight to a closed endpoint are dropped")

	require.NoError(t, b.Open(ib.handler()))
	require.NoError(t, a.SendUnicast(b.LocalAddr(), []byte{2}))
	clock.Advance(time.Second)
	assert.Len(t, ib.frames, 1)
}

func TestEndpoint_Inject(t *testing.T) {
	clock := sched.NewManual()
	n := NewNetwork(clock, time.Millisecond)
	a := n.NewEndpoint()
	var ia inbox
	require.NoError(t, a.Open(ia.handler()))

	from := netip.MustParseAddr("192.0.2.1")
	a.Inject([]byte{9}, from)
	clock.Advance(time.Millisecond)
	require.Len(t, ia.frames, 1)
	assert.Equal(t, from, ia.from[0])
}

func TestNetwork_EndpointIsStable(t *testing.T) {
	n := NewNetwork(sched.NewManual(), 0)
	addr := netip.MustParseAddr("10.1.2.3")
	assert.Same(t, n.Endpoint(addr), n.Endpoint(addr))
	assert.NotEqual(t, n.NewEndpoint().LocalAddr(), n.NewEndpoint().LocalAddr())
}
