package udp

import (
	"net/netip"
	"testing"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/internal/node/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	payload []byte
	from    netip.Addr
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "Multicast group", cfg: Config{Port: 9000, Group: "239.1.2.3"}},
		{name: "No group", cfg: Config{Port: 9000}},
		{name: "Unicast group", cfg: Config{Port: 9000, Group: "10.0.0.1"}, wantErr: true},
		{name: "IPv6 group", cfg: Config{Port: 9000, Group: "ff02::1"}, wantErr: true},
		{name: "Bad advertise address", cfg: Config{Port: 9000, AdvertiseAddr: "vehicle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTransport_UnicastLoopback(t *testing.T) {
	rx, err := New(Config{ListenAddr: "127.0.0.1"})
	require.NoError(t, err)

	frames := make(chan frame, 1)
	require.NoError(t, rx.Open(func(payload []byte, from netip.Addr) {
		frames <- frame{payload: payload, from: from}
	}))
	defer rx.Close()

	tx, err := New(Config{ListenAddr: "127.0.0.1", PeerPort: rx.BoundPort()})
	require.NoError(t, err)
	require.NoError(t, tx.Open(func([]byte, netip.Addr) {}))
	defer tx.Close()

	assert.Equal(t, netip.MustParseAddr("127.0.0.1"), tx.LocalAddr())
	require.NoError(t, tx.SendUnicast(netip.MustParseAddr("127.0.0.1"), []byte("hello")))

	select {
	case f := <-frames:
		assert.Equal(t, []byte("hello"), f.payload)
		assert.Equal(t, netip.MustParseAddr("127.0.0.1"), f.from)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
	}
}

func TestTransport_Lifecycle(t *testing.T) {
	tr, err := New(Config{ListenAddr: "127.0.0.1", AdvertiseAddr: "10.9.9.9"})
	require.NoError(t, err)

	assert.ErrorIs(t, tr.SendUnicast(netip.MustParseAddr("127.0.0.1"), []byte{1}), port.ErrTransportClosed)
	assert.ErrorIs(t, tr.SendBroadcast([]byte{1}), ErrNoGroup)
	assert.NoError(t, tr.Close())

	require.NoError(t, tr.Open(func([]byte, netip.Addr) {}))
	assert.ErrorIs(t, tr.Open(func([]byte, netip.Addr) {}), ErrAlreadyOpen)
	assert.NotZero(t, tr.BoundPort())
	assert.Equal(t, netip.MustParseAddr("10.9.9.9"), tr.LocalAddr())
	require.NoError(t, tr.Close())
	assert.Zero(t, tr.BoundPort())

	require.NoError(t, tr.Open(func([]byte, netip.Addr) {}), "closed transport reopens")
	require.NoError(t, tr.Close())
}
