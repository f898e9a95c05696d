package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
)

// Size is the fixed encoded size of a Message:
// type(1) timestamp(8) original timestamp(8) sender id(4) state(1) ipv4(4).
const Size = 1 + 8 + 8 + 4 + 1 + 4

var ErrMalformedMessage = errors.New("malformed message")

// Encode serializes m into a new Size-byte buffer in network byte order.
func Encode(m Message) []byte {
	return AppendEncode(make([]byte, 0, Size), m)
}

// AppendEncode appends the encoding of m to dst.
// IPv4-mapped IPv6 addresses are written as their IPv4 form; other
// non-IPv4 addresses, including the zero Addr, are written as 0.0.0.0.
func AppendEncode(dst []byte, m Message) []byte {
	dst = append(dst, byte(m.Type))
	dst = binary.BigEndian.AppendUint64(dst, uint64(m.Timestamp))
	dst = binary.BigEndian.AppendUint64(dst, uint64(m.OriginalTimestamp))
	dst = binary.BigEndian.AppendUint32(dst, uint32(m.SenderID))
	dst = append(dst, byte(m.SenderState))

	var ip [4]byte
	if addr := m.SenderAddr.Unmap(); addr.Is4() {
		ip = addr.As4()
	}
	return append(dst, ip[:]...)
}

// Decode parses the first Size bytes of buf. Trailing bytes are ignored.
func Decode(buf []byte) (Message, error) {
	if len(buf) < Size {
		return Message{}, fmt.Errorf("%w: %d bytes, need %d", ErrMalformedMessage, len(buf), Size)
	}

	msgType := MessageType(buf[0])
	if !msgType.Valid() {
		return Message{}, fmt.Errorf("%w: unknown type %d", ErrMalformedMessage, buf[0])
	}
	state := NodeState(buf[21])
	if !state.Valid() {
		return Message{}, fmt.Errorf("%w: unknown sender state %d", ErrMalformedMessage, buf[21])
	}

	return Message{
		Type:              msgType,
		Timestamp:         int64(binary.BigEndian.Uint64(buf[1:9])),
		OriginalTimestamp: int64(binary.BigEndian.Uint64(buf[9:17])),
		SenderID:          NodeID(binary.BigEndian.Uint32(buf[17:21])),
		SenderState:       state,
		SenderAddr:        netip.AddrFrom4([4]byte(buf[22:26])),
	}, nil
}
