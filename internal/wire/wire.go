// Package wire frames snapshot payloads before they reach the store so that
// truncated, foreign, or stale-format bytes are detected as corruption
// instead of being fed to the codec.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("unreadcache: corrupt entry")
	magic4     = [...]byte{'U', 'R', 'D', 'C'}
)

// Encode frames a payload: magic(4) | ver(1) | plen(u32 be) | payload(plen).
func Encode(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode validates framing strictly: bad magic, wrong version, short buffers
// and trailing bytes all return ErrCorrupt.
func Decode(b []byte) ([]byte, error) {
	const hdr = 4 + 1 + 4
	if len(b) < hdr || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return nil, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[5:9]))
	if plen < 0 || plen != len(b)-hdr {
		return nil, ErrCorrupt
	}
	return b[hdr:], nil
}
