package page

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Version ids are ULIDs: 48-bit millisecond timestamp followed by 80 bits
// of randomness, Crockford base32 encoded. Ids minted within the same
// millisecond embed a sequence number so they still sort by creation.

var (
	versionMu  sync.Mutex
	versionTS  uint64
	versionSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newVersionID() string {
	return versionAt(time.Now())
}

func versionAt(t time.Time) string {
	versionMu.Lock()
	ts := uint64(t.UnixMilli())
	if ts == versionTS {
		versionSeq++
	} else {
		versionTS = ts
		versionSeq = 0
	}
	seq := versionSeq
	versionMu.Unlock()

	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], ts<<16)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], seq)
	return encodeCrockford(b)
}

// encodeCrockford encodes 128 bits as 26 characters, most significant first.
// The leading character carries the top 3 bits.
func encodeCrockford(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[0:8])
	lo := binary.BigEndian.Uint64(b[8:16])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
