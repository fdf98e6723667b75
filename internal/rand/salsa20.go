package rand

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/salsa20/salsa"
)

const salsaBlockSize = 64

// Salsa20 draws uniforms from the Salsa20 key stream with an all-zero nonce.
// The key is the BLAKE2b-256 digest of the seed, so distinct seeds give
// unrelated streams.
type Salsa20 struct {
	key   [32]byte
	block uint64
	buf   [salsaBlockSize]byte
	pos   int
}

// NewSalsa20 creates a key-stream source for seed.
func NewSalsa20(seed int64) *Salsa20 {
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], uint64(seed))
	s := &Salsa20{key: blake2b.Sum256(raw[:])}
	s.pos = salsaBlockSize
	return s
}

func (s *Salsa20) refill() {
	var counter [16]byte
	binary.LittleEndian.PutUint64(counter[8:], s.block)
	var zero [salsaBlockSize]byte
	salsa.XORKeyStream(s.buf[:], zero[:], &counter, &s.key)
	s.block++
	s.pos = 0
}

// Uint64 returns the next eight bytes of key stream.
func (s *Salsa20) Uint64() uint64 {
	if s.pos+8 > salsaBlockSize {
		s.refill()
	}
	v := binary.LittleEndian.Uint64(s.buf[s.pos:])
	s.pos += 8
	return v
}

// Float64 returns a uniform double in [0, 1) from the top 53 bits of Uint64.
func (s *Salsa20) Float64() float64 {
	return float64(s.Uint64()>>11) * (1.0 / 9007199254740992.0)
}

// MarshalBinary captures the key, the next block index and the offset into
// the current block.
func (s *Salsa20) MarshalBinary() ([]byte, error) {
	key := make([]byte, len(s.key))
	copy(key, s.key[:])
	return encodeState(stateBlob{Algorithm: AlgSalsa20, Stream: key, Block: s.block, Pos: s.pos})
}

// UnmarshalBinary restores a state produced by MarshalBinary.
func (s *Salsa20) UnmarshalBinary(data []byte) error {
	st, err := decodeState(data, AlgSalsa20)
	if err != nil {
		return err
	}
	if len(st.Stream) != len(s.key) {
		return errors.Errorf("salsa20 state key has %d bytes, want %d", len(st.Stream), len(s.key))
	}
	if st.Pos < 0 || st.Pos > salsaBlockSize {
		return errors.Errorf("salsa20 state offset %d out of range", st.Pos)
	}
	if st.Pos < salsaBlockSize && st.Block == 0 {
		return errors.New("salsa20 state has a buffered offset but no generated block")
	}
	copy(s.key[:], st.Stream)
	s.block = st.Block
	s.pos = salsaBlockSize
	if st.Pos < salsaBlockSize {
		// The buffered block is regenerated from its index.
		s.block = st.Block - 1
		s.refill()
		s.pos = st.Pos
	}
	return nil
}
