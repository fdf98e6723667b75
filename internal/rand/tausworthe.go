package rand

import "github.com/pkg/errors"

// Tausworthe is the combined three-component Tausworthe generator (taus88)
// behind UMAP's tau_rand_int, extended to 53-bit uniform doubles.
type Tausworthe struct {
	state [3]uint32
}

// tausMin holds the smallest admissible value of each component; smaller
// words collapse the component to zero.
var tausMin = [3]uint32{2, 8, 16}

// NewTausworthe creates a generator whose three words are derived from seed
// with an LCG and then warmed up.
func NewTausworthe(seed int64) *Tausworthe {
	t := &Tausworthe{}
	x := uint64(seed)
	for i := range t.state {
		x = x*6364136223846793005 + 1442695040888963407
		t.state[i] = uint32(x >> 32)
		if t.state[i] < tausMin[i] {
			t.state[i] += tausMin[i]
		}
	}
	for range 10 {
		t.Uint32()
	}
	return t
}

// Uint32 advances the generator and returns the next 32 bits.
func (t *Tausworthe) Uint32() uint32 {
	s := &t.state
	s[0] = ((s[0] & 4294967294) << 12) ^ (((s[0] << 13) ^ s[0]) >> 19)
	s[1] = ((s[1] & 4294967288) << 4) ^ (((s[1] << 2) ^ s[1]) >> 25)
	s[2] = ((s[2] & 4294967280) << 17) ^ (((s[2] << 3) ^ s[2]) >> 11)
	return s[0] ^ s[1] ^ s[2]
}

// Float64 returns a uniform double in [0, 1) built from two draws, using the
// same 27+26 bit split as MT19937.Float64.
func (t *Tausworthe) Float64() float64 {
	a := t.Uint32() >> 5
	b := t.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// MarshalBinary captures the three generator words.
func (t *Tausworthe) MarshalBinary() ([]byte, error) {
	return encodeState(stateBlob{Algorithm: AlgTausworthe, Key: t.state[:]})
}

// UnmarshalBinary restores a state produced by MarshalBinary.
func (t *Tausworthe) UnmarshalBinary(data []byte) error {
	s, err := decodeState(data, AlgTausworthe)
	if err != nil {
		return err
	}
	if len(s.Key) != len(t.state) {
		return errors.Errorf("tausworthe state has %d words, want %d", len(s.Key), len(t.state))
	}
	for i, w := range s.Key {
		if w < tausMin[i] {
			return errors.Errorf("tausworthe state word %d is degenerate", i)
		}
	}
	copy(t.state[:], s.Key)
	return nil
}
