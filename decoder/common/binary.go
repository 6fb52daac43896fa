package common

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
)

// ErrTruncated marks account data too short for the fields a decoder needs.
var ErrTruncated = errors.New("truncated account data")

// TruncatedError reports a read past the end of the account buffer.
type TruncatedError struct {
	Have int
	Want int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("account too small: %d bytes, expected >= %d", e.Have, e.Want)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// NewTruncatedError builds a TruncatedError from observed and required sizes.
func NewTruncatedError(have, want int) *TruncatedError {
	return &TruncatedError{Have: have, Want: want}
}

// Reader decodes fixed-width little-endian fields from an account buffer at
// fixed offsets. Every read is bounds-checked and fails with a TruncatedError
// rather than panicking on short data.
type Reader struct {
	data []byte
}

// NewReader wraps raw account data for field extraction.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len reports the buffer length.
func (r *Reader) Len() int { return len(r.data) }

func (r *Reader) slice(offset, width int) ([]byte, error) {
	end := offset + width
	if offset < 0 || end > len(r.data) {
		return nil, NewTruncatedError(len(r.data), end)
	}
	return r.data[offset:end], nil
}

// U8 reads an unsigned byte at offset.
func (r *Reader) U8(offset int) (uint8, error) {
	b, err := r.slice(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads a single byte at offset and reports whether it is non-zero.
func (r *Reader) Bool(offset int) (bool, error) {
	b, err := r.U8(offset)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// U16 reads a little-endian uint16 at offset.
func (r *Reader) U16(offset int) (uint16, error) {
	b, err := r.slice(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian uint32 at offset.
func (r *Reader) U32(offset int) (uint32, error) {
	b, err := r.slice(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32 reads a little-endian int32 at offset.
func (r *Reader) I32(offset int) (int32, error) {
	v, err := r.U32(offset)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// U64 reads a little-endian uint64 at offset.
func (r *Reader) U64(offset int) (uint64, error) {
	b, err := r.slice(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// U128 reads a little-endian uint128 at offset: the low 8 bytes form the low
// 64 bits, the high 8 bytes are shifted left 64 and combined. The result is
// carried as a big.Int so full-width values survive untruncated.
func (r *Reader) U128(offset int) (*big.Int, error) {
	low, err := r.U64(offset)
	if err != nil {
		return nil, err
	}
	high, err := r.U64(offset + 8)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).SetUint64(high)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(low)), nil
}

// Address reads a 32-byte public key at offset and re-encodes it as base58.
func (r *Reader) Address(offset int) (string, error) {
	b, err := r.slice(offset, AddressLen)
	if err != nil {
		return "", err
	}
	return base58.Encode(b), nil
}

// Discriminator returns the leading 8 bytes identifying the account's
// logical type, or nil when the buffer is shorter than that.
func (r *Reader) Discriminator() []byte {
	if len(r.data) < DiscriminatorLen {
		return nil
	}
	return r.data[:DiscriminatorLen]
}

// EncodeU128 writes v as two little-endian uint64 halves into a 16-byte
// slice. Intended for building fixtures; the inverse of Reader.U128.
func EncodeU128(v *big.Int) []byte {
	out := make([]byte, 16)
	mask := new(big.Int).SetUint64(^uint64(0))
	low := new(big.Int).And(v, mask)
	high := new(big.Int).Rsh(v, 64)
	binary.LittleEndian.PutUint64(out[0:8], low.Uint64())
	binary.LittleEndian.PutUint64(out[8:16], new(big.Int).And(high, mask).Uint64())
	return out
}
