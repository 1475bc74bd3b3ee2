// file: internal/game/zobrist.go
package game

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// ErrDimensionMismatch is returned when a board of a different size is
// fingerprinted by a hasher initialised for another size.
var ErrDimensionMismatch = errors.New("board dimensions do not match hasher")

const bignum = 1<<63 - 2

// Zobrist holds one random key per (cell, occupant). Empty cells contribute
// nothing, so a fingerprint only depends on the set of stones on the board.
type Zobrist struct {
	rows, cols int
	seed       uint64
	keys       [][2]uint64 // [cell][player-1]
}

// NewZobrist 用 seed 生成确定性的键表：同一个 seed 总是得到同一组键
func NewZobrist(rows, cols int, seed uint64) *Zobrist {
	var key [32]byte
	for k := 0; k < 4; k++ {
		binary.LittleEndian.PutUint64(key[k*8:], seed^uint64(k)*0x9e3779b97f4a7c15)
	}
	rng := frand.NewCustom(key[:], 1024, 12)

	z := &Zobrist{rows: rows, cols: cols, seed: seed, keys: make([][2]uint64, rows*cols)}
	for i := range z.keys {
		for j := range z.keys[i] {
			z.keys[i][j] = rng.Uint64n(bignum) + 1
		}
	}
	return z
}

// SeedFromString turns a textual seed from config into a hasher seed.
func SeedFromString(s string) uint64 { return xxhash.Sum64String(s) }

func (z *Zobrist) Dimensions() (rows, cols int) { return z.rows, z.cols }

func (z *Zobrist) Seed() uint64 { return z.seed }

// Matches reports whether b has the size this hasher was built for.
func (z *Zobrist) Matches(b *Board) bool { return b.rows == z.rows && b.cols == z.cols }

// Key returns the key of occupant at cell i; Empty has key 0.
func (z *Zobrist) Key(i int, occupant CellState) uint64 {
	if !occupant.IsPlayer() {
		return 0
	}
	return z.keys[i][occupant-1]
}

// Fingerprint XORs the keys of every occupied cell.
func (z *Zobrist) Fingerprint(b *Board) (uint64, error) {
	if !z.Matches(b) {
		return 0, fmt.Errorf("%w: board %dx%d, hasher %dx%d",
			ErrDimensionMismatch, b.rows, b.cols, z.rows, z.cols)
	}
	var fp uint64
	for i, s := range b.Cells {
		if s != Empty {
			fp ^= z.keys[i][s-1]
		}
	}
	return fp, nil
}

// Update returns fp after occupant is placed at pos. Applying the same
// update twice restores the original fingerprint.
func (z *Zobrist) Update(fp uint64, pos Position, occupant CellState) uint64 {
	return fp ^ z.Key(pos.Row*z.cols+pos.Col, occupant)
}

// UpdateI 下标版本，搜索内部用
func (z *Zobrist) UpdateI(fp uint64, i int, occupant CellState) uint64 {
	return fp ^ z.Key(i, occupant)
}
