package game

import (
	"sync"

	"golang.org/x/exp/rand"
)

// ZobristSeed fixes the bitstring table so fingerprints are reproducible
// across runs.
const ZobristSeed = 16347954

// Zobrist holds one random bitstring per (square, side) pair plus one for
// "SideA to move". Tables are immutable once built and shared by every
// board of the same size.
type Zobrist struct {
	size   int
	pieces []uint64
	sideA  uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*Zobrist
}

var zobristTables = &zobristStore{tables: make(map[int]*Zobrist)}

// GetZobrist returns the table for the given board size, building it on
// first use.
func GetZobrist(size int) *Zobrist {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	table := newZobrist(size, ZobristSeed)
	zobristTables.tables[size] = table
	return table
}

func newZobrist(size int, seed uint64) *Zobrist {
	rng := rand.New(rand.NewSource(seed))
	z := &Zobrist{size: size, pieces: make([]uint64, size*size*2)}
	for i := range z.pieces {
		z.pieces[i] = nonZero(rng)
	}
	z.sideA = nonZero(rng)
	return z
}

// A zero bitstring would make XOR a no-op for its square.
func nonZero(rng *rand.Rand) uint64 {
	v := rng.Uint64()
	for v == 0 {
		v = rng.Uint64()
	}
	return v
}

// Piece returns the bitstring for a side's piece on a square.
func (z *Zobrist) Piece(c Coord, p Piece) uint64 {
	idx := (c.Y*z.size + c.X) * 2
	if p == SideB {
		idx++
	}
	return z.pieces[idx]
}

func (z *Zobrist) SideA() uint64 {
	return z.sideA
}

// Hash computes the fingerprint from scratch.
func (z *Zobrist) Hash(b *Board, toMove Piece) uint64 {
	var hash uint64
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			p := b.cells[y*b.size+x]
			if p&Occupied != 0 {
				hash ^= z.Piece(Coord{x, y}, p)
			}
		}
	}
	if toMove == SideA {
		hash ^= z.sideA
	}
	return hash
}
