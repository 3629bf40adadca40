package deck

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ErrInvalidPairCount is returned when a deck is requested with fewer than one pair.
var ErrInvalidPairCount = errors.New("pair count must be at least 1")

// DefaultSymbols is the preferred tile face set.
var DefaultSymbols = []string{"🍎", "🍊", "🍇", "🍋", "🍉", "🍓", "🍍", "🥝", "🥑", "🍒"}

// TileState is the face of a single tile.
type TileState int

const (
	FaceDown TileState = iota
	Flipped
	Matched
)

func (ts TileState) String() string {
	switch ts {
	case FaceDown:
		return "faceDown"
	case Flipped:
		return "flipped"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Tile is one card of the deck. ID is its stable position in the deck and
// Value the key two tiles must share to match.
type Tile struct {
	ID    int
	Value string
	State TileState
}

// Deck is an ordered sequence of tiles holding every value exactly twice.
type Deck []Tile

// PairCount returns the number of pairs in the deck.
func (d Deck) PairCount() int { return len(d) / 2 }

// Clone returns an independent copy of the deck.
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	copy(out, d)
	return out
}

// Generator builds shuffled decks from a preferred symbol set.
type Generator struct {
	symbols []string
	rng     *rand.Rand
}

// NewGenerator creates a Generator. Empty and repeated symbols are dropped;
// a nil or empty set falls back to DefaultSymbols and a nil rng is seeded
// from the current time.
func NewGenerator(symbols []string, rng *rand.Rand) *Generator {
	cleaned := uniqueSymbols(symbols)
	if len(cleaned) == 0 {
		cleaned = uniqueSymbols(DefaultSymbols)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{symbols: cleaned, rng: rng}
}

// Symbols returns the preferred symbol set in use.
func (g *Generator) Symbols() []string {
	out := make([]string, len(g.symbols))
	copy(out, g.symbols)
	return out
}

// Generate returns a shuffled deck holding pairCount pairs.
func (g *Generator) Generate(pairCount int) (Deck, error) {
	if pairCount < 1 {
		return nil, fmt.Errorf("generate deck with %d pairs: %w", pairCount, ErrInvalidPairCount)
	}

	deck := make(Deck, 0, pairCount*2)
	for _, v := range g.values(pairCount) {
		deck = append(deck, Tile{Value: v}, Tile{Value: v})
	}

	// Fisher-Yates
	for i := len(deck) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	for i := range deck {
		deck[i].ID = i
	}
	return deck, nil
}

// values picks the first n preferred symbols, padding with numeric labels
// continuing from the set length when the set is too small.
func (g *Generator) values(n int) []string {
	source := make([]string, len(g.symbols), max(n, len(g.symbols)))
	copy(source, g.symbols)
	for len(source) < n {
		label := strconv.Itoa(len(source) + 1)
		if contains(source, label) {
			// a symbol override may already use the label
			label = "#" + label
		}
		source = append(source, label)
	}
	return source[:n]
}

func uniqueSymbols(symbols []string) []string {
	var out []string
	for _, s := range symbols {
		if s == "" || contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
