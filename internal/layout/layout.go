package layout

import "fmt"

const (
	// MaxVisibleTiles bounds the board regardless of viewport; half of it is
	// the pair cap.
	MaxVisibleTiles = 12
	// MaxColumns bounds the grid width.
	MaxColumns = 6
	// MinPairs is the pair count of the smallest band.
	MinPairs = 6

	DefaultWidth  = 300
	DefaultHeight = 250
)

// Viewport describes the size of the ad unit hosting the board.
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport is the unit size used when the host does not report one.
func DefaultViewport() Viewport {
	return Viewport{Width: DefaultWidth, Height: DefaultHeight}
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// RoundConfig is the board shape for one round.
type RoundConfig struct {
	Columns   int
	Rows      int
	PairCount int
}

// Tiles returns the number of tiles dealt for the config.
func (c RoundConfig) Tiles() int { return c.PairCount * 2 }

// Key identifies boards of the same shape, e.g. "4x3/6".
func (c RoundConfig) Key() string {
	return fmt.Sprintf("%dx%d/%d", c.Columns, c.Rows, c.PairCount)
}

// Resolve maps a viewport to a board. Only the height selects the band;
// width is accepted for symmetry with the host's size attributes.
func Resolve(width, height int) RoundConfig {
	var cfg RoundConfig
	switch {
	case height >= 600:
		cfg = RoundConfig{Columns: 4, Rows: 6, PairCount: 12}
	case height >= 480:
		cfg = RoundConfig{Columns: 4, Rows: 5, PairCount: 10}
	default:
		cfg = RoundConfig{Columns: 4, Rows: 3, PairCount: MinPairs}
	}

	// TODO: confirm with the ad ops team whether the 6 pair cap was meant
	// as 6 pairs or 12 pairs; it halves the tallest band.
	cfg.PairCount = min(cfg.PairCount, MaxVisibleTiles/2)
	cfg.Columns = min(cfg.Columns, MaxColumns)
	return cfg
}

// ResolveViewport is Resolve for a Viewport.
func ResolveViewport(v Viewport) RoundConfig {
	return Resolve(v.Width, v.Height)
}
