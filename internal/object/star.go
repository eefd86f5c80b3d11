package object

import "github.com/tomz197/duel/internal/draw"

// StarCount is how many stars make up the background.
const StarCount = 60

var starColor = draw.Dim(draw.White, 0.3)

// Star is a background dot scrolling down the arena.
type Star struct {
	X, Y  float64
	Size  float64
	Speed float64
}

// NewStarfield scatters StarCount stars across the arena.
func NewStarfield(arena Arena, rnd Rand) []*Star {
	stars := make([]*Star, StarCount)
	for i := range stars {
		stars[i] = &Star{
			X:     rnd.Float64() * arena.Width,
			Y:     rnd.Float64() * arena.Height,
			Size:  rnd.Float64() * 2,
			Speed: 0.5 + rnd.Float64()*2,
		}
	}
	return stars
}

// Update scrolls the star, wrapping to the top past the bottom edge.
func (s *Star) Update(ctx UpdateContext) (bool, error) {
	s.Y += s.Speed
	if s.Y > ctx.Arena.Height {
		s.Y = 0
	}
	return false, nil
}

// Draw renders the star.
func (s *Star) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(s.X+ctx.OffsetX, s.Y+ctx.OffsetY, s.Size, s.Size, starColor)
	return nil
}
