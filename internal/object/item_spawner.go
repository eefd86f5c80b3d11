package object

// ItemSpawner rolls for a new power-capsule every tick while none is in play.
type ItemSpawner struct {
	rate float64
}

// NewItemSpawner creates a spawner with a per-tick spawn probability.
func NewItemSpawner(rate float64) *ItemSpawner {
	if rate < 0 {
		rate = 0
	}
	return &ItemSpawner{
		rate: rate,
	}
}

// Update spawns a capsule at the left edge when the roll succeeds and the
// arena has none.
func (s *ItemSpawner) Update(ctx UpdateContext) (bool, error) {
	if s.rate == 0 {
		return false, nil
	}
	if ctx.Rand.Float64() >= s.rate || s.countActiveItems(ctx) > 0 {
		return false, nil
	}
	ctx.Spawner.Spawn(NewItem(ctx.Arena))
	return false, nil
}

// Draw is a no-op; spawner is not visible.
func (s *ItemSpawner) Draw(_ DrawContext) error {
	return nil
}

func (s *ItemSpawner) countActiveItems(ctx UpdateContext) int {
	total := 0
	for _, obj := range ctx.Objects {
		if item, ok := obj.(*Item); ok && !item.IsDestroyed() {
			total++
		}
	}
	return total
}
