package track

// Demo seeding defaults
const (
	DemoStartKey   = 12
	DemoInstrument = 1
)

// SeedDemo fills the grid with sample data: a counter starting at startKey
// walks the steps and every step whose counter is even gets that counter as key.
// Keys above MaxKey are skipped.
func SeedDemo(g *Grid, startKey int, instrument uint8) error {
	key := startKey
	for i := 0; i < g.Len(); i++ {
		if key%2 == 0 && key >= 0 && key <= MaxKey {
			if err := g.SetCell(i, NoteCell(Note{Key: uint8(key), Instrument: instrument})); err != nil {
				return err
			}
		}
		key++
	}
	return nil
}
