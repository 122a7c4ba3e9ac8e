package game

// Key is a logical input, independent of the physical binding.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyMelee
	KeyRanged
)

// Keys is the set of logical keys held down this tick. A nil Keys is valid
// and reports nothing pressed.
type Keys map[Key]bool

// Pressed reports whether k is held.
func (ks Keys) Pressed(k Key) bool {
	return ks[k]
}

// Direction returns the raw world-axis movement intent in {-1,0,1}².
// Opposite keys cancel.
func (ks Keys) Direction() (dx, dy float64) {
	if ks.Pressed(KeyUp) {
		dy--
	}
	if ks.Pressed(KeyDown) {
		dy++
	}
	if ks.Pressed(KeyLeft) {
		dx--
	}
	if ks.Pressed(KeyRight) {
		dx++
	}
	return dx, dy
}
