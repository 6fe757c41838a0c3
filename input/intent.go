package input

// Intent is the grid mutation a key resolves to
type Intent uint8

const (
	IntentNone       Intent = iota
	IntentQuit              // q
	IntentSelectUp          // Up arrow
	IntentSelectDown        // Down arrow
)

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}
