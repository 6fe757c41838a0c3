package input

// actionRegistry maps config action names to intents
var actionRegistry = map[string]Intent{
	"none":        IntentNone, // unbind
	"quit":        IntentQuit,
	"select_up":   IntentSelectUp,
	"select_down": IntentSelectDown,
}

var intentNames map[Intent]string

func init() {
	intentNames = make(map[Intent]string, len(actionRegistry))
	for name, intent := range actionRegistry {
		intentNames[intent] = name
	}
}

// IntentByName resolves a config action name
func IntentByName(name string) (Intent, bool) {
	i, ok := actionRegistry[name]
	return i, ok
}

// ActionNames lists every accepted action name
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
