package progression

// Event is emitted to listeners when the level pointer changes.
type Event interface {
	progressionEvent()
}

// LevelAdvancedEvent is sent after NextLevel or SetCurrentLevel.
type LevelAdvancedEvent struct {
	From int
	To   int
}

func (LevelAdvancedEvent) progressionEvent() {}

// LevelResetEvent is sent after ResetToStart.
type LevelResetEvent struct {
	From int
}

func (LevelResetEvent) progressionEvent() {}

// BeastModeEnteredEvent is sent when the level pointer crosses into BEAST MODE.
type BeastModeEnteredEvent struct {
	Level int
}

func (BeastModeEnteredEvent) progressionEvent() {}

// Listener receives progression events synchronously.
type Listener func(Event)

// State is the progression state machine position.
type State int

const (
	StateProgressing State = iota // finite floors, level <= 50
	StateBeastMode                // endless floors, capped difficulty
)

func (s State) String() string {
	switch s {
	case StateProgressing:
		return "progressing"
	case StateBeastMode:
		return "beast mode"
	default:
		return "unknown"
	}
}
