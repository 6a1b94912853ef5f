package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/tracker"
)

// State is the transport state of a session.
type State int

const (
	Stopped State = iota
	Playing
	// Paused resumes without reloading the stream.
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// User is whoever issued a command.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// System issues the commands driven by the tick.
var System = User{ID: "system", Name: "system"}

// NewUser returns a user with a random id.
func NewUser(name string) User {
	return User{ID: uuid.NewString(), Name: name}
}

// Interruption tracks the administrative clip grafted in front of the program.
type Interruption struct {
	Active      bool
	LastFiredAt time.Time
	// Saved is the progress of the preempted item.
	Saved tracker.Progress
	// ResumeID is the preempted item.
	ResumeID string
}

// Session is the state of one shared playback surface. It is owned and
// mutated only by its Controller.
type Session struct {
	ID             string
	State          State
	Current        *source.Item
	Progress       tracker.Progress
	Sound          player.SoundOptions
	ControlsHidden bool
	// Interruption is nil when no interruption is configured.
	Interruption *Interruption

	instance player.Instance
	tick     tracker.Task
}

func newSession(sound player.SoundOptions, interruptible bool) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		State: Stopped,
		Sound: sound,
	}

	if interruptible {
		s.Interruption = &Interruption{}
	}

	return s
}

func (s *Session) interrupting() bool {
	return s.Interruption != nil && s.Interruption.Active
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	SessionID      string       `json:"session_id"`
	State          string       `json:"state"`
	Item           *source.Item `json:"item,omitempty"`
	Elapsed        float64      `json:"elapsed"`
	Remaining      float64      `json:"remaining"`
	Volume         float64      `json:"volume"`
	Rolloff        float64      `json:"rolloff"`
	Interrupting   bool         `json:"interrupting"`
	ControlsHidden bool         `json:"controls_hidden"`
}
