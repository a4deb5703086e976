package viewer

import "fmt"

// Signal is one discrete input command. Backends translate their own key and
// window events into signals; the viewer never sees raw events.
type Signal int

const (
	Quit Signal = iota
	RotateUp
	RotateDown
	RotateLeft
	RotateRight
	RollClockwise
	RollCounterClockwise
	ZoomIn
	ZoomOut
	ToggleMode
	ToggleCulling
	ToggleHUD
	Reset
)

var signalNames = [...]string{
	Quit:                 "quit",
	RotateUp:             "rotate-up",
	RotateDown:           "rotate-down",
	RotateLeft:           "rotate-left",
	RotateRight:          "rotate-right",
	RollClockwise:        "roll-cw",
	RollCounterClockwise: "roll-ccw",
	ZoomIn:               "zoom-in",
	ZoomOut:              "zoom-out",
	ToggleMode:           "toggle-mode",
	ToggleCulling:        "toggle-culling",
	ToggleHUD:            "toggle-hud",
	Reset:                "reset",
}

func (s Signal) String() string {
	if s >= 0 && int(s) < len(signalNames) {
		return signalNames[s]
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// State is the interaction loop state. Stopped is terminal.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}
