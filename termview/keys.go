package termview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridsense/geom"
)

type command uint8

const (
	cmdNone command = iota
	cmdQuit
	cmdMove
	cmdWander
	cmdFOV
	cmdLantern
)

// viKeys are the roguelike movement letters.
var viKeys = map[rune]geom.Direction{
	'k': geom.Up, 'j': geom.Down, 'h': geom.Left, 'l': geom.Right,
	'y': geom.UpLeft, 'u': geom.UpRight, 'b': geom.DownLeft, 'n': geom.DownRight,
	'.': geom.None,
}

// decode maps a key press to a command. Lowercase l moves; the lantern
// toggle is uppercase L.
func decode(key tcell.Key, r rune) (command, geom.Direction) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit, geom.None
	case tcell.KeyUp:
		return cmdMove, geom.Up
	case tcell.KeyDown:
		return cmdMove, geom.Down
	case tcell.KeyLeft:
		return cmdMove, geom.Left
	case tcell.KeyRight:
		return cmdMove, geom.Right
	case tcell.KeyRune:
	default:
		return cmdNone, geom.None
	}

	if d, ok := viKeys[r]; ok {
		return cmdMove, d
	}
	switch r {
	case 'q':
		return cmdQuit, geom.None
	case 'r':
		return cmdWander, geom.None
	case 'f':
		return cmdFOV, geom.None
	case 'L':
		return cmdLantern, geom.None
	}
	return cmdNone, geom.None
}
