// Package input maps keyboard events onto grid edits.
//
// Hosts translate their native key events into Event values; Apply then
// performs the matching edit on the grid. Adapters for tcell live here and
// the ebiten adapter lives with the ebiten host.
package input

import "unicode"

// Kind identifies the key an Event carries.
type Kind uint8

const (
	// KindChar is a typed character carried in Event.Rune.
	KindChar Kind = iota
	// KindBackspace is the backspace key.
	KindBackspace
	// KindEnter is the enter or return key.
	KindEnter
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindChar:
		return "Char"
	case KindBackspace:
		return "Backspace"
	case KindEnter:
		return "Enter"
	default:
		return "Unknown"
	}
}

// Event is one keyboard event.
type Event struct {
	Kind Kind
	Rune rune
	Ctrl bool
}

// Char returns a character event.
func Char(r rune) Event { return Event{Kind: KindChar, Rune: r} }

// Editor is the set of grid edits driven by keyboard input.
// *gridtext.Grid implements it.
type Editor interface {
	InsertText(s string)
	Pop()
	DeleteWord()
	FillLine()
}

// Apply performs the edit for ev on g and reports whether ev changed
// anything.
//
//	Ctrl+W, Ctrl+Backspace  DeleteWord
//	Backspace               Pop
//	Enter                   FillLine
//	printable or space      InsertText
//
// Other control characters and Ctrl chords are ignored.
func Apply(g Editor, ev Event) bool {
	switch ev.Kind {
	case KindBackspace:
		if ev.Ctrl {
			g.DeleteWord()
		} else {
			g.Pop()
		}
		return true
	case KindEnter:
		g.FillLine()
		return true
	case KindChar:
		if ev.Ctrl {
			if unicode.ToLower(ev.Rune) == 'w' {
				g.DeleteWord()
				return true
			}
			return false
		}
		if !insertable(ev.Rune) {
			return false
		}
		g.InsertText(string(ev.Rune))
		return true
	}
	return false
}

func insertable(r rune) bool {
	return unicode.IsPrint(r) || unicode.IsSpace(r) && r != '\n' && r != '\r'
}
