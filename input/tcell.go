package input

import "github.com/gdamore/tcell/v2"

// FromTcell converts a tcell key event. The boolean is false for keys the
// grid has no edit for (arrows, function keys, and so on).
func FromTcell(ev *tcell.EventKey) (Event, bool) {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyRune:
		return Event{Kind: KindChar, Rune: ev.Rune(), Ctrl: ctrl}, true
	case tcell.KeyEnter:
		return Event{Kind: KindEnter}, true
	case tcell.KeyTab:
		return Char('\t'), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Kind: KindBackspace, Ctrl: ctrl}, true
	case tcell.KeyCtrlW:
		return Event{Kind: KindChar, Rune: 'w', Ctrl: true}, true
	}
	return Event{}, false
}
