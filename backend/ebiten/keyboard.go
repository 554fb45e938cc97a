// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/gridtext/input"
)

// Key repeat timing in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

// keyboard turns Ebitengine key state into input events once per tick.
type keyboard struct {
	chars  []rune
	events []input.Event
}

func (k *keyboard) poll() []input.Event {
	k.events = k.events[:0]
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)

	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyW) {
		k.events = append(k.events, input.Event{Kind: input.KindChar, Rune: 'w', Ctrl: true})
	}
	if repeating(ebiten.KeyBackspace) {
		k.events = append(k.events, input.Event{Kind: input.KindBackspace, Ctrl: ctrl})
	}
	if repeating(ebiten.KeyEnter) || repeating(ebiten.KeyNumpadEnter) {
		k.events = append(k.events, input.Event{Kind: input.KindEnter})
	}
	if repeating(ebiten.KeyTab) {
		k.events = append(k.events, input.Char('\t'))
	}

	// Ctrl chords produce no input chars on most platforms; drop any that do.
	k.chars = ebiten.AppendInputChars(k.chars[:0])
	if !ctrl {
		for _, r := range k.chars {
			k.events = append(k.events, input.Char(r))
		}
	}
	return k.events
}

// repeating reports whether key was just pressed or is held long enough to
// auto-repeat on this tick.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}
