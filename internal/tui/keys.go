package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	prevPage  key.Binding
	nextPage  key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	search    key.Binding
	newNote   key.Binding
	nextTag   key.Binding
	prevTag   key.Binding
	copy      key.Binding
	submit    key.Binding
	buildInfo key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	prevPage:  key.NewBinding(key.WithKeys("left", "h")),
	nextPage:  key.NewBinding(key.WithKeys("right", "l")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	search:    key.NewBinding(key.WithKeys("/")),
	newNote:   key.NewBinding(key.WithKeys("n")),
	nextTag:   key.NewBinding(key.WithKeys("]")),
	prevTag:   key.NewBinding(key.WithKeys("[")),
	copy:      key.NewBinding(key.WithKeys("c")),
	submit:    key.NewBinding(key.WithKeys("ctrl+s")),
	buildInfo: key.NewBinding(key.WithKeys("v")),
}
