package client

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	nextField key.Binding
	prevField key.Binding
	enter     key.Binding
	cancel    key.Binding
	interrupt key.Binding
	quit      key.Binding
	add       key.Binding
	edit      key.Binding
	delete    key.Binding
	copy      key.Binding
	reveal    key.Binding
	sync      key.Binding
	yes       key.Binding
	no        key.Binding
}

// Piped input delivers '\n' as ctrl+j, and end of input as ctrl+d.
var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	nextField: key.NewBinding(key.WithKeys("tab", "down")),
	prevField: key.NewBinding(key.WithKeys("shift+tab", "up")),
	enter:     key.NewBinding(key.WithKeys("enter", "ctrl+j")),
	cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c", "ctrl+d")),
	interrupt: key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
	quit:      key.NewBinding(key.WithKeys("q", "l")),
	add:       key.NewBinding(key.WithKeys("a")),
	edit:      key.NewBinding(key.WithKeys("e", "enter")),
	delete:    key.NewBinding(key.WithKeys("d", "delete")),
	copy:      key.NewBinding(key.WithKeys("c")),
	reveal:    key.NewBinding(key.WithKeys("r")),
	sync:      key.NewBinding(key.WithKeys("s")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),
}
