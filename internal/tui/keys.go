package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	logout     key.Binding
	newItem    key.Binding
	edit       key.Binding
	toggle     key.Binding
	delete     key.Binding
	refresh    key.Binding
	files      key.Binding
	upload     key.Binding
	copy       key.Binding
	version    key.Binding
	switchMode key.Binding
	google     key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("q")),
	logout:     key.NewBinding(key.WithKeys("l")),
	newItem:    key.NewBinding(key.WithKeys("n")),
	edit:       key.NewBinding(key.WithKeys("e")),
	toggle:     key.NewBinding(key.WithKeys(" ", "x")),
	delete:     key.NewBinding(key.WithKeys("d")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	files:      key.NewBinding(key.WithKeys("f")),
	upload:     key.NewBinding(key.WithKeys("u")),
	copy:       key.NewBinding(key.WithKeys("c")),
	version:    key.NewBinding(key.WithKeys("v")),
	switchMode: key.NewBinding(key.WithKeys("ctrl+r")),
	google:     key.NewBinding(key.WithKeys("ctrl+g")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n", "esc")),
}
