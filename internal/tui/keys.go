package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle       key.Binding
	Reset        key.Binding
	ConfirmReset key.Binding
	Preset1      key.Binding
	Preset2      key.Binding
	Mute         key.Binding
	Export       key.Binding
	ResetData    key.Binding
	Tab          key.Binding
	ShiftTab     key.Binding
	Help         key.Binding
	Enter        key.Binding
	Back         key.Binding
	Up           key.Binding
	Down         key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "start/pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	ConfirmReset: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reset (confirm)"),
	),
	Preset1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "25/5"),
	),
	Preset2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "50/10"),
	),
	Mute: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mute"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	ResetData: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "reset data"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.ConfirmReset},
		{k.Preset1, k.Preset2, k.Mute},
		{k.Export, k.ResetData, k.Tab, k.ShiftTab},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
