// Package console is the terminal front end: a pterm-driven human decider,
// board rendering and the play-again prompt.
package console

import "github.com/pterm/pterm"

// Prompter asks the person at the terminal.
type Prompter interface {
	Select(text string, options []string) (string, error)
	Confirm(text string, def bool) (bool, error)
	MultiSelect(text string, options []string) ([]string, error)
}

// PTerm prompts with pterm's interactive components.
type PTerm struct{}

func (PTerm) Select(text string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText(text).WithOptions(options).Show()
}

func (PTerm) Confirm(text string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultText(text).WithDefaultValue(def).Show()
}

func (PTerm) MultiSelect(text string, options []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.WithDefaultText(text).WithOptions(options).Show()
}

// AskRestart asks whether to play another game.
func AskRestart(p Prompter) (bool, error) {
	return p.Confirm("Play again?", true)
}
