// Package ui runs the interactive outline editor.
package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/tui/editor"
)

// UI edits Session in the terminal until the user quits.
type UI struct {
	Session *app.Session
	Theme   catalog.Theme

	// In and Out default to the terminal.
	In  io.Reader
	Out io.Writer
}

func (u *UI) Do(ctx context.Context) error {
	if u.Session == nil {
		return errors.New("ui: no session")
	}
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if u.In != nil {
		opts = append(opts, tea.WithInput(u.In))
	}
	if u.Out != nil {
		opts = append(opts, tea.WithOutput(u.Out))
	}
	p := tea.NewProgram(editor.New(u.Session, u.Theme), opts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
