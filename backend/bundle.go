package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is the per-window view of the shared Bundle.
type WindowState struct {
	Bundle
	Controller *stream.Controller
	// Invalidate requests a new frame of the window.
	Invalidate func()
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
		Invalidate: win.Invalidate,
	}
}

type Bundle struct {
	Datasource *Datasource
}

func NewBundle(mutator *stream.Mutator) Bundle {
	return Bundle{
		Datasource: NewDatasource(mutator),
	}
}
