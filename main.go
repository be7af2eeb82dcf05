package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/timechart/backend"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: explore time series charts
Usage:

 %[1]s -data charts.json

OR

 timechart-gen | %[1]s -data -

The file is reloaded whenever it changes on disk.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dataPath := flag.String("data", "", "Chart JSON file to open, or - to read standard input")
	dark := flag.Bool("dark", false, "Start in night mode")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mutator := stream.NewMutator(ctx, time.Second)
	bundle := backend.NewBundle(mutator)
	switch *dataPath {
	case "":
	case "-":
		bundle.Datasource.LoadFromStream("stdin", os.Stdin)
	default:
		bundle.Datasource.LoadFromPath(*dataPath)
	}

	go func() {
		w := app.NewWindow(app.Title("Timechart"))
		if err := loop(ctx, w, bundle, *dark); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, dark bool) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w)
	ui := NewUI(ws, expl, dark)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
