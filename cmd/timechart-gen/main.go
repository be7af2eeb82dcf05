package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"git.sr.ht/~whereswaldon/timechart/backend"
	"git.sr.ht/~whereswaldon/timechart/chart"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: generate synthetic chart JSON
Usage:

 %[1]s > file

OR

 %[1]s | timechart -data -

OR

 %[1]s -output file -rewrite 2s & timechart -data file

`, os.Args[0])
	flag.PrintDefaults()
}

type params struct {
	charts   int
	points   int
	lines    int
	interval time.Duration
	start    time.Time
}

// generate builds series of daily-looking values: a seasonal wave per line
// with noise on top, never negative.
func generate(rng *rand.Rand, p params) ([]backend.Chart, error) {
	out := make([]backend.Chart, 0, p.charts)
	for c := 0; c < p.charts; c++ {
		abscissa := make([]int64, p.points)
		for i := range abscissa {
			abscissa[i] = p.start.Add(time.Duration(i) * p.interval).UnixMilli()
		}
		lines := make([]chart.Line, p.lines)
		for l := range lines {
			base := 50 + rng.Float64()*200
			amplitude := base * (0.2 + rng.Float64()*0.6)
			period := float64(p.points) / (1 + rng.Float64()*4)
			phase := rng.Float64() * 2 * math.Pi
			values := make([]int64, p.points)
			for i := range values {
				v := base + amplitude*math.Sin(2*math.Pi*float64(i)/period+phase) + rng.NormFloat64()*base*0.1
				values[i] = int64(max(v, 0))
			}
			lines[l] = chart.Line{
				ID:     fmt.Sprintf("y%d", l),
				Label:  fmt.Sprintf("#%d", l),
				Color:  chart.DefaultLineColors[l%len(chart.DefaultLineColors)],
				Values: values,
			}
		}
		s, err := chart.NewSeries("x", abscissa, lines)
		if err != nil {
			return nil, fmt.Errorf("failed building chart %d: %w", c, err)
		}
		out = append(out, backend.NewChart(s))
	}
	return out, nil
}

func write(name string, charts []backend.Chart) error {
	var output io.WriteCloser
	if name == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("failed opening output file %q: %w", name, err)
		}
		output = f
	}
	if err := backend.Encode(output, charts); err != nil {
		output.Close()
		return err
	}
	if output == os.Stdout {
		return nil
	}
	return output.Close()
}

func main() {
	flag.Usage = usage
	numCharts := flag.Int("charts", 1, "Number of charts to generate")
	numPoints := flag.Int("points", 365, "Number of points per chart")
	numLines := flag.Int("lines", 3, "Number of lines per chart")
	interval := flag.Duration("interval", 24*time.Hour, "Time between consecutive points")
	startDate := flag.String("start", "2024-01-01", "Date of the first point (YYYY-MM-DD)")
	seed := flag.Int64("seed", 1, "Random seed")
	outputName := flag.String("output", "-", "Output file for chart JSON")
	rewrite := flag.Duration("rewrite", 0, "Regenerate the output file at this interval (0 writes once)")
	flag.Parse()

	if *numPoints < 2 {
		log.Fatalf("need at least 2 points, got %d", *numPoints)
	}
	if *numCharts < 1 || *numLines < 1 {
		log.Fatalf("need at least one chart and one line")
	}
	start, err := time.Parse(time.DateOnly, *startDate)
	if err != nil {
		log.Fatalf("failed parsing start date: %v", err)
	}
	if *rewrite > 0 && *outputName == "-" {
		log.Fatalf("-rewrite needs an -output file")
	}
	p := params{
		charts:   *numCharts,
		points:   *numPoints,
		lines:    *numLines,
		interval: *interval,
		start:    start,
	}
	rng := rand.New(rand.NewSource(*seed))
	emit := func() {
		charts, err := generate(rng, p)
		if err != nil {
			log.Fatal(err)
		}
		if err := write(*outputName, charts); err != nil {
			log.Fatal(err)
		}
	}
	emit()
	if *rewrite <= 0 {
		return
	}

	ticker := time.NewTicker(*rewrite)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer ticker.Stop()
	for {
		select {
		case <-sigChan:
			return
		case <-ticker.C:
			emit()
			log.Printf("rewrote %s", *outputName)
		}
	}
}
