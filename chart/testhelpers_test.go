package chart

import (
	"testing"
	"time"
)

const day = int64(24 * time.Hour / time.Millisecond)

func days(n int) []int64 {
	ts := make([]int64, n)
	start := time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	for i := range ts {
		ts[i] = start + int64(i)*day
	}
	return ts
}

func makeSeries(t *testing.T, lines ...[]int64) *Series {
	t.Helper()
	if len(lines) == 0 {
		t.Fatalf("need at least one line")
	}
	ls := make([]Line, len(lines))
	for i, values := range lines {
		ls[i] = Line{
			ID:     "y" + string(rune('0'+i)),
			Label:  "#" + string(rune('0'+i)),
			Color:  DefaultLineColors[i%len(DefaultLineColors)],
			Values: values,
		}
	}
	s, err := NewSeries("x", days(len(lines[0])), ls)
	if err != nil {
		t.Fatalf("failed building series: %v", err)
	}
	return s
}

func ramp(n int) []int64 {
	values := make([]int64, n)
	for i := range values {
		values[i] = int64(i)
	}
	return values
}

// fixedWidth measures every label with the same width.
func fixedWidth(w float64) Measurer {
	return MeasurerFunc(func(string) float64 { return w })
}

// drain collects every pending session event.
func drain(s *Session) []Event {
	var out []Event
	for {
		ev, ok := s.Event()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}
