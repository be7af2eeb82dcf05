package backend

import (
	"errors"
	"fmt"
	"io"

	"git.sr.ht/~whereswaldon/timechart/chart"
)

// Dataset is the decoded content of one chart file.
type Dataset struct {
	Name   string
	Charts []*chart.Series
}

// Initialized reports whether the dataset holds at least one chart.
func (d Dataset) Initialized() bool {
	return len(d.Charts) > 0
}

// ReadDataset decodes a chart file. Charts that fail validation are skipped
// and reported together in the returned error; the remaining charts are
// still returned.
func ReadDataset(name string, r io.Reader) (Dataset, error) {
	charts, err := Decode(r)
	if err != nil {
		return Dataset{Name: name}, err
	}
	ds := Dataset{Name: name}
	var errs []error
	for i, c := range charts {
		s, err := c.Series()
		if err != nil {
			errs = append(errs, fmt.Errorf("chart %d: %w", i, err))
			continue
		}
		ds.Charts = append(ds.Charts, s)
	}
	return ds, errors.Join(errs...)
}
