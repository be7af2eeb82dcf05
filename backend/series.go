package backend

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/timechart/chart"
)

// Column types understood in the "types" map of a chart file.
const (
	TypeX    = "x"
	TypeLine = "line"
)

var (
	ErrNoAbscissa    = errors.New("chart has no x column")
	ErrBadColumn     = errors.New("malformed column")
	ErrUnknownType   = errors.New("unknown column type")
	ErrBadColor      = errors.New("malformed color")
	ErrDuplicateName = errors.New("duplicate column")
)

// Column is one named column of a chart file. On the wire it is an array
// whose first element is the column id followed by its integer values.
type Column struct {
	ID     string
	Values []int64
}

func (c Column) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	id, err := json.Marshal(c.ID)
	if err != nil {
		return nil, err
	}
	buf.Write(id)
	for _, v := range c.Values {
		buf.WriteByte(',')
		buf.WriteString(strconv.FormatInt(v, 10))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (c *Column) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadColumn, err)
	}
	if len(raw) < 1 {
		return fmt.Errorf("%w: empty", ErrBadColumn)
	}
	if err := json.Unmarshal(raw[0], &c.ID); err != nil {
		return fmt.Errorf("%w: id: %v", ErrBadColumn, err)
	}
	c.Values = make([]int64, len(raw)-1)
	for i, r := range raw[1:] {
		v, err := parseValue(r)
		if err != nil {
			return fmt.Errorf("%w: %q[%d]: %v", ErrBadColumn, c.ID, i, err)
		}
		c.Values[i] = v
	}
	return nil
}

// parseValue accepts integers as well as floats with no fractional part,
// which some exporters emit for large timestamps.
func parseValue(r json.RawMessage) (int64, error) {
	s := string(bytes.TrimSpace(r))
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("%s is not an integer", s)
	}
	return int64(f), nil
}

// Chart is one chart of a chart file.
type Chart struct {
	Columns []Column          `json:"columns"`
	Types   map[string]string `json:"types"`
	Names   map[string]string `json:"names"`
	Colors  map[string]string `json:"colors"`
}

// Decode reads a chart file. The file holds either a single chart object or
// an array of them.
func Decode(r io.Reader) ([]Chart, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("failed reading chart file: %w", err)
	}
	dec := json.NewDecoder(br)
	if first == '[' {
		var charts []Chart
		if err := dec.Decode(&charts); err != nil {
			return nil, fmt.Errorf("failed decoding charts: %w", err)
		}
		return charts, nil
	}
	var c Chart
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed decoding chart: %w", err)
	}
	return []Chart{c}, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// Encode writes charts as a chart file array.
func Encode(w io.Writer, charts []Chart) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(charts); err != nil {
		return fmt.Errorf("failed encoding charts: %w", err)
	}
	return nil
}

// Series validates the chart and converts it into an immutable series. Line
// colors missing from the file are assigned from the default palette.
func (c Chart) Series() (*chart.Series, error) {
	var (
		xID      string
		abscissa []int64
		lines    []chart.Line
		seen     = map[string]bool{}
	)
	for _, col := range c.Columns {
		if seen[col.ID] {
			return nil, fmt.Errorf("%q: %w", col.ID, ErrDuplicateName)
		}
		seen[col.ID] = true
		switch kind := c.Types[col.ID]; kind {
		case TypeX:
			if abscissa != nil {
				return nil, fmt.Errorf("second x column %q: %w", col.ID, ErrDuplicateName)
			}
			xID, abscissa = col.ID, col.Values
		case TypeLine:
			name := c.Names[col.ID]
			if name == "" {
				name = col.ID
			}
			line := chart.Line{
				ID:     col.ID,
				Label:  name,
				Color:  chart.DefaultLineColors[len(lines)%len(chart.DefaultLineColors)],
				Values: col.Values,
			}
			if hex, ok := c.Colors[col.ID]; ok {
				clr, err := ParseHexColor(hex)
				if err != nil {
					return nil, fmt.Errorf("color of %q: %w", col.ID, err)
				}
				line.Color = clr
			}
			lines = append(lines, line)
		default:
			return nil, fmt.Errorf("column %q has type %q: %w", col.ID, kind, ErrUnknownType)
		}
	}
	if abscissa == nil {
		return nil, ErrNoAbscissa
	}
	return chart.NewSeries(xID, abscissa, lines)
}

// ParseHexColor parses #rgb, #rrggbb and #rrggbbaa colors.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatHexColor renders c as #rrggbb, or #rrggbbaa when it is translucent.
func FormatHexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// NewChart builds a chart file entry from a series.
func NewChart(s *chart.Series) Chart {
	c := Chart{
		Types:  map[string]string{s.XID(): TypeX},
		Names:  map[string]string{},
		Colors: map[string]string{},
	}
	abscissa := make([]int64, s.Len())
	for i := range abscissa {
		abscissa[i] = s.Timestamp(i)
	}
	c.Columns = append(c.Columns, Column{ID: s.XID(), Values: abscissa})
	for _, l := range s.Lines() {
		c.Columns = append(c.Columns, Column{ID: l.ID, Values: l.Values})
		c.Types[l.ID] = TypeLine
		c.Names[l.ID] = l.Label
		c.Colors[l.ID] = FormatHexColor(l.Color)
	}
	return c
}
