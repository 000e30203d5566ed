package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInvalidReport is returned when a report file does not hold a list of charts.
var ErrInvalidReport = errors.New("invalid report")

// Kind is the chart kind as offered by the chart editor.
type Kind string

const (
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
	KindLine    Kind = "line"
)

// Trace is the subset of a Plotly trace the viewer inspects.
type Trace struct {
	Type   string `json:"type" validate:"required,oneof=bar pie scatter"`
	Mode   string `json:"mode,omitempty" validate:"omitempty,oneof=markers lines lines+markers"`
	Name   string `json:"name,omitempty"`
	X      []any  `json:"x,omitempty"`
	Y      []any  `json:"y,omitempty"`
	Labels []any  `json:"labels,omitempty"`
	Values []any  `json:"values,omitempty"`
}

// Kind maps the Plotly type and mode back to the editor's chart kind.
func (t Trace) Kind() Kind {
	if t.Type == "scatter" && strings.Contains(t.Mode, "lines") {
		return KindLine
	}
	return Kind(t.Type)
}

// Series returns the two value columns the trace plots.
func (t Trace) Series() (x, y []any) {
	if t.Type == "pie" {
		return t.Labels, t.Values
	}
	return t.X, t.Y
}

// Title accepts both Plotly title forms: "text" and {"text": "..."}.
type Title struct {
	Text string `json:"text,omitempty"`
}

func (t *Title) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Text = s
		return nil
	}
	type plain Title
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Title(p)
	return nil
}

type Layout struct {
	Title Title `json:"title"`
}

// Chart is one exported figure. Raw holds the element exactly as read so the
// renderer can hand the untouched figure to Plotly.
type Chart struct {
	Data   []Trace         `json:"data" validate:"required,min=1,dive"`
	Layout Layout          `json:"layout"`
	Raw    json.RawMessage `json:"-"`
}

func (c *Chart) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: chart must be a JSON object", ErrInvalidReport)
	}
	type plain Chart
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*c = Chart(p)
	c.Raw = make(json.RawMessage, len(trimmed))
	copy(c.Raw, trimmed)
	return nil
}

// Title returns the layout title or a positional fallback.
func (c Chart) Title(index int) string {
	if c.Layout.Title.Text != "" {
		return c.Layout.Title.Text
	}
	return fmt.Sprintf("Chart %d", index+1)
}

// Kinds lists the kinds of every trace in order.
func (c Chart) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.Data))
	for _, t := range c.Data {
		kinds = append(kinds, t.Kind())
	}
	return kinds
}

// Parse reads a report: a JSON array of chart objects.
func Parse(r io.Reader) ([]Chart, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: report must be a JSON array of charts", ErrInvalidReport)
	}

	var charts []Chart
	if err := json.Unmarshal(raw, &charts); err != nil {
		if errors.Is(err, ErrInvalidReport) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	return charts, nil
}

// Load opens path and parses it as a report.
func Load(path string) ([]Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	charts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return charts, nil
}
