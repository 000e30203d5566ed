package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `[
  {
    "layout": {"title": {"text": "Revenue"}},
    "data": [
      {"type": "bar", "x": ["Q1", "Q2"], "y": [10, 12], "name": "2023", "marker": {"color": "#f00"}, "extra": {"aspect": 1.33}}
    ]
  },
  {
    "layout": {"title": "Share"},
    "data": [{"type": "pie", "labels": ["a", "b"], "values": [1, 2]}]
  },
  {
    "layout": {},
    "data": [
      {"type": "scatter", "mode": "markers", "x": [1, 2], "y": [3, 4]},
      {"type": "scatter", "mode": "lines", "x": [1, 2], "y": [5, 6]}
    ]
  }
]`

func TestParse(t *testing.T) {
	charts, err := Parse(strings.NewReader(sampleReport))
	require.NoError(t, err)
	require.Len(t, charts, 3)

	assert.Equal(t, "Revenue", charts[0].Title(0))
	assert.Equal(t, "Share", charts[1].Title(1))
	assert.Equal(t, "Chart 3", charts[2].Title(2))

	assert.Equal(t, []Kind{KindBar}, charts[0].Kinds())
	assert.Equal(t, []Kind{KindPie}, charts[1].Kinds())
	assert.Equal(t, []Kind{KindScatter, KindLine}, charts[2].Kinds())

	// Raw keeps fields the viewer does not model.
	assert.Contains(t, string(charts[0].Raw), `"marker": {"color": "#f00"}`)
	assert.True(t, strings.HasPrefix(string(charts[0].Raw), "{"))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"not json", `report`},
		{"object instead of array", `{"data": []}`},
		{"scalar element", `[1]`},
		{"null element", `[null]`},
		{"string element", `["chart"]`},
		{"wrong data type", `[{"data": "bar"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReport), "got %v", err)
		})
	}
}

func TestParse_EmptyArray(t *testing.T) {
	charts, err := Parse(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, charts)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "report.json")
		require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o644))

		charts, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, charts, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("invalid content names the file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.True(t, errors.Is(err, ErrInvalidReport))
	})
}

func TestTrace_Series(t *testing.T) {
	pie := Trace{Type: "pie", Labels: []any{"a"}, Values: []any{1.0}, X: []any{"ignored"}}
	x, y := pie.Series()
	assert.Equal(t, []any{"a"}, x)
	assert.Equal(t, []any{1.0}, y)

	bar := Trace{Type: "bar", X: []any{"a"}, Y: []any{2.0}}
	x, y = bar.Series()
	assert.Equal(t, []any{"a"}, x)
	assert.Equal(t, []any{2.0}, y)
}
