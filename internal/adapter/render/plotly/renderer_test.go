package plotly

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"team-project-backend/internal/core/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(path string) error {
	return m.Called(path).Error(0)
}

func parseChart(t *testing.T, raw string) report.Chart {
	t.Helper()
	charts, err := report.Parse(strings.NewReader("[" + raw + "]"))
	require.NoError(t, err)
	require.Len(t, charts, 1)
	return charts[0]
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRenderer_Show(t *testing.T) {
	chart := parseChart(t, `{"layout": {"title": "Sales"}, "data": [{"type": "bar", "x": ["a"], "y": [1]}]}`)

	t.Run("writes and opens the page", func(t *testing.T) {
		dir := t.TempDir()
		opener := new(MockOpener)
		want := filepath.Join(dir, "chart-03.html")
		opener.On("Open", want).Return(nil).Once()

		r := NewRenderer(dir, opener, discard)
		path, err := r.Show(context.Background(), 2, chart)
		require.NoError(t, err)
		assert.Equal(t, want, path)

		html, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(html), "<title>Sales</title>")
		assert.Contains(t, string(html), DefaultScriptURL)
		assert.Contains(t, string(html), `"type": "bar"`)
		opener.AssertExpectations(t)
	})

	t.Run("no opener only writes", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		r := NewRenderer(dir, nil, discard)

		path, err := r.Show(context.Background(), 0, chart)
		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("opener failure keeps the path", func(t *testing.T) {
		dir := t.TempDir()
		opener := new(MockOpener)
		opener.On("Open", mock.Anything).Return(errors.New("no display")).Once()

		r := NewRenderer(dir, opener, discard)
		path, err := r.Show(context.Background(), 0, chart)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no display")
		assert.Equal(t, filepath.Join(dir, "chart-01.html"), path)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := NewRenderer(t.TempDir(), nil, discard)
		_, err := r.Show(ctx, 0, chart)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRenderer_Page_EscapesScriptContent(t *testing.T) {
	chart := parseChart(t, `{"layout": {"title": "</script><script>alert(1)</script>"}, "data": [{"type": "pie", "labels": ["<b>"], "values": [1]}]}`)

	html, err := NewRenderer(t.TempDir(), nil, discard).Page(0, chart)
	require.NoError(t, err)

	page := string(html)
	assert.Equal(t, 2, strings.Count(page, "</script>"), "only the two real script tags may close")
	assert.Contains(t, page, `</script>`)
	assert.NotContains(t, page, "<title></script>")
}

func TestSystemBrowser_Open(t *testing.T) {
	t.Run("hands the path to the opener", func(t *testing.T) {
		var got []string
		b := &SystemBrowser{open: func(path string) error {
			got = append(got, path)
			return nil
		}}

		require.NoError(t, b.Open("/tmp/x.html"))
		assert.Equal(t, []string{"/tmp/x.html"}, got)
	})

	t.Run("opener failure", func(t *testing.T) {
		b := &SystemBrowser{open: func(string) error { return errors.New("xdg-open: not found") }}
		assert.EqualError(t, b.Open("/tmp/x.html"), "xdg-open: not found")
	})

	t.Run("defaults to the system opener", func(t *testing.T) {
		assert.NotNil(t, NewSystemBrowser().open)
	})
}

func TestRenderer_WithSystemBrowser(t *testing.T) {
	var opened string
	b := &SystemBrowser{open: func(path string) error {
		opened = path
		return nil
	}}
	chart := parseChart(t, `{"data": [{"type": "pie", "labels": ["a"], "values": [1]}]}`)

	path, err := NewRenderer(t.TempDir(), b, discard).Show(context.Background(), 0, chart)
	require.NoError(t, err)
	assert.Equal(t, path, opened)
}
