package plotly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"team-project-backend/internal/core/domain/report"
	"team-project-backend/internal/core/ports"
)

// DefaultScriptURL is the Plotly bundle each page loads.
const DefaultScriptURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var pageTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>{{.Title}}</title>
<script src="{{.ScriptURL}}" charset="utf-8"></script>
</head>
<body style="margin:0">
<div id="chart" style="width:100vw;height:100vh;"></div>
<script>
var figure = {{.Figure}};
Plotly.newPlot("chart", figure.data || [], figure.layout || {}, {responsive: true});
</script>
</body>
</html>
`))

type page struct {
	Title     string
	ScriptURL string
	Figure    template.JS
}

// Renderer writes one standalone HTML page per chart and optionally opens it.
type Renderer struct {
	dir       string
	scriptURL string
	opener    ports.BrowserOpener
	logger    *slog.Logger
}

var _ ports.ChartRenderer = (*Renderer)(nil)

// NewRenderer writes pages into dir. A nil opener only writes the files.
func NewRenderer(dir string, opener ports.BrowserOpener, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, scriptURL: DefaultScriptURL, opener: opener, logger: logger}
}

// Show writes the chart page and hands it to the browser.
func (r *Renderer) Show(ctx context.Context, index int, chart report.Chart) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := r.Page(index, chart)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.dir, fmt.Sprintf("chart-%02d.html", index+1))
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", fmt.Errorf("write chart page: %w", err)
	}
	r.logger.DebugContext(ctx, "chart page written", "index", index, "path", path)

	if r.opener != nil {
		if err := r.opener.Open(path); err != nil {
			return path, fmt.Errorf("open %s: %w", path, err)
		}
	}
	return path, nil
}

// Page renders the HTML document for one chart.
func (r *Renderer) Page(index int, chart report.Chart) ([]byte, error) {
	var figure bytes.Buffer
	// HTMLEscape keeps "</script>" inside string values from closing the tag.
	json.HTMLEscape(&figure, chart.Raw)
	if figure.Len() == 0 {
		figure.WriteString("{}")
	}

	var out bytes.Buffer
	err := pageTemplate.Execute(&out, page{
		Title:     chart.Title(index),
		ScriptURL: r.scriptURL,
		Figure:    template.JS(figure.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render chart %d: %w", index+1, err)
	}
	return out.Bytes(), nil
}
