package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"team-project-backend/internal/core/domain/report"
	"team-project-backend/internal/core/ports"

	"github.com/urfave/cli/v2"
)

// ErrInvalid is returned by validate when a report has structural errors.
var ErrInvalid = errors.New("report is invalid")

// DefaultReportPath is where the chart editor's export is expected.
const DefaultReportPath = "./report.json"

// RendererFactory builds the renderer for the show command.
type RendererFactory func(outDir string, openBrowser bool) ports.ChartRenderer

// NewApp assembles the chartview command line.
func NewApp(newRenderer RendererFactory, logger *slog.Logger) *cli.App {
	return &cli.App{
		Name:  "chartview",
		Usage: "Display the charts of an exported report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "report `FILE` exported by the chart editor",
				Value:   DefaultReportPath,
				EnvVars: []string{"CHARTVIEW_FILE"},
			},
		},
		Commands: []*cli.Command{
			showCommand(newRenderer, logger),
			listCommand(),
			validateCommand(),
		},
		DefaultCommand: "show",
	}
}

func showCommand(newRenderer RendererFactory, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Open every chart of the report in the browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "write chart pages to `DIR` instead of a temporary directory",
			},
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "only write the chart pages",
			},
		},
		Action: func(c *cli.Context) error {
			charts, err := report.Load(c.String("file"))
			if err != nil {
				return err
			}
			if len(charts) == 0 {
				fmt.Fprintln(c.App.Writer, "report contains no charts")
				return nil
			}

			outDir := c.String("out")
			if outDir == "" {
				outDir, err = os.MkdirTemp("", "chartview-*")
				if err != nil {
					return fmt.Errorf("create temp dir: %w", err)
				}
			}

			renderer := newRenderer(outDir, !c.Bool("no-browser"))
			for i, chart := range charts {
				path, err := renderer.Show(c.Context, i, chart)
				if err != nil {
					return err
				}
				logger.Debug("chart shown", "index", i, "path", path)
				fmt.Fprintf(c.App.Writer, "%s -> %s\n", chart.Title(i), path)
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the charts of the report",
		Action: func(c *cli.Context) error {
			charts, err := report.Load(c.String("file"))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTITLE\tTRACES")
			for i, chart := range charts {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, chart.Title(i), kindsLabel(chart.Kinds()))
			}
			return tw.Flush()
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check the report structure and whether each chart kind suits its data",
		Action: func(c *cli.Context) error {
			charts, err := report.Load(c.String("file"))
			if err != nil {
				return err
			}

			issues := report.Validate(charts)
			for _, issue := range issues {
				fmt.Fprintln(c.App.Writer, issue.String())
			}
			if report.HasErrors(issues) {
				return fmt.Errorf("%s: %w", c.String("file"), ErrInvalid)
			}
			fmt.Fprintf(c.App.Writer, "%d chart(s) OK\n", len(charts))
			return nil
		},
	}
}

func kindsLabel(kinds []report.Kind) string {
	if len(kinds) == 0 {
		return "-"
	}
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = string(k)
	}
	return strings.Join(s, ", ")
}
