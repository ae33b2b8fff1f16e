package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/project"
	"github.com/slacklinehq/slackline/pkg/render/gantt"
	"github.com/slacklinehq/slackline/pkg/render/network"
)

const (
	vizGantt   = "gantt"   // bar chart with slack whiskers
	vizNetwork = "network" // node-link precedence diagram
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string
	vizType   string
	format    string
	overrides []string
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		vizType: vizGantt,
		format:  "svg",
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a project schedule as a Gantt chart or network diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateViz(opts.vizType, opts.format); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "diagram type: gantt (default), network")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().StringArrayVar(&opts.overrides, "override", nil, "minimum start constraint, id=start (repeatable)")

	return cmd
}

// validateViz checks the type/format combination. The Gantt renderer is
// SVG-only; the network renderer also does DOT source and PNG via Graphviz.
func validateViz(vizType, format string) error {
	switch vizType {
	case vizGantt:
		if format != "svg" {
			return errors.New(errors.ErrCodeUnsupported, "gantt supports only svg, got %s", format)
		}
	case vizNetwork:
		if format != "svg" && format != "png" && format != "dot" {
			return errors.New(errors.ErrCodeUnsupported, "network supports svg, png or dot, got %s", format)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown diagram type: %s", vizType)
	}
	return nil
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	p, err := project.Load(input)
	if err != nil {
		return err
	}
	overrides, err := parseOverrides(opts.overrides)
	if err != nil {
		return err
	}
	sched := cpm.Compute(p.Tasks, overrides)

	logger.Infof("Rendering %s %s", opts.vizType, opts.format)
	data, err := renderDiagram(p, sched, opts.vizType, opts.format)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write %s", path)
	}
	printFile(path)
	return nil
}

// renderDiagram dispatches to the renderer for the requested type/format.
func renderDiagram(p *project.Project, sched *cpm.Schedule, vizType, format string) ([]byte, error) {
	if vizType == vizGantt {
		return gantt.RenderSVG(p, sched), nil
	}

	dot := network.ToDOT(p, sched)
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return network.RenderSVG(dot)
	case "png":
		return network.RenderPNG(dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown format: %s", format)
}

// outputPath derives the output file path. An explicit output wins; otherwise
// the input name is reused with the format's extension.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s.%s", base, format)
}
