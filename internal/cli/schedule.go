package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/project"
)

// scheduleOpts holds the command-line flags for the schedule command.
type scheduleOpts struct {
	output    string   // write schedule JSON here instead of the table
	overrides []string // repeated "id=start" minimum-start constraints
}

// scheduleCommand creates the schedule command.
func (c *CLI) scheduleCommand() *cobra.Command {
	var opts scheduleOpts

	cmd := &cobra.Command{
		Use:   "schedule [file]",
		Short: "Compute the critical path schedule for a task network",
		Long: `Schedule loads a project from a TOML manifest or JSON file, runs the
forward and backward pass, and prints per-task ES/EF/LS/LF, slack and the
critical path. Minimum start constraints can be injected with --override.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSchedule(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write schedule as JSON to file ('-' for stdout)")
	cmd.Flags().StringArrayVar(&opts.overrides, "override", nil, "minimum start constraint, id=start (repeatable)")

	return cmd
}

func (c *CLI) runSchedule(cmd *cobra.Command, input string, opts *scheduleOpts) error {
	logger := loggerFromContext(cmd.Context())

	p, err := project.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d tasks", p.Name, len(p.Tasks))

	overrides, err := parseOverrides(opts.overrides)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	sched := cpm.Compute(p.Tasks, overrides)
	prog.done(fmt.Sprintf("Scheduled %d tasks", len(sched.Order)))

	if opts.output != "" {
		return writeScheduleJSON(sched, opts.output)
	}

	fmt.Println(StyleTitle.Render(p.Name))
	printSchedule(p, sched)
	printNextStep("Explore drags interactively", "slackline tui "+input)
	return nil
}

// parseOverrides parses repeated "id=start" flags into a minimum-start map.
func parseOverrides(specs []string) (map[string]float64, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(specs))
	for _, spec := range specs {
		id, val, ok := strings.Cut(spec, "=")
		if !ok || id == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid override %q (want id=start)", spec)
		}
		start, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid override start %q: not a number", val)
		}
		if start < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid override %q: start must be >= 0", spec)
		}
		out[id] = start
	}
	return out, nil
}

// writeScheduleJSON writes the schedule as indented JSON to path, or to
// stdout when path is "-".
func writeScheduleJSON(sched *cpm.Schedule, path string) error {
	data, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode schedule")
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write %s", path)
	}
	printFile(path)
	return nil
}
