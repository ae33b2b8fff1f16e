package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/project"
)

// dragOpts holds the command-line flags for the drag command.
type dragOpts struct {
	output    string
	overrides []string
}

// dragCommand creates the drag command for what-if exploration.
func (c *CLI) dragCommand() *cobra.Command {
	var opts dragOpts

	cmd := &cobra.Command{
		Use:   "drag [file] [task] [start]",
		Short: "Move a task's start and propagate the ripple effects",
		Long: `Drag sets a new start time for one task, clamped so it never begins
before its predecessors finish, pushes dependent tasks later as needed, and
recomputes the whole schedule under the resulting constraints.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid start %q: not a number", args[2])
			}
			return c.runDrag(cmd, args[0], args[1], start, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write resulting schedule as JSON to file ('-' for stdout)")
	cmd.Flags().StringArrayVar(&opts.overrides, "override", nil, "existing minimum start constraint, id=start (repeatable)")

	return cmd
}

func (c *CLI) runDrag(cmd *cobra.Command, input, taskID string, start float64, opts *dragOpts) error {
	logger := loggerFromContext(cmd.Context())

	p, err := project.Load(input)
	if err != nil {
		return err
	}

	overrides, err := parseOverrides(opts.overrides)
	if err != nil {
		return err
	}

	base := cpm.Compute(p.Tasks, overrides)
	if _, ok := base.ES[taskID]; !ok {
		return errors.New(errors.ErrCodeTaskNotFound, "unknown task: %s", taskID)
	}

	next := cpm.Propagate(taskID, start, base, p.Tasks, overrides)
	sched := cpm.Compute(p.Tasks, next)

	if clamped := next[taskID]; clamped != start {
		logger.Infof("Start clamped to %s (predecessors finish there)", formatTime(clamped))
	}
	for id, floor := range next {
		if _, had := overrides[id]; !had && id != taskID {
			logger.Debugf("Pushed %s to %s", id, formatTime(floor))
		}
	}

	if opts.output != "" {
		return writeScheduleJSON(sched, opts.output)
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s after dragging %s to %s", p.Name, taskID, formatTime(next[taskID]))))
	printSchedule(p, sched)
	if sched.Duration > base.Duration {
		printWarning("project duration grew %s %s %s",
			formatTime(base.Duration), iconArrow, formatTime(sched.Duration))
	}
	return nil
}
