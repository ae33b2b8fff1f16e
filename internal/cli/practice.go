package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/practice"
	"github.com/slacklinehq/slackline/pkg/project"
)

// practiceOpts holds the command-line flags for the practice command.
type practiceOpts struct {
	submitURL string
	overrides []string
}

// practiceCommand creates the practice command for checking hand-computed
// schedules against the engine.
func (c *CLI) practiceCommand() *cobra.Command {
	var opts practiceOpts

	cmd := &cobra.Command{
		Use:   "practice [project] [answers]",
		Short: "Check hand-computed ES/EF/LS/LF answers against the engine",
		Long: `Practice loads a project and a TOML answers file, computes the reference
schedule, and reports every field where the answers disagree. Blank fields in
the answers file are skipped, so partial attempts can be checked too.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPractice(cmd, args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.submitURL, "submit", "", "POST the result report to this URL (overrides config)")
	cmd.Flags().StringArrayVar(&opts.overrides, "override", nil, "minimum start constraint, id=start (repeatable)")

	return cmd
}

func (c *CLI) runPractice(cmd *cobra.Command, projectPath, answersPath string, opts *practiceOpts) error {
	logger := loggerFromContext(cmd.Context())

	p, err := project.Load(projectPath)
	if err != nil {
		return err
	}
	answers, err := practice.LoadAnswers(answersPath)
	if err != nil {
		return err
	}

	overrides, err := parseOverrides(opts.overrides)
	if err != nil {
		return err
	}

	sched := cpm.Compute(p.Tasks, overrides)
	mismatches := practice.Check(sched, answers)

	report := practice.BuildReport(p, sched, answers, mismatches, overrides)
	fmt.Print(report.FormatText())

	if len(mismatches) == 0 {
		printSuccess("all %d answers match", len(answers))
	} else {
		printError("%d mismatch(es) in %d answers", len(mismatches), len(answers))
	}

	submitURL := opts.submitURL
	if submitURL == "" {
		if cfg, err := LoadConfig(""); err == nil {
			submitURL = cfg.Practice.SubmitURL
		}
	}
	if submitURL != "" {
		// Fire-and-forget: a submission failure is logged, not fatal.
		if err := practice.Submit(cmd.Context(), submitURL, report); err != nil {
			logger.Warnf("submit report: %v", err)
		} else {
			printInfo("report submitted to %s", submitURL)
		}
	}
	return nil
}
