package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/project"
	"github.com/slacklinehq/slackline/pkg/store"
)

// projectsCommand creates the projects command group for the saved-project
// library.
func (c *CLI) projectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the saved project library",
	}

	cmd.AddCommand(c.projectsListCommand())
	cmd.AddCommand(c.projectsAddCommand())
	cmd.AddCommand(c.projectsShowCommand())
	cmd.AddCommand(c.projectsRemoveCommand())

	return cmd
}

// openStore opens the configured project store for a command invocation.
func openStore(ctx context.Context) (store.Store, error) {
	cfg, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	switch cfg.Store.Backend {
	case "mongo":
		return store.NewMongoStore(ctx, cfg.Store.Mongo)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewFileStore(cfg.Store.Dir)
	}
}

func (c *CLI) projectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			projects, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				printInfo("no saved projects")
				printNextStep("Save one", "slackline projects add project.toml")
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				sched := cpm.Compute(p.Tasks, nil)
				rows = append(rows, []string{
					p.ID,
					p.Name,
					strconv.Itoa(len(p.Tasks)),
					formatTime(sched.Duration),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Name", "Tasks", "Duration").
				Rows(rows...)
			fmt.Println(t.Render())
			return nil
		},
	}
}

func (c *CLI) projectsAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Save a project file to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				p.Name = name
			}
			if err := p.Validate(); err != nil {
				return err
			}

			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			if err := s.Put(cmd.Context(), p); err != nil {
				return err
			}
			printSuccess("saved %s as %s", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "override the project name")
	return cmd
}

func (c *CLI) projectsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a saved project's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			p, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(p.Name))
			printSchedule(p, cpm.Compute(p.Tasks, nil))
			return nil
		},
	}
}

func (c *CLI) projectsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("removed %s", args[0])
			return nil
		},
	}
}
