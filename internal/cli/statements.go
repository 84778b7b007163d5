package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Problem statement commands",
	}

	cmd.AddCommand(newStatementsListCmd())
	cmd.AddCommand(newStatementsLockCmd())

	return cmd
}

func newStatementsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List problem statements with live occupancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StatementList

			if err := client.Get("/api/v1/problem-statements", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatementsLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock <statement-id>",
		Short: "Acquire a time-limited lock on a problem statement",
		Long: `Acquire a time-limited lock on a problem statement.

The returned token is needed to register a team for that statement.
It expires after a few minutes and reserves nothing: the slot is only
held once the team registration goes through.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LockResult

			path := fmt.Sprintf("/api/v1/problem-statements/%s/lock", args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
