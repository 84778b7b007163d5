package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team registration commands",
	}

	cmd.AddCommand(newTeamRegisterCmd())
	cmd.AddCommand(newTeamGetCmd())
	cmd.AddCommand(newTeamMembersCmd())
	cmd.AddCommand(newTeamSubmitCmd())
	cmd.AddCommand(newTeamSubmissionCmd())

	return cmd
}

// parseMembers converts repeated "Name:email" flags into request members
func parseMembers(raw []string) ([]map[string]string, error) {
	members := make([]map[string]string, 0, len(raw))
	for _, m := range raw {
		name, email, ok := strings.Cut(m, ":")
		if !ok || name == "" || email == "" {
			return nil, fmt.Errorf("invalid member %q: expected Name:email", m)
		}
		members = append(members, map[string]string{
			"name":  strings.TrimSpace(name),
			"email": strings.TrimSpace(email),
		})
	}
	return members, nil
}

func newTeamRegisterCmd() *cobra.Command {
	var name, college, statementID, lockToken string
	var members []string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a team using a lock token",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseMembers(members)
			if err != nil {
				return err
			}

			req := map[string]any{
				"name":                 name,
				"college":              college,
				"members":              parsed,
				"problem_statement_id": statementID,
				"lock_token":           lockToken,
			}
			var result Team

			if err := client.Post("/api/v1/teams", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name (required)")
	cmd.Flags().StringVar(&college, "college", "", "College name (required)")
	cmd.Flags().StringVar(&statementID, "statement", "", "Problem statement ID (required)")
	cmd.Flags().StringVar(&lockToken, "lock-token", "", "Lock token from 'statements lock' (required)")
	cmd.Flags().StringSliceVar(&members, "member", nil, "Team member as Name:email (repeatable, 2-4 required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("college")
	_ = cmd.MarkFlagRequired("statement")
	_ = cmd.MarkFlagRequired("lock-token")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func newTeamGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show your registered team",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Team

			if err := client.Get("/api/v1/teams/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTeamMembersCmd() *cobra.Command {
	var members []string

	cmd := &cobra.Command{
		Use:   "members",
		Short: "Replace your team's member roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseMembers(members)
			if err != nil {
				return err
			}

			req := map[string]any{"members": parsed}
			var result Team

			if err := client.Patch("/api/v1/teams/me/members", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&members, "member", nil, "Team member as Name:email (repeatable, 2-4 required)")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func newTeamSubmitCmd() *cobra.Command {
	var title, deckURL string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Create or replace your team's pitch deck submission",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"title":    title,
				"deck_url": deckURL,
			}
			var result Submission

			if err := client.Put("/api/v1/teams/me/submission", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Submission title (required)")
	cmd.Flags().StringVar(&deckURL, "deck", "", "HTTPS link to the pitch deck (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("deck")

	return cmd
}

func newTeamSubmissionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submission",
		Short: "Show your team's current submission",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Submission

			if err := client.Get("/api/v1/teams/me/submission", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
