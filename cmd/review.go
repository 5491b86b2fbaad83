package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review applications to jobs you posted",
	Long:  "Employers list the applications to their jobs and move them through the hiring workflow",
}

var reviewListCmd = &cobra.Command{
	Use:   "list <job-id>",
	Short: "List the applications for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		jobID, err := parseID(args[0], "job ID")
		if err != nil {
			return err
		}
		s, err := a.RequireSession(cmd.Context())
		if err != nil {
			return err
		}

		apps, err := a.Applications.ListForJob(cmd.Context(), jobID)
		if err != nil {
			return err
		}
		if len(apps) == 0 {
			fmt.Printf("No applications for job %d yet\n", jobID)
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Applications for job %d", jobID)))
		for _, app := range apps {
			printApplication(app, a.Config.Variant(), s.User.Role())
		}
		return nil
	},
}

var reviewSetCmd = &cobra.Command{
	Use:   "set <application-id> <status>",
	Short: "Move an application to a new status",
	Args:  cobra.ExactArgs(2),
	Example: `  hireboard review list 7
  hireboard review set 12 under_review
  hireboard review set 12 "interview scheduled"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		appID, err := parseID(args[0], "application ID")
		if err != nil {
			return err
		}
		target, err := workflow.Normalize(args[1])
		if err != nil {
			return fmt.Errorf("%w; known statuses: %s", err, knownStatuses())
		}
		if _, err := a.RequireSession(cmd.Context()); err != nil {
			return err
		}

		updated, err := a.Applications.Transition(cmd.Context(), appID, target)
		if err != nil {
			var terr *workflow.TransitionError
			if errors.As(err, &terr) && terr.Kind == workflow.KindNotFound {
				return fmt.Errorf("%w (run 'hireboard review list <job-id>')", err)
			}
			return err
		}
		fmt.Printf("✓ Application #%d is now %s\n", updated.ID, statusLabel(updated.Status))
		return nil
	},
}

var reviewNextCmd = &cobra.Command{
	Use:   "next <job-id>",
	Short: "Show the actions available for each application of a job",
	Long:  "Uses the list fetched by the last 'review list' and makes no request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		jobID, err := parseID(args[0], "job ID")
		if err != nil {
			return err
		}
		s, err := a.RequireSession(cmd.Context())
		if err != nil {
			return err
		}

		apps, err := a.Applications.CachedForJob(cmd.Context(), jobID)
		if err != nil {
			return err
		}
		if len(apps) == 0 {
			fmt.Printf("Nothing cached for job %d. Run 'hireboard review list %d' first\n", jobID, jobID)
			return nil
		}

		for _, app := range apps {
			next := actionsFor(a.Config.Variant(), s.User.Role(), app.Status)
			if len(next) == 0 {
				fmt.Printf("  #%d %s %s\n", app.ID, statusLabel(app.Status), mutedStyle.Render("(final)"))
				continue
			}
			labels := make([]string, len(next))
			for i, st := range next {
				labels[i] = statusLabel(st)
			}
			fmt.Printf("  #%d %s → %s\n", app.ID, statusLabel(app.Status), strings.Join(labels, " | "))
		}
		return nil
	},
}

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Answer a job offer",
}

func offerResponse(accept bool) *cobra.Command {
	use, short := "decline", "Decline an extended offer"
	if accept {
		use, short = "accept", "Accept an extended offer"
	}
	return &cobra.Command{
		Use:   use + " <application-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			appID, err := parseID(args[0], "application ID")
			if err != nil {
				return err
			}
			if _, err := a.RequireSession(cmd.Context()); err != nil {
				return err
			}

			updated, err := a.Applications.RespondToOffer(cmd.Context(), appID, accept)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Application #%d is now %s\n", updated.ID, statusLabel(updated.Status))
			return nil
		},
	}
}

func knownStatuses() string {
	var names []string
	for _, s := range workflow.Statuses() {
		if !workflow.IsLegacy(s) {
			names = append(names, string(s))
		}
	}
	return strings.Join(names, ", ")
}

// statuses an employer may type, for shell completion
func employerTargets() []string {
	var out []string
	for _, s := range workflow.Statuses() {
		if s != models.StatusPending && !workflow.IsLegacy(s) &&
			workflow.Authorize(models.RoleEmployer, models.StatusOfferExtended, s) == nil {
			out = append(out, string(s))
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewSetCmd)
	reviewCmd.AddCommand(reviewNextCmd)

	rootCmd.AddCommand(offerCmd)
	offerCmd.AddCommand(offerResponse(true))
	offerCmd.AddCommand(offerResponse(false))

	reviewSetCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return employerTargets(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
