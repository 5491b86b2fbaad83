package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply for a job",
	Args:  cobra.ExactArgs(1),
	Example: `  hireboard apply 7 --resume-url https://example.com/cv.pdf
  hireboard apply 7 --resume-url https://example.com/cv.pdf --cover-letter "Hello"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		jobID, err := parseID(args[0], "job ID")
		if err != nil {
			return err
		}
		if _, err := a.RequireSession(cmd.Context()); err != nil {
			return err
		}

		resumeURL, _ := cmd.Flags().GetString("resume-url")
		coverLetter, _ := cmd.Flags().GetString("cover-letter")

		app, err := a.Applications.Submit(cmd.Context(), jobID, coverLetter, resumeURL)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Applied to job %d (application #%d, %s)\n", jobID, app.ID, statusLabel(app.Status))
		return nil
	},
}

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Your job applications",
}

var listApplicationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		s, err := a.RequireSession(cmd.Context())
		if err != nil {
			return err
		}

		apps, err := a.Applications.ListForApplicant(cmd.Context())
		if err != nil {
			return err
		}
		if len(apps) == 0 {
			fmt.Println("No applications yet. Apply to jobs with 'hireboard apply <job-id>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Your Applications"))
		for _, app := range apps {
			printApplication(app, a.Config.Variant(), s.User.Role())
		}
		fmt.Printf("\n%s %d\n", labelStyle.Render("Total Applications:"), len(apps))
		return nil
	},
}

var checkApplicationCmd = &cobra.Command{
	Use:   "check <job-id>",
	Short: "Check whether you applied for a job",
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

		var applied bool
		if local, _ := cmd.Flags().GetBool("from-list"); local {
			applied = a.Applications.HasApplied(cmd.Context(), s.User.ID, jobID)
		} else if applied, err = a.Applications.CheckApplied(cmd.Context(), jobID); err != nil {
			return err
		}

		if applied {
			fmt.Printf("✓ You have applied for job %d\n", jobID)
		} else {
			fmt.Printf("You have not applied for job %d\n", jobID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(applicationsCmd)
	applicationsCmd.AddCommand(listApplicationsCmd)
	applicationsCmd.AddCommand(checkApplicationCmd)

	applyCmd.Flags().String("resume-url", "", "Link to your resume (required)")
	applyCmd.Flags().String("cover-letter", "", "Cover letter text")

	checkApplicationCmd.Flags().Bool("from-list", false, "Answer from your application list instead of asking the server")
}
