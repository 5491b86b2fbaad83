package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hireboard/pkg/models"
)

// input layouts for dates typed on the command line, read in local time
var dateLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04", time.RFC3339, "2006-01-02"}

func parseWhen(value, name string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s %q, use YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", name, value)
}

var reviewOfferCmd = &cobra.Command{
	Use:   "offer <application-id>",
	Short: "Extend an offer to a candidate whose interviews are done",
	Args:  cobra.ExactArgs(1),
	Example: `  hireboard review offer 12 --details "Senior engineer, remote" --salary 95000 --expires 2026-12-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		appID, err := parseID(args[0], "application ID")
		if err != nil {
			return err
		}

		offer := models.Offer{}
		offer.Details, _ = cmd.Flags().GetString("details")
		offer.Salary, _ = cmd.Flags().GetFloat64("salary")
		if expires, _ := cmd.Flags().GetString("expires"); expires != "" {
			t, err := parseWhen(expires, "expiry date")
			if err != nil {
				return err
			}
			// an offer is good through the whole expiry day
			if len(expires) == len("2006-01-02") {
				t = t.Add(24*time.Hour - time.Second)
			}
			offer.ExpiryDate = &t
		}
		if _, err := a.RequireSession(cmd.Context()); err != nil {
			return err
		}

		updated, err := a.Applications.ExtendOffer(cmd.Context(), appID, offer)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Offer extended on application #%d (%s)\n", updated.ID, statusLabel(updated.Status))
		return nil
	},
}

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Schedule and complete interviews",
}

var interviewScheduleCmd = &cobra.Command{
	Use:   "schedule <application-id>",
	Short: "Book an interview for an application",
	Args:  cobra.ExactArgs(1),
	Example: `  hireboard review interview schedule 12 --at "2026-11-02 15:00" --location "Room 4"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		appID, err := parseID(args[0], "application ID")
		if err != nil {
			return err
		}
		at, _ := cmd.Flags().GetString("at")
		when, err := parseWhen(at, "interview time")
		if err != nil {
			return err
		}
		plan := models.InterviewPlan{ApplicationID: appID, ScheduledAt: when}
		plan.Location, _ = cmd.Flags().GetString("location")
		plan.Notes, _ = cmd.Flags().GetString("notes")
		if _, err := a.RequireSession(cmd.Context()); err != nil {
			return err
		}

		iv, err := a.Applications.ScheduleInterview(cmd.Context(), plan)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Interview #%d scheduled for %s\n", iv.ID, iv.ScheduledAt.Local().Format("Mon 2 Jan 2006 15:04"))
		return nil
	},
}

var interviewCompleteCmd = &cobra.Command{
	Use:   "complete <application-id> <interview-id>",
	Short: "Mark an interview as done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		appID, err := parseID(args[0], "application ID")
		if err != nil {
			return err
		}
		interviewID, err := parseID(args[1], "interview ID")
		if err != nil {
			return err
		}
		if _, err := a.RequireSession(cmd.Context()); err != nil {
			return err
		}

		if _, err := a.Applications.CompleteInterview(cmd.Context(), appID, interviewID); err != nil {
			return err
		}
		fmt.Printf("✓ Interview #%d completed, application #%d is now %s\n",
			interviewID, appID, statusLabel(models.StatusInterviewCompleted))
		return nil
	},
}

var interviewsCmd = &cobra.Command{
	Use:   "interviews <application-id>",
	Short: "List the interviews of an application",
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

		interviews, err := a.Applications.Interviews(cmd.Context(), appID)
		if err != nil {
			return err
		}
		if len(interviews) == 0 {
			fmt.Printf("No interviews for application %d\n", appID)
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Interviews for application %d", appID)))
		for _, iv := range interviews {
			fmt.Printf("  • #%d  %s  %s\n", iv.ID,
				valueStyle.Render(iv.ScheduledAt.Local().Format("2006-01-02 15:04")), mutedStyle.Render(string(iv.Status)))
			if iv.Location != "" {
				fmt.Printf("    %s %s\n", labelStyle.Render("Where:"), iv.Location)
			}
			if iv.Notes != "" {
				fmt.Printf("    %s %s\n", labelStyle.Render("Notes:"), iv.Notes)
			}
		}
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewOfferCmd)
	reviewCmd.AddCommand(interviewCmd)
	interviewCmd.AddCommand(interviewScheduleCmd)
	interviewCmd.AddCommand(interviewCompleteCmd)
	rootCmd.AddCommand(interviewsCmd)

	reviewOfferCmd.Flags().String("details", "", "Offer terms shown to the candidate (required)")
	reviewOfferCmd.Flags().Float64("salary", 0, "Offered salary")
	reviewOfferCmd.Flags().String("expires", "", "Last day the offer can be answered (YYYY-MM-DD)")

	interviewScheduleCmd.Flags().String("at", "", "Interview time, e.g. \"2026-11-02 15:00\" (required)")
	interviewScheduleCmd.Flags().String("location", "", "Where the interview happens")
	interviewScheduleCmd.Flags().String("notes", "", "Notes for the interviewers")
	interviewScheduleCmd.MarkFlagRequired("at")
}
