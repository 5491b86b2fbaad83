package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

// Stats summarizes a list of applications
type Stats struct {
	Total           int
	Open            int
	Responded       int
	Offers          int
	Hired           int
	Rejected        int
	StatusBreakdown map[models.ApplicationStatus]int
	LastUpdate      time.Time
}

// ResponseRate is the share of applications that moved past pending
func (s Stats) ResponseRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Responded) / float64(s.Total) * 100
}

func calculateStats(apps []models.JobApplication) Stats {
	stats := Stats{Total: len(apps), StatusBreakdown: make(map[models.ApplicationStatus]int)}
	for _, app := range apps {
		stats.StatusBreakdown[app.Status]++
		if app.Status != models.StatusPending {
			stats.Responded++
		}
		if !workflow.IsTerminal(app.Status) {
			stats.Open++
		}
		switch app.Status {
		case models.StatusOfferExtended, models.StatusOfferAccepted, models.StatusOfferDeclined:
			stats.Offers++
		}
		if app.Status == models.StatusOfferAccepted || app.Status == models.StatusAccepted {
			stats.Hired++
		}
		if app.Status == models.StatusRejected {
			stats.Rejected++
		}
		if app.UpdatedAt.After(stats.LastUpdate) {
			stats.LastUpdate = app.UpdatedAt
		}
	}
	return stats
}

// breakdown returns the statuses present in workflow order
func (s Stats) breakdown() []models.ApplicationStatus {
	order := make(map[models.ApplicationStatus]int)
	for i, st := range workflow.Statuses() {
		order[st] = i
	}
	var present []models.ApplicationStatus
	for st := range s.StatusBreakdown {
		present = append(present, st)
	}
	sort.Slice(present, func(i, j int) bool { return order[present[i]] < order[present[j]] })
	return present
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View application statistics",
	Long:  "Summarize your applications, or with --job the applications to a job you posted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		if _, err := a.RequireSession(cmd.Context()); err != nil {
			return err
		}

		var (
			apps []models.JobApplication
			err  error
		)
		jobID, _ := cmd.Flags().GetInt("job")
		if jobID > 0 {
			apps, err = a.Applications.ListForJob(cmd.Context(), jobID)
		} else {
			apps, err = a.Applications.ListForApplicant(cmd.Context())
		}
		if err != nil {
			return err
		}
		if len(apps) == 0 {
			fmt.Println("No applications yet")
			return nil
		}

		stats := calculateStats(apps)
		fmt.Println(titleStyle.Render("Application Statistics"))

		fmt.Printf("%s\n", labelStyle.Render("Overview"))
		fmt.Printf("  Total Applications: %d\n", stats.Total)
		fmt.Printf("  Open: %d\n", stats.Open)
		fmt.Printf("  Offers: %d\n", stats.Offers)
		fmt.Printf("  Hired: %d\n", stats.Hired)
		fmt.Printf("  Rejected: %d\n", stats.Rejected)
		fmt.Printf("  Response Rate: %.1f%%\n", stats.ResponseRate())

		fmt.Printf("\n%s\n", labelStyle.Render("Status Breakdown"))
		for _, st := range stats.breakdown() {
			count := stats.StatusBreakdown[st]
			fmt.Printf("  %s: %d (%.1f%%)\n", statusLabel(st), count, float64(count)/float64(stats.Total)*100)
		}

		if !stats.LastUpdate.IsZero() {
			fmt.Printf("\n%s %s\n", labelStyle.Render("Last Update:"), stats.LastUpdate.Format("Jan 2 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int("job", 0, "Job ID to summarize (employers)")
}
