package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

var titleCaser = cases.Title(language.English)

// statusLabel renders a status as words, colored by where it sits in the workflow
func statusLabel(s models.ApplicationStatus) string {
	label := titleCaser.String(strings.ReplaceAll(string(s), "_", " "))

	style := lipgloss.NewStyle().Bold(true)
	switch {
	case s == models.StatusRejected || s == models.StatusOfferDeclined:
		style = style.Foreground(lipgloss.Color("9"))
	case workflow.IsTerminal(s):
		style = style.Foreground(lipgloss.Color("10"))
	case s == models.StatusOfferExtended:
		style = style.Foreground(lipgloss.Color("11"))
	default:
		style = style.Foreground(lipgloss.Color("12"))
	}
	return style.Render(label)
}

// actionsFor lists the statuses role may move an application to next
func actionsFor(variant workflow.Variant, role models.Role, from models.ApplicationStatus) []models.ApplicationStatus {
	var allowed []models.ApplicationStatus
	for _, s := range workflow.NextStatuses(variant, from) {
		if workflow.Authorize(role, from, s) == nil {
			allowed = append(allowed, s)
		}
	}
	return allowed
}

func printApplication(app models.JobApplication, variant workflow.Variant, role models.Role) {
	fmt.Printf("  • #%d  job %d  %s\n", app.ID, app.JobID, statusLabel(app.Status))
	fmt.Printf("    %s %d | %s %s\n",
		labelStyle.Render("Applicant:"), app.ApplicantID,
		labelStyle.Render("Applied:"), valueStyle.Render(app.CreatedAt.Format("2006-01-02 15:04")))
	if app.ResumeURL != "" {
		fmt.Printf("    %s %s\n", labelStyle.Render("Resume:"), app.ResumeURL)
	}
	if app.OfferDetails != "" {
		offer := app.OfferDetails
		if app.OfferSalary > 0 {
			offer += fmt.Sprintf(" (%.0f)", app.OfferSalary)
		}
		fmt.Printf("    %s %s\n", labelStyle.Render("Offer:"), valueStyle.Render(offer))
		if app.OfferExpiryDate != nil {
			fmt.Printf("    %s %s\n", labelStyle.Render("Answer by:"), app.OfferExpiryDate.Local().Format("2006-01-02 15:04"))
		}
	}
	if next := actionsFor(variant, role, app.Status); len(next) > 0 {
		names := make([]string, len(next))
		for i, s := range next {
			names[i] = string(s)
		}
		fmt.Printf("    %s %s\n", labelStyle.Render("Next:"), mutedStyle.Render(strings.Join(names, ", ")))
	}
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", what, arg)
	}
	return id, nil
}
