// Package workflow holds the application status machine: which statuses exist,
// which transitions are reachable and which role may trigger them. Everything
// here is a pure function of its arguments.
package workflow

import (
	"fmt"
	"strings"

	"github.com/khrees2412/hireboard/pkg/models"
)

// Variant selects which set of next actions is offered to the user.
// Validation always runs against the full machine.
type Variant string

const (
	VariantNarrow   Variant = "narrow"
	VariantExtended Variant = "extended"
)

// ParseVariant maps a config value to a Variant, defaulting to extended
func ParseVariant(s string) Variant {
	if strings.EqualFold(strings.TrimSpace(s), string(VariantNarrow)) {
		return VariantNarrow
	}
	return VariantExtended
}

var transitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusPending: {
		models.StatusUnderReview,
		models.StatusRejected,
	},
	models.StatusUnderReview: {
		models.StatusInterviewScheduled,
		models.StatusAccepted,
		models.StatusRejected,
	},
	models.StatusInterviewScheduled: {
		models.StatusInterviewCompleted,
		models.StatusRejected,
	},
	models.StatusInterviewCompleted: {
		models.StatusOfferExtended,
		models.StatusRejected,
	},
	models.StatusOfferExtended: {
		models.StatusOfferAccepted,
		models.StatusOfferDeclined,
		models.StatusRejected,
	},
}

var terminal = map[models.ApplicationStatus]bool{
	models.StatusAccepted:      true,
	models.StatusOfferAccepted: true,
	models.StatusOfferDeclined: true,
	models.StatusRejected:      true,
}

// aliases seen in older payloads and typed by users
var aliases = map[string]models.ApplicationStatus{
	"review":    models.StatusUnderReview,
	"in_review": models.StatusUnderReview,
	"interview": models.StatusInterviewScheduled,
	"offer":     models.StatusOfferExtended,
}

// Statuses lists every known status in workflow order
func Statuses() []models.ApplicationStatus {
	return []models.ApplicationStatus{
		models.StatusPending,
		models.StatusUnderReview,
		models.StatusInterviewScheduled,
		models.StatusInterviewCompleted,
		models.StatusOfferExtended,
		models.StatusOfferAccepted,
		models.StatusOfferDeclined,
		models.StatusAccepted,
		models.StatusRejected,
	}
}

// IsKnown reports whether s is part of the machine
func IsKnown(s models.ApplicationStatus) bool {
	if _, ok := transitions[s]; ok {
		return true
	}
	return terminal[s]
}

// IsTerminal reports whether no transition leaves s
func IsTerminal(s models.ApplicationStatus) bool {
	return terminal[s]
}

// IsLegacy reports whether s only belongs to the four-state data
func IsLegacy(s models.ApplicationStatus) bool {
	return s == models.StatusAccepted
}

// Normalize converts raw input into a known status. Case and surrounding
// whitespace are ignored; hyphens and spaces are read as underscores.
func Normalize(raw string) (models.ApplicationStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if alias, ok := aliases[key]; ok {
		return alias, nil
	}
	s := models.ApplicationStatus(key)
	if !IsKnown(s) {
		return "", &TransitionError{
			Kind:    KindInvalidStatus,
			To:      s,
			Message: fmt.Sprintf("unknown application status %q", raw),
		}
	}
	return s, nil
}

// CanTransition reports whether to is directly reachable from from
func CanTransition(from, to models.ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Validate checks a requested transition against the machine
func Validate(from, to models.ApplicationStatus) error {
	switch {
	case !IsKnown(from):
		return &TransitionError{Kind: KindInvalidStatus, From: from, To: to,
			Message: fmt.Sprintf("current status %q is not recognised", from)}
	case !IsKnown(to):
		return &TransitionError{Kind: KindInvalidStatus, From: from, To: to,
			Message: fmt.Sprintf("target status %q is not recognised", to)}
	case IsTerminal(from):
		return &TransitionError{Kind: KindTerminal, From: from, To: to,
			Message: fmt.Sprintf("application is already %s", from)}
	case !CanTransition(from, to):
		return &TransitionError{Kind: KindIllegal, From: from, To: to,
			Message: fmt.Sprintf("cannot move application from %s to %s", from, to)}
	}
	return nil
}

// NextStatuses returns the actions offered from the given status
func NextStatuses(v Variant, from models.ApplicationStatus) []models.ApplicationStatus {
	if v == VariantNarrow {
		switch from {
		case models.StatusPending:
			return []models.ApplicationStatus{models.StatusUnderReview, models.StatusRejected}
		case models.StatusUnderReview:
			return []models.ApplicationStatus{models.StatusAccepted, models.StatusRejected}
		default:
			return nil
		}
	}

	var next []models.ApplicationStatus
	for _, s := range transitions[from] {
		if IsLegacy(s) {
			continue
		}
		next = append(next, s)
	}
	return next
}
