package applications

import (
	"context"
	"strings"

	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

// ExtendOffer moves an application whose interviews are done to
// offer_extended, carrying the offer terms the candidate will answer.
func (s *Service) ExtendOffer(ctx context.Context, applicationID int, offer models.Offer) (*models.JobApplication, error) {
	target := models.StatusOfferExtended
	current, err := s.loadForEmployer(ctx, applicationID, target)
	if err != nil {
		return nil, err
	}
	if err := checkMove(current.Status, target); err != nil {
		return nil, err
	}

	offer.Details = strings.TrimSpace(offer.Details)
	if msg := s.offerProblem(offer); msg != "" {
		return nil, &workflow.TransitionError{Kind: workflow.KindValidation, From: current.Status, To: target, Message: msg}
	}

	updated, err := s.api.ExtendOffer(ctx, applicationID, offer)
	if err != nil {
		s.checkToken(ctx, err)
		s.log.Info("offer rejected", "application_id", applicationID, "error", err)
		return nil, transitionError(err, current.Status, target, "Failed to extend the offer")
	}
	s.normalizeOne(updated)
	s.log.Info("offer extended", "application_id", applicationID, "status", updated.Status)

	s.afterEmployerWrite(ctx, current.JobID, updated)
	return updated, nil
}

func (s *Service) offerProblem(o models.Offer) string {
	switch {
	case o.Details == "":
		return "offer details are required"
	case o.Salary < 0:
		return "offer salary cannot be negative"
	case o.ExpiryDate != nil && !o.ExpiryDate.After(s.now()):
		return "offer expiry date must be in the future"
	}
	return ""
}
