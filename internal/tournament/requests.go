package tournament

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// StartQualifierRequest enters a user into this week's qualifier.
type StartQualifierRequest struct {
	UserID  string `json:"userId" validate:"required"`
	SkillID string `json:"skillId" validate:"required"`
	// SeasonID and Region default to the coordinator's configuration.
	SeasonID string `json:"seasonId"`
	Region   string `json:"region" validate:"omitempty,alpha,len=2"`
	// Rating is the user's CR when entering.
	Rating int `json:"rating" validate:"gte=0,lte=3000"`
}

// SubmitRequest submits a qualifier attempt. Answers are keyed by the
// 1-based question index.
type SubmitRequest struct {
	UserID      string         `json:"userId" validate:"required"`
	QualifierID string         `json:"qualifierId" validate:"required"`
	Answers     map[int]string `json:"answers"`
}

// LockRequest locks a qualifier and promotes its top entries.
type LockRequest struct {
	QualifierID string `json:"qualifierId" validate:"required"`
	// TopN defaults to the policy's finalists per qualifier.
	TopN int `json:"topN" validate:"gte=0"`
}

// FinalRequest identifies a finalist in a final.
type FinalRequest struct {
	UserID  string `json:"userId" validate:"required"`
	FinalID string `json:"finalId" validate:"required"`
}

// SubmitFinalRequest submits a final attempt.
type SubmitFinalRequest struct {
	UserID  string         `json:"userId" validate:"required"`
	FinalID string         `json:"finalId" validate:"required"`
	Answers map[int]string `json:"answers"`
}

func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
