package rules

import (
	"errors"

	"github.com/anonto42/nano-social/backend/internal/apperrors"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"gorm.io/gorm"
)

// InteractionValidator is the stateless rule-checker consulted before any
// profile-to-profile or profile-to-post action. Read-only against the
// Relationship Store.
type InteractionValidator struct {
	profileRepository     repositories.ProfileRepository
	interactionRepository repositories.InteractionRepository
}

// NewInteractionValidator creates a new InteractionValidator
func NewInteractionValidator(profileRepo repositories.ProfileRepository, interactionRepo repositories.InteractionRepository) *InteractionValidator {
	return &InteractionValidator{
		profileRepository:     profileRepo,
		interactionRepository: interactionRepo,
	}
}

// AssertProfileExists returns the profile or a NotFound error naming the id.
func (v *InteractionValidator) AssertProfileExists(profileID uint) (*models.Profile, error) {
	profile, err := v.profileRepository.GetProfileByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "profile %d not found", profileID)
		}
		return nil, err
	}
	return profile, nil
}

// AssertProfilesAreNotSame fails with SelfInteraction when both ids match.
func (v *InteractionValidator) AssertProfilesAreNotSame(profileA, profileB uint) error {
	if profileA == profileB {
		return apperrors.E(apperrors.SelfInteraction, "a profile cannot interact with itself")
	}
	return nil
}

// IsProfileBlockingAnother reports whether source holds a block edge to target.
func (v *InteractionValidator) IsProfileBlockingAnother(sourceID, targetID uint) (bool, error) {
	return v.interactionRepository.HasInteraction(sourceID, targetID, models.InteractionBlock)
}

// AssertProfileIsNotBlocked fails when the caller blocks the target.
func (v *InteractionValidator) AssertProfileIsNotBlocked(profileID, targetID uint) error {
	blocking, err := v.IsProfileBlockingAnother(profileID, targetID)
	if err != nil {
		return err
	}
	if blocking {
		return apperrors.E(apperrors.Blocked, "you have blocked this profile")
	}
	return nil
}

// AssertProfileIsNotBlocking fails when the target blocks the caller.
func (v *InteractionValidator) AssertProfileIsNotBlocking(profileID, targetID uint) error {
	blocked, err := v.IsProfileBlockingAnother(targetID, profileID)
	if err != nil {
		return err
	}
	if blocked {
		return apperrors.E(apperrors.Blocked, "this profile has blocked you")
	}
	return nil
}

// AssertProfilesDoNotBlockEachOther composes both directions. The caller's
// own block is checked first so the error message picks the right side.
func (v *InteractionValidator) AssertProfilesDoNotBlockEachOther(profileID, targetID uint) error {
	if err := v.AssertProfileIsNotBlocked(profileID, targetID); err != nil {
		return err
	}
	return v.AssertProfileIsNotBlocking(profileID, targetID)
}
