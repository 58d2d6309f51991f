package customers

import (
	"context"
	"strings"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/validation"
	"github.com/google/uuid"
)

type profileRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	Upsert(ctx context.Context, profile *models.CustomerProfile) error
}

// ProfileDTO mirrors the checkout contact fields for the profile page.
type ProfileDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdateProfileInput carries a profile save. Blank fields are stored blank;
// non-blank fields must pass the checkout validation rules.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// Service exposes the customer profile used to prefill checkout.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (ProfileDTO, error)
}

type service struct {
	repo profileRepo
}

// NewService builds a customer profile service.
func NewService(repo profileRepo) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile repo is required")
	}
	return &service{repo: repo}, nil
}

// Get returns the stored profile, or an all-blank one before the first save.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (ProfileDTO, error) {
	if userID == uuid.Nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view your profile")
	}
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if profile == nil {
		return ProfileDTO{}, nil
	}
	return ProfileDTO{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Address:   profile.Address,
	}, nil
}

// Update validates and stores the profile fields.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (ProfileDTO, error) {
	if userID == uuid.Nil {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to update your profile")
	}

	fields := UpdateProfileInput{
		FirstName: validation.SanitizeText(input.FirstName),
		LastName:  validation.SanitizeText(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   validation.SanitizeText(input.Address),
	}

	details := map[string]string{}
	if fields.FirstName != "" && !validation.ValidName(fields.FirstName) {
		details["first_name"] = "first name must be 2-50 letters"
	}
	if fields.LastName != "" && !validation.ValidName(fields.LastName) {
		details["last_name"] = "last name must be 2-50 letters"
	}
	if fields.Email != "" && !validation.ValidEmail(fields.Email) {
		details["email"] = "email address is invalid"
	}
	if fields.Phone != "" && !validation.ValidPhone(fields.Phone) {
		details["phone"] = "phone number is invalid"
	}
	if len(fields.Address) > validation.MaxAddressLen {
		details["address"] = "address is too long"
	}
	if len(details) > 0 {
		return ProfileDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "profile fields are invalid").
			WithDetails(details)
	}

	profile := &models.CustomerProfile{
		UserID:    userID,
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Address:   fields.Address,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return ProfileDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}

	return ProfileDTO{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Address:   profile.Address,
	}, nil
}
