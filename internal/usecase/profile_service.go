package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/fantasy-cricket/internal/domain/user"
)

type ProfileService struct {
	profileRepo user.ProfileRepository
}

func NewProfileService(profileRepo user.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfile")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	profile, exists, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return user.Profile{}, fmt.Errorf("%w: profile not found", ErrNotFound)
	}

	return profile, nil
}

func (s *ProfileService) SaveProfile(ctx context.Context, profile user.Profile) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.SaveProfile")
	defer span.End()

	profile.UserID = strings.TrimSpace(profile.UserID)
	profile.Name = strings.TrimSpace(profile.Name)

	if err := profile.Validate(); err != nil {
		return user.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return user.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	return profile, nil
}
