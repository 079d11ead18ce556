package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vedran77/devlink/internal/domain"
	"github.com/vedran77/devlink/internal/repository"
	"github.com/vedran77/devlink/pkg/validator"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// ProfilePatch carries only the fields the caller supplied. Nil fields are
// left untouched on update, so repeated upserts merge rather than replace.
type ProfilePatch struct {
	Company        *string `json:"company,omitempty"`
	Website        *string `json:"website,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Location       *string `json:"location,omitempty"`
	Status         *string `json:"status,omitempty"`
	GithubUsername *string `json:"githubusername,omitempty"`
	Skills         *string `json:"skills,omitempty"`
	Youtube        *string `json:"youtube,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	Facebook       *string `json:"facebook,omitempty"`
	Linkedin       *string `json:"linkedin,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Upsert creates the caller's profile or merges the patch into the existing
// one. Field-level validation (status, skills) happens at the handler.
func (s *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, patch ProfilePatch) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &domain.Profile{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			Skills:     []string{},
			Experience: []domain.Experience{},
			Date:       time.Now(),
		}
		applyPatch(profile, patch)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("creating profile: %w", err)
		}
		return profile, nil
	}

	applyPatch(profile, patch)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

func applyPatch(p *domain.Profile, patch ProfilePatch) {
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.GithubUsername != nil {
		p.GithubUsername = *patch.GithubUsername
	}
	if patch.Skills != nil {
		p.Skills = validator.SplitSkills(*patch.Skills)
	}
	if patch.Youtube != nil {
		p.Social.Youtube = *patch.Youtube
	}
	if patch.Twitter != nil {
		p.Social.Twitter = *patch.Twitter
	}
	if patch.Facebook != nil {
		p.Social.Facebook = *patch.Facebook
	}
	if patch.Linkedin != nil {
		p.Social.Linkedin = *patch.Linkedin
	}
	if patch.Instagram != nil {
		p.Social.Instagram = *patch.Instagram
	}
}

func (s *ProfileService) Me(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	s.joinUser(ctx, profile)
	return profile, nil
}

func (s *ProfileService) ByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	return s.Me(ctx, userID)
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		s.joinUser(ctx, &profiles[i])
	}
	return profiles, nil
}

// joinUser resolves the owning user's name and avatar onto the profile.
// A missing user leaves the joined fields empty rather than failing the read.
func (s *ProfileService) joinUser(ctx context.Context, profile *domain.Profile) {
	user, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil || user == nil {
		return
	}
	profile.UserName = user.Name
	profile.UserAvatar = user.Avatar
}

// DeleteAccount removes the caller's profile and user record. Posts authored
// by the user are intentionally left in place with their author snapshot.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// AddExperience prepends a new entry, keeping the list most-recent-first.
func (s *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, input ExperienceInput) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	exp := domain.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	profile.Experience = append([]domain.Experience{exp}, profile.Experience...)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

// RemoveExperience removes the entry with the given id. An unknown id is a
// tolerant no-op: the profile is saved and returned unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, expID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	for i, exp := range profile.Experience {
		if exp.ID == expID {
			profile.Experience = append(profile.Experience[:i], profile.Experience[i+1:]...)
			break
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}
