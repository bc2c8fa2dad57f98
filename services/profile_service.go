package services

import (
	"context"
	"errors"
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/rajivijay0509/nutrition-tracker-web/utils"
	"github.com/sirupsen/logrus"
)

// weightLookback bounds how far back BMI looks for a logged weight.
const weightLookback = 90

type ProfileService struct {
	store
	remote   repositories.ProfileRepository // nil when offline
	local    repositories.ProfileRepository
	wellness *WellnessService
	photos   PhotoStore // optional
}

func NewProfileService(remote, local repositories.ProfileRepository, wellness *WellnessService, photos PhotoStore, log *logrus.Logger, events EventPublisher) *ProfileService {
	return &ProfileService{
		store:    store{name: "profiles", log: log, events: events},
		remote:   remote,
		local:    local,
		wellness: wellness,
		photos:   photos,
	}
}

// withDefaults fills zero targets the way a fresh profile has them.
func withDefaults(p models.Profile, user models.AuthUser) models.Profile {
	p.UserID = user.ID
	if user.Email != "" {
		p.Email = user.Email
	}
	if p.TargetCalories <= 0 {
		p.TargetCalories = models.DefaultTargetCalories
	}
	if p.TargetSleep <= 0 {
		p.TargetSleep = models.DefaultTargetSleep
	}
	if p.TargetExercise <= 0 {
		p.TargetExercise = models.DefaultTargetExercise
	}
	return p
}

// GetProfile never fails for a missing profile; it returns the defaults instead.
func (s *ProfileService) GetProfile(ctx context.Context, user models.AuthUser) (models.Profile, error) {
	if s.remote != nil {
		p, err := s.remote.Get(ctx, user.ID)
		switch {
		case err == nil:
			p = withDefaults(p, user)
			_, cerr := s.local.Upsert(ctx, p)
			s.cacheErr("get", cerr)
			return p, nil
		case errors.Is(err, repositories.ErrNotFound):
			return models.DefaultProfile(user), nil
		}
		s.fallback("get", err, logrus.Fields{"user_id": user.ID})
	}

	p, err := s.local.Get(ctx, user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.DefaultProfile(user), nil
	}
	if err != nil {
		return models.Profile{}, err
	}
	return withDefaults(p, user), nil
}

func validateProfile(p models.Profile) error {
	switch {
	case p.Height != nil && (*p.Height < 50 || *p.Height > 250):
		return invalid("Height must be between 50 and 250 cm")
	case p.TargetCalories < 0 || p.TargetSleep < 0 || p.TargetExercise < 0:
		return invalid("Targets cannot be negative")
	case p.TargetSleep > 24:
		return invalid("Sleep target cannot exceed 24 hours")
	}
	return nil
}

// UpdateProfile upserts the whole profile; the avatar is kept unless replaced.
func (s *ProfileService) UpdateProfile(ctx context.Context, user models.AuthUser, in models.Profile) (models.Profile, error) {
	if err := validateProfile(in); err != nil {
		return models.Profile{}, err
	}
	if in.AvatarURL == "" {
		if cur, err := s.GetProfile(ctx, user); err == nil {
			in.AvatarURL = cur.AvatarURL
		}
	}
	return s.upsert(ctx, withDefaults(in, user))
}

func (s *ProfileService) upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.UpdatedAt = time.Now()
	if s.remote != nil {
		saved, err := s.remote.Upsert(ctx, p)
		if err == nil {
			_, cerr := s.local.Upsert(ctx, saved)
			s.cacheErr("upsert", cerr)
			s.publish(p.UserID, "profile.updated", saved)
			return saved, nil
		}
		s.fallback("upsert", err, logrus.Fields{"user_id": p.UserID})
	}
	saved, err := s.local.Upsert(ctx, p)
	if err != nil {
		return models.Profile{}, err
	}
	s.publish(p.UserID, "profile.updated", saved)
	return saved, nil
}

func (s *ProfileService) UpdateAvatar(ctx context.Context, user models.AuthUser, dataURL string) (models.Profile, error) {
	if s.photos == nil {
		return models.Profile{}, ErrPhotosDisabled
	}
	url, err := s.photos.UploadDataURL(ctx, dataURL, "avatars", user.ID)
	if err != nil {
		return models.Profile{}, invalid(err.Error())
	}
	p, err := s.GetProfile(ctx, user)
	if err != nil {
		return models.Profile{}, err
	}
	p.AvatarURL = url
	return s.upsert(ctx, p)
}

// BMIReport is BMI from profile height and the most recent logged weight.
type BMIReport struct {
	utils.BMI
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	WeighedOn string  `json:"weighedOn"`
}

var ErrBMIUnavailable = errors.New("height or recent weight missing")

func (s *ProfileService) BMI(ctx context.Context, user models.AuthUser, today time.Time) (BMIReport, error) {
	p, err := s.GetProfile(ctx, user)
	if err != nil {
		return BMIReport{}, err
	}
	if p.Height == nil {
		return BMIReport{}, ErrBMIUnavailable
	}
	from := today.AddDate(0, 0, -weightLookback).Format(dateLayout)
	records, err := s.wellness.GetWellnessRange(ctx, user.ID, from, today.Format(dateLayout))
	if err != nil {
		return BMIReport{}, err
	}

	var latest *models.WellnessRecord
	for i := range records {
		r := &records[i]
		if r.Weight != nil && (latest == nil || r.Date > latest.Date) {
			latest = r
		}
	}
	if latest == nil {
		return BMIReport{}, ErrBMIUnavailable
	}
	bmi, err := utils.CalculateBMI(*p.Height, *latest.Weight)
	if err != nil {
		return BMIReport{}, invalid(err.Error())
	}
	return BMIReport{BMI: bmi, Height: *p.Height, Weight: *latest.Weight, WeighedOn: latest.Date}, nil
}
