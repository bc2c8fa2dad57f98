package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/sirupsen/logrus"
)

// WellnessOptions are the vocabularies the wellness form offers.
type WellnessOptions struct {
	Moods          []string `json:"moods"`
	ActivityLevels []string `json:"activityLevels"`
	SymptomTypes   []string `json:"symptomTypes"`
	Supplements    []string `json:"supplements"`
}

type WellnessService struct {
	store
	remote         repositories.WellnessRepository // nil when offline
	local          repositories.WellnessRepository
	remoteSymptoms repositories.SymptomRepository // nil when offline
	localSymptoms  repositories.SymptomCache
}

func NewWellnessService(remote, local repositories.WellnessRepository, remoteSymptoms repositories.SymptomRepository, localSymptoms repositories.SymptomCache, log *logrus.Logger, events EventPublisher) *WellnessService {
	return &WellnessService{
		store:          store{name: "wellness", log: log, events: events},
		remote:         remote,
		local:          local,
		remoteSymptoms: remoteSymptoms,
		localSymptoms:  localSymptoms,
	}
}

func (s *WellnessService) Options() WellnessOptions {
	return WellnessOptions{
		Moods:          models.Moods,
		ActivityLevels: models.ActivityLevels,
		SymptomTypes:   models.SymptomTypes,
		Supplements:    models.CommonSupplements,
	}
}

func validateWellness(rec models.WellnessRecord) error {
	switch {
	case !validDate(rec.Date):
		return invalid("Invalid date, expected YYYY-MM-DD")
	case rec.EnergyLevel < 1 || rec.EnergyLevel > 5:
		return invalid("Energy level must be between 1 and 5")
	case rec.MoodEmoji != "" && !models.IsMood(rec.MoodEmoji):
		return invalid("Unknown mood " + rec.MoodEmoji)
	case rec.ActivityLevel != "" && !models.IsActivityLevel(rec.ActivityLevel):
		return invalid("Unknown activity level " + rec.ActivityLevel)
	case rec.SleepHours != nil && (*rec.SleepHours < 0 || *rec.SleepHours > 24):
		return invalid("Sleep hours must be between 0 and 24")
	case rec.ExerciseMinutes != nil && *rec.ExerciseMinutes < 0:
		return invalid("Exercise minutes cannot be negative")
	case rec.BPSystolic != nil && rec.BPDiastolic != nil && *rec.BPDiastolic >= *rec.BPSystolic:
		return invalid("Diastolic pressure must be lower than systolic")
	}
	return nil
}

// LogWellness replaces the record for (user, date) in full.
func (s *WellnessService) LogWellness(ctx context.Context, userID string, rec models.WellnessRecord) (models.WellnessRecord, error) {
	if rec.Date == "" {
		rec.Date = time.Now().Format(dateLayout)
	}
	if rec.MoodEmoji == "" {
		rec.MoodEmoji = models.MoodNeutral
	}
	if err := validateWellness(rec); err != nil {
		return models.WellnessRecord{}, err
	}
	rec.UserID = userID
	rec.UpdatedAt = time.Now()
	if rec.Supplements == nil {
		rec.Supplements = []string{}
	}

	if s.remote != nil {
		saved, err := s.remote.Upsert(ctx, rec)
		if err == nil {
			_, cerr := s.local.Upsert(ctx, saved)
			s.cacheErr("upsert", cerr)
			s.publish(userID, "wellness.logged", saved)
			return saved, nil
		}
		s.fallback("upsert", err, logrus.Fields{"user_id": userID, "date": rec.Date})
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	saved, err := s.local.Upsert(ctx, rec)
	if err != nil {
		return models.WellnessRecord{}, err
	}
	s.publish(userID, "wellness.logged", saved)
	return saved, nil
}

// GetWellness returns repositories.ErrNotFound when nothing was logged that day.
func (s *WellnessService) GetWellness(ctx context.Context, userID, date string) (models.WellnessRecord, error) {
	if !validDate(date) {
		return models.WellnessRecord{}, invalid("Invalid date, expected YYYY-MM-DD")
	}
	if s.remote != nil {
		rec, err := s.remote.Get(ctx, userID, date)
		if err == nil {
			_, cerr := s.local.Upsert(ctx, rec)
			s.cacheErr("get", cerr)
			return rec, nil
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return models.WellnessRecord{}, err
		}
		s.fallback("get", err, logrus.Fields{"user_id": userID, "date": date})
	}
	return s.local.Get(ctx, userID, date)
}

func (s *WellnessService) GetWellnessRange(ctx context.Context, userID, from, to string) ([]models.WellnessRecord, error) {
	if _, err := dateRange(from, to); err != nil {
		return nil, err
	}
	if s.remote != nil {
		list, err := s.remote.ListRange(ctx, userID, from, to)
		if err == nil {
			for _, rec := range list {
				_, cerr := s.local.Upsert(ctx, rec)
				s.cacheErr("range", cerr)
			}
			return list, nil
		}
		s.fallback("range", err, logrus.Fields{"user_id": userID, "from": from, "to": to})
	}
	return s.local.ListRange(ctx, userID, from, to)
}

func (s *WellnessService) LogSymptom(ctx context.Context, userID string, sym models.Symptom) (models.Symptom, error) {
	if sym.Date == "" {
		sym.Date = time.Now().Format(dateLayout)
	}
	switch {
	case !validDate(sym.Date):
		return models.Symptom{}, invalid("Invalid date, expected YYYY-MM-DD")
	case strings.TrimSpace(sym.SymptomType) == "":
		return models.Symptom{}, invalid("Please select a symptom")
	case !models.IsSymptomType(sym.SymptomType):
		return models.Symptom{}, invalid("Unknown symptom " + sym.SymptomType)
	case sym.Severity < 1 || sym.Severity > 5:
		return models.Symptom{}, invalid("Severity must be between 1 and 5")
	}
	sym.UserID = userID
	sym.CreatedAt = time.Now()

	if s.remoteSymptoms != nil {
		saved, err := s.remoteSymptoms.Create(ctx, sym)
		if err == nil {
			_, cerr := s.localSymptoms.Create(ctx, saved)
			s.cacheErr("symptom", cerr)
			s.publish(userID, "symptom.logged", saved)
			return saved, nil
		}
		s.fallback("symptom", err, logrus.Fields{"user_id": userID, "date": sym.Date})
	}

	sym.ID = uuid.NewString()
	saved, err := s.localSymptoms.Create(ctx, sym)
	if err != nil {
		return models.Symptom{}, err
	}
	s.publish(userID, "symptom.logged", saved)
	return saved, nil
}

func (s *WellnessService) GetSymptoms(ctx context.Context, userID, from, to string) ([]models.Symptom, error) {
	if _, err := dateRange(from, to); err != nil {
		return nil, err
	}
	if s.remoteSymptoms != nil {
		list, err := s.remoteSymptoms.ListRange(ctx, userID, from, to)
		if err == nil {
			s.cacheErr("symptoms", s.localSymptoms.ReplaceRange(ctx, userID, from, to, list))
			return list, nil
		}
		s.fallback("symptoms", err, logrus.Fields{"user_id": userID, "from": from, "to": to})
	}
	return s.localSymptoms.ListRange(ctx, userID, from, to)
}

func (s *WellnessService) DeleteSymptom(ctx context.Context, userID, id string) error {
	remoteOK := false
	if s.remoteSymptoms != nil {
		err := s.remoteSymptoms.Delete(ctx, userID, id)
		switch {
		case err == nil:
			remoteOK = true
		case errors.Is(err, repositories.ErrNotFound):
		default:
			s.fallback("symptom_delete", err, logrus.Fields{"user_id": userID, "symptom_id": id})
		}
	}
	err := s.localSymptoms.Delete(ctx, userID, id)
	if errors.Is(err, repositories.ErrNotFound) && remoteOK {
		return nil
	}
	return err
}
