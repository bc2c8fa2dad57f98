package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/sirupsen/logrus"
)

type GoalStats struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	Achieved        int `json:"achieved"`
	AverageProgress int `json:"averageProgress"` // over active goals
}

// GoalView is a goal with its derived fields.
type GoalView struct {
	models.Goal
	Progress float64 `json:"progress"`
	Achieved bool    `json:"achieved"`
}

func NewGoalView(g models.Goal) GoalView {
	return GoalView{Goal: g, Progress: math.Round(g.Progress()), Achieved: g.Achieved()}
}

type GoalService struct {
	store
	remote   repositories.GoalRepository // nil when offline
	local    repositories.GoalCache
	notifier Notifier // optional
}

func NewGoalService(remote repositories.GoalRepository, local repositories.GoalCache, notifier Notifier, log *logrus.Logger, events EventPublisher) *GoalService {
	return &GoalService{
		store:    store{name: "goals", log: log, events: events},
		remote:   remote,
		local:    local,
		notifier: notifier,
	}
}

func (s *GoalService) GetGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	if s.remote != nil {
		goals, err := s.remote.List(ctx, userID)
		if err == nil {
			s.cacheErr("list", s.local.ReplaceAll(ctx, userID, goals))
			return goals, nil
		}
		s.fallback("list", err, logrus.Fields{"user_id": userID})
	}
	return s.local.List(ctx, userID)
}

func (s *GoalService) getGoal(ctx context.Context, userID, id string) (models.Goal, error) {
	if s.remote != nil {
		g, err := s.remote.Get(ctx, userID, id)
		if err == nil || errors.Is(err, repositories.ErrNotFound) {
			return g, err
		}
		s.fallback("get", err, logrus.Fields{"user_id": userID, "goal_id": id})
	}
	return s.local.Get(ctx, userID, id)
}

func (s *GoalService) AddGoal(ctx context.Context, userID string, g models.Goal) (models.Goal, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" || g.GoalType == "" || g.TargetValue <= 0 {
		return models.Goal{}, invalid("Please fill in all required fields")
	}
	if g.CurrentValue < 0 {
		return models.Goal{}, invalid("Current value cannot be negative")
	}
	if g.Category == "" {
		g.Category = "daily"
	}
	if !containsString(models.GoalCategories, g.Category) {
		return models.Goal{}, invalid("Unknown goal category " + g.Category)
	}
	if g.StartDate == "" {
		g.StartDate = time.Now().Format(dateLayout)
	}
	if !validDate(g.StartDate) || (g.EndDate != "" && !validDate(g.EndDate)) {
		return models.Goal{}, invalid("Invalid date, expected YYYY-MM-DD")
	}
	if g.EndDate != "" && g.EndDate < g.StartDate {
		return models.Goal{}, invalid("End date must not be before start date")
	}

	g.UserID = userID
	g.Unit = models.UnitForGoalType(g.GoalType)
	g.Status = models.GoalStatusActive
	g.CreatedAt = time.Now()

	if s.remote != nil {
		saved, err := s.remote.Create(ctx, g)
		if err == nil {
			_, cerr := s.local.Create(ctx, saved)
			s.cacheErr("add", cerr)
			s.publish(userID, "goal.added", saved)
			return saved, nil
		}
		s.fallback("add", err, logrus.Fields{"user_id": userID})
	}

	g.ID = uuid.NewString()
	saved, err := s.local.Create(ctx, g)
	if err != nil {
		return models.Goal{}, err
	}
	s.publish(userID, "goal.added", saved)
	return saved, nil
}

func validatePatch(p models.GoalPatch) error {
	switch {
	case p.CurrentValue != nil && *p.CurrentValue < 0:
		return invalid("Current value cannot be negative")
	case p.TargetValue != nil && *p.TargetValue <= 0:
		return invalid("Target value must be greater than zero")
	case p.Name != nil && strings.TrimSpace(*p.Name) == "":
		return invalid("Goal name cannot be empty")
	case p.Status != nil && !containsString([]string{models.GoalStatusActive, models.GoalStatusCompleted, models.GoalStatusPaused}, *p.Status):
		return invalid("Unknown goal status " + *p.Status)
	}
	return nil
}

// UpdateGoal applies a patch and notifies the user when the goal becomes achieved.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, id string, patch models.GoalPatch) (models.Goal, error) {
	if err := validatePatch(patch); err != nil {
		return models.Goal{}, err
	}
	before, err := s.getGoal(ctx, userID, id)
	if err != nil {
		return models.Goal{}, err
	}

	after, err := s.update(ctx, userID, id, patch)
	if err != nil {
		return models.Goal{}, err
	}
	s.publish(userID, "goal.updated", after)
	if !before.Achieved() && after.Achieved() {
		s.achieved(ctx, after)
	}
	return after, nil
}

func (s *GoalService) update(ctx context.Context, userID, id string, patch models.GoalPatch) (models.Goal, error) {
	if s.remote != nil {
		saved, err := s.remote.Update(ctx, userID, id, patch)
		if err == nil {
			_, cerr := s.local.Create(ctx, saved)
			s.cacheErr("update", cerr)
			return saved, nil
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Goal{}, err
		}
		s.fallback("update", err, logrus.Fields{"user_id": userID, "goal_id": id})
	}
	return s.local.Update(ctx, userID, id, patch)
}

func (s *GoalService) achieved(ctx context.Context, g models.Goal) {
	msg := fmt.Sprintf("You reached your goal \"%s\": %g %s", g.Name, g.TargetValue, g.Unit)
	if s.events != nil {
		s.events.Publish(g.UserID, models.Event{Kind: "goal.achieved", Message: msg, Data: g, CreatedAt: time.Now()})
	}
	if s.notifier != nil {
		s.notifier.PushToUser(ctx, g.UserID, "Goal achieved", msg, map[string]string{"goalId": g.ID})
	}
	s.log.WithFields(logrus.Fields{"user_id": g.UserID, "goal_id": g.ID}).Info("goal achieved")
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, id string) error {
	remoteOK := false
	if s.remote != nil {
		err := s.remote.Delete(ctx, userID, id)
		switch {
		case err == nil:
			remoteOK = true
		case errors.Is(err, repositories.ErrNotFound):
		default:
			s.fallback("delete", err, logrus.Fields{"user_id": userID, "goal_id": id})
		}
	}
	err := s.local.Delete(ctx, userID, id)
	if errors.Is(err, repositories.ErrNotFound) && remoteOK {
		err = nil
	}
	if err == nil {
		s.publish(userID, "goal.deleted", map[string]string{"id": id})
	}
	return err
}

func ComputeGoalStats(goals []models.Goal) GoalStats {
	st := GoalStats{Total: len(goals)}
	var sum float64
	for _, g := range goals {
		if g.Achieved() {
			st.Achieved++
		}
		if g.Status == models.GoalStatusActive {
			st.Active++
			sum += g.Progress()
		}
	}
	if st.Active > 0 {
		st.AverageProgress = int(math.Round(sum / float64(st.Active)))
	}
	return st
}
