package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"gorm.io/gorm"
)

type GoalRepo struct{ db *gorm.DB }

func NewGoalRepo(db *gorm.DB) *GoalRepo { return &GoalRepo{db: db} }

func (r *GoalRepo) List(ctx context.Context, userID string) ([]models.Goal, error) {
	var rows []goalRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *GoalRepo) Get(ctx context.Context, userID, id string) (models.Goal, error) {
	var row goalRow
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		return models.Goal{}, notFound(err, "goal "+id)
	}
	return row.toModel(), nil
}

func (r *GoalRepo) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	row := goalRow{
		ID:           g.ID,
		UserID:       g.UserID,
		Name:         g.Name,
		GoalType:     g.GoalType,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Unit:         g.Unit,
		Category:     g.Category,
		Description:  g.Description,
		StartDate:    optDate(g.StartDate),
		EndDate:      optDate(g.EndDate),
		Status:       g.Status,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Goal{}, err
	}
	return row.toModel(), nil
}

func (r *GoalRepo) Update(ctx context.Context, userID, id string, patch models.GoalPatch) (models.Goal, error) {
	updates := map[string]any{}
	if patch.CurrentValue != nil {
		updates["current_value"] = *patch.CurrentValue
	}
	if patch.TargetValue != nil {
		updates["target_value"] = *patch.TargetValue
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&goalRow{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if res.Error != nil {
			return models.Goal{}, res.Error
		}
		if res.RowsAffected == 0 {
			return models.Goal{}, fmt.Errorf("goal %s: %w", id, repositories.ErrNotFound)
		}
	}
	return r.Get(ctx, userID, id)
}

func (r *GoalRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&goalRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("goal %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

var _ repositories.GoalRepository = (*GoalRepo)(nil)
