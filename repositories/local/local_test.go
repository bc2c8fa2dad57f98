package local

import (
	"context"
	"testing"

	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealStore(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryKV()
	s := NewMealStore(kv)

	m1, err := s.Create(ctx, models.Meal{UserID: "u1", Date: "2024-03-01", MealTimeSlot: "6:00 AM"})
	require.NoError(t, err)
	assert.NotEmpty(t, m1.ID)
	assert.False(t, m1.CreatedAt.IsZero())

	_, err = s.Create(ctx, models.Meal{UserID: "u1", Date: "2024-03-02", MealTimeSlot: "7:30 AM"})
	require.NoError(t, err)
	_, err = s.Create(ctx, models.Meal{UserID: "u2", Date: "2024-03-01", MealTimeSlot: "9:00 AM"})
	require.NoError(t, err)

	day, err := s.ListByDate(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, m1.ID, day[0].ID)

	all, err := s.ListRange(ctx, "u1", "2024-02-28", "2024-03-02")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// a second store over the same KV sees the persisted document
	reopened := NewMealStore(kv)
	again, err := reopened.ListRange(ctx, "u1", "", "")
	require.NoError(t, err)
	assert.Len(t, again, 2)

	require.NoError(t, s.Delete(ctx, "u1", m1.ID))
	assert.ErrorIs(t, s.Delete(ctx, "u1", m1.ID), repositories.ErrNotFound)

	require.NoError(t, s.ReplaceDay(ctx, "u1", "2024-03-02", []models.Meal{
		{ID: "r1", UserID: "u1", Date: "2024-03-02"},
		{ID: "r2", UserID: "u1", Date: "2024-03-02"},
	}))
	day, _ = s.ListByDate(ctx, "u1", "2024-03-02")
	assert.Equal(t, []string{"r1", "r2"}, []string{day[0].ID, day[1].ID})
}

func TestMealStoreReplaceRange(t *testing.T) {
	ctx := context.Background()
	s := NewMealStore(cache.NewMemoryKV())
	for _, m := range []models.Meal{
		{ID: "a", UserID: "u1", Date: "2024-02-28"},
		{ID: "b", UserID: "u1", Date: "2024-03-01"},
		{ID: "c", UserID: "u1", Date: "2024-03-03"},
		{ID: "d", UserID: "u1", Date: "2024-03-04"},
	} {
		_, err := s.Create(ctx, m)
		require.NoError(t, err)
	}

	require.NoError(t, s.ReplaceRange(ctx, "u1", "2024-03-01", "2024-03-03", []models.Meal{
		{ID: "r1", UserID: "u1", Date: "2024-03-02"},
	}))

	all, err := s.ListRange(ctx, "u1", "", "")
	require.NoError(t, err)
	ids := []string{}
	for _, m := range all {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"a", "d", "r1"}, ids)
}

func TestWellnessUpsertReplacesByDate(t *testing.T) {
	ctx := context.Background()
	s := NewWellnessStore(cache.NewMemoryKV())

	first, err := s.Upsert(ctx, models.WellnessRecord{UserID: "u1", Date: "2024-03-01", MoodEmoji: "good", EnergyLevel: 3, Supplements: []string{"Zinc"}})
	require.NoError(t, err)

	_, err = s.Upsert(ctx, models.WellnessRecord{UserID: "u1", Date: "2024-03-01", MoodEmoji: "great", EnergyLevel: 5})
	require.NoError(t, err)

	got, err := s.Get(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "great", got.MoodEmoji)
	assert.Empty(t, got.Supplements)

	_, err = s.Get(ctx, "u1", "2024-03-02")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSymptomsShareWellnessDocument(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryKV()
	w := NewWellnessStore(kv)
	sym := w.Symptoms()

	a, err := sym.Create(ctx, models.Symptom{UserID: "u1", Date: "2024-03-01", SymptomType: "Headache", Severity: 2})
	require.NoError(t, err)
	_, err = sym.Create(ctx, models.Symptom{UserID: "u1", Date: "2024-03-05", SymptomType: "Bloating", Severity: 4})
	require.NoError(t, err)
	_, err = w.Upsert(ctx, models.WellnessRecord{UserID: "u1", Date: "2024-03-01", EnergyLevel: 3})
	require.NoError(t, err)

	list, err := sym.ListRange(ctx, "u1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Headache", list[0].SymptomType)

	require.NoError(t, sym.Delete(ctx, "u1", a.ID))
	list, _ = sym.ListRange(ctx, "u1", "", "")
	assert.Len(t, list, 1)

	_, err = w.Get(ctx, "u1", "2024-03-01")
	assert.NoError(t, err)
}

func TestGoalStoreNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewGoalStore(cache.NewMemoryKV())

	g1, _ := s.Create(ctx, models.Goal{UserID: "u1", Name: "Sleep"})
	g2, _ := s.Create(ctx, models.Goal{UserID: "u1", Name: "Steps"})

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{g2.ID, g1.ID}, []string{list[0].ID, list[1].ID})

	cur := 7.5
	updated, err := s.Update(ctx, "u1", g1.ID, models.GoalPatch{CurrentValue: &cur})
	require.NoError(t, err)
	assert.Equal(t, 7.5, updated.CurrentValue)
	assert.Equal(t, "Sleep", updated.Name)

	_, err = s.Update(ctx, "u1", "missing", models.GoalPatch{})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "u1", g2.ID))
	list, _ = s.List(ctx, "u1")
	assert.Len(t, list, 1)
}

func TestProfileStore(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(cache.NewMemoryKV())

	_, err := s.Get(ctx, "u1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = s.Upsert(ctx, models.Profile{UserID: "u1", FirstName: "Ana", TargetCalories: 1200})
	require.NoError(t, err)
	p, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FirstName)
	assert.Equal(t, float64(1200), p.TargetCalories)
}

func TestCommunityFavorites(t *testing.T) {
	ctx := context.Background()
	s := NewCommunityStore(cache.NewMemoryKV())

	require.NoError(t, s.Save(ctx, models.CommunityRecipe{Recipe: models.Recipe{ID: "c1", Title: "Bowl"}}))
	require.NoError(t, s.AddFavorite(ctx, "u1", "c1"))
	require.NoError(t, s.AddFavorite(ctx, "u1", "c1"))

	fav, err := s.Favorites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, fav)

	fav, _ = s.Favorites(ctx, "u2")
	assert.Empty(t, fav)
}
