package services

import (
	"testing"
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meal(id, date, slot string, items ...models.FoodItem) models.Meal {
	m := models.Meal{ID: id, Date: date, MealTimeSlot: slot, FoodItems: items}
	m.Calories = m.ItemCalories()
	return m
}

func item(name string, cal float64) models.FoodItem {
	return models.FoodItem{FoodName: name, Quantity: 1, Unit: "g", Calories: cal}
}

func TestDailyMetricsEmpty(t *testing.T) {
	assert.Equal(t, Metrics{}, DailyMetrics(nil))
	assert.Equal(t, Metrics{}, DailyMetrics([]models.Meal{}))
}

func TestDailyMetricsSumsItems(t *testing.T) {
	meals := []models.Meal{
		meal("1", "2024-03-01", "6:00 AM", item("Oats", 113), item("Banana", 89)),
		meal("2", "2024-03-01", "9:00 AM", item("Apple", 130)),
	}
	m := DailyMetrics(meals)
	assert.Equal(t, 332, m.Calories)
	assert.Equal(t, 21, m.Protein) // 332*.25/4 = 20.75
	assert.Equal(t, 42, m.Carbs)   // 332*.5/4 = 41.5
	assert.Equal(t, 9, m.Fat)      // 332*.25/9 = 9.22
	assert.Equal(t, 2, m.LoggedCount)
	assert.InDelta(t, m.Calories, m.Protein*4+m.Carbs*4+m.Fat*9, 10)
}

func TestMealTimelineFirstMealWins(t *testing.T) {
	slots := []string{"6:00 AM", "9:00 AM", "12:00 PM"}
	meals := []models.Meal{
		meal("a", "2024-03-01", "9:00 AM", item("Oats", 113), item("Banana", 89)),
		meal("b", "2024-03-01", "9:00 AM", item("Apple", 130)),
	}
	tl := MealTimeline(slots, meals)
	require.Len(t, tl, 3)

	assert.Equal(t, SlotNotLogged, tl[0].Status)
	assert.Zero(t, tl[0].Calories)

	assert.Equal(t, SlotLogged, tl[1].Status)
	assert.Equal(t, "Oats, Banana", tl[1].Name)
	assert.Equal(t, float64(202), tl[1].Calories)
	assert.Equal(t, "a", tl[1].MealID)

	assert.Equal(t, SlotNotLogged, tl[2].Status)
}

func TestWeeklyTrendStaticLabels(t *testing.T) {
	// 2024-03-06 is a Wednesday
	today := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	byDate := map[string][]models.Meal{
		"2024-03-06": {meal("1", "2024-03-06", "6:00 AM", item("Apple", 130))},
		"2024-02-29": {meal("2", "2024-02-29", "6:00 AM", item("Oats", 113))},
	}

	pts := WeeklyTrend(today, byDate, 850, TrendLabelsStatic)
	require.Len(t, pts, 7)
	assert.Equal(t, "Mon", pts[0].Label)
	assert.Equal(t, "2024-02-29", pts[0].Date)
	assert.Equal(t, 113, pts[0].Calories)
	assert.Equal(t, "Sun", pts[6].Label)
	assert.Equal(t, "2024-03-06", pts[6].Date)
	assert.Equal(t, 130, pts[6].Calories)
	for _, p := range pts {
		assert.Equal(t, float64(850), p.Target)
	}

	pts = WeeklyTrend(today, byDate, 850, TrendLabelsWeekday)
	assert.Equal(t, "Thu", pts[0].Label)
	assert.Equal(t, "Wed", pts[6].Label)
}

func TestParseTrendLabelMode(t *testing.T) {
	m, err := ParseTrendLabelMode("weekday")
	require.NoError(t, err)
	assert.Equal(t, TrendLabelsWeekday, m)
	_, err = ParseTrendLabelMode("lunar")
	assert.Error(t, err)
}

func TestBuildHistory(t *testing.T) {
	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}
	byDate := map[string][]models.Meal{
		"2024-03-01": {meal("1", "2024-03-01", "6:00 AM", item("Apple", 130))},
		"2024-03-03": {meal("2", "2024-03-03", "6:00 AM", item("Oats", 113)), meal("3", "2024-03-03", "9:00 AM", item("Apple Juice", 100))},
	}
	records := []models.WellnessRecord{{Date: "2024-03-02", EnergyLevel: 3}}

	h := BuildHistory(dates, byDate, records, HistoryAll, "")
	require.Len(t, h.Days, 4)
	assert.Equal(t, "2024-03-04", h.Days[0].Date)
	assert.Equal(t, DayPending, h.Days[0].Status)
	assert.Equal(t, DayLogged, h.Days[1].Status)
	assert.Equal(t, float64(213), h.Days[1].TotalCalories)
	assert.NotNil(t, h.Days[2].Wellness)
	assert.Equal(t, HistoryStats{TotalDays: 4, DaysLogged: 2, TotalCalories: 343, AvgCalories: 86, TotalMeals: 3}, h.Stats)

	h = BuildHistory(dates, byDate, records, HistoryAll, "apple")
	assert.Equal(t, 2, h.Stats.TotalMeals)
	assert.Equal(t, float64(230), h.Stats.TotalCalories)

	assert.Len(t, BuildHistory(dates, byDate, records, HistoryFood, "").Days, 2)
	assert.Len(t, BuildHistory(dates, byDate, records, HistoryWellness, "").Days, 1)

	empty := BuildHistory(dates, nil, nil, HistoryAll, "")
	assert.Zero(t, empty.Stats.AvgCalories)
}

func TestHistoryAndDashboardAgreeOnCalories(t *testing.T) {
	m := meal("1", "2024-03-01", "6:00 AM", item("Apple", 130), item("Oats", 113))
	m.Calories = 999 // stale stored total

	byDate := map[string][]models.Meal{"2024-03-01": {m}}
	h := BuildHistory([]string{"2024-03-01"}, byDate, nil, HistoryAll, "")
	require.Len(t, h.Days, 1)
	assert.Equal(t, float64(243), h.Days[0].TotalCalories)
	assert.Equal(t, float64(243), h.Stats.TotalCalories)
	assert.Equal(t, 243, DailyMetrics(byDate["2024-03-01"]).Calories)
}

func TestDateRange(t *testing.T) {
	days, err := dateRange("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, days)

	_, err = dateRange("2024-03-02", "2024-03-01")
	assert.True(t, IsValidation(err))
	_, err = dateRange("2023-01-01", "2024-03-01")
	assert.True(t, IsValidation(err))
}
