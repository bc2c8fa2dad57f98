package services

import (
	"context"
	"math"
	"strings"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
)

const (
	HistoryAll      = "all"
	HistoryFood     = "food"
	HistoryWellness = "wellness"

	DayLogged  = "logged"
	DayPending = "pending"
)

type HistoryDay struct {
	Date          string                 `json:"date"`
	Meals         []models.Meal          `json:"meals"`
	Wellness      *models.WellnessRecord `json:"wellness"`
	TotalCalories float64                `json:"totalCalories"`
	Status        string                 `json:"status"`
}

type HistoryStats struct {
	TotalDays     int     `json:"totalDays"`
	DaysLogged    int     `json:"daysLogged"`
	TotalCalories float64 `json:"totalCalories"`
	AvgCalories   int     `json:"avgCalories"`
	TotalMeals    int     `json:"totalMeals"`
}

type History struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Days  []HistoryDay `json:"days"`
	Stats HistoryStats `json:"stats"`
}

type HistoryService struct {
	meals    *MealService
	wellness *WellnessService
}

func NewHistoryService(meals *MealService, wellness *WellnessService) *HistoryService {
	return &HistoryService{meals: meals, wellness: wellness}
}

func (s *HistoryService) History(ctx context.Context, userID, from, to, filter, query string) (History, error) {
	if filter == "" {
		filter = HistoryAll
	}
	if filter != HistoryAll && filter != HistoryFood && filter != HistoryWellness {
		return History{}, invalid("Filter must be all, food or wellness")
	}
	dates, err := dateRange(from, to)
	if err != nil {
		return History{}, err
	}
	meals, err := s.meals.GetMealsRange(ctx, userID, from, to)
	if err != nil {
		return History{}, err
	}
	records, err := s.wellness.GetWellnessRange(ctx, userID, from, to)
	if err != nil {
		return History{}, err
	}
	return BuildHistory(dates, GroupByDate(meals), records, filter, query), nil
}

// BuildHistory lays out the dates newest first. The stats count only meals
// whose food names match query; day rows are not narrowed by it.
func BuildHistory(dates []string, mealsByDate map[string][]models.Meal, records []models.WellnessRecord, filter, query string) History {
	wellness := make(map[string]models.WellnessRecord, len(records))
	for _, r := range records {
		wellness[r.Date] = r
	}

	h := History{Days: []HistoryDay{}}
	if len(dates) > 0 {
		h.From, h.To = dates[0], dates[len(dates)-1]
	}
	h.Stats.TotalDays = len(dates)

	for i := len(dates) - 1; i >= 0; i-- {
		date := dates[i]
		meals := mealsByDate[date]
		if meals == nil {
			meals = []models.Meal{}
		}
		day := HistoryDay{Date: date, Meals: meals, Status: DayPending}
		if rec, ok := wellness[date]; ok {
			day.Wellness = &rec
		}
		for _, m := range meals {
			cal := m.ItemCalories()
			day.TotalCalories += cal
			if query == "" || mealMatches(m, query) {
				h.Stats.TotalMeals++
				h.Stats.TotalCalories += cal
			}
		}
		if len(meals) > 0 {
			day.Status = DayLogged
			h.Stats.DaysLogged++
		}

		switch {
		case filter == HistoryFood && len(meals) == 0:
			continue
		case filter == HistoryWellness && day.Wellness == nil:
			continue
		}
		h.Days = append(h.Days, day)
	}

	if h.Stats.TotalMeals > 0 && h.Stats.TotalDays > 0 {
		h.Stats.AvgCalories = int(math.Round(h.Stats.TotalCalories / float64(h.Stats.TotalDays)))
	}
	return h
}

func mealMatches(m models.Meal, query string) bool {
	q := strings.ToLower(query)
	for _, it := range m.FoodItems {
		if strings.Contains(strings.ToLower(it.FoodName), q) {
			return true
		}
	}
	return false
}
