package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/catalog"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
)

// Metrics are one day's totals. Macros are estimated from calories with a
// fixed 25/50/25 protein/carb/fat split.
type Metrics struct {
	Calories    int `json:"calories"`
	Protein     int `json:"protein"`
	Carbs       int `json:"carbs"`
	Fat         int `json:"fat"`
	LoggedCount int `json:"loggedCount"`
}

func DailyMetrics(meals []models.Meal) Metrics {
	var cal float64
	for _, m := range meals {
		cal += m.ItemCalories()
	}
	return Metrics{
		Calories:    int(math.Round(cal)),
		Protein:     int(math.Round(cal * 0.25 / 4)),
		Carbs:       int(math.Round(cal * 0.50 / 4)),
		Fat:         int(math.Round(cal * 0.25 / 9)),
		LoggedCount: len(meals),
	}
}

const (
	SlotLogged    = "logged"
	SlotNotLogged = "not-logged"
)

type TimelineEntry struct {
	Time     string  `json:"time"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Status   string  `json:"status"`
	MealID   string  `json:"mealId,omitempty"`
}

// MealTimeline lays the day's meals onto the phase slots. When two meals share
// a slot only the first one is shown.
func MealTimeline(slots []string, meals []models.Meal) []TimelineEntry {
	out := make([]TimelineEntry, 0, len(slots))
	for _, slot := range slots {
		e := TimelineEntry{Time: slot, Name: "Not logged", Status: SlotNotLogged}
		for _, m := range meals {
			if m.MealTimeSlot == slot {
				e.Name = m.FoodNames()
				e.Calories = m.ItemCalories()
				e.Status = SlotLogged
				e.MealID = m.ID
				break
			}
		}
		out = append(out, e)
	}
	return out
}

type TrendLabelMode int

const (
	// TrendLabelsStatic labels the seven points Mon..Sun by position.
	TrendLabelsStatic TrendLabelMode = iota
	// TrendLabelsWeekday labels each point with its real weekday.
	TrendLabelsWeekday
)

func ParseTrendLabelMode(s string) (TrendLabelMode, error) {
	switch s {
	case "", "static":
		return TrendLabelsStatic, nil
	case "weekday":
		return TrendLabelsWeekday, nil
	}
	return TrendLabelsStatic, fmt.Errorf("unknown trend label mode %q", s)
}

var staticWeekLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type TrendPoint struct {
	Label    string  `json:"label"`
	Date     string  `json:"date"`
	Calories int     `json:"calories"`
	Target   float64 `json:"target"`
}

// WeeklyTrend covers today-6 through today, oldest first.
func WeeklyTrend(today time.Time, mealsByDate map[string][]models.Meal, target float64, mode TrendLabelMode) []TrendPoint {
	out := make([]TrendPoint, 0, 7)
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i-6)
		date := d.Format(dateLayout)
		label := staticWeekLabels[i]
		if mode == TrendLabelsWeekday {
			label = d.Weekday().String()[:3]
		}
		out = append(out, TrendPoint{
			Label:    label,
			Date:     date,
			Calories: DailyMetrics(mealsByDate[date]).Calories,
			Target:   target,
		})
	}
	return out
}

type Dashboard struct {
	Date       string                 `json:"date"`
	Phase      models.Phase           `json:"phase"`
	Metrics    Metrics                `json:"metrics"`
	Target     float64                `json:"target"`
	Percentage int                    `json:"percentage"`
	Remaining  float64                `json:"remaining"`
	Timeline   []TimelineEntry        `json:"timeline"`
	SlotCount  int                    `json:"slotCount"`
	Wellness   *models.WellnessRecord `json:"wellness"`
	Trend      []TrendPoint           `json:"trend"`
}

type DashboardService struct {
	meals     *MealService
	wellness  *WellnessService
	profiles  *ProfileService
	cat       *catalog.Catalog
	labelMode TrendLabelMode
}

func NewDashboardService(meals *MealService, wellness *WellnessService, profiles *ProfileService, cat *catalog.Catalog, labelMode TrendLabelMode) *DashboardService {
	return &DashboardService{meals: meals, wellness: wellness, profiles: profiles, cat: cat, labelMode: labelMode}
}

// Dashboard builds the day view; an empty phase key means the default phase.
func (s *DashboardService) Dashboard(ctx context.Context, user models.AuthUser, date, phaseKey string) (Dashboard, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return Dashboard{}, invalid("Invalid date, expected YYYY-MM-DD")
	}
	phase := s.cat.DefaultPhase()
	if phaseKey != "" {
		p, ok := s.cat.Phase(phaseKey)
		if !ok {
			return Dashboard{}, invalid("Unknown phase " + phaseKey)
		}
		phase = p
	}

	profile, err := s.profiles.GetProfile(ctx, user)
	if err != nil {
		return Dashboard{}, err
	}
	target := profile.TargetCalories
	if target <= 0 {
		target = models.DefaultTargetCalories
	}

	from := day.AddDate(0, 0, -6).Format(dateLayout)
	week, err := s.meals.GetMealsRange(ctx, user.ID, from, date)
	if err != nil {
		return Dashboard{}, err
	}
	byDate := GroupByDate(week)
	today := byDate[date]

	metrics := DailyMetrics(today)
	out := Dashboard{
		Date:       date,
		Phase:      phase,
		Metrics:    metrics,
		Target:     target,
		Percentage: int(math.Round(float64(metrics.Calories) / target * 100)),
		Remaining:  target - float64(metrics.Calories),
		Timeline:   MealTimeline(phase.MealTimes, today),
		SlotCount:  len(phase.MealTimes),
		Trend:      WeeklyTrend(day, byDate, target, s.labelMode),
	}

	rec, err := s.wellness.GetWellness(ctx, user.ID, date)
	switch {
	case err == nil:
		out.Wellness = &rec
	case !errors.Is(err, repositories.ErrNotFound):
		return Dashboard{}, err
	}
	return out, nil
}
