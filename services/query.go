package services

import (
	"sort"
	"strings"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
)

const filterAll = "all"

// Recipe sort keys.
const (
	SortNewest    = "newest"
	SortLowestCal = "lowestCal"
	SortQuickest  = "quickest"
	SortRating    = "rating"
	SortTopRated  = "topRated"
	SortPopular   = "popular"
	SortTrending  = "trending"
)

// Goal sort keys.
const (
	SortGoalNewest   = "newest"
	SortGoalProgress = "progress"
	SortGoalName     = "name"
)

// RecipeQuery is the list pipeline: text filter, diet filter, then sort.
type RecipeQuery struct {
	Search   string `form:"q"`
	DietType string `form:"dietType"`
	Sort     string `form:"sort"`
}

type GoalQuery struct {
	Search   string `form:"q"`
	GoalType string `form:"goalType"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Sort     string `form:"sort"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesAny(q string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, q) {
			return true
		}
	}
	return false
}

func bypass(v string) bool { return v == "" || v == filterAll }

// TrendingScore ranks by likes plus ten per rating.
func TrendingScore(r models.Recipe) int { return r.Likes + len(r.Ratings)*10 }

// recipeLess returns the comparator for a sort key, or nil to keep input order.
func recipeLess(key string, popular func(i int) int, get func(i int) models.Recipe) func(i, j int) bool {
	switch key {
	case SortNewest:
		return func(i, j int) bool { return get(i).CreatedAt.After(get(j).CreatedAt) }
	case SortLowestCal:
		return func(i, j int) bool { return get(i).Calories < get(j).Calories }
	case SortQuickest:
		return func(i, j int) bool { return get(i).PrepTime < get(j).PrepTime }
	case SortRating, SortTopRated:
		return func(i, j int) bool { return get(i).Rating > get(j).Rating }
	case SortPopular:
		return func(i, j int) bool { return popular(i) > popular(j) }
	case SortTrending:
		return func(i, j int) bool { return TrendingScore(get(i)) > TrendingScore(get(j)) }
	}
	return nil
}

// QueryRecipes filters on title/description/author and diet type, then sorts
// stably. Popular sorts by likes.
func QueryRecipes(list []models.Recipe, q RecipeQuery) []models.Recipe {
	out := []models.Recipe{}
	for _, r := range list {
		if q.Search != "" && !matchesAny(q.Search, r.Title, r.Description, r.Author) {
			continue
		}
		if !bypass(q.DietType) && r.DietType != q.DietType {
			continue
		}
		out = append(out, r)
	}
	get := func(i int) models.Recipe { return out[i] }
	if less := recipeLess(q.Sort, func(i int) int { return out[i].Likes }, get); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

// QueryCommunity is QueryRecipes for shared recipes; popular sorts by shares.
func QueryCommunity(list []models.CommunityRecipe, q RecipeQuery) []models.CommunityRecipe {
	out := []models.CommunityRecipe{}
	for _, r := range list {
		if q.Search != "" && !matchesAny(q.Search, r.Title, r.Description, r.Author) {
			continue
		}
		if !bypass(q.DietType) && r.DietType != q.DietType {
			continue
		}
		out = append(out, r)
	}
	get := func(i int) models.Recipe { return out[i].Recipe }
	if less := recipeLess(q.Sort, func(i int) int { return out[i].Shares }, get); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

func QueryGoals(list []models.Goal, q GoalQuery) []models.Goal {
	out := []models.Goal{}
	for _, g := range list {
		if q.Search != "" && !matchesAny(q.Search, g.Name, g.Description) {
			continue
		}
		if !bypass(q.GoalType) && g.GoalType != q.GoalType {
			continue
		}
		if !bypass(q.Category) && g.Category != q.Category {
			continue
		}
		if !bypass(q.Status) && g.Status != q.Status {
			continue
		}
		out = append(out, g)
	}
	switch q.Sort {
	case SortGoalNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortGoalProgress:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Progress() > out[j].Progress() })
	case SortGoalName:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	}
	return out
}
