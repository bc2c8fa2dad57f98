package services

import (
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
)

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func seedRecipes() []models.Recipe {
	return []models.Recipe{
		{
			ID:           "1",
			Title:        "Grilled Chicken Salad",
			Description:  "A healthy grilled chicken served with fresh mixed greens and light vinaigrette.",
			Author:       "Sarah Johnson",
			Ingredients:  []string{"2 chicken breasts", "4 cups mixed greens", "1 cucumber", "2 tomatoes", "2 tbsp olive oil", "1 tbsp balsamic vinegar"},
			Instructions: []string{"Grill chicken until cooked", "Slice chicken into strips", "Toss greens and vegetables", "Add chicken on top", "Drizzle with dressing"},
			Servings:     2,
			PrepTime:     20,
			Calories:     320,
			DietType:     models.DietHighProtein,
			Cuisine:      "Mediterranean",
			Rating:       4.8,
			Likes:        234,
			Ratings:      []models.Rating{},
			CreatedAt:    day("2024-02-15"),
		},
		{
			ID:           "2",
			Title:        "Vegetable Stir Fry",
			Description:  "Colorful mix of fresh vegetables with garlic and ginger.",
			Author:       "Mike Chen",
			Ingredients:  []string{"2 cups broccoli", "1 bell pepper", "1 carrot", "2 cloves garlic", "1 tbsp soy sauce", "1 tsp ginger"},
			Instructions: []string{"Chop all vegetables", "Heat wok over high heat", "Stir fry vegetables", "Add soy sauce and ginger", "Serve hot"},
			Servings:     3,
			PrepTime:     15,
			Calories:     180,
			DietType:     models.DietVegan,
			Cuisine:      "Asian",
			Rating:       4.5,
			Likes:        189,
			Ratings:      []models.Rating{},
			CreatedAt:    day("2024-02-14"),
		},
		{
			ID:           "3",
			Title:        "Protein Smoothie Bowl",
			Description:  "Delicious protein-packed smoothie bowl with granola and berries.",
			Author:       "Emma Lee",
			Ingredients:  []string{"1 cup Greek yogurt", "1 banana", "1 cup berries", "1 tbsp honey", "1/4 cup granola", "1/4 cup coconut"},
			Instructions: []string{"Blend yogurt and berries", "Pour into bowl", "Top with granola and coconut", "Add honey drizzle"},
			Servings:     1,
			PrepTime:     5,
			Calories:     380,
			DietType:     models.DietBalanced,
			Cuisine:      "American",
			Rating:       4.9,
			Likes:        456,
			Ratings:      []models.Rating{},
			CreatedAt:    day("2024-02-13"),
		},
	}
}

func seedCommunity() []models.CommunityRecipe {
	return []models.CommunityRecipe{
		{
			Recipe: models.Recipe{
				ID:           "1",
				Title:        "Grilled Chicken Salad with Avocado",
				Description:  "A healthy high-protein salad with grilled chicken breast and creamy avocado.",
				Author:       "Sarah Johnson",
				Ingredients:  []string{"2 chicken breasts", "4 cups mixed greens", "1 avocado", "2 tomatoes", "1 cucumber", "2 tbsp olive oil"},
				Instructions: []string{"Grill chicken", "Slice chicken", "Arrange greens", "Top with vegetables", "Drizzle with dressing"},
				Servings:     2,
				PrepTime:     20,
				Calories:     320,
				DietType:     models.DietHighProtein,
				Cuisine:      "Mediterranean",
				Rating:       4.8,
				Likes:        234,
				Ratings: []models.Rating{
					{UserName: "Mike", Score: 5, Comment: "Absolutely delicious!"},
					{UserName: "Emma", Score: 5, Comment: "My new favorite!"},
				},
				CreatedAt: day("2024-02-15"),
			},
			Shares:   45,
			IsPublic: true,
			Comments: []models.Comment{},
		},
		{
			Recipe: models.Recipe{
				ID:           "2",
				Title:        "Vegan Buddha Bowl",
				Description:  "Colorful and nutritious vegan bowl with quinoa and roasted vegetables.",
				Author:       "Mike Chen",
				Ingredients:  []string{"1 cup quinoa", "2 cups broccoli", "1 sweet potato", "1 bell pepper", "2 tbsp tahini"},
				Instructions: []string{"Cook quinoa", "Roast vegetables", "Assemble bowl", "Drizzle with tahini"},
				Servings:     1,
				PrepTime:     30,
				Calories:     450,
				DietType:     models.DietVegan,
				Cuisine:      "Asian",
				Rating:       4.6,
				Likes:        189,
				Ratings:      []models.Rating{},
				CreatedAt:    day("2024-02-14"),
			},
			Shares:   32,
			IsPublic: true,
			Comments: []models.Comment{},
		},
		{
			Recipe: models.Recipe{
				ID:           "3",
				Title:        "Low-Calorie Green Soup",
				Description:  "Light and refreshing green vegetable soup perfect for weight loss.",
				Author:       "Emma Lee",
				Ingredients:  []string{"2 cups spinach", "1 cup broccoli", "1 onion", "2 cloves garlic", "4 cups broth"},
				Instructions: []string{"Saute onions and garlic", "Add vegetables", "Simmer 15 minutes", "Blend until smooth"},
				Servings:     4,
				PrepTime:     25,
				Calories:     95,
				DietType:     models.DietLowCalorie,
				Cuisine:      "American",
				Rating:       4.7,
				Likes:        256,
				Ratings: []models.Rating{
					{UserName: "John", Score: 5, Comment: "Great for dieting!"},
				},
				CreatedAt: day("2024-02-13"),
			},
			Shares:   78,
			IsPublic: true,
			Comments: []models.Comment{},
		},
	}
}
