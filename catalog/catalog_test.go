package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 159, c.Count())
	assert.Len(t, c.Categories(), 11)
	assert.Equal(t, "all", c.Categories()[0].Key)
	assert.Equal(t, "v5", c.DefaultPhase().Key)
}

func TestPhaseSlotCounts(t *testing.T) {
	c := MustLoad()
	want := map[string]int{"v0": 5, "v1": 5, "v2": 6, "v3": 7, "v4": 8, "v5": 9, "v6": 10}
	for key, n := range want {
		p, ok := c.Phase(key)
		require.True(t, ok, key)
		assert.Equal(t, n, p.MealsPerDay(), key)
	}
	_, ok := c.Phase("v7")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	c := MustLoad()

	all := c.Filter(CategoryAll, "")
	assert.Len(t, all, c.Count())

	fruits := c.Filter("fruits", "apple")
	names := []string{}
	for _, f := range fruits {
		names = append(names, f.Name)
		assert.Equal(t, "Fruits", f.Category)
	}
	assert.ElementsMatch(t, []string{"Apple", "Pineapple", "Custard Apple"}, names)

	// category and search combine with AND
	assert.Empty(t, c.Filter("dairy", "apple"))
	assert.Empty(t, c.Filter("desserts", ""))

	anyCase := c.Filter("", "ALMOND")
	assert.Len(t, anyCase, 3) // Almonds, Almond Milk, Almond Butter
}

func TestCostScalesLinearly(t *testing.T) {
	c := MustLoad()
	apple, err := c.Lookup("apple")
	require.NoError(t, err)

	assert.Equal(t, float64(130), Cost(apple, 250, "g", UnitStrict))
	assert.Equal(t, float64(52), Cost(apple, 100, "g", UnitStrict))
	assert.Equal(t, float64(0), Cost(apple, 0, "g", UnitStrict))

	rice, _ := c.Lookup("White Rice")
	assert.Equal(t, float64(220), Cost(rice, 60, "g", UnitIgnore))
	// doubling the quantity doubles the calories
	assert.Equal(t, 2*Cost(rice, 45, "g", UnitStrict), Cost(rice, 90, "g", UnitStrict))
}

func TestCostUnitPolicy(t *testing.T) {
	c := MustLoad()
	milk, _ := c.Lookup("Whole Milk")

	assert.Equal(t, float64(0), Cost(milk, 200, "g", UnitStrict))
	assert.Equal(t, float64(122), Cost(milk, 200, "g", UnitIgnore))
	assert.Equal(t, float64(122), Cost(milk, 200, "ML", UnitStrict))

	p, err := ParseUnitPolicy("ignore")
	require.NoError(t, err)
	assert.Equal(t, UnitIgnore, p)
	_, err = ParseUnitPolicy("sometimes")
	assert.Error(t, err)
}

func TestItemAndPrefill(t *testing.T) {
	c := MustLoad()

	qty, unit, err := c.Prefill("Almonds")
	require.NoError(t, err)
	assert.Equal(t, float64(28), qty)
	assert.Equal(t, "g", unit)

	it, err := c.Item("egg whites", 8, "", UnitStrict)
	require.NoError(t, err)
	assert.Equal(t, "Egg Whites", it.FoodName)
	assert.Equal(t, "nos", it.Unit)
	assert.Equal(t, float64(136), it.Calories)

	_, err = c.Item("Unicorn Steak", 1, "g", UnitStrict)
	assert.ErrorIs(t, err, ErrUnknownFood)
}

func TestPhaseSelection(t *testing.T) {
	c := MustLoad()
	s := c.NewSelection()
	assert.Equal(t, "v5", s.Phase())
	assert.Equal(t, "6:00 AM", s.Slot())

	require.NoError(t, s.SelectSlot("1:30 PM"))
	require.NoError(t, s.SelectPhase("v2"))
	assert.Equal(t, "7:30 AM", s.Slot())
	assert.Len(t, s.Slots(), 6)

	assert.Error(t, s.SelectSlot("1:30 PM"))
	assert.Equal(t, "7:30 AM", s.Slot())
	assert.Error(t, s.SelectPhase("v9"))
}
