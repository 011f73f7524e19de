package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/recipebook/apiserver/types"
)

// maxIngredientSlots is the bounded number of ingredient/measure pairs the
// upstream record format defines.
const maxIngredientSlots = 20

// ingredientSlot pairs a measure with an ingredient name at one index of the
// upstream record.
type ingredientSlot struct {
	Measure    string
	Ingredient string
}

// mealRecord is a raw catalog record. The indexed strIngredientN/strMeasureN
// fields are collected into a fixed-size slot array during unmarshalling.
type mealRecord struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Image        string
	Slots        [maxIngredientSlots]ingredientSlot
}

func (m *mealRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	field := func(key string) string {
		if v := raw[key]; v != nil {
			return *v
		}
		return ""
	}

	m.ID = field("idMeal")
	m.Name = field("strMeal")
	m.Category = field("strCategory")
	m.Area = field("strArea")
	m.Instructions = field("strInstructions")
	m.Image = field("strMealThumb")
	for i := range m.Slots {
		m.Slots[i] = ingredientSlot{
			Measure:    field(fmt.Sprintf("strMeasure%d", i+1)),
			Ingredient: field(fmt.Sprintf("strIngredient%d", i+1)),
		}
	}
	return nil
}

// normalize converts a raw record into the internal recipe shape. Records
// missing an id or a name are reported as invalid and dropped by callers.
func (m *mealRecord) normalize() (types.Recipe, bool) {
	if m.ID == "" || m.Name == "" {
		return types.Recipe{}, false
	}

	ingredients := make([]string, 0, maxIngredientSlots)
	for _, slot := range m.Slots {
		if slot.Ingredient == "" {
			continue
		}
		ingredients = append(ingredients, strings.TrimSpace(slot.Measure+" "+slot.Ingredient))
	}

	return types.Recipe{
		ID:             m.ID,
		Name:           m.Name,
		Category:       m.Category,
		Area:           m.Area,
		Image:          m.Image,
		Instructions:   splitInstructions(m.Instructions),
		IngredientList: ingredients,
	}, true
}

// splitInstructions breaks the free-text instructions field into ordered
// steps: split on ".", trim each fragment, drop empties.
func splitInstructions(raw string) []string {
	parts := strings.Split(raw, ".")
	steps := make([]string, 0, len(parts))
	for _, part := range parts {
		if step := strings.TrimSpace(part); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}
