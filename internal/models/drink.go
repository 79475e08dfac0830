package models

import (
	"encoding/json"
	"strings"

	"github.com/asaskevich/govalidator"
)

// MaxIngredients is the number of ingredient slots a drink record carries.
const MaxIngredients = 15

// Drink is a single recipe record from the cocktail lookup service. Drinks are
// never modified after they are fetched.
type Drink struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Thumbnail    string                 `json:"thumbnail"`
	Instructions string                 `json:"instructions"`
	Ingredients  [MaxIngredients]string `json:"-"`
}

// NewDrink builds a Drink from the record fields. Slots beyond MaxIngredients
// are dropped. A thumbnail that is not an http(s) URL is discarded so the page
// never renders an arbitrary src.
func NewDrink(id, name, thumbnail, instructions string, ingredients []string) Drink {
	d := Drink{
		ID:           id,
		Name:         name,
		Thumbnail:    sanitizeThumbnail(thumbnail),
		Instructions: instructions,
	}
	copy(d.Ingredients[:], ingredients)
	return d
}

// IngredientNames returns the present ingredient slots in order, stopping at
// the first empty slot.
func (d Drink) IngredientNames() []string {
	names := make([]string, 0, MaxIngredients)
	for _, ing := range d.Ingredients {
		if ing == "" {
			break
		}
		names = append(names, ing)
	}
	return names
}

// MarshalJSON renders the present ingredients as a list instead of the raw
// slot array.
func (d Drink) MarshalJSON() ([]byte, error) {
	type drinkView struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		Thumbnail    string   `json:"thumbnail"`
		Instructions string   `json:"instructions"`
		Ingredients  []string `json:"ingredients"`
	}
	return json.Marshal(drinkView{
		ID:           d.ID,
		Name:         d.Name,
		Thumbnail:    d.Thumbnail,
		Instructions: d.Instructions,
		Ingredients:  d.IngredientNames(),
	})
}

func sanitizeThumbnail(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return ""
	}
	if !govalidator.IsURL(raw) {
		return ""
	}
	return raw
}
