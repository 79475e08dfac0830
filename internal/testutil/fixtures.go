package testutil

import "github.com/windoze95/mixlist/internal/models"

// TestMargarita returns a drink with two ingredients.
func TestMargarita() models.Drink {
	return models.NewDrink(
		"11007",
		"Margarita",
		"https://www.thecocktaildb.com/images/media/drink/5noda61589575158.jpg",
		"Rub the rim of the glass with the lime slice to make the salt stick to it.",
		[]string{"Tequila", "Triple sec"},
	)
}

// TestMojito returns a drink sharing no ingredients with TestMargarita.
func TestMojito() models.Drink {
	return models.NewDrink(
		"11000",
		"Mojito",
		"https://www.thecocktaildb.com/images/media/drink/metwgh1606770327.jpg",
		"Muddle mint leaves with sugar and lime juice.",
		[]string{"Light rum", "Lime", "Sugar", "Mint", "Soda water"},
	)
}
