package services

import (
	"context"
	"fmt"
	"strings"

	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/database/repositories"
)

// ShoppingListFileName is the attachment name of the downloaded list.
const ShoppingListFileName = "shopping_list.txt"

// RenderShoppingList formats aggregated cart items as the downloadable
// plain-text list: a header, one bulleted line per ingredient (or a
// "cart is empty" note), and a footer.
func RenderShoppingList(items []repositories.ShoppingListItem) string {
	lines := []string{"Список покупок от Foodgram:", ""}
	if len(items) == 0 {
		lines = append(lines,
			"Ваша корзина пуста.\nДобавьте рецепты в корзину, чтобы создать список покупок.\n")
	} else {
		for _, item := range items {
			lines = append(lines,
				fmt.Sprintf("• %s (%s) - %d", item.Name, item.MeasurementUnit, item.TotalAmount))
		}
	}
	lines = append(lines, "", "Приятного аппетита!", "", "---", "Создано с помощью Foodgram")
	return strings.Join(lines, "\n")
}

// BuildShoppingList aggregates the viewer's cart and renders the list.
func (s *RecipeService) BuildShoppingList(ctx context.Context, viewer *dbmodels.User) (string, error) {
	items, err := s.repos.ShoppingCart.AggregateIngredients(ctx, viewer.ID)
	if err != nil {
		return "", err
	}
	return RenderShoppingList(items), nil
}
