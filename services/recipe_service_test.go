package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/database/repositories"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
	"github.com/foodgram-app/backend/utils"
)

func TestRecipeCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	tag := env.store.SeedTag("Завтрак", "breakfast")
	flour := env.store.SeedIngredient("Мука", "г")

	valid := func() models.RecipeWriteRequest {
		return models.RecipeWriteRequest{
			Ingredients: []models.IngredientAmountRequest{{ID: flour.ID, Amount: 100}},
			Tags:        []int64{tag.ID},
			Image:       pngPixel,
			Name:        "Блины",
			Text:        "Смешать и жарить.",
			CookingTime: 20,
		}
	}

	tests := []struct {
		name      string
		mutate    func(*models.RecipeWriteRequest)
		wantField string
	}{
		{"missing name", func(r *models.RecipeWriteRequest) { r.Name = "" }, "name"},
		{"missing text", func(r *models.RecipeWriteRequest) { r.Text = "" }, "text"},
		{"missing image", func(r *models.RecipeWriteRequest) { r.Image = "" }, "image"},
		{"garbage image", func(r *models.RecipeWriteRequest) { r.Image = "not base64 at all!!" }, "image"},
		{"cooking time too low", func(r *models.RecipeWriteRequest) { r.CookingTime = 0 }, "cooking_time"},
		{"cooking time too high", func(r *models.RecipeWriteRequest) { r.CookingTime = 32001 }, "cooking_time"},
		{"no ingredients", func(r *models.RecipeWriteRequest) { r.Ingredients = nil }, "ingredients"},
		{"duplicate ingredients", func(r *models.RecipeWriteRequest) {
			r.Ingredients = append(r.Ingredients, r.Ingredients[0])
		}, "ingredients"},
		{"unknown ingredient", func(r *models.RecipeWriteRequest) {
			r.Ingredients = []models.IngredientAmountRequest{{ID: 9999, Amount: 10}}
		}, "ingredients"},
		{"amount too low", func(r *models.RecipeWriteRequest) {
			r.Ingredients[0].Amount = 0
		}, "ingredients"},
		{"amount too high", func(r *models.RecipeWriteRequest) {
			r.Ingredients[0].Amount = 32001
		}, "ingredients"},
		{"no tags", func(r *models.RecipeWriteRequest) { r.Tags = nil }, "tags"},
		{"duplicate tags", func(r *models.RecipeWriteRequest) { r.Tags = []int64{tag.ID, tag.ID} }, "tags"},
		{"unknown tag", func(r *models.RecipeWriteRequest) { r.Tags = []int64{9999} }, "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			_, err := env.recipes.Create(context.Background(), author, &req)
			require.Error(t, err)

			var verr *utils.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestRecipeCreateAndView(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	tag := env.store.SeedTag("Обед", "lunch")
	flour := env.store.SeedIngredient("Мука", "г")
	sugar := env.store.SeedIngredient("Сахар", "г")

	view := env.newRecipe(t, author, "Пирог", []int64{tag.ID}, []models.IngredientAmountRequest{
		{ID: flour.ID, Amount: 500},
		{ID: sugar.ID, Amount: 100},
	})

	assert.Equal(t, "Пирог", view.Name)
	assert.Equal(t, author.ID, view.Author.ID)
	assert.False(t, view.Author.IsSubscribed)
	assert.False(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, "lunch", view.Tags[0].Slug)
	require.Len(t, view.Ingredients, 2)
	assert.Equal(t, "Мука", view.Ingredients[0].Name)
	assert.Equal(t, 500, view.Ingredients[0].Amount)
	assert.Contains(t, view.Image, "https://media.test/recipes/")
	assert.Equal(t, 1, env.storage.Len())
}

func TestRecipeUpdateReplacesRelations(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	breakfast := env.store.SeedTag("Завтрак", "breakfast")
	lunch := env.store.SeedTag("Обед", "lunch")
	flour := env.store.SeedIngredient("Мука", "г")
	milk := env.store.SeedIngredient("Молоко", "мл")

	view := env.newRecipe(t, author, "Блины", []int64{breakfast.ID}, []models.IngredientAmountRequest{
		{ID: flour.ID, Amount: 200},
	})

	updated, err := env.recipes.Update(context.Background(), author, view.ID, &models.RecipeWriteRequest{
		Ingredients: []models.IngredientAmountRequest{{ID: milk.ID, Amount: 300}},
		Tags:        []int64{lunch.ID},
		Name:        "Блины на молоке",
		Text:        "Обновлённое описание.",
		CookingTime: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, "Блины на молоке", updated.Name)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "lunch", updated.Tags[0].Slug)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Молоко", updated.Ingredients[0].Name)
	// image untouched when the payload omits it
	assert.Equal(t, view.Image, updated.Image)
}

// brokenRecipeRepo fails every relation write, leaving reads intact.
type brokenRecipeRepo struct {
	repositories.RecipeRepository
}

func (r brokenRecipeRepo) CreateWithRelations(context.Context, *dbmodels.Recipe, []int64, []*dbmodels.RecipeIngredient) error {
	return errors.New("write failed")
}

func (r brokenRecipeRepo) UpdateWithRelations(context.Context, *dbmodels.Recipe, []int64, []*dbmodels.RecipeIngredient) error {
	return errors.New("write failed")
}

func TestRecipeWriteFailureCleansUpImage(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	tag := env.store.SeedTag("Ужин", "dinner")
	flour := env.store.SeedIngredient("Мука", "г")

	view := env.newRecipe(t, author, "Паста", []int64{tag.ID}, []models.IngredientAmountRequest{
		{ID: flour.ID, Amount: 100},
	})
	require.Equal(t, 1, env.storage.Len())

	brokenRepos := *env.repos
	brokenRepos.Recipe = brokenRecipeRepo{env.repos.Recipe}
	broken := services.NewRecipeService(&brokenRepos, env.storage)

	req := &models.RecipeWriteRequest{
		Ingredients: []models.IngredientAmountRequest{{ID: flour.ID, Amount: 50}},
		Tags:        []int64{tag.ID},
		Image:       pngPixel,
		Name:        "Паста с сыром",
		Text:        "Обновлённое описание.",
		CookingTime: 20,
	}

	// a failed update must not leave the freshly uploaded image behind
	_, err := broken.Update(context.Background(), author, view.ID, req)
	require.Error(t, err)
	assert.Equal(t, 1, env.storage.Len())

	// same guarantee on create
	_, err = broken.Create(context.Background(), author, req)
	require.Error(t, err)
	assert.Equal(t, 1, env.storage.Len())

	// the original image is still served
	unchanged := mustGetRecipe(t, env, view.ID)
	assert.True(t, env.storage.Has(unchanged.Image))
}

func TestRecipeUpdateForbiddenForNonAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	intruder := env.newUser(t, "intruder")
	tag := env.store.SeedTag("Ужин", "dinner")
	flour := env.store.SeedIngredient("Мука", "г")

	view := env.newRecipe(t, author, "Паста", []int64{tag.ID}, []models.IngredientAmountRequest{
		{ID: flour.ID, Amount: 100},
	})

	_, err := env.recipes.Update(context.Background(), intruder, view.ID, &models.RecipeWriteRequest{
		Ingredients: []models.IngredientAmountRequest{{ID: flour.ID, Amount: 1}},
		Tags:        []int64{tag.ID},
		Name:        "x", Text: "y", CookingTime: 1,
	})
	assert.ErrorIs(t, err, services.ErrNotRecipeAuthor)

	err = env.recipes.Delete(context.Background(), intruder, view.ID)
	assert.ErrorIs(t, err, services.ErrNotRecipeAuthor)
}

func TestRecipeDeleteRemovesImage(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	tag := env.store.SeedTag("Ужин", "dinner")
	flour := env.store.SeedIngredient("Мука", "г")

	view := env.newRecipe(t, author, "Паста", []int64{tag.ID}, []models.IngredientAmountRequest{
		{ID: flour.ID, Amount: 100},
	})
	require.Equal(t, 1, env.storage.Len())

	require.NoError(t, env.recipes.Delete(context.Background(), author, view.ID))
	assert.Equal(t, 0, env.storage.Len())

	_, err := env.recipes.GetRecipe(context.Background(), view.ID)
	assert.ErrorIs(t, err, services.ErrRecipeNotFound)
}

func TestFavoriteToggle(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	viewer := env.newUser(t, "viewer")
	tag := env.store.SeedTag("Завтрак", "breakfast")
	flour := env.store.SeedIngredient("Мука", "г")

	recipe := env.newRecipe(t, author, "Каша", []int64{tag.ID}, []models.IngredientAmountRequest{
		{ID: flour.ID, Amount: 50},
	})

	minified, err := env.recipes.AddFavorite(context.Background(), viewer, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, minified.ID)
	assert.Equal(t, recipe.Name, minified.Name)

	_, err = env.recipes.AddFavorite(context.Background(), viewer, recipe.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyAdded)

	view, err := env.recipes.BuildRecipeView(context.Background(), mustGetRecipe(t, env, recipe.ID), viewer)
	require.NoError(t, err)
	assert.True(t, view.IsFavorited)

	require.NoError(t, env.recipes.RemoveFavorite(context.Background(), viewer, recipe.ID))
	assert.ErrorIs(t, env.recipes.RemoveFavorite(context.Background(), viewer, recipe.ID), services.ErrNotAdded)

	_, err = env.recipes.AddFavorite(context.Background(), viewer, 9999)
	assert.ErrorIs(t, err, services.ErrRecipeNotFound)
}

func TestShoppingCartToggle(t *testing.T) {
	env := newTestEnv(t)
	author := env.newUser(t, "cook")
	tag := env.store.SeedTag("Обед", "lunch")
	flour := env.store.SeedIngredient("Мука", "г")

	recipe := env.newRecipe(t, author, "Хлеб", []int64{tag.ID}, []models.IngredientAmountRequest{
		{ID: flour.ID, Amount: 400},
	})

	_, err := env.recipes.AddToCart(context.Background(), author, recipe.ID)
	require.NoError(t, err)

	_, err = env.recipes.AddToCart(context.Background(), author, recipe.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyAdded)

	require.NoError(t, env.recipes.RemoveFromCart(context.Background(), author, recipe.ID))
	assert.ErrorIs(t, env.recipes.RemoveFromCart(context.Background(), author, recipe.ID), services.ErrNotAdded)
}

func TestRecipeListFilters(t *testing.T) {
	env := newTestEnv(t)
	alice := env.newUser(t, "alice")
	bob := env.newUser(t, "bob")
	breakfast := env.store.SeedTag("Завтрак", "breakfast")
	dinner := env.store.SeedTag("Ужин", "dinner")
	flour := env.store.SeedIngredient("Мука", "г")

	line := []models.IngredientAmountRequest{{ID: flour.ID, Amount: 10}}
	env.newRecipe(t, alice, "Каша", []int64{breakfast.ID}, line)
	pasta := env.newRecipe(t, bob, "Паста", []int64{dinner.ID}, line)
	env.newRecipe(t, bob, "Омлет", []int64{breakfast.ID, dinner.ID}, line)

	_, err := env.recipes.AddFavorite(context.Background(), alice, pasta.ID)
	require.NoError(t, err)

	list := func(filter repositories.RecipeFilter) []string {
		views, total, err := env.recipes.List(context.Background(), alice, filter)
		require.NoError(t, err)
		require.Equal(t, len(views), total)
		names := make([]string, len(views))
		for i, view := range views {
			names[i] = view.Name
		}
		return names
	}

	// newest first
	assert.Equal(t, []string{"Омлет", "Паста", "Каша"}, list(repositories.RecipeFilter{}))
	// any-of tag match
	assert.Equal(t, []string{"Омлет", "Каша"}, list(repositories.RecipeFilter{TagSlugs: []string{"breakfast"}}))
	assert.Equal(t, []string{"Омлет", "Паста", "Каша"}, list(repositories.RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}}))
	assert.Equal(t, []string{"Омлет", "Паста"}, list(repositories.RecipeFilter{AuthorID: bob.ID}))
	assert.Equal(t, []string{"Паста"}, list(repositories.RecipeFilter{FavoritedBy: alice.ID}))
	assert.Empty(t, list(repositories.RecipeFilter{InCartOf: alice.ID}))
}

func mustGetRecipe(t *testing.T, env *testEnv, id int64) *dbmodels.Recipe {
	t.Helper()
	recipe, err := env.recipes.GetRecipe(context.Background(), id)
	require.NoError(t, err)
	return recipe
}
