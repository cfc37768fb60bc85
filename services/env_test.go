package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foodgram-app/backend/config"
	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/database/repositories/mock"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
)

// pngPixel is a valid 1x1 PNG encoded as a data URI.
const pngPixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

type testEnv struct {
	store   *mock.Store
	storage *mock.Storage
	repos   *models.Repositories
	auth    *services.AuthService
	users   *services.UserService
	recipes *services.RecipeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := mock.NewStore()
	storage := mock.NewStorage()
	repos := models.NewRepositories(
		store.Users(),
		store.Tags(),
		store.Ingredients(),
		store.Recipes(),
		store.Favorites(),
		store.ShoppingCarts(),
		store.Subscriptions(),
		store.Tokens(),
	)

	auth, err := services.NewAuthService(repos, config.AuthConfig{
		TokenCacheSize: 16,
		BcryptCost:     4,
	})
	require.NoError(t, err)

	return &testEnv{
		store:   store,
		storage: storage,
		repos:   repos,
		auth:    auth,
		users:   services.NewUserService(repos, storage),
		recipes: services.NewRecipeService(repos, storage),
	}
}

func (env *testEnv) newUser(t *testing.T, username string) *dbmodels.User {
	t.Helper()
	user, err := env.auth.Register(context.Background(), &models.SignupRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Иван",
		LastName:  "Иванов",
		Password:  "s3cret-" + username,
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) newRecipe(t *testing.T, author *dbmodels.User, name string, tagIDs []int64, lines []models.IngredientAmountRequest) *models.RecipeView {
	t.Helper()
	view, err := env.recipes.Create(context.Background(), author, &models.RecipeWriteRequest{
		Ingredients: lines,
		Tags:        tagIDs,
		Image:       pngPixel,
		Name:        name,
		Text:        "Описание рецепта " + name,
		CookingTime: 30,
	})
	require.NoError(t, err)
	return view
}
