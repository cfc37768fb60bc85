package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/services"
	"github.com/foodgram-app/backend/utils"
)

func TestSubscribeFlow(t *testing.T) {
	env := newTestEnv(t)
	reader := env.newUser(t, "reader")
	author := env.newUser(t, "author")

	view, err := env.users.Subscribe(context.Background(), reader, author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, view.ID)
	assert.True(t, view.IsSubscribed)
	assert.Equal(t, 0, view.RecipesCount)

	_, err = env.users.Subscribe(context.Background(), reader, author.ID)
	assert.ErrorIs(t, err, services.ErrAlreadySubscribed)

	_, err = env.users.Subscribe(context.Background(), reader, reader.ID)
	assert.ErrorIs(t, err, services.ErrSelfSubscribe)

	_, err = env.users.Subscribe(context.Background(), reader, 9999)
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	require.NoError(t, env.users.Unsubscribe(context.Background(), reader, author.ID))
	assert.ErrorIs(t, env.users.Unsubscribe(context.Background(), reader, author.ID), services.ErrNotSubscribed)
}

func TestListSubscriptionsWithRecipesLimit(t *testing.T) {
	env := newTestEnv(t)
	reader := env.newUser(t, "reader")
	author := env.newUser(t, "author")
	tag := env.store.SeedTag("Завтрак", "breakfast")
	flour := env.store.SeedIngredient("Мука", "г")

	line := []models.IngredientAmountRequest{{ID: flour.ID, Amount: 10}}
	env.newRecipe(t, author, "Первый", []int64{tag.ID}, line)
	env.newRecipe(t, author, "Второй", []int64{tag.ID}, line)
	env.newRecipe(t, author, "Третий", []int64{tag.ID}, line)

	_, err := env.users.Subscribe(context.Background(), reader, author.ID)
	require.NoError(t, err)

	views, total, err := env.users.ListSubscriptions(context.Background(), reader, 10, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, views, 1)

	// recipes truncated to the limit, count stays full
	assert.Equal(t, 3, views[0].RecipesCount)
	require.Len(t, views[0].Recipes, 2)
	assert.Equal(t, "Третий", views[0].Recipes[0].Name)
	assert.Equal(t, "Второй", views[0].Recipes[1].Name)
}

func TestBuildUserViewSubscriptionFlag(t *testing.T) {
	env := newTestEnv(t)
	reader := env.newUser(t, "reader")
	author := env.newUser(t, "author")

	view, err := env.users.BuildUserView(context.Background(), author, nil)
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)

	_, err = env.users.Subscribe(context.Background(), reader, author.ID)
	require.NoError(t, err)

	view, err = env.users.BuildUserView(context.Background(), author, reader)
	require.NoError(t, err)
	assert.True(t, view.IsSubscribed)

	// own profile is never marked subscribed
	view, err = env.users.BuildUserView(context.Background(), reader, reader)
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)
}

func TestAvatarLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "cook")

	assert.ErrorIs(t, env.users.ClearAvatar(context.Background(), user), services.ErrNoAvatar)

	url, err := env.users.SetAvatar(context.Background(), user, pngPixel)
	require.NoError(t, err)
	assert.Contains(t, url, "https://media.test/avatars/")
	assert.Equal(t, 1, env.storage.Len())

	// replacing the avatar drops the previous file
	_, err = env.users.SetAvatar(context.Background(), user, pngPixel)
	require.NoError(t, err)
	assert.Equal(t, 1, env.storage.Len())

	require.NoError(t, env.users.ClearAvatar(context.Background(), user))
	assert.Equal(t, 0, env.storage.Len())
	assert.Equal(t, "", env.users.AvatarURL(user))
}

func TestSetAvatarRejectsBadPayload(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "cook")

	for _, payload := range []string{"", "not base64!!", "data:image/png;base64,****"} {
		_, err := env.users.SetAvatar(context.Background(), user, payload)
		var verr *utils.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "avatar")
	}
}
