package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/utils"
)

var (
	// ErrUserNotFound is returned for unknown user ids
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfSubscribe is returned when a user subscribes to themselves
	ErrSelfSubscribe = errors.New("cannot subscribe to yourself")

	// ErrAlreadySubscribed is returned for duplicate subscriptions
	ErrAlreadySubscribed = errors.New("already subscribed")

	// ErrNotSubscribed is returned when removing an absent subscription
	ErrNotSubscribed = errors.New("not subscribed")

	// ErrNoAvatar is returned when clearing an avatar that is not set
	ErrNoAvatar = errors.New("avatar not set")
)

// UserService handles profiles, avatars and subscriptions.
type UserService struct {
	repos   *models.Repositories
	storage MediaStorage
}

// NewUserService creates a new user service
func NewUserService(repos *models.Repositories, storage MediaStorage) *UserService {
	return &UserService{
		repos:   repos,
		storage: storage,
	}
}

// AvatarURL resolves the stored avatar key to a public URL, empty when
// no avatar is set.
func (s *UserService) AvatarURL(user *dbmodels.User) string {
	if user.Avatar == "" {
		return ""
	}
	return s.storage.URL(user.Avatar)
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*dbmodels.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// BuildUserView assembles the public view of a user as seen by the
// viewer. A nil viewer produces is_subscribed=false.
func (s *UserService) BuildUserView(ctx context.Context, user *dbmodels.User, viewer *dbmodels.User) (*models.UserView, error) {
	isSubscribed := false
	if viewer != nil && viewer.ID != user.ID {
		var err error
		isSubscribed, err = s.repos.Subscription.Exists(ctx, viewer.ID, user.ID)
		if err != nil {
			return nil, err
		}
	}
	return models.ConvertUserToView(user, isSubscribed, s.AvatarURL(user)), nil
}

// ListUsers returns a page of users with views computed for the viewer.
func (s *UserService) ListUsers(ctx context.Context, viewer *dbmodels.User, limit, offset int) ([]*models.UserView, int, error) {
	users, total, err := s.repos.User.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	subscribed := map[int64]bool{}
	if viewer != nil && len(users) > 0 {
		ids := make([]int64, len(users))
		for i, user := range users {
			ids[i] = user.ID
		}
		subscribed, err = s.repos.Subscription.AuthorIDsFor(ctx, viewer.ID, ids)
		if err != nil {
			return nil, 0, err
		}
	}

	views := make([]*models.UserView, len(users))
	for i, user := range users {
		views[i] = models.ConvertUserToView(user, subscribed[user.ID], s.AvatarURL(user))
	}
	return views, total, nil
}

// SetAvatar decodes and stores a new avatar, replacing any previous one.
func (s *UserService) SetAvatar(ctx context.Context, user *dbmodels.User, payload string) (string, error) {
	if payload == "" {
		verr := utils.NewValidationError()
		verr.Add("avatar", "Обязательное поле.")
		return "", verr
	}

	img, err := DecodeImageField(payload)
	if err != nil {
		verr := utils.NewValidationError()
		verr.Add("avatar", "Загрузите корректное изображение.")
		return "", verr
	}

	key := NewImageKey("avatars", img)
	if err := s.storage.Upload(ctx, key, img.Data, img.ContentType); err != nil {
		return "", err
	}

	old := user.Avatar
	if err := s.repos.User.UpdateAvatar(ctx, user.ID, key); err != nil {
		return "", err
	}
	user.Avatar = key

	if old != "" {
		if err := s.storage.Delete(ctx, old); err != nil {
			slog.Warn("Failed to delete previous avatar",
				slog.String("type", "storage"),
				slog.String("key", old),
				slog.String("error", err.Error()))
		}
	}
	return s.storage.URL(key), nil
}

// ClearAvatar removes the user's avatar.
func (s *UserService) ClearAvatar(ctx context.Context, user *dbmodels.User) error {
	if user.Avatar == "" {
		return ErrNoAvatar
	}

	key := user.Avatar
	if err := s.repos.User.UpdateAvatar(ctx, user.ID, ""); err != nil {
		return err
	}
	user.Avatar = ""

	if err := s.storage.Delete(ctx, key); err != nil {
		slog.Warn("Failed to delete avatar file",
			slog.String("type", "storage"),
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return nil
}

// Subscribe adds a subscription from viewer to the author.
func (s *UserService) Subscribe(ctx context.Context, viewer *dbmodels.User, authorID int64) (*models.UserWithRecipes, error) {
	author, err := s.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if viewer.ID == author.ID {
		return nil, ErrSelfSubscribe
	}

	exists, err := s.repos.Subscription.Exists(ctx, viewer.ID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	if err := s.repos.Subscription.Add(ctx, viewer.ID, author.ID); err != nil {
		return nil, err
	}
	return s.buildAuthorWithRecipes(ctx, author, true, 0)
}

// Unsubscribe removes a subscription from viewer to the author.
func (s *UserService) Unsubscribe(ctx context.Context, viewer *dbmodels.User, authorID int64) error {
	if _, err := s.GetUser(ctx, authorID); err != nil {
		return err
	}
	removed, err := s.repos.Subscription.Remove(ctx, viewer.ID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotSubscribed
	}
	return nil
}

// ListSubscriptions returns a page of the viewer's subscribed authors
// with their recipes. recipesLimit of 0 means all recipes.
func (s *UserService) ListSubscriptions(ctx context.Context, viewer *dbmodels.User, limit, offset, recipesLimit int) ([]*models.UserWithRecipes, int, error) {
	authors, total, err := s.repos.Subscription.ListAuthors(ctx, viewer.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*models.UserWithRecipes, len(authors))
	for i, author := range authors {
		view, err := s.buildAuthorWithRecipes(ctx, author, true, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views[i] = view
	}
	return views, total, nil
}

func (s *UserService) buildAuthorWithRecipes(ctx context.Context, author *dbmodels.User, isSubscribed bool, recipesLimit int) (*models.UserWithRecipes, error) {
	recipes, err := s.repos.Recipe.ListByAuthors(ctx, []int64{author.ID})
	if err != nil {
		return nil, err
	}

	count := len(recipes)
	if recipesLimit > 0 && len(recipes) > recipesLimit {
		recipes = recipes[:recipesLimit]
	}

	minified := make([]*models.RecipeMinified, len(recipes))
	for i, recipe := range recipes {
		minified[i] = models.ConvertRecipeToMinified(recipe, s.storage.URL(recipe.Image))
	}

	return &models.UserWithRecipes{
		UserView:     *models.ConvertUserToView(author, isSubscribed, s.AvatarURL(author)),
		Recipes:      minified,
		RecipesCount: count,
	}, nil
}
