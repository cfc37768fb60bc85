package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/database/repositories"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/utils"
)

var (
	// ErrRecipeNotFound is returned for unknown recipe ids
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrNotRecipeAuthor is returned when a user modifies someone else's recipe
	ErrNotRecipeAuthor = errors.New("not the recipe author")

	// ErrAlreadyAdded is returned for duplicate favorite/cart additions
	ErrAlreadyAdded = errors.New("recipe already added")

	// ErrNotAdded is returned when removing an absent favorite/cart entry
	ErrNotAdded = errors.New("recipe was not added")
)

// RecipeService handles recipe CRUD, favorites, shopping carts and view
// assembly.
type RecipeService struct {
	repos   *models.Repositories
	storage MediaStorage
}

// NewRecipeService creates a new recipe service
func NewRecipeService(repos *models.Repositories, storage MediaStorage) *RecipeService {
	return &RecipeService{
		repos:   repos,
		storage: storage,
	}
}

// GetRecipe fetches a recipe by id.
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*dbmodels.Recipe, error) {
	recipe, err := s.repos.Recipe.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// validateWriteRequest checks the write payload and resolves ingredient
// lines and tag ids. requireImage is true on create.
func (s *RecipeService) validateWriteRequest(ctx context.Context, req *models.RecipeWriteRequest, requireImage bool) ([]*dbmodels.RecipeIngredient, []int64, *DecodedImage, error) {
	verr := utils.NewValidationError()

	if req.Name == "" {
		verr.Add("name", "Обязательное поле.")
	} else if utils.TooLong(req.Name, utils.MaxRecipeNameLength) {
		verr.Add("name", fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", utils.MaxRecipeNameLength))
	}
	if req.Text == "" {
		verr.Add("text", "Обязательное поле.")
	}
	if req.CookingTime < dbmodels.MinCookingTime {
		verr.Add("cooking_time", fmt.Sprintf("Убедитесь, что это значение больше либо равно %d.", dbmodels.MinCookingTime))
	} else if req.CookingTime > dbmodels.MaxCookingTime {
		verr.Add("cooking_time", fmt.Sprintf("Убедитесь, что это значение меньше либо равно %d.", dbmodels.MaxCookingTime))
	}

	var img *DecodedImage
	if req.Image == "" {
		if requireImage {
			verr.Add("image", "Обязательное поле.")
		}
	} else {
		var err error
		img, err = DecodeImageField(req.Image)
		if err != nil {
			verr.Add("image", "Загрузите корректное изображение.")
		}
	}

	lines := s.validateIngredients(ctx, req.Ingredients, verr)
	tagIDs := s.validateTags(ctx, req.Tags, verr)

	if verr.HasErrors() {
		return nil, nil, nil, verr
	}
	return lines, tagIDs, img, nil
}

func (s *RecipeService) validateIngredients(ctx context.Context, reqLines []models.IngredientAmountRequest, verr *utils.ValidationError) []*dbmodels.RecipeIngredient {
	if len(reqLines) == 0 {
		verr.Add("ingredients", "Нужен хотя бы один ингредиент.")
		return nil
	}

	seen := make(map[int64]bool, len(reqLines))
	ids := make([]int64, 0, len(reqLines))
	for _, line := range reqLines {
		if seen[line.ID] {
			verr.Add("ingredients", "Ингредиенты не должны повторяться.")
			return nil
		}
		seen[line.ID] = true
		ids = append(ids, line.ID)

		if line.Amount < dbmodels.MinIngredientAmount {
			verr.Add("ingredients", fmt.Sprintf("Количество должно быть больше либо равно %d.", dbmodels.MinIngredientAmount))
			return nil
		}
		if line.Amount > dbmodels.MaxIngredientAmount {
			verr.Add("ingredients", fmt.Sprintf("Количество должно быть меньше либо равно %d.", dbmodels.MaxIngredientAmount))
			return nil
		}
	}

	found, err := s.repos.Ingredient.GetByIDs(ctx, ids)
	if err != nil {
		slog.Error("Failed to resolve ingredients",
			slog.String("type", "db"),
			slog.String("error", err.Error()))
		verr.Add("ingredients", "Не удалось проверить ингредиенты.")
		return nil
	}
	if len(found) != len(ids) {
		verr.Add("ingredients", "Указан несуществующий ингредиент.")
		return nil
	}

	lines := make([]*dbmodels.RecipeIngredient, len(reqLines))
	for i, line := range reqLines {
		lines[i] = &dbmodels.RecipeIngredient{
			IngredientID: line.ID,
			Amount:       line.Amount,
		}
	}
	return lines
}

func (s *RecipeService) validateTags(ctx context.Context, tagIDs []int64, verr *utils.ValidationError) []int64 {
	if len(tagIDs) == 0 {
		verr.Add("tags", "Нужен хотя бы один тег.")
		return nil
	}

	seen := make(map[int64]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			verr.Add("tags", "Теги не должны повторяться.")
			return nil
		}
		seen[id] = true
	}

	found, err := s.repos.Tag.GetByIDs(ctx, tagIDs)
	if err != nil {
		slog.Error("Failed to resolve tags",
			slog.String("type", "db"),
			slog.String("error", err.Error()))
		verr.Add("tags", "Не удалось проверить теги.")
		return nil
	}
	if len(found) != len(tagIDs) {
		verr.Add("tags", "Указан несуществующий тег.")
		return nil
	}
	return tagIDs
}

// Create validates the payload, stores the image and persists the
// recipe with its relations.
func (s *RecipeService) Create(ctx context.Context, author *dbmodels.User, req *models.RecipeWriteRequest) (*models.RecipeView, error) {
	lines, tagIDs, img, err := s.validateWriteRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}

	key := NewImageKey("recipes", img)
	if err := s.storage.Upload(ctx, key, img.Data, img.ContentType); err != nil {
		return nil, err
	}

	recipe := &dbmodels.Recipe{
		AuthorID:    author.ID,
		Name:        req.Name,
		Image:       key,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.repos.Recipe.CreateWithRelations(ctx, recipe, tagIDs, lines); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.Warn("Failed to delete orphaned image",
				slog.String("type", "storage"),
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		return nil, err
	}

	slog.Info("Recipe created",
		slog.Int64("recipe_id", recipe.ID),
		slog.Int64("author_id", author.ID))
	return s.BuildRecipeView(ctx, recipe, author)
}

// Update validates the payload and replaces the recipe's fields and
// relations. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, viewer *dbmodels.User, recipeID int64, req *models.RecipeWriteRequest) (*models.RecipeView, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != viewer.ID {
		return nil, ErrNotRecipeAuthor
	}

	lines, tagIDs, img, err := s.validateWriteRequest(ctx, req, false)
	if err != nil {
		return nil, err
	}

	oldKey := ""
	if img != nil {
		key := NewImageKey("recipes", img)
		if err := s.storage.Upload(ctx, key, img.Data, img.ContentType); err != nil {
			return nil, err
		}
		oldKey = recipe.Image
		recipe.Image = key
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	if err := s.repos.Recipe.UpdateWithRelations(ctx, recipe, tagIDs, lines); err != nil {
		if img != nil {
			if delErr := s.storage.Delete(ctx, recipe.Image); delErr != nil {
				slog.Warn("Failed to delete orphaned image",
					slog.String("type", "storage"),
					slog.String("key", recipe.Image),
					slog.String("error", delErr.Error()))
			}
		}
		return nil, err
	}

	if oldKey != "" && oldKey != recipe.Image {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			slog.Warn("Failed to delete replaced image",
				slog.String("type", "storage"),
				slog.String("key", oldKey),
				slog.String("error", err.Error()))
		}
	}
	return s.BuildRecipeView(ctx, recipe, viewer)
}

// Delete removes the recipe and its image. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, viewer *dbmodels.User, recipeID int64) error {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != viewer.ID {
		return ErrNotRecipeAuthor
	}

	if err := s.repos.Recipe.Delete(ctx, recipe.ID); err != nil {
		return err
	}
	if recipe.Image != "" {
		if err := s.storage.Delete(ctx, recipe.Image); err != nil {
			slog.Warn("Failed to delete recipe image",
				slog.String("type", "storage"),
				slog.String("key", recipe.Image),
				slog.String("error", err.Error()))
		}
	}
	slog.Info("Recipe deleted", slog.Int64("recipe_id", recipe.ID))
	return nil
}

// List returns a page of recipe views matching the filter, with
// per-viewer flags computed in bulk.
func (s *RecipeService) List(ctx context.Context, viewer *dbmodels.User, filter repositories.RecipeFilter) ([]*models.RecipeView, int, error) {
	recipes, total, err := s.repos.Recipe.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildRecipeViews(ctx, recipes, viewer)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// BuildRecipeView assembles the full view of a single recipe.
func (s *RecipeService) BuildRecipeView(ctx context.Context, recipe *dbmodels.Recipe, viewer *dbmodels.User) (*models.RecipeView, error) {
	views, err := s.buildRecipeViews(ctx, []*dbmodels.Recipe{recipe}, viewer)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *RecipeService) buildRecipeViews(ctx context.Context, recipes []*dbmodels.Recipe, viewer *dbmodels.User) ([]*models.RecipeView, error) {
	if len(recipes) == 0 {
		return []*models.RecipeView{}, nil
	}

	recipeIDs := make([]int64, len(recipes))
	authorIDSet := make(map[int64]bool)
	var authorIDs []int64
	for i, recipe := range recipes {
		recipeIDs[i] = recipe.ID
		if !authorIDSet[recipe.AuthorID] {
			authorIDSet[recipe.AuthorID] = true
			authorIDs = append(authorIDs, recipe.AuthorID)
		}
	}

	tagsByRecipe, err := s.repos.Recipe.GetTagsFor(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	linesByRecipe, err := s.repos.Recipe.GetIngredientLinesFor(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.repos.User.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorsByID := make(map[int64]*dbmodels.User, len(authors))
	for _, author := range authors {
		authorsByID[author.ID] = author
	}

	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	subscribed := map[int64]bool{}
	if viewer != nil {
		favorited, err = s.repos.Favorite.RecipeIDsFor(ctx, viewer.ID, recipeIDs)
		if err != nil {
			return nil, err
		}
		inCart, err = s.repos.ShoppingCart.RecipeIDsFor(ctx, viewer.ID, recipeIDs)
		if err != nil {
			return nil, err
		}
		subscribed, err = s.repos.Subscription.AuthorIDsFor(ctx, viewer.ID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]*models.RecipeView, len(recipes))
	for i, recipe := range recipes {
		tagViews := make([]*models.TagView, 0, len(tagsByRecipe[recipe.ID]))
		for _, tag := range tagsByRecipe[recipe.ID] {
			tagViews = append(tagViews, models.ConvertTagToView(tag))
		}

		lineViews := make([]*models.IngredientInRecipeView, 0, len(linesByRecipe[recipe.ID]))
		for _, line := range linesByRecipe[recipe.ID] {
			lineViews = append(lineViews, &models.IngredientInRecipeView{
				ID:              line.IngredientID,
				Name:            line.Name,
				MeasurementUnit: line.MeasurementUnit,
				Amount:          line.Amount,
			})
		}

		var authorView *models.UserView
		if author, ok := authorsByID[recipe.AuthorID]; ok {
			authorView = models.ConvertUserToView(author, subscribed[author.ID], s.AvatarURL(author))
		}

		views[i] = &models.RecipeView{
			ID:               recipe.ID,
			Tags:             tagViews,
			Author:           authorView,
			Ingredients:      lineViews,
			IsFavorited:      favorited[recipe.ID],
			IsInShoppingCart: inCart[recipe.ID],
			Name:             recipe.Name,
			Image:            s.storage.URL(recipe.Image),
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
		}
	}
	return views, nil
}

// AvatarURL resolves a stored avatar key to a public URL.
func (s *RecipeService) AvatarURL(user *dbmodels.User) string {
	if user.Avatar == "" {
		return ""
	}
	return s.storage.URL(user.Avatar)
}

// AddFavorite puts the recipe into the viewer's favorites.
func (s *RecipeService) AddFavorite(ctx context.Context, viewer *dbmodels.User, recipeID int64) (*models.RecipeMinified, error) {
	return s.addToSet(ctx, viewer, recipeID, s.repos.Favorite.Exists, s.repos.Favorite.Add)
}

// RemoveFavorite takes the recipe out of the viewer's favorites.
func (s *RecipeService) RemoveFavorite(ctx context.Context, viewer *dbmodels.User, recipeID int64) error {
	return s.removeFromSet(ctx, viewer, recipeID, s.repos.Favorite.Remove)
}

// AddToCart puts the recipe into the viewer's shopping cart.
func (s *RecipeService) AddToCart(ctx context.Context, viewer *dbmodels.User, recipeID int64) (*models.RecipeMinified, error) {
	return s.addToSet(ctx, viewer, recipeID, s.repos.ShoppingCart.Exists, s.repos.ShoppingCart.Add)
}

// RemoveFromCart takes the recipe out of the viewer's shopping cart.
func (s *RecipeService) RemoveFromCart(ctx context.Context, viewer *dbmodels.User, recipeID int64) error {
	return s.removeFromSet(ctx, viewer, recipeID, s.repos.ShoppingCart.Remove)
}

func (s *RecipeService) addToSet(
	ctx context.Context,
	viewer *dbmodels.User,
	recipeID int64,
	exists func(context.Context, int64, int64) (bool, error),
	add func(context.Context, int64, int64) error,
) (*models.RecipeMinified, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	present, err := exists(ctx, viewer.ID, recipe.ID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, ErrAlreadyAdded
	}
	if err := add(ctx, viewer.ID, recipe.ID); err != nil {
		return nil, err
	}

	return models.ConvertRecipeToMinified(recipe, s.storage.URL(recipe.Image)), nil
}

func (s *RecipeService) removeFromSet(
	ctx context.Context,
	viewer *dbmodels.User,
	recipeID int64,
	remove func(context.Context, int64, int64) (bool, error),
) error {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	removed, err := remove(ctx, viewer.ID, recipe.ID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotAdded
	}
	return nil
}
