// Package mock provides in-memory repository implementations for tests.
package mock

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/database/repositories"
)

// Store holds all in-memory tables behind one mutex.
type Store struct {
	mu sync.Mutex

	users         []*models.User
	tags          []*models.Tag
	ingredients   []*models.Ingredient
	recipes       []*models.Recipe
	recipeTags    []*models.RecipeTag
	recipeLines   []*models.RecipeIngredient
	favorites     []*models.Favorite
	shoppingCarts []*models.ShoppingCart
	subscriptions []*models.Subscription
	tokens        []*models.AuthToken

	nextID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// Users returns the user repository view of the store.
func (s *Store) Users() repositories.UserRepository { return &userStore{s} }

// Tags returns the tag repository view of the store.
func (s *Store) Tags() repositories.TagRepository { return &tagStore{s} }

// Ingredients returns the ingredient repository view of the store.
func (s *Store) Ingredients() repositories.IngredientRepository { return &ingredientStore{s} }

// Recipes returns the recipe repository view of the store.
func (s *Store) Recipes() repositories.RecipeRepository { return &recipeStore{s} }

// Favorites returns the favorite repository view of the store.
func (s *Store) Favorites() repositories.FavoriteRepository { return &favoriteStore{s} }

// ShoppingCarts returns the shopping cart repository view of the store.
func (s *Store) ShoppingCarts() repositories.ShoppingCartRepository { return &shoppingCartStore{s} }

// Subscriptions returns the subscription repository view of the store.
func (s *Store) Subscriptions() repositories.SubscriptionRepository { return &subscriptionStore{s} }

// Tokens returns the token repository view of the store.
func (s *Store) Tokens() repositories.TokenRepository { return &tokenStore{s} }

// SeedTag inserts a tag directly.
func (s *Store) SeedTag(name, slug string) *models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag := &models.Tag{ID: s.id(), Name: name, Slug: slug}
	s.tags = append(s.tags, tag)
	return tag
}

// SeedIngredient inserts an ingredient directly.
func (s *Store) SeedIngredient(name, unit string) *models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	ingredient := &models.Ingredient{ID: s.id(), Name: name, MeasurementUnit: unit}
	s.ingredients = append(s.ingredients, ingredient)
	return ingredient
}

type userStore struct{ s *Store }

func (r *userStore) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.id()
	user.CreatedAt = time.Now()
	r.s.users = append(r.s.users, user)
	return nil
}

func (r *userStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *userStore) GetByIDs(_ context.Context, ids []int64) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var users []*models.User
	for _, user := range r.s.users {
		if wanted[user.ID] {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *userStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if strings.EqualFold(user.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userStore) List(_ context.Context, limit, offset int) ([]*models.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := len(r.s.users)
	users := append([]*models.User(nil), r.s.users...)
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return page(users, limit, offset), total, nil
}

func (r *userStore) UpdateAvatar(_ context.Context, userID int64, avatar string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.ID == userID {
			user.Avatar = avatar
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *userStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return sql.ErrNoRows
}

type tagStore struct{ s *Store }

func (r *tagStore) GetAll(_ context.Context) ([]*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tags := append([]*models.Tag(nil), r.s.tags...)
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (r *tagStore) GetByID(_ context.Context, id int64) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, tag := range r.s.tags {
		if tag.ID == id {
			return tag, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *tagStore) GetByIDs(_ context.Context, ids []int64) ([]*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var tags []*models.Tag
	for _, tag := range r.s.tags {
		if wanted[tag.ID] {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (r *tagStore) Create(_ context.Context, tag *models.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tag.ID = r.s.id()
	r.s.tags = append(r.s.tags, tag)
	return nil
}

type ingredientStore struct{ s *Store }

func (r *ingredientStore) GetAll(_ context.Context) ([]*models.Ingredient, error) {
	return r.SearchByPrefix(context.Background(), "")
}

func (r *ingredientStore) GetByID(_ context.Context, id int64) (*models.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ingredient := range r.s.ingredients {
		if ingredient.ID == id {
			return ingredient, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *ingredientStore) GetByIDs(_ context.Context, ids []int64) ([]*models.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var ingredients []*models.Ingredient
	for _, ingredient := range r.s.ingredients {
		if wanted[ingredient.ID] {
			ingredients = append(ingredients, ingredient)
		}
	}
	return ingredients, nil
}

func (r *ingredientStore) SearchByPrefix(_ context.Context, prefix string) ([]*models.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lower := strings.ToLower(prefix)
	var ingredients []*models.Ingredient
	for _, ingredient := range r.s.ingredients {
		if strings.HasPrefix(strings.ToLower(ingredient.Name), lower) {
			ingredients = append(ingredients, ingredient)
		}
	}
	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].Name < ingredients[j].Name })
	return ingredients, nil
}

func (r *ingredientStore) BulkUpsert(_ context.Context, ingredients []*models.Ingredient) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var inserted int64
	for _, candidate := range ingredients {
		exists := false
		for _, existing := range r.s.ingredients {
			if existing.Name == candidate.Name && existing.MeasurementUnit == candidate.MeasurementUnit {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		candidate.ID = r.s.id()
		r.s.ingredients = append(r.s.ingredients, candidate)
		inserted++
	}
	return inserted, nil
}

type recipeStore struct{ s *Store }

func (r *recipeStore) GetByID(_ context.Context, id int64) (*models.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, recipe := range r.s.recipes {
		if recipe.ID == id {
			// callers mutate the result before writing it back
			clone := *recipe
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *recipeStore) List(_ context.Context, filter repositories.RecipeFilter) ([]*models.Recipe, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*models.Recipe
	for _, recipe := range r.s.recipes {
		if filter.AuthorID > 0 && recipe.AuthorID != filter.AuthorID {
			continue
		}
		if len(filter.TagSlugs) > 0 && !r.hasAnyTag(recipe.ID, filter.TagSlugs) {
			continue
		}
		if filter.FavoritedBy > 0 && !r.inFavorites(filter.FavoritedBy, recipe.ID) {
			continue
		}
		if filter.InCartOf > 0 && !r.inCart(filter.InCartOf, recipe.ID) {
			continue
		}
		matched = append(matched, recipe)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	return page(matched, filter.Limit, filter.Offset), total, nil
}

func (r *recipeStore) hasAnyTag(recipeID int64, slugs []string) bool {
	for _, link := range r.s.recipeTags {
		if link.RecipeID != recipeID {
			continue
		}
		for _, tag := range r.s.tags {
			if tag.ID != link.TagID {
				continue
			}
			for _, slug := range slugs {
				if tag.Slug == slug {
					return true
				}
			}
		}
	}
	return false
}

func (r *recipeStore) inFavorites(userID, recipeID int64) bool {
	for _, favorite := range r.s.favorites {
		if favorite.UserID == userID && favorite.RecipeID == recipeID {
			return true
		}
	}
	return false
}

func (r *recipeStore) inCart(userID, recipeID int64) bool {
	for _, item := range r.s.shoppingCarts {
		if item.UserID == userID && item.RecipeID == recipeID {
			return true
		}
	}
	return false
}

func (r *recipeStore) ListByAuthors(_ context.Context, authorIDs []int64) ([]*models.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}
	var recipes []*models.Recipe
	for _, recipe := range r.s.recipes {
		if wanted[recipe.AuthorID] {
			recipes = append(recipes, recipe)
		}
	}
	sort.Slice(recipes, func(i, j int) bool {
		if !recipes[i].CreatedAt.Equal(recipes[j].CreatedAt) {
			return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
		}
		return recipes[i].ID > recipes[j].ID
	})
	return recipes, nil
}

func (r *recipeStore) CountByAuthor(_ context.Context, authorID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, recipe := range r.s.recipes {
		if recipe.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *recipeStore) CreateWithRelations(_ context.Context, recipe *models.Recipe, tagIDs []int64, lines []*models.RecipeIngredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	recipe.ID = r.s.id()
	recipe.CreatedAt = time.Now()
	r.s.recipes = append(r.s.recipes, recipe)
	r.replaceRelations(recipe.ID, tagIDs, lines)
	return nil
}

func (r *recipeStore) UpdateWithRelations(_ context.Context, recipe *models.Recipe, tagIDs []int64, lines []*models.RecipeIngredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.recipes {
		if existing.ID == recipe.ID {
			clone := *recipe
			r.s.recipes[i] = &clone
			r.replaceRelations(recipe.ID, tagIDs, lines)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *recipeStore) replaceRelations(recipeID int64, tagIDs []int64, lines []*models.RecipeIngredient) {
	if tagIDs != nil {
		var kept []*models.RecipeTag
		for _, link := range r.s.recipeTags {
			if link.RecipeID != recipeID {
				kept = append(kept, link)
			}
		}
		for _, tagID := range tagIDs {
			kept = append(kept, &models.RecipeTag{ID: r.s.id(), RecipeID: recipeID, TagID: tagID})
		}
		r.s.recipeTags = kept
	}
	if lines != nil {
		var kept []*models.RecipeIngredient
		for _, line := range r.s.recipeLines {
			if line.RecipeID != recipeID {
				kept = append(kept, line)
			}
		}
		for _, line := range lines {
			line.ID = r.s.id()
			line.RecipeID = recipeID
			kept = append(kept, line)
		}
		r.s.recipeLines = kept
	}
}

func (r *recipeStore) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []*models.Recipe
	for _, recipe := range r.s.recipes {
		if recipe.ID != id {
			kept = append(kept, recipe)
		}
	}
	r.s.recipes = kept

	var keptTags []*models.RecipeTag
	for _, link := range r.s.recipeTags {
		if link.RecipeID != id {
			keptTags = append(keptTags, link)
		}
	}
	r.s.recipeTags = keptTags

	var keptLines []*models.RecipeIngredient
	for _, line := range r.s.recipeLines {
		if line.RecipeID != id {
			keptLines = append(keptLines, line)
		}
	}
	r.s.recipeLines = keptLines

	var keptFavorites []*models.Favorite
	for _, favorite := range r.s.favorites {
		if favorite.RecipeID != id {
			keptFavorites = append(keptFavorites, favorite)
		}
	}
	r.s.favorites = keptFavorites

	var keptCarts []*models.ShoppingCart
	for _, item := range r.s.shoppingCarts {
		if item.RecipeID != id {
			keptCarts = append(keptCarts, item)
		}
	}
	r.s.shoppingCarts = keptCarts
	return nil
}

func (r *recipeStore) GetTagsFor(_ context.Context, recipeIDs []int64) (map[int64][]*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		wanted[id] = true
	}
	result := make(map[int64][]*models.Tag)
	for _, link := range r.s.recipeTags {
		if !wanted[link.RecipeID] {
			continue
		}
		for _, tag := range r.s.tags {
			if tag.ID == link.TagID {
				result[link.RecipeID] = append(result[link.RecipeID], tag)
			}
		}
	}
	return result, nil
}

func (r *recipeStore) GetIngredientLinesFor(_ context.Context, recipeIDs []int64) (map[int64][]repositories.IngredientLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		wanted[id] = true
	}
	result := make(map[int64][]repositories.IngredientLine)
	for _, line := range r.s.recipeLines {
		if !wanted[line.RecipeID] {
			continue
		}
		for _, ingredient := range r.s.ingredients {
			if ingredient.ID == line.IngredientID {
				result[line.RecipeID] = append(result[line.RecipeID], repositories.IngredientLine{
					RecipeID:        line.RecipeID,
					IngredientID:    line.IngredientID,
					Name:            ingredient.Name,
					MeasurementUnit: ingredient.MeasurementUnit,
					Amount:          line.Amount,
				})
			}
		}
	}
	return result, nil
}

type favoriteStore struct{ s *Store }

func (r *favoriteStore) Exists(_ context.Context, userID, recipeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, favorite := range r.s.favorites {
		if favorite.UserID == userID && favorite.RecipeID == recipeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *favoriteStore) Add(_ context.Context, userID, recipeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.favorites = append(r.s.favorites, &models.Favorite{
		RecipeAction: models.RecipeAction{UserID: userID, RecipeID: recipeID, CreatedAt: time.Now()},
	})
	return nil
}

func (r *favoriteStore) Remove(_ context.Context, userID, recipeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, favorite := range r.s.favorites {
		if favorite.UserID == userID && favorite.RecipeID == recipeID {
			r.s.favorites = append(r.s.favorites[:i], r.s.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *favoriteStore) RecipeIDsFor(_ context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		wanted[id] = true
	}
	result := make(map[int64]bool)
	for _, favorite := range r.s.favorites {
		if favorite.UserID == userID && wanted[favorite.RecipeID] {
			result[favorite.RecipeID] = true
		}
	}
	return result, nil
}

type shoppingCartStore struct{ s *Store }

func (r *shoppingCartStore) Exists(_ context.Context, userID, recipeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.shoppingCarts {
		if item.UserID == userID && item.RecipeID == recipeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *shoppingCartStore) Add(_ context.Context, userID, recipeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.shoppingCarts = append(r.s.shoppingCarts, &models.ShoppingCart{
		RecipeAction: models.RecipeAction{UserID: userID, RecipeID: recipeID, CreatedAt: time.Now()},
	})
	return nil
}

func (r *shoppingCartStore) Remove(_ context.Context, userID, recipeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, item := range r.s.shoppingCarts {
		if item.UserID == userID && item.RecipeID == recipeID {
			r.s.shoppingCarts = append(r.s.shoppingCarts[:i], r.s.shoppingCarts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *shoppingCartStore) RecipeIDsFor(_ context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		wanted[id] = true
	}
	result := make(map[int64]bool)
	for _, item := range r.s.shoppingCarts {
		if item.UserID == userID && wanted[item.RecipeID] {
			result[item.RecipeID] = true
		}
	}
	return result, nil
}

func (r *shoppingCartStore) AggregateIngredients(_ context.Context, userID int64) ([]repositories.ShoppingListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	type pair struct{ name, unit string }
	totals := make(map[pair]int64)
	for _, item := range r.s.shoppingCarts {
		if item.UserID != userID {
			continue
		}
		for _, line := range r.s.recipeLines {
			if line.RecipeID != item.RecipeID {
				continue
			}
			for _, ingredient := range r.s.ingredients {
				if ingredient.ID == line.IngredientID {
					totals[pair{ingredient.Name, ingredient.MeasurementUnit}] += int64(line.Amount)
				}
			}
		}
	}

	items := make([]repositories.ShoppingListItem, 0, len(totals))
	for key, total := range totals {
		items = append(items, repositories.ShoppingListItem{
			Name:            key.name,
			MeasurementUnit: key.unit,
			TotalAmount:     total,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

type subscriptionStore struct{ s *Store }

func (r *subscriptionStore) Exists(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subscriptions {
		if sub.UserID == userID && sub.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *subscriptionStore) Add(_ context.Context, userID, authorID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.subscriptions = append(r.s.subscriptions, &models.Subscription{
		ID:        r.s.id(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *subscriptionStore) Remove(_ context.Context, userID, authorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sub := range r.s.subscriptions {
		if sub.UserID == userID && sub.AuthorID == authorID {
			r.s.subscriptions = append(r.s.subscriptions[:i], r.s.subscriptions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *subscriptionStore) ListAuthors(_ context.Context, userID int64, limit, offset int) ([]*models.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	subs := make([]*models.Subscription, 0)
	for _, sub := range r.s.subscriptions {
		if sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID > subs[j].ID })

	var authors []*models.User
	for _, sub := range subs {
		for _, user := range r.s.users {
			if user.ID == sub.AuthorID {
				authors = append(authors, user)
			}
		}
	}
	total := len(authors)
	return page(authors, limit, offset), total, nil
}

func (r *subscriptionStore) AuthorIDsFor(_ context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}
	result := make(map[int64]bool)
	for _, sub := range r.s.subscriptions {
		if sub.UserID == userID && wanted[sub.AuthorID] {
			result[sub.AuthorID] = true
		}
	}
	return result, nil
}

type tokenStore struct{ s *Store }

func (r *tokenStore) Create(_ context.Context, token *models.AuthToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	token.ID = r.s.id()
	token.CreatedAt = time.Now()
	r.s.tokens = append(r.s.tokens, token)
	return nil
}

func (r *tokenStore) GetByKey(_ context.Context, key string) (*models.AuthToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, token := range r.s.tokens {
		if token.Key == key {
			return token, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *tokenStore) DeleteByKey(_ context.Context, key string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, token := range r.s.tokens {
		if token.Key == key {
			r.s.tokens = append(r.s.tokens[:i], r.s.tokens[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		return items
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
