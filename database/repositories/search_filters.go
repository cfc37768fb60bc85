package repositories

// RecipeFilter narrows the recipe listing. Zero values mean "no filter".
//
// FavoritedBy and InCartOf carry the requesting user's id; the handler only
// sets them for an authenticated request with a truthy query value, so a
// false value (or an anonymous request) leaves the result set untouched.
type RecipeFilter struct {
	TagSlugs    []string // any-of across slugs
	AuthorID    int64
	FavoritedBy int64
	InCartOf    int64
	Limit       int
	Offset      int
}
