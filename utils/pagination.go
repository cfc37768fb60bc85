package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Page is the paginated response envelope: total item count, absolute
// next/previous page URLs (null at the edges) and the current page of
// results.
type Page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// PageParams holds the parsed page number and page size of a listing
// request.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the row offset of the requested page
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageParams reads page/limit query parameters, falling back to the
// configured page size and clamping the limit to maxLimit.
func ParsePageParams(c *fiber.Ctx, defaultLimit, maxLimit int) PageParams {
	params := PageParams{Page: 1, Limit: defaultLimit}

	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if maxLimit > 0 && params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	return params
}

// NewPage assembles the response envelope, deriving next/previous URLs
// from the request URL with the page parameter rewritten.
func NewPage(c *fiber.Ctx, count int, params PageParams, results interface{}) *Page {
	page := &Page{
		Count:   count,
		Results: results,
	}
	if params.Page*params.Limit < count {
		page.Next = pageURL(c, params.Page+1)
	}
	if params.Page > 1 {
		page.Previous = pageURL(c, params.Page-1)
	}
	return page
}

func pageURL(c *fiber.Ctx, page int) *string {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	values.Set("page", strconv.Itoa(page))

	link := fmt.Sprintf("%s%s?%s", c.BaseURL(), c.Path(), values.Encode())
	return &link
}
