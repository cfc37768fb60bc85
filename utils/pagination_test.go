package utils

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

func testCtx(t *testing.T, uri string) (*fiber.App, *fiber.Ctx) {
	t.Helper()
	app := fiber.New()
	reqCtx := &fasthttp.RequestCtx{}
	reqCtx.Request.SetRequestURI(uri)
	reqCtx.Request.Header.Set("Host", "example.com")
	reqCtx.Request.SetHost("example.com")
	return app, app.AcquireCtx(reqCtx)
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/api/recipes/", 1, 6},
		{"explicit page", "/api/recipes/?page=3", 3, 6},
		{"explicit limit", "/api/recipes/?limit=10", 1, 10},
		{"limit clamped", "/api/recipes/?limit=500", 1, 100},
		{"garbage ignored", "/api/recipes/?page=abc&limit=-2", 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, c := testCtx(t, tt.uri)
			defer app.ReleaseCtx(c)

			params := ParsePageParams(c, 6, 100)
			if params.Page != tt.wantPage || params.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d",
					params.Page, params.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	params := PageParams{Page: 3, Limit: 6}
	if got := params.Offset(); got != 12 {
		t.Errorf("Offset() = %d, want 12", got)
	}
}

func TestNewPageLinks(t *testing.T) {
	app, c := testCtx(t, "/api/recipes/?page=2&limit=2&author=5")
	defer app.ReleaseCtx(c)

	page := NewPage(c, 6, PageParams{Page: 2, Limit: 2}, []int{3, 4})

	if page.Count != 6 {
		t.Errorf("Count = %d, want 6", page.Count)
	}
	if page.Next == nil {
		t.Fatal("Next should be set on a middle page")
	}
	if page.Previous == nil {
		t.Fatal("Previous should be set on a middle page")
	}
	for _, link := range []string{*page.Next, *page.Previous} {
		if !contains(link, "author=5") || !contains(link, "limit=2") {
			t.Errorf("link %q should keep other query params", link)
		}
	}
	if !contains(*page.Next, "page=3") {
		t.Errorf("Next = %q, want page=3", *page.Next)
	}
	if !contains(*page.Previous, "page=1") {
		t.Errorf("Previous = %q, want page=1", *page.Previous)
	}
}

func TestNewPageEdges(t *testing.T) {
	app, c := testCtx(t, "/api/recipes/")
	defer app.ReleaseCtx(c)

	// single page: no links either way
	page := NewPage(c, 3, PageParams{Page: 1, Limit: 6}, []int{1, 2, 3})
	if page.Next != nil || page.Previous != nil {
		t.Error("single page should have no next/previous")
	}

	// empty result set
	page = NewPage(c, 0, PageParams{Page: 1, Limit: 6}, []int{})
	if page.Count != 0 || page.Next != nil || page.Previous != nil {
		t.Error("empty page should have zero count and no links")
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
