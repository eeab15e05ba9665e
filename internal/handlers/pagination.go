package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// PageParams carries the cursor/limit contract shared by every paged query.
type PageParams struct {
	Cursor uint
	Limit  int
}

// pageParams parses the cursor and limit query parameters. A missing or
// unusable limit falls back to defaultLimit; anything above maxLimit is
// clamped down to it.
func pageParams(c echo.Context, defaultLimit, maxLimit int) PageParams {
	cursor, _ := strconv.ParseUint(c.QueryParam("cursor"), 10, 32)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageParams{Cursor: uint(cursor), Limit: limit}
}

// CursorPage is the uniform keyset-paginated response envelope.
type CursorPage[T any] struct {
	Items       []T  `json:"items"`
	Count       int  `json:"count"`
	HasNextPage bool `json:"has_next_page"`
	NextCursor  uint `json:"next_cursor,omitempty"`
}

// newCursorPage derives the page envelope from rows fetched with limit+1:
// the probe row beyond limit is trimmed and flags has_next_page, and
// next_cursor is the id of the last row actually returned.
func newCursorPage[T any](rows []T, limit int, id func(T) uint) CursorPage[T] {
	page := CursorPage[T]{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		page.HasNextPage = true
	}
	if page.Items == nil {
		page.Items = make([]T, 0)
	}
	page.Count = len(page.Items)
	if page.HasNextPage && page.Count > 0 {
		page.NextCursor = id(page.Items[page.Count-1])
	}
	return page
}
