package handlers

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"
)

type pageWindow struct {
	Page        int
	TotalPages  int
	Offset      int
	End         int
	ShowingFrom int
	ShowingTo   int
}

func parsePageParam(c *echo.Context) int {
	page, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("page")))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate clamps page into range and returns the slice bounds of that page
// within totalCount items.
func paginate(totalCount, page, perPage int) pageWindow {
	perPage = max(perPage, 1)
	totalPages := max((totalCount+perPage-1)/perPage, 1)
	page = min(max(page, 1), totalPages)

	w := pageWindow{Page: page, TotalPages: totalPages}
	w.Offset = min((page-1)*perPage, totalCount)
	w.End = min(w.Offset+perPage, totalCount)
	if w.End > w.Offset {
		w.ShowingFrom = w.Offset + 1
		w.ShowingTo = w.End
	}
	return w
}
