package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

func isHX(c *echo.Context) bool {
	if c == nil || c.Request() == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.Request().Header.Get("HX-Request")), "true")
}

// isHXTarget reports an HTMX request that swaps the element with the given
// id. Non-HTMX requests never match.
func isHXTarget(c *echo.Context, target string) bool {
	if !isHX(c) {
		return false
	}
	got := strings.TrimPrefix(strings.TrimSpace(c.Request().Header.Get("HX-Target")), "#")
	return strings.EqualFold(got, strings.TrimPrefix(strings.TrimSpace(target), "#"))
}

// addVary merges header names into the Vary header, keeping a wildcard
// untouched.
func addVary(c *echo.Context, values ...string) {
	if c == nil || len(values) == 0 {
		return
	}

	header := c.Response().Header()
	seen := make(map[string]struct{})
	var combined []string
	for _, line := range append(header.Values(echo.HeaderVary), values...) {
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			switch token {
			case "":
				continue
			case "*":
				header.Set(echo.HeaderVary, "*")
				return
			}
			canonical := http.CanonicalHeaderKey(token)
			if _, ok := seen[strings.ToLower(canonical)]; ok {
				continue
			}
			seen[strings.ToLower(canonical)] = struct{}{}
			combined = append(combined, canonical)
		}
	}
	if len(combined) > 0 {
		header.Set(echo.HeaderVary, strings.Join(combined, ", "))
	}
}

// varyHX marks a response whose body depends on the HTMX request headers.
func varyHX(c *echo.Context) {
	addVary(c, "HX-Request", "HX-Target")
}
