package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths never carry credentials worth parsing.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
	"/metrics":   true,
}

// AuthSkipper returns true for infrastructure endpoints.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}
