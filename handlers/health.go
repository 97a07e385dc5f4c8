package handlers

import (
	"net/http"

	"studio_landing_go/config"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and which relay settings are missing.
// Missing settings do not fail the check; submissions answer 500 instead.
func HealthHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	resp := map[string]interface{}{"status": "ok"}
	if missing := cfg.MissingRelaySettings(); len(missing) > 0 {
		resp["missing"] = missing
	}
	return c.JSON(http.StatusOK, resp)
}
