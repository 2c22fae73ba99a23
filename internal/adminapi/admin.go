package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// registerAdminRoutes registers persistence and status endpoints
func registerAdminRoutes(g *echo.Group) {
	g.GET("/admin/status", getStatus)
	g.POST("/admin/snapshot", saveSnapshot)
}

func getStatus(c echo.Context) error {
	store := GetStore(c)
	lastSaved, err := GetBackend(c).LastSaved(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to read snapshot status", err.Error())
	}
	status := map[string]interface{}{
		"members":            len(store.Members()),
		"products":           len(store.Products()),
		"orders":             len(store.Orders()),
		"outstanding_orders": len(store.OutstandingOrders()),
		"open_checkouts":     store.OpenCheckouts(),
		"sessions":           getSessions(c).len(),
		"last_saved":         nil,
	}
	if !lastSaved.IsZero() {
		status["last_saved"] = lastSaved
	}
	return ok(c, status)
}

func saveSnapshot(c echo.Context) error {
	if err := GetBackend(c).SaveNow(c.Request().Context()); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to save snapshot", err.Error())
	}
	return ok(c, map[string]interface{}{"saved": true})
}
