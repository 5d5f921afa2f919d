package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/booking"
)

// StatusHandler serves the owner's room-status view and the manual
// reconciliation trigger.  Both go through the availability engine so
// the derived booked flag and the freeing rule match the hourly job
// exactly.
type StatusHandler struct {
    Engine *booking.Engine
}

// NewStatusHandler constructs a StatusHandler.
func NewStatusHandler(engine *booking.Engine) *StatusHandler {
    if engine == nil {
        panic("nil Engine passed to NewStatusHandler")
    }
    return &StatusHandler{Engine: engine}
}

// RoomStatus handles GET /v1/admin/properties/:id/status.
func (h *StatusHandler) RoomStatus(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    propertyID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
    }
    status, err := h.Engine.RoomStatus(c.Request().Context(), propertyID, ownerID)
    if err != nil {
        if errors.Is(err, booking.ErrPropertyNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room status"})
    }
    return c.JSON(http.StatusOK, status)
}

// Reconcile handles POST /v1/admin/reconcile: the manual counterpart of
// the hourly job, for operators who do not want to wait for the tick.
func (h *StatusHandler) Reconcile(c echo.Context) error {
    freed, err := h.Engine.Reconcile(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reconciliation failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"rooms_freed": freed})
}
