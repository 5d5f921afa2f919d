package router // router defines how HTTP routes are registered for the API

import (
    "github.com/iliyamo/property-booking/internal/handler"    // owner handlers
    "github.com/iliyamo/property-booking/internal/middleware" // JWT + role middlewares
    "github.com/labstack/echo/v4"
)

// RegisterOwner registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, am *handler.AmenityHandler, rm *handler.RoomHandler, st *handler.StatusHandler, jwtSecret string) {
    // Attach middlewares at group construction time for clarity.
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )

    // ---- Properties ----
    g.GET("/properties", o.ListOwn) // dashboard list of own listings
    g.POST("/properties", o.CreateProperty)
    g.PUT("/properties/:id", o.UpdateProperty)
    g.PATCH("/properties/:id", o.UpdateProperty) // allow partial/semantic updates via PATCH as well
    g.DELETE("/properties/:id", o.DeleteProperty)

    // ---- Amenities ----
    g.POST("/properties/:id/amenities", am.CreateAmenity)
    g.PUT("/amenities/:id", am.UpdateAmenity)
    g.PATCH("/amenities/:id", am.UpdateAmenity)
    g.DELETE("/amenities/:id", am.DeleteAmenity)

    // ---- Rooms ----
    g.POST("/properties/:id/rooms", rm.CreateRoom)
    g.PUT("/rooms/:id", rm.UpdateRoom)
    g.PATCH("/rooms/:id", rm.UpdateRoom)
    g.DELETE("/rooms/:id", rm.DeleteRoom)

    // ---- Room status and reconciliation ----
    g.GET("/properties/:id/status", st.RoomStatus) // per-room booked/available view
    g.POST("/reconcile", st.Reconcile)             // manual availability sweep
}
