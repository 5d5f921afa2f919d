package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/handler"
    "github.com/iliyamo/property-booking/internal/middleware"
)

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The BrowseHandler returns sanitized data for properties,
// their rooms, amenities and reviews.  No JWT or role middleware applies;
// the optional cache middleware (wired in main) makes these cheap to serve.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, extra ...echo.MiddlewareFunc) {
    // Expose the list of all properties.
    e.GET("/v1/properties", b.ListProperties, extra...)
    // A single property with its amenities, rooms and reviews.
    e.GET("/v1/properties/:id", b.GetProperty, extra...)
}

// RegisterGuest registers guest-scoped endpoints under /v1.  All routes
// require a valid JWT and the GUEST role.  Guests can book a room, cancel
// their own bookings, list their bookings and leave reviews.
func RegisterGuest(e *echo.Echo, g *handler.GuestHandler, b *handler.BrowseHandler, jwtSecret string) {
    grp := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("GUEST"),
    )
    // Note: GET /v1/properties and GET /v1/properties/:id are registered on
    // the public router so that anyone can browse listings.  Guest-specific
    // endpoints begin here.
    grp.POST("/properties/:id/rooms/:room_id/book", g.BookRoom)
    grp.DELETE("/bookings/:id", g.CancelBooking)
    grp.GET("/my-bookings", g.ListBookings)

    // Reviews require authentication so each review carries a real author.
    grp.POST("/rooms/:id/reviews", b.AddReview)
}
