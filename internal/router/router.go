package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/property-booking/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/property-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Map the GET request at path "/healthz" to the Health handler.  This
    // endpoint can be used by load balancers or monitoring systems to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Operations that do not require an existing session: register, login
    // and the two refresh variants.  Each handler generates or exchanges
    // tokens itself.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // POST /v1/auth/refresh rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // POST /v1/auth/refresh-access issues a new access token without rotation.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout does not require JWT authentication.  The handler accepts a
    // JSON body containing a refresh_token and invalidates it; 204 on
    // success, 400/401/500 depending on the error.
    g.POST("/logout", a.Logout)

    // Protected endpoints live under /v1 and require a valid access token
    // with a known role.  Both roles may inspect their own identity.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("ADMIN", "GUEST"))
    auth.GET("/me", a.Me)

    // Alias so clients can call either /v1/auth/logout or /v1/logout with a
    // valid refresh token in the body to terminate a session.
    e.POST("/v1/logout", a.Logout)
}
