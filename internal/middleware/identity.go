package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID resolves the caller identity that JWTAuth stored in the
// Echo context so rate-limit keys can be scoped per user.  When no user
// is authenticated, "anon" is returned and keys fall back to IP scoping.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user id as a string, or "anon".
// JWTAuth stores the sub claim unconverted, so numeric claims arrive as
// float64 and string claims as string.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    }
    return "anon"
}
