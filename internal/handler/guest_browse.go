package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/repository"
)

// BrowseHandler serves the guest-facing read endpoints: the property
// list, a single property with its amenities, rooms and reviews, and
// review submission.  The list and detail responses are good cache
// candidates and are registered behind the Redis response cache.
type BrowseHandler struct {
    Props     *repository.PropertyRepo
    Amenities *repository.AmenityRepo
    Rooms     *repository.RoomRepo
    Reviews   *repository.ReviewRepo
}

// NewBrowseHandler constructs a BrowseHandler.  Dependencies must be non-nil.
func NewBrowseHandler(props *repository.PropertyRepo, amenities *repository.AmenityRepo, rooms *repository.RoomRepo, reviews *repository.ReviewRepo) *BrowseHandler {
    if props == nil || amenities == nil || rooms == nil || reviews == nil {
        panic("nil repository passed to NewBrowseHandler")
    }
    return &BrowseHandler{Props: props, Amenities: amenities, Rooms: rooms, Reviews: reviews}
}

// ListProperties handles GET /v1/properties.
func (h *BrowseHandler) ListProperties(c echo.Context) error {
    props, err := h.Props.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load properties"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": props})
}

// GetProperty handles GET /v1/properties/:id.  It assembles the full
// detail view: the property, its amenities, its rooms and the reviews
// for each room keyed by room id.
func (h *BrowseHandler) GetProperty(c echo.Context) error {
    propertyID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
    }
    ctx := c.Request().Context()

    prop, err := h.Props.GetByID(ctx, propertyID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load property"})
    }
    amenities, err := h.Amenities.ListByProperty(ctx, propertyID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load amenities"})
    }
    rooms, err := h.Rooms.ListByProperty(ctx, propertyID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
    }
    reviews := make(map[uint64][]repository.ReviewDetail, len(rooms))
    for _, rm := range rooms {
        rv, err := h.Reviews.ListByRoom(ctx, rm.ID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
        }
        reviews[rm.ID] = rv
    }

    return c.JSON(http.StatusOK, echo.Map{
        "property":  prop,
        "amenities": amenities,
        "rooms":     rooms,
        "reviews":   reviews,
    })
}

// AddReview handles POST /v1/rooms/:id/reviews.  Any authenticated
// guest may review a room; the rating must fall in 1..5.
func (h *BrowseHandler) AddReview(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    roomID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var body struct {
        Rating  uint8  `json:"rating"`
        Comment string `json:"comment"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Rating < 1 || body.Rating > 5 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
    }
    // Room must exist; reviews on deleted rooms would orphan.
    if _, err := h.Rooms.GetByID(c.Request().Context(), roomID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
    }
    id, err := h.Reviews.Create(c.Request().Context(), roomID, userID, body.Rating, body.Comment)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"review_id": id})
}
