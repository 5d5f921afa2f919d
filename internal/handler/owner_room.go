package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

// RoomHandler serves room CRUD under the admin routes.  Prices travel
// over the wire as integer cents, never floats.
type RoomHandler struct {
    Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
    if rooms == nil {
        panic("nil RoomRepo passed to NewRoomHandler")
    }
    return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
    RoomType      string `json:"room_type"`
    Capacity      uint32 `json:"capacity"`
    PricePerNight int64  `json:"price_per_night"`
    Available     *bool  `json:"availability_status"`
}

func (r *roomReq) validate() string {
    if r.RoomType == "" {
        return "room_type is required"
    }
    if r.Capacity == 0 {
        return "capacity must be positive"
    }
    if r.PricePerNight <= 0 {
        return "price_per_night must be positive"
    }
    return ""
}

// CreateRoom handles POST /v1/admin/properties/:id/rooms.  New rooms
// default to available unless the body says otherwise.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    propertyID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
    }
    var body roomReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    available := true
    if body.Available != nil {
        available = *body.Available
    }
    rm := model.Room{
        PropertyID:    propertyID,
        RoomType:      body.RoomType,
        Capacity:      body.Capacity,
        PricePerNight: body.PricePerNight,
        Available:     available,
    }
    id, err := h.Rooms.Create(c.Request().Context(), ownerID, &rm)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrForbidden) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"room_id": id})
}

// UpdateRoom handles PUT /v1/admin/rooms/:id.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    roomID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var body roomReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    available := true
    if body.Available != nil {
        available = *body.Available
    }
    rm := model.Room{
        ID:            roomID,
        RoomType:      body.RoomType,
        Capacity:      body.Capacity,
        PricePerNight: body.PricePerNight,
        Available:     available,
    }
    if err := h.Rooms.Update(c.Request().Context(), ownerID, &rm); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "room updated"})
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id.  Rooms with bookings
// keep their history and cannot be removed.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    roomID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    if err := h.Rooms.Delete(c.Request().Context(), ownerID, roomID); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room has bookings"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
