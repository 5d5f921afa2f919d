package handler

import (
    "context"  // background context for fire-and-forget event publishing
    "errors"   // errors.Is comparisons against engine sentinels
    "net/http" // HTTP status codes
    "time"     // event timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/property-booking/internal/booking"          // availability engine
    "github.com/iliyamo/property-booking/internal/queue"            // event payloads
    "github.com/iliyamo/property-booking/internal/repository"       // booking listings
    queue_publisher "github.com/iliyamo/property-booking/internal/service" // RabbitMQ publisher
)

// GuestHandler exposes the booking lifecycle to guests: book a room,
// cancel a booking, list own bookings.  JWT authentication and the
// GUEST role check have already run in middleware; the handler only
// extracts the caller identity and delegates to the engine.  The
// engine's sentinel errors carry enough information for the handler to
// choose the HTTP status and a one-line message.
type GuestHandler struct {
    Engine   *booking.Engine
    Bookings *repository.BookingRepo
}

// NewGuestHandler constructs a GuestHandler.  Dependencies must be non-nil.
func NewGuestHandler(engine *booking.Engine, bookings *repository.BookingRepo) *GuestHandler {
    if engine == nil || bookings == nil {
        panic("nil dependency passed to NewGuestHandler")
    }
    return &GuestHandler{Engine: engine, Bookings: bookings}
}

// BookRoom handles POST /v1/properties/:id/rooms/:room_id/book.  The body
// carries the stay dates and payment method.  On success it returns 201
// with the booking id and total; failure statuses mirror the engine's
// error taxonomy so the caller can route back to the property view with
// a message.
func (h *GuestHandler) BookRoom(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    propertyID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
    }
    roomID, ok := pathID(c, "room_id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var body struct {
        CheckInDate   string `json:"check_in_date"`
        CheckOutDate  string `json:"check_out_date"`
        PaymentMethod string `json:"payment_method"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.PaymentMethod == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method is required"})
    }

    res, err := h.Engine.BookRoom(c.Request().Context(), guestID, roomID, body.CheckInDate, body.CheckOutDate, body.PaymentMethod)
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrInvalidDateRange):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range", "property_id": propertyID})
        case errors.Is(err, booking.ErrRoomNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found", "property_id": propertyID})
        case errors.Is(err, booking.ErrRoomUnavailable):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room is currently unavailable", "property_id": propertyID})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed", "property_id": propertyID})
        }
    }

    // Publish after commit; a broker outage must not undo the booking.
    go func(ev queue.BookingConfirmedEvent) {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishBookingConfirmed(ctx, ev)
    }(queue.BookingConfirmedEvent{
        BookingID:     res.BookingID,
        UserID:        guestID,
        RoomID:        res.RoomID,
        PropertyID:    propertyID,
        RoomType:      res.RoomType,
        CheckInDate:   body.CheckInDate,
        CheckOutDate:  body.CheckOutDate,
        Nights:        res.Nights,
        TotalPrice:    res.TotalPrice,
        PaymentMethod: body.PaymentMethod,
        ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusCreated, echo.Map{
        "booking_id":  res.BookingID,
        "total_price": res.TotalPrice,
        "nights":      res.Nights,
    })
}

// CancelBooking handles DELETE /v1/bookings/:id.  Returns 204 on
// success and 404 when the booking does not exist or belongs to a
// different guest; the two cases are indistinguishable on purpose.
func (h *GuestHandler) CancelBooking(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    roomID, err := h.Engine.CancelBooking(c.Request().Context(), guestID, bookingID)
    if err != nil {
        if errors.Is(err, booking.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
    }

    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
            BookingID:   bookingID,
            UserID:      guestID,
            RoomID:      roomID,
            CancelledAt: time.Now().UTC().Format(time.RFC3339),
        })
    }()

    return c.NoContent(http.StatusNoContent)
}

// ListBookings handles GET /v1/my-bookings.  It returns all bookings of
// the current guest joined with room and property details; an empty
// array when none exist.
func (h *GuestHandler) ListBookings(c echo.Context) error {
    guestID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    details, err := h.Bookings.ListByUser(c.Request().Context(), guestID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}
