package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

// OwnerHandler serves the admin dashboard endpoints: property CRUD plus
// the per-property room status view.  Every operation is scoped to the
// authenticated owner; a missing row and a row owned by someone else
// both come back as 404 so the API leaks nothing about other listings.
type OwnerHandler struct {
    Props *repository.PropertyRepo
}

// NewOwnerHandler constructs an OwnerHandler.  Props must be non-nil.
func NewOwnerHandler(props *repository.PropertyRepo) *OwnerHandler {
    if props == nil {
        panic("nil PropertyRepo passed to NewOwnerHandler")
    }
    return &OwnerHandler{Props: props}
}

type propertyReq struct {
    Address          string `json:"address"`
    City             string `json:"city"`
    State            string `json:"state"`
    Country          string `json:"country"`
    Description      string `json:"description"`
    ImageURL         string `json:"image_url"`
    ImageDescription string `json:"image_description"`
}

func (r *propertyReq) validate() string {
    if r.Address == "" || r.City == "" || r.Country == "" {
        return "address, city and country are required"
    }
    return ""
}

// ListOwn handles GET /v1/admin/properties: the owner's dashboard list.
func (h *OwnerHandler) ListOwn(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    props, err := h.Props.ListByOwner(c.Request().Context(), ownerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load properties"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": props})
}

// CreateProperty handles POST /v1/admin/properties.
func (h *OwnerHandler) CreateProperty(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body propertyReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    p := model.Property{
        OwnerID:          ownerID,
        Address:          body.Address,
        City:             body.City,
        State:            body.State,
        Country:          body.Country,
        Description:      body.Description,
        ImageURL:         body.ImageURL,
        ImageDescription: body.ImageDescription,
    }
    id, err := h.Props.Create(c.Request().Context(), &p)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create property"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"property_id": id})
}

// UpdateProperty handles PUT /v1/admin/properties/:id.
func (h *OwnerHandler) UpdateProperty(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    propertyID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
    }
    var body propertyReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    p := model.Property{
        ID:               propertyID,
        OwnerID:          ownerID,
        Address:          body.Address,
        City:             body.City,
        State:            body.State,
        Country:          body.Country,
        Description:      body.Description,
        ImageURL:         body.ImageURL,
        ImageDescription: body.ImageDescription,
    }
    if err := h.Props.Update(c.Request().Context(), &p); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update property"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "property updated"})
}

// DeleteProperty handles DELETE /v1/admin/properties/:id.  The cascade
// removes rooms and amenities with the listing; rooms that still carry
// bookings block the whole delete with 409.
func (h *OwnerHandler) DeleteProperty(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    propertyID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
    }
    if err := h.Props.DeleteCascade(c.Request().Context(), propertyID, ownerID); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows), errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "property has rooms with bookings"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete property"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
