package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

// AmenityHandler serves amenity CRUD under the admin routes.
type AmenityHandler struct {
    Amenities *repository.AmenityRepo
}

// NewAmenityHandler constructs an AmenityHandler.
func NewAmenityHandler(amenities *repository.AmenityRepo) *AmenityHandler {
    if amenities == nil {
        panic("nil AmenityRepo passed to NewAmenityHandler")
    }
    return &AmenityHandler{Amenities: amenities}
}

type amenityReq struct {
    Name        string `json:"name"`
    Description string `json:"description"`
}

// CreateAmenity handles POST /v1/admin/properties/:id/amenities.
func (h *AmenityHandler) CreateAmenity(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    propertyID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
    }
    var body amenityReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    a := model.Amenity{PropertyID: propertyID, Name: body.Name, Description: body.Description}
    id, err := h.Amenities.Create(c.Request().Context(), ownerID, &a)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrForbidden) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create amenity"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"amenity_id": id})
}

// UpdateAmenity handles PUT /v1/admin/amenities/:id.
func (h *AmenityHandler) UpdateAmenity(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    amenityID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid amenity id"})
    }
    var body amenityReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    a := model.Amenity{ID: amenityID, Name: body.Name, Description: body.Description}
    if err := h.Amenities.Update(c.Request().Context(), ownerID, &a); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update amenity"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "amenity updated"})
}

// DeleteAmenity handles DELETE /v1/admin/amenities/:id.
func (h *AmenityHandler) DeleteAmenity(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    amenityID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid amenity id"})
    }
    if err := h.Amenities.Delete(c.Request().Context(), ownerID, amenityID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "amenity not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete amenity"})
    }
    return c.NoContent(http.StatusNoContent)
}
