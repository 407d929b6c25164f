package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menulens/internal/service"
)

// RestaurantHandler handles restaurant management endpoints.
type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// Create handles POST /api/v1/restaurants
// @Summary Create a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param input body service.CreateRestaurantInput true "Restaurant details"
// @Success 201 {object} Response{data=domain.Restaurant} "Restaurant created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var input service.CreateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.restaurantService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, r)
}

// List handles GET /api/v1/restaurants
// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Restaurant,meta=PagMeta} "List of restaurants"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	restaurants, total, err := h.restaurantService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, restaurants, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/restaurants/:id
// @Summary Get restaurant by ID
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID (UUID)"
// @Success 200 {object} Response{data=domain.Restaurant} "Restaurant"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Restaurant not found"
// @Security BearerAuth
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid restaurant ID")
		return
	}

	r, err := h.restaurantService.GetByID(c.Request.Context(), restaurantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, r)
}

// Update handles PUT /api/v1/restaurants/:id
// @Summary Update a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID (UUID)"
// @Param input body service.UpdateRestaurantInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Restaurant} "Updated restaurant"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Restaurant not found"
// @Security BearerAuth
// @Router /restaurants/{id} [put]
func (h *RestaurantHandler) Update(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid restaurant ID")
		return
	}

	var input service.UpdateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	r, err := h.restaurantService.Update(c.Request.Context(), restaurantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, r)
}

// Delete handles DELETE /api/v1/restaurants/:id
// @Summary Delete a restaurant
// @Description Delete a restaurant (admin only)
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Restaurant deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Restaurant not found"
// @Security BearerAuth
// @Router /restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid restaurant ID")
		return
	}

	if err := h.restaurantService.Delete(c.Request.Context(), restaurantID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "restaurant deleted"})
}
