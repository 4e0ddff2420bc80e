package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dailydiet/internal/app"
	"dailydiet/internal/transport/http/middleware"
	"dailydiet/internal/transport/http/response"
)

type MealHandler struct {
	mealService *app.MealService
}

type MealRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	InDiet      *bool      `json:"in_diet" binding:"required"`
	Date        *time.Time `json:"date"`
}

func NewMealHandler(mealService *app.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (h *MealHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	meal, err := h.mealService.CreateMeal(app.MealInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		InDiet:      *req.InDiet,
		Date:        req.Date,
	})
	if err != nil {
		h.respondMealError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

func (h *MealHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	meal, err := h.mealService.UpdateMeal(c.Param("id"), app.MealInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		InDiet:      *req.InDiet,
		Date:        req.Date,
	})
	if err != nil {
		h.respondMealError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (h *MealHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	if err := h.mealService.DeleteMeal(userID, c.Param("id")); err != nil {
		h.respondMealError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *MealHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	meal, err := h.mealService.GetMeal(userID, c.Param("id"))
	if err != nil {
		h.respondMealError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (h *MealHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	meals, err := h.mealService.ListMeals(userID)
	if err != nil {
		h.respondMealError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) Summary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	summary, err := h.mealService.Summary(userID)
	if err != nil {
		h.respondMealError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *MealHandler) respondMealError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrMealNotFound):
		response.Error(c, http.StatusNotFound, "meal not found")
	case errors.Is(err, app.ErrMealForbidden):
		response.Error(c, http.StatusForbidden, "meal belongs to another user")
	default:
		response.Error(c, http.StatusInternalServerError, "meal operation failed")
	}
}
