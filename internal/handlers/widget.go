package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mixlist/internal/service"
)

// WidgetHandler serves the cocktail search and shopping list API.
type WidgetHandler struct {
	Service *service.WidgetService
}

// NewWidgetHandler creates a new WidgetHandler.
func NewWidgetHandler(widgetService *service.WidgetService) *WidgetHandler {
	return &WidgetHandler{Service: widgetService}
}

type setQueryRequest struct {
	Query string `json:"query"`
}

type addToListRequest struct {
	ResultIndex *int `json:"result_index" binding:"required"`
}

// GetState handles GET /v1/state
func (h *WidgetHandler) GetState(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	snap, err := h.Service.Snapshot(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SetQuery handles PUT /v1/query
func (h *WidgetHandler) SetQuery(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req setQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	snap, err := h.Service.SetQuery(id, req.Query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Search handles POST /v1/search. A failed lookup still answers 200; the
// snapshot carries the error notification.
func (h *WidgetHandler) Search(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	snap, err := h.Service.Search(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// AddToShoppingList handles POST /v1/shopping-list
func (h *WidgetHandler) AddToShoppingList(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req addToListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "result_index is required"})
		return
	}

	snap, err := h.Service.AddFromResult(id, *req.ResultIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// RemoveIngredient handles DELETE /v1/shopping-list/*name. The name is a
// catch-all so names containing "/" still reach the handler.
func (h *WidgetHandler) RemoveIngredient(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient name is required"})
		return
	}

	snap, err := h.Service.RemoveIngredient(id, name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// PrintList handles GET /v1/shopping-list/print
func (h *WidgetHandler) PrintList(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	doc, err := h.Service.PrintList(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

// Page handles GET / and renders the widget with the session's current state.
func (h *WidgetHandler) Page(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	snap, err := h.Service.Snapshot(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.HTML(http.StatusOK, pageTemplateName, snap)
}
