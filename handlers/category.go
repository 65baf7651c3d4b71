package handlers

import (
	"errors"
	"net/http"

	"luxreplica-backend/storage"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Store storage.CatalogStore
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.Store.GetCategories(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.Store.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		respondInternal(c, err, "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, category)
}
