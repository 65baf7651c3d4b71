package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"luxreplica-backend/dtos"
	"luxreplica-backend/middleware"
	"luxreplica-backend/storage"
	"luxreplica-backend/utils"

	"github.com/gin-gonic/gin"
)

// CartHandler serves the session cart. Routes must run behind
// middleware.CartSession; only GetCart and a valid AddToCart start a session.
type CartHandler struct {
	Store storage.CartStore
}

// respondSnapshot answers with the current cart of sessionID.
func (h *CartHandler) respondSnapshot(c *gin.Context, status int, sessionID string) {
	items, err := h.Store.GetCartItems(c.Request.Context(), sessionID)
	if err != nil {
		respondInternal(c, err, "Failed to fetch cart")
		return
	}
	c.JSON(status, dtos.NewCartSnapshot(items))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	h.respondSnapshot(c, http.StatusOK, middleware.EnsureSession(c))
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dtos.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, utils.SanitizeValidationError(err))
		return
	}

	sessionID := middleware.EnsureSession(c)
	if _, err := h.Store.CreateCartItem(c.Request.Context(), req.CartItem(sessionID)); err != nil {
		respondInternal(c, err, "An error occurred adding item to cart")
		return
	}

	h.respondSnapshot(c, http.StatusCreated, sessionID)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req dtos.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quantity")
		return
	}

	id, ok := h.ownedItemID(c, "Not authorized to modify this cart item")
	if !ok {
		return
	}

	_, err := h.Store.UpdateCartItemQuantity(c.Request.Context(), id, *req.Quantity)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Cart item not found")
		return
	}
	if err != nil {
		respondInternal(c, err, "Failed to update cart item")
		return
	}

	h.respondSnapshot(c, http.StatusOK, middleware.SessionID(c))
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	id, ok := h.ownedItemID(c, "Not authorized to delete this cart item")
	if !ok {
		return
	}

	if err := h.Store.DeleteCartItem(c.Request.Context(), id); err != nil {
		respondInternal(c, err, "Failed to remove item from cart")
		return
	}

	h.respondSnapshot(c, http.StatusOK, middleware.SessionID(c))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if !middleware.HasSessionCookie(c) {
		respondError(c, http.StatusBadRequest, "No cart session found")
		return
	}

	sessionID := middleware.SessionID(c)
	if err := h.Store.ClearCart(c.Request.Context(), sessionID); err != nil {
		respondInternal(c, err, "Failed to clear cart")
		return
	}

	h.respondSnapshot(c, http.StatusOK, sessionID)
}

// ownedItemID resolves the :id cart item and checks that it belongs to the
// caller's session. It writes the error response and returns false when the
// item is missing (404) or owned by someone else (403).
func (h *CartHandler) ownedItemID(c *gin.Context, forbidden string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Cart item not found")
		return 0, false
	}

	item, err := h.Store.GetCartItem(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Cart item not found")
		return 0, false
	}
	if err != nil {
		respondInternal(c, err, "Failed to fetch cart item")
		return 0, false
	}

	if !middleware.HasSessionCookie(c) || item.SessionID != middleware.SessionID(c) {
		respondError(c, http.StatusForbidden, forbidden)
		return 0, false
	}
	return id, true
}
