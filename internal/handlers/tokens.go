package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/dto"
	apierrors "github.com/irisdash/dashboard-api/internal/errors"
	"github.com/irisdash/dashboard-api/internal/middleware"
	"github.com/irisdash/dashboard-api/internal/services"
)

// TokenHandler coordinates registration token handlers. All routes are
// admin only.
type TokenHandler struct {
	tokenService *services.TokenService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

// MintToken generates a new registration token.
func (h *TokenHandler) MintToken(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	token, err := h.tokenService.Mint(actor)
	if err != nil {
		respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTokenDTO(*token))
}

// ListTokens returns every token with its usage state.
func (h *TokenHandler) ListTokens(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tokens, err := h.tokenService.List(actor)
	if err != nil {
		respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenDTOs(tokens))
}

// DeleteToken removes an unused token; used tokens respond 409.
func (h *TokenHandler) DeleteToken(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.tokenService.Delete(actor, c.Param("token")); err != nil {
		respondTokenError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTokenNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTokenAlreadyUsed):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
