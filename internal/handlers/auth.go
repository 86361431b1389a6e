package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snackforest/shop-service/internal/auth"
	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
	"github.com/snackforest/shop-service/internal/service"
)

const claimsContextKey = "auth_claims"

// Login handles POST /api/login.
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	body := gin.H{
		"success": true,
		"role":    result.Role,
		"token":   result.Token,
	}
	if result.Role == auth.RoleCustomer {
		body["customerId"] = result.CustomerID
		body["customerName"] = result.Name
	}
	c.JSON(http.StatusOK, body)
}

// Register handles POST /api/register.
func (h *Handlers) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "customerId": id})
}

// GetProfile handles GET /api/me.
func (h *Handlers) GetProfile(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil || claims.Role != auth.RoleCustomer {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "customer session required"})
		return
	}

	customer, err := h.authService.GetProfile(c.Request.Context(), claims.CustomerID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateProfile handles PUT /api/me.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil || claims.Role != auth.RoleCustomer {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "customer session required"})
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := h.authService.UpdateProfile(c.Request.Context(), claims.CustomerID, &update)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// RequireAuth verifies the bearer token and stores its claims on the
// request context.
func (h *Handlers) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			handleError(c, errs.NewAuthError("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			handleError(c, err)
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *auth.Claims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
