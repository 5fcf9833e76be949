package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"sepet-be/internal/middleware"
	"sepet-be/internal/user"
	"sepet-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// Register handles POST /register.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	token, u, err := h.svc.Register(c.Request.Context(), user.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to register")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// Login handles POST /login. Bad credentials always get a 401 with a
// JSON body, never a hang or a 500.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	token, profile, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
}

// Profile handles GET /profile/:userId. Customers may only read their
// own profile; admins may read any.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, err := utils.ToID(c.Param("userId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if !callerMayAccess(c, userID) {
		respondError(c, http.StatusForbidden, "forbidden")
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /users/:id.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := utils.ToID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if !callerMayAccess(c, userID) {
		respondError(c, http.StatusForbidden, "forbidden")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.svc.UpdateProfile(c.Request.Context(), user.UpdateProfileParams{
		UserID:  userID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// ListNonAdmin handles GET /admin/users.
func (h *UserHandler) ListNonAdmin(c *gin.Context) {
	users, err := h.svc.ListNonAdmin(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// callerMayAccess reports whether the authenticated caller may act on
// the given user's resources: the user themselves, or an admin.
func callerMayAccess(c *gin.Context, userID int) bool {
	if role, ok := c.Get(middleware.RoleKey); ok && role == "admin" {
		return true
	}
	callerID, ok := middleware.UserIDFrom(c)
	return ok && callerID == userID
}
