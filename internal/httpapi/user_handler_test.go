package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sepet-be/internal/user"
	"sepet-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// asUser simulates the auth middleware for a bare handler test.
func asUser(userID int, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(p user.RegisterParams) bool {
			return p.Email == "a@b.com" && p.Password == "secret" && *p.Name == "John"
		})).Return("tok", user.User{ID: 1, Email: "a@b.com"}, nil)

		r := gin.New()
		r.POST("/register", NewUserHandler(svc).Register)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/register",
			strings.NewReader(`{"email":"a@b.com","password":"secret","name":"John"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"tok"`)
		assert.Contains(t, w.Body.String(), `"a@b.com"`)
		svc.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := new(MockUserService)

		r := gin.New()
		r.POST("/register", NewUserHandler(svc).Register)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/register", strings.NewReader(`{"email":"a@b.com"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, mock.Anything).
			Return("", user.User{}, user.ErrEmailExists)

		r := gin.New()
		r.POST("/register", NewUserHandler(svc).Register)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/register",
			strings.NewReader(`{"email":"a@b.com","password":"secret"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already registered")
	})
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Login", mock.Anything, "a@b.com", "secret").
			Return("tok", &user.Profile{User: user.User{ID: 1, Email: "a@b.com"}}, nil)

		r := gin.New()
		r.POST("/login", NewUserHandler(svc).Login)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login",
			strings.NewReader(`{"email":"a@b.com","password":"secret"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"tok"`)
	})

	t.Run("BadCredentials_401WithBody", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Login", mock.Anything, "a@b.com", "wrong").
			Return("", nil, user.ErrInvalidCredentials)

		r := gin.New()
		r.POST("/login", NewUserHandler(svc).Login)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login",
			strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "error")
		assert.NotContains(t, w.Body.String(), "token")
	})
}

func TestUserHandler_Profile(t *testing.T) {
	t.Run("OwnProfile", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetProfile", mock.Anything, 7).
			Return(&user.Profile{User: user.User{ID: 7, Email: "a@b.com"}}, nil)

		r := gin.New()
		r.GET("/profile/:userId", asUser(7, "customer"), NewUserHandler(svc).Profile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/profile/7", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"a@b.com"`)
	})

	t.Run("OtherUsersProfile_Forbidden", func(t *testing.T) {
		svc := new(MockUserService)

		r := gin.New()
		r.GET("/profile/:userId", asUser(7, "customer"), NewUserHandler(svc).Profile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/profile/8", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("AdminMayReadAny", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetProfile", mock.Anything, 8).
			Return(&user.Profile{User: user.User{ID: 8}}, nil)

		r := gin.New()
		r.GET("/profile/:userId", asUser(1, "admin"), NewUserHandler(svc).Profile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/profile/8", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetProfile", mock.Anything, 7).Return(nil, user.ErrNotFound)

		r := gin.New()
		r.GET("/profile/:userId", asUser(7, "customer"), NewUserHandler(svc).Profile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/profile/7", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc := new(MockUserService)

		r := gin.New()
		r.GET("/profile/:userId", asUser(7, "customer"), NewUserHandler(svc).Profile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/profile/abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateProfile", mock.Anything, user.UpdateProfileParams{
			UserID: 7,
			Name:   utils.StrPtr("Jane"),
		}).Return(nil)

		r := gin.New()
		r.PUT("/users/:id", asUser(7, "customer"), NewUserHandler(svc).UpdateProfile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/users/7", strings.NewReader(`{"name":"Jane"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("OtherUser_Forbidden", func(t *testing.T) {
		svc := new(MockUserService)

		r := gin.New()
		r.PUT("/users/:id", asUser(7, "customer"), NewUserHandler(svc).UpdateProfile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/users/8", strings.NewReader(`{"name":"Jane"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateProfile", mock.Anything, mock.Anything).Return(user.ErrNotFound)

		r := gin.New()
		r.PUT("/users/:id", asUser(7, "customer"), NewUserHandler(svc).UpdateProfile)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/users/7", strings.NewReader(`{"name":"Jane"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_ListNonAdmin(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ListNonAdmin", mock.Anything).
		Return([]user.User{{ID: 2, Email: "c@d.com"}}, nil)

	r := gin.New()
	r.GET("/admin/users", NewUserHandler(svc).ListNonAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"c@d.com"`)
}
