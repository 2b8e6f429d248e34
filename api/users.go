package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airportservice/internal/auth"
	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/service/users"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"max=150"`
	Password string `json:"password" binding:"required,min=5"`
}

type updateMeRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"max=150"`
	Password string `json:"password" binding:"omitempty,min=5"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type accessResponse struct {
	Access string `json:"access"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsStaff   bool      `json:"is_staff"`
	UserImage *string   `json:"user_image"`
	CreatedAt time.Time `json:"created_at"`
}

type UserHandler struct {
	service users.UserUseCase
	media   MediaURLs
}

func NewUserHandler(service users.UserUseCase, media MediaURLs) *UserHandler {
	return &UserHandler{service: service, media: media}
}

// Register mounts the public account endpoints and the /me endpoints guarded by auth.Authenticated.
func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/token", h.token)
	router.POST("/token/refresh", h.refresh)
	router.POST("/token/verify", h.verify)

	me := router.Group("/me", auth.Authenticated())
	me.GET("", h.me)
	me.PUT("", h.updateMe)
	me.PATCH("", h.updateMe)
	me.POST("/upload-image", h.uploadImage)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), users.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.newUserResponse(user))
}

func (h *UserHandler) token(c *gin.Context) {
	var req tokenRequest
	if !bindJSON(c, &req) {
		return
	}
	pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenPairResponse{Access: pair.Access, Refresh: pair.Refresh})
}

func (h *UserHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	access, err := h.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accessResponse{Access: access})
}

func (h *UserHandler) verify(c *gin.Context) {
	var req verifyRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.Verify(c.Request.Context(), req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *UserHandler) me(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	user, err := h.service.Me(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.newUserResponse(user))
}

func (h *UserHandler) updateMe(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req updateMeRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.Me(c.Request.Context(), identity.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		req = updateMeRequest{Email: current.Email, Username: current.Username}
	}
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateMe(c.Request.Context(), identity.UserID, users.UpdateInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.newUserResponse(user))
}

func (h *UserHandler) uploadImage(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	file, err := formFile(c, "user_image")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.service.UploadImage(c.Request.Context(), identity.UserID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.newUserResponse(user))
}

func (h *UserHandler) newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsStaff:   u.IsStaff,
		UserImage: imageURL(h.media, u.Image),
		CreatedAt: u.CreatedAt,
	}
}
