package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
	"tcontrol/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
	appEnv      string
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, appEnv string) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService, appEnv: appEnv}
}

// @Summary      Вход в систему
// @Description  Аутентифицирует пользователя и возвращает access-токен
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	user, err := h.authService.Authenticate(c.Request.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("[auth][login][deny] email=%q", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}
		log.Printf("[auth][login][err] email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := h.authService.CreateAccessToken(user.ID)
	if err != nil {
		log.Printf("[auth][login][err] sign token userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	log.Printf("[auth][login][ok] userID=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// @Summary      Регистрация
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		FullName string `json:"full_name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][register][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Email:    req.Email,
		FullName: req.FullName,
	}
	if err := h.userService.CreateUser(c.Request.Context(), user, req.Password); err != nil {
		log.Printf("[auth][register][err] email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}
	log.Printf("[auth][register][ok] userID=%d", user.ID)
	c.JSON(http.StatusCreated, user)
}

// @Summary      Токен без пароля (только local/test)
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Router       /auth/dev-token [post]
func (h *AuthHandler) DevToken(c *gin.Context) {
	// в прод-окружении эндпоинта как будто не существует
	if h.appEnv != "local" && h.appEnv != "test" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("[auth][dev-token][err] email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	token, err := h.authService.CreateAccessToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	log.Printf("[auth][dev-token][ok] userID=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}
