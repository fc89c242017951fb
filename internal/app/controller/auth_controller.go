package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/hyunsoo-dev/matzip-backend/internal/errors"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/service"
	"github.com/hyunsoo-dev/matzip-backend/pkg/redis"
)

type AuthController struct {
	authService  *service.AuthService
	accessExpiry time.Duration
}

func NewAuthController(authService *service.AuthService, accessExpiry time.Duration) *AuthController {
	return &AuthController{
		authService:  authService,
		accessExpiry: accessExpiry,
	}
}

// Register 회원가입
// @Summary 회원가입
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} model.User
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Nickname string `json:"nickname" binding:"required,min=2,max=30"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	user, err := ctrl.authService.Register(service.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Nickname: input.Nickname,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "이미 가입된 이메일입니다")
			return
		}
		apperrors.InternalError(c, "회원가입에 실패했습니다")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"nickname": user.Nickname,
	})
}

// Login 로그인
// @Summary 로그인
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} object
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	user, tokens, err := ctrl.authService.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "이메일 또는 비밀번호가 올바르지 않습니다")
			return
		}
		apperrors.InternalError(c, "로그인에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"nickname": user.Nickname,
			"role":     user.Role,
		},
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Logout 로그아웃 (현재 액세스 토큰 폐기)
// @Summary 로그아웃
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		apperrors.Unauthorized(c, "")
		return
	}

	// 남은 유효기간만큼만 블랙리스트에 보관한다
	if err := redis.BlacklistToken(c.Request.Context(), parts[1], ctrl.accessExpiry); err != nil && err != redis.ErrNotConnected {
		apperrors.InternalError(c, "로그아웃에 실패했습니다")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Refresh 토큰 재발급
// @Summary 토큰 재발급
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} object
// @Router /auth/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	tokens, err := ctrl.authService.RefreshTokens(input.RefreshToken)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "유효하지 않은 리프레시 토큰입니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// GetMe 내 정보 조회
// @Summary 내 정보
// @Tags Auth
// @Produce json
// @Success 200 {object} model.User
// @Router /users/me [get]
func (ctrl *AuthController) GetMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "사용자를 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "사용자 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe 내 정보 수정
// @Summary 내 정보 수정
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} model.User
// @Router /users/me [patch]
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var input struct {
		Nickname     *string `json:"nickname"`
		ProfileImage *string `json:"profile_image"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, service.UpdateProfileInput{
		Nickname:     input.Nickname,
		ProfileImage: input.ProfileImage,
	})
	if err != nil {
		apperrors.InternalError(c, "프로필 수정에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, user)
}
