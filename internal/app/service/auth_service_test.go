package service

import (
	"testing"
	"time"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/internal/db"
	"github.com/hyunsoo-dev/matzip-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) *AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-jwt-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		email    string
		password string
		nickname string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			email:    "test@example.com",
			password: "password123",
			nickname: "맛집헌터",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			email:    "test@example.com",
			password: "password456",
			nickname: "다른닉네임",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authService.Register(RegisterInput{
				Email:    tt.email,
				Password: tt.password,
				Nickname: tt.nickname,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.nickname, user.Nickname)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	email := "login@example.com"
	password := "password123"
	_, err := authService.Register(RegisterInput{Email: email, Password: password, Nickname: "로그인러"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "Valid login", email: email, password: password, wantErr: nil},
		{name: "Wrong password", email: email, password: "wrongpassword", wantErr: ErrInvalidCredentials},
		{name: "Non-existing user", email: "notfound@example.com", password: password, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)

				claims, err := util.ValidateToken(tokens.AccessToken, "test-jwt-secret")
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
			}
		})
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "refresh@example.com",
		Password: "password123",
		Nickname: "갱신러",
	})
	require.NoError(t, err)

	_, tokens, err := authService.Login("refresh@example.com", "password123")
	require.NoError(t, err)

	newTokens, err := authService.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newTokens.AccessToken)
	assert.NotEmpty(t, newTokens.RefreshToken)

	_, err = authService.RefreshTokens("not-a-valid-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, err := authService.Register(RegisterInput{
		Email:    "lookup@example.com",
		Password: "password123",
		Nickname: "조회러",
	})
	require.NoError(t, err)

	found, err := authService.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, found.Email)

	_, err = authService.GetUserByID(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, err := authService.Register(RegisterInput{
		Email:    "profile@example.com",
		Password: "password123",
		Nickname: "이전닉네임",
	})
	require.NoError(t, err)

	newNickname := "바뀐닉네임"
	newImage := "https://cdn.example.com/profile.png"
	updated, err := authService.UpdateProfile(registered.ID, UpdateProfileInput{
		Nickname:     &newNickname,
		ProfileImage: &newImage,
	})
	require.NoError(t, err)
	assert.Equal(t, newNickname, updated.Nickname)
	assert.Equal(t, newImage, updated.ProfileImage)

	// 주지 않은 필드는 그대로 남는다
	updated, err = authService.UpdateProfile(registered.ID, UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, newNickname, updated.Nickname)

	_, err = authService.UpdateProfile(999, UpdateProfileInput{Nickname: &newNickname})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
