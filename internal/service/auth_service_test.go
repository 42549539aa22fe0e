package service_test

import (
	"context"
	"testing"

	"github.com/Michelteixeiradev/sistema-loja/internal/config"
	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/model"
	"github.com/Michelteixeiradev/sistema-loja/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func buildAuthSvc() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{JWTSecret: testSecret, JWTExpirationHours: 8}
	return service.NewAuthService(repo, cfg), repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "maria",
		Name:     "Maria Souza",
		Password: "s3cret",
		Role:     model.RoleSeller,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleSeller, resp.User.Role)

	// The token carries the role claim and verifies against the secret
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "maria", claims["username"])
	assert.Equal(t, model.RoleSeller, claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "admin",
		Name:     "Administrator",
		Password: "right",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "wrong"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, repo := buildAuthSvc()
	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "john",
		Name:     "John",
		Password: "plaintext",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	for _, u := range repo.users {
		if u.Username == "john" {
			assert.NotEqual(t, "plaintext", u.PasswordHash)
			assert.NotEmpty(t, u.PasswordHash)
		}
	}
	assert.Equal(t, model.RoleAdmin, resp.Role)
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "eve",
		Name:     "Eve",
		Password: "pw",
		Role:     "superuser",
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}
