package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loft/infras/jwt"
	"loft/internal/domains/auth/model/dto"
	"loft/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRegisterRequest_ToMemberModel(t *testing.T) {
	tenantID := "a7f9c2f1-5a34-4d8f-9d5b-0a1b2c3d4e5f"

	req := dto.RegisterRequest{
		Email:    "member@example.com",
		Password: "plaintext",
		Name:     "Test Member",
		Phone:    "+81-90-0000-0000",
		Role:     constant.RoleUser,
		TenantID: &tenantID,
	}

	member := req.ToMemberModel(constant.ContextGuest, "hashed-password")

	assert.NotEmpty(t, member.ID)
	assert.Equal(t, req.Email, member.Email)
	assert.Equal(t, "hashed-password", member.Password)
	assert.Equal(t, req.Name, member.Name)
	assert.Equal(t, req.Role, member.Role)
	assert.Equal(t, constant.StatusRegister, member.Status)
	assert.Equal(t, &tenantID, member.TenantID)
	assert.Equal(t, constant.ContextGuest, member.CreatedBy)
	assert.True(t, member.IsUntouched())
}
