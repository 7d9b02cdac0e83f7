package dto

import (
	"loft/infras/jwt"
	memberModel "loft/internal/domains/member/model"
	"loft/shared/constant"
	gModel "loft/shared/model"
	"loft/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string  `json:"email"     validate:"required,email,max=100"`
	Password string  `json:"password"  validate:"required,min=8,max=72"`
	Name     string  `json:"name"      validate:"required,max=100"`
	Phone    string  `json:"phone"     validate:"omitempty,max=20"`
	Role     string  `json:"role"      validate:"required,oneof=OWNER USER"`
	TenantID *string `json:"tenant_id" validate:"omitempty,uuid4"`
}

func (r *RegisterRequest) ToMemberModel(actor, hashedPassword string) memberModel.Member {
	return memberModel.Member{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Name:     r.Name,
		Phone:    r.Phone,
		Role:     r.Role,
		Status:   constant.StatusRegister,
		TenantID: r.TenantID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
