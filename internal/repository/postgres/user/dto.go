package user

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type GetListResponse struct {
	ID       int     `json:"id"`
	Login    *string `json:"login"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

type GetDetailByIdResponse struct {
	ID       int     `json:"id"`
	Login    *string `json:"login"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

type CreateRequest struct {
	Login    *string `json:"login" form:"login"`
	Password *string `json:"password" form:"password"`
	FullName *string `json:"full_name" form:"full_name"`
	Role     *string `json:"role" form:"role"`
	Phone    *string `json:"phone" form:"phone"`
	Email    *string `json:"email" form:"email"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID        int       `json:"id" bun:"-"`
	Login     *string   `json:"login" bun:"login"`
	Password  *string   `json:"-" bun:"password"`
	FullName  *string   `json:"full_name" bun:"full_name"`
	Role      *string   `json:"role" bun:"role"`
	Phone     *string   `json:"phone" bun:"phone"`
	Email     *string   `json:"email" bun:"email"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type SignInRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type AuthClaims struct {
	ID   int
	Role string
}

type UpdateRequest struct {
	ID       int     `json:"id" form:"id"`
	Login    *string `json:"login" form:"login"`
	Password *string `json:"password" form:"password"`
	FullName *string `json:"full_name" form:"full_name"`
	Role     *string `json:"role" form:"role"`
	Phone    *string `json:"phone" form:"phone"`
	Email    *string `json:"email" form:"email"`
}
