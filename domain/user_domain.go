package domain

import "errors"

var (
	MessageSuccessRegister      = "user registered, check your email to confirm the account"
	MessageSuccessLogin         = "login success"
	MessageSuccessSendVerify    = "verification email sent"
	MessageSuccessVerifyEmail   = "email verified successfully"
	MessageSuccessGetDetailUser = "success get user detail"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedSendVerify    = "failed to send verification email"
	MessageFailedVerifyEmail   = "failed to verify email"
	MessageFailedGetDetailUser = "failed to get user detail"

	ErrUsernameTaken       = errors.New("user with this username already exists")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrCredentialsNotMatch = errors.New("credentials not match")
	ErrAccountNotVerified  = errors.New("account is not verified")
	ErrAccountVerified     = errors.New("account already verified")
	ErrUnauthenticated     = errors.New("authentication required")
)

type (
	RegisterRequest struct {
		Username        string `json:"username" validate:"required,min=3,max=150"`
		Email           string `json:"email" validate:"required,email,max=256"`
		Password        string `json:"password" validate:"required,min=6"`
		PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	SendVerifyRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
		Role     string `json:"role"`
	}
)
