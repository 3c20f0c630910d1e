package dto

type RegisterRequest struct {
	FirstName    string `json:"firstname" validate:"required,min=3"`
	LastName     string `json:"lastname" validate:"required,min=3"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobilenumber" validate:"required,min=10"`
	Password     string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	User TokenPair `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
	ID      uint   `json:"id" validate:"required"`
}
