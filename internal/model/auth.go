package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Roles     []string `json:"roles"`
}

// AuthUser is the request-scoped identity attached by the auth middleware.
// It is built from the token's signed claims only; no store lookup happens
// per request.
type AuthUser struct {
	ID       int64
	Username string
	Email    string
	Roles    []string
}

func (u *AuthUser) HasAnyRole(required ...string) bool {
	for _, want := range required {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
