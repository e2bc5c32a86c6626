package wire

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	AuthMethod string `json:"authMethod"`
}

// RefreshRequest is the body of POST /auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// User is the profile as the directory backend reports it
type User struct {
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Department  *string  `json:"department,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Groups      []string `json:"groups"`
}

// Tokens is the token pair issued by login and refresh
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

// AuthResponse is the body of login and refresh responses
type AuthResponse struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}
