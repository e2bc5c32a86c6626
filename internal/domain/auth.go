package domain

// AuthMethod selects the credential backend used at login
type AuthMethod string

const (
	AuthLDAP        AuthMethod = "ldap"
	AuthDevelopment AuthMethod = "development"
)

// Credentials are submitted to the login endpoint
type Credentials struct {
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	AuthMethod AuthMethod `json:"authMethod"`
}

// User is the signed-in user's profile
type User struct {
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Department  string   `json:"department,omitempty"`
	Title       string   `json:"title,omitempty"`
	Groups      []string `json:"groups"`
}

// Name returns the best available human-readable name
func (u *User) Name() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.FullName != "":
		return u.FullName
	default:
		return u.Username
	}
}

// AuthTokens is the token pair issued at login or refresh
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}
