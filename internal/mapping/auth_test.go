package mapping

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

func TestCamelizeKeys(t *testing.T) {
	in := map[string]any{
		"user_id":    float64(123),
		"first_name": "Jane",
		"user_preferences": map[string]any{
			"email_notifications": true,
		},
		"recent_orders": []any{
			map[string]any{"order_id": float64(456)},
		},
		"alreadyCamel": "x",
	}
	want := map[string]any{
		"userId":    float64(123),
		"firstName": "Jane",
		"userPreferences": map[string]any{
			"emailNotifications": true,
		},
		"recentOrders": []any{
			map[string]any{"orderId": float64(456)},
		},
		"alreadyCamel": "x",
	}
	if diff := cmp.Diff(want, CamelizeKeys(in)); diff != "" {
		t.Errorf("CamelizeKeys() mismatch (-want +got):\n%s", diff)
	}
}

func TestCamelizeKeys_Primitives(t *testing.T) {
	assert.Equal(t, "snake_value", CamelizeKeys("snake_value"))
	assert.Nil(t, CamelizeKeys(nil))
}

func TestAuthResponse_SnakeCaseUser(t *testing.T) {
	body, err := json.Marshal(wire.AuthResponse{
		User: wire.User{
			Username:    "jdoe",
			FullName:    "Jane Doe",
			Email:       "jane@example.com",
			DisplayName: "Jane",
			FirstName:   "Jane",
			LastName:    "Doe",
			Department:  wire.String("IT"),
			Groups:      []string{"admins"},
		},
		Tokens: wire.Tokens{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 3600},
	})
	require.NoError(t, err)

	user, tokens, err := AuthResponse(body)
	require.NoError(t, err)
	want := domain.User{
		Username:    "jdoe",
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		DisplayName: "Jane",
		FirstName:   "Jane",
		LastName:    "Doe",
		Department:  "IT",
		Groups:      []string{"admins"},
	}
	if diff := cmp.Diff(want, user); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.AuthTokens{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 3600}, tokens)
}

func TestAuthResponse_SnakeCaseTokens(t *testing.T) {
	body := []byte(`{"user":{"username":"jdoe"},"tokens":{"access_token":"a","refresh_token":"r","token_type":"Bearer","expires_in":60}}`)
	user, tokens, err := AuthResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)
	assert.NotNil(t, user.Groups)
	assert.Equal(t, "a", tokens.AccessToken)
	assert.Equal(t, "r", tokens.RefreshToken)
	assert.Equal(t, 60, tokens.ExpiresIn)
}

func TestAuthResponse_Malformed(t *testing.T) {
	_, _, err := AuthResponse([]byte("not json"))
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	for _, body := range []string{
		`{"username":"jdoe","display_name":"Jane"}`,
		`{"user":{"username":"jdoe","displayName":"Jane"}}`,
	} {
		u, err := Profile([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, "jdoe", u.Username)
		assert.Equal(t, "Jane", u.Name())
	}
}
