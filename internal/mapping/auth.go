package mapping

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

var snakeSegment = regexp.MustCompile(`_([a-z])`)

// CamelizeKeys rewrites snake_case object keys to camelCase, recursing into
// nested objects and arrays. Keys that are already camelCase are kept.
func CamelizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[camelize(k)] = CamelizeKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CamelizeKeys(val)
		}
		return out
	default:
		return v
	}
}

func camelize(key string) string {
	return snakeSegment.ReplaceAllStringFunc(key, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// AuthResponse decodes a login or refresh body. The backend has shipped both
// snake_case and camelCase variants, so keys are camelized before decoding.
func AuthResponse(body []byte) (domain.User, domain.AuthTokens, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.User{}, domain.AuthTokens{}, fmt.Errorf("decode auth response: %w", err)
	}
	normalized, err := json.Marshal(CamelizeKeys(raw))
	if err != nil {
		return domain.User{}, domain.AuthTokens{}, fmt.Errorf("re-encode auth response: %w", err)
	}

	var resp struct {
		User   domain.User       `json:"user"`
		Tokens domain.AuthTokens `json:"tokens"`
	}
	if err := json.Unmarshal(normalized, &resp); err != nil {
		return domain.User{}, domain.AuthTokens{}, fmt.Errorf("decode auth response: %w", err)
	}
	if resp.User.Groups == nil {
		resp.User.Groups = []string{}
	}
	return resp.User, resp.Tokens, nil
}

// Profile decodes a /auth/me body, which is either a bare user or {user: ...}
func Profile(body []byte) (domain.User, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.User{}, fmt.Errorf("decode profile: %w", err)
	}
	camel := CamelizeKeys(raw)
	if m, ok := camel.(map[string]any); ok {
		if inner, ok := m["user"]; ok {
			camel = inner
		}
	}
	normalized, err := json.Marshal(camel)
	if err != nil {
		return domain.User{}, fmt.Errorf("re-encode profile: %w", err)
	}
	var u domain.User
	if err := json.Unmarshal(normalized, &u); err != nil {
		return domain.User{}, fmt.Errorf("decode profile: %w", err)
	}
	if u.Groups == nil {
		u.Groups = []string{}
	}
	return u, nil
}
