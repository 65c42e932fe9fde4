// Package setting stores per-user key/value preferences.
package setting

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxKeyLength bounds setting keys
const MaxKeyLength = 100

// Setting is one (user, key) preference. Values are always stored as strings.
type Setting struct {
	UserID uuid.UUID
	Key    string
	Value  string
}

// New validates the key and coerces value to its stored string form
func New(userID uuid.UUID, key string, value any) (*Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_KEY", "Setting key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return nil, shared.Errorf("INVALID_KEY", "Setting key cannot exceed %d characters", MaxKeyLength)
	}
	v, err := Coerce(value)
	if err != nil {
		return nil, err
	}
	return &Setting{UserID: userID, Key: key, Value: v}, nil
}

// Coerce converts a decoded JSON value to the stored string. Strings are kept
// as-is, numbers and booleans are formatted and objects or arrays are
// JSON-encoded. Null becomes the empty string.
func Coerce(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", shared.NewDomainError("INVALID_VALUE", "Setting value cannot be encoded")
		}
		return string(b), nil
	}
}

// Repository persists settings
type Repository interface {
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Setting, error)
	FindByKey(ctx context.Context, userID uuid.UUID, key string) (*Setting, error)
	// Upsert writes every setting in one transaction
	Upsert(ctx context.Context, settings []Setting) error
	Delete(ctx context.Context, userID uuid.UUID, key string) error
}
