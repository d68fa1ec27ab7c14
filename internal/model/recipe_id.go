package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Origin tells where a recipe came from.
type Origin string

const (
	OriginLocal    Origin = "local"
	OriginExternal Origin = "external"
)

const (
	localPrefix    = "local:"
	externalPrefix = "ext:"
)

// RecipeID is the composite identity of a recipe across both sources. Local
// values are UUIDs, external values are the provider's positive integer ids, so
// the two spaces never collide.
type RecipeID struct {
	Origin Origin
	Key    string
}

// LocalID builds the identity of a locally authored recipe.
func LocalID(id uuid.UUID) RecipeID {
	return RecipeID{Origin: OriginLocal, Key: id.String()}
}

// ExternalID builds the identity of a provider recipe.
func ExternalID(id int) RecipeID {
	return RecipeID{Origin: OriginExternal, Key: strconv.Itoa(id)}
}

// ParseRecipeID accepts "local:<uuid>", "ext:<int>", a bare UUID or a bare
// positive integer.
func ParseRecipeID(s string) (RecipeID, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, localPrefix):
		return parseLocal(strings.TrimPrefix(s, localPrefix))
	case strings.HasPrefix(s, externalPrefix):
		return parseExternal(strings.TrimPrefix(s, externalPrefix))
	}
	if id, err := parseLocal(s); err == nil {
		return id, nil
	}
	if id, err := parseExternal(s); err == nil {
		return id, nil
	}
	return RecipeID{}, fmt.Errorf("invalid recipe id %q", s)
}

func parseLocal(s string) (RecipeID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RecipeID{}, fmt.Errorf("invalid local recipe id %q: %w", s, err)
	}
	return LocalID(id), nil
}

func parseExternal(s string) (RecipeID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return RecipeID{}, fmt.Errorf("invalid external recipe id %q", s)
	}
	return ExternalID(n), nil
}

// IsZero reports whether the id is unset.
func (id RecipeID) IsZero() bool {
	return id.Key == ""
}

// IsExternal reports whether the recipe comes from the content provider.
func (id RecipeID) IsExternal() bool {
	return id.Origin == OriginExternal
}

// UUID returns the local identifier. It fails for external ids.
func (id RecipeID) UUID() (uuid.UUID, error) {
	if id.Origin != OriginLocal {
		return uuid.Nil, fmt.Errorf("recipe %s is not local", id)
	}
	return uuid.Parse(id.Key)
}

// ExternalNumber returns the provider identifier. It fails for local ids.
func (id RecipeID) ExternalNumber() (int, error) {
	if id.Origin != OriginExternal {
		return 0, fmt.Errorf("recipe %s is not external", id)
	}
	return strconv.Atoi(id.Key)
}

func (id RecipeID) String() string {
	switch id.Origin {
	case OriginLocal:
		return localPrefix + id.Key
	case OriginExternal:
		return externalPrefix + id.Key
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (id RecipeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *RecipeID) UnmarshalText(b []byte) error {
	parsed, err := ParseRecipeID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer; ids are stored in their prefixed string form.
func (id RecipeID) Value() (driver.Value, error) {
	if id.IsZero() {
		return nil, nil
	}
	return id.String(), nil
}

// Scan implements sql.Scanner.
func (id *RecipeID) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*id = RecipeID{}
		return nil
	case []byte:
		return id.UnmarshalText(v)
	case string:
		return id.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into RecipeID", value)
	}
}
