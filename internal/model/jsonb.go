package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONBStringArray is a string slice stored as a JSONB array.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	return scanJSON(value, a)
}

// InstructionSteps is the JSONB column holding a recipe's instruction list.
type InstructionSteps []InstructionStep

func (s InstructionSteps) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *InstructionSteps) Scan(value interface{}) error {
	if value == nil {
		*s = InstructionSteps{}
		return nil
	}
	return scanJSON(value, s)
}

// GroceryItems is the JSONB column holding the items of a grocery list.
type GroceryItems []GroceryItem

func (g GroceryItems) Value() (driver.Value, error) {
	if len(g) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *GroceryItems) Scan(value interface{}) error {
	if value == nil {
		*g = GroceryItems{}
		return nil
	}
	return scanJSON(value, g)
}

func scanJSON(value interface{}, dst interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dst)
}
