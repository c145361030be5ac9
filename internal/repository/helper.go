package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ndewijer/Succession-Service-Backend/internal/apperrors"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors validation.ParseTime — both are intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// marshalJSONColumn serializes a value for storage in a TEXT column.
// Nil and empty values store as an empty string.
func marshalJSONColumn(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal column value: %w", err)
	}
	return string(data), nil
}

// unmarshalJSONColumn deserializes a TEXT column into the target.
// An empty column leaves the target untouched. A column that no longer
// parses is corrupt stored state, not caller input.
func unmarshalJSONColumn(data string, target any) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), target); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrDataInconsistency, err)
	}
	return nil
}
