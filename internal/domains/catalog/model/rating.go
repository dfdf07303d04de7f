package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RatingEntry is one external rating for an entity, keyed by the source that
// produced it (e.g. "IMDb", "Rotten Tomatoes", "Google Books"). Score is the
// normalized numeric value when one could be parsed; Display keeps the
// source's original formatting ("8.5/10", "94%") for the UI.
type RatingEntry struct {
	Source  string           `json:"source"`
	Score   *decimal.Decimal `json:"score,omitempty"`
	Display string           `json:"display"`
	Count   *int             `json:"count,omitempty"`
	URL     *string          `json:"url,omitempty"`
}

// Ratings is stored as a JSONB column.
type Ratings []RatingEntry

func (r Ratings) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *Ratings) Scan(src interface{}) error {
	if src == nil {
		*r = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("ratings: cannot scan %T", src)
	}
}
