package domain

import (
	"encoding/json"
	"strconv"
)

// Rating is an optional venue rating. The zero value is the absent rating.
type Rating struct {
	value float64
	valid bool
}

// NewRating builds a Rating from a provider value. Missing and zero ratings are absent.
func NewRating(v *float64) Rating {
	if v == nil || *v <= 0 {
		return Rating{}
	}
	return Rating{value: *v, valid: true}
}

// Valid reports whether a rating is present.
func (r Rating) Valid() bool { return r.valid }

// Value returns the rating and whether it is present.
func (r Rating) Value() (float64, bool) { return r.value, r.valid }

func (r Rating) String() string {
	if !r.valid {
		return ""
	}
	return strconv.FormatFloat(r.value, 'f', 1, 64)
}

// MarshalJSON encodes an absent rating as false, a present one as a number.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("false"), nil
	}
	b, err := json.Marshal(r.value)
	if err != nil {
		return nil, err //nolint:wrapcheck // plain float encoding
	}
	return b, nil
}
