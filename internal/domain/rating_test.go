package domain

import (
	"encoding/json"
	"testing"
)

func TestNewRating(t *testing.T) {
	tests := []struct {
		name  string
		in    *float64
		valid bool
		want  float64
	}{
		{"missing", nil, false, 0},
		{"zero", floatPtr(0), false, 0},
		{"negative", floatPtr(-1), false, 0},
		{"present", floatPtr(9.1), true, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRating(tt.in)
			got, ok := r.Value()
			if ok != tt.valid {
				t.Fatalf("valid: got %v, want %v", ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Errorf("value: got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRating_MarshalJSON(t *testing.T) {
	absent, err := json.Marshal(Rating{})
	if err != nil {
		t.Fatalf("marshal absent: %v", err)
	}
	if string(absent) != "false" {
		t.Errorf("absent rating: got %s, want false", absent)
	}

	present, err := json.Marshal(NewRating(floatPtr(7.5)))
	if err != nil {
		t.Fatalf("marshal present: %v", err)
	}
	if string(present) != "7.5" {
		t.Errorf("present rating: got %s, want 7.5", present)
	}
}

func TestRating_String(t *testing.T) {
	if s := (Rating{}).String(); s != "" {
		t.Errorf("absent rating string: got %q", s)
	}
	if s := NewRating(floatPtr(8)).String(); s != "8.0" {
		t.Errorf("present rating string: got %q", s)
	}
}
