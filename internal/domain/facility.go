package domain

import (
	"strings"
	"time"
)

// Facility is a reservable resource with a capacity and location.
type Facility struct {
	ID          int64
	Name        string
	Description string
	Capacity    int
	Location    string
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the facility fields required for create/update.
func (f *Facility) Validate() map[string]any {
	problems := map[string]any{}
	if strings.TrimSpace(f.Name) == "" {
		problems["name"] = "required"
	}
	if strings.TrimSpace(f.Location) == "" {
		problems["location"] = "required"
	}
	if strings.TrimSpace(f.Description) == "" {
		problems["description"] = "required"
	}
	if f.Capacity < 1 {
		problems["capacity"] = "must be at least 1"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}
