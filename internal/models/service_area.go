package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// ServiceArea is a city a business serves.
type ServiceArea struct {
	bun.BaseModel `bun:"table:service_areas,alias:sa"`

	ID           int64        `bun:"id,pk,autoincrement" json:"id"`
	BusinessID   int64        `bun:"business_id,notnull" json:"business_id"`
	City         string       `bun:"city,notnull" json:"city"`
	State        string       `bun:"state,notnull" json:"state"`
	ZipCodes     StringList   `bun:"zip_codes,type:jsonb" json:"zip_codes"`
	Population   *int64       `bun:"population" json:"population,omitempty"`
	Demographics Demographics `bun:"demographics,type:jsonb" json:"demographics"`
	CreatedAt    time.Time    `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Label renders "City, State".
func (a ServiceArea) Label() string {
	return a.City + ", " + a.State
}

type CreateServiceAreaRequest struct {
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCodes     StringList   `json:"zip_codes,omitempty"`
	Population   *int64       `json:"population,omitempty"`
	Demographics Demographics `json:"demographics,omitempty"`
}

func (r CreateServiceAreaRequest) Validate() error {
	if strings.TrimSpace(r.City) == "" || strings.TrimSpace(r.State) == "" {
		return fmt.Errorf("city and state are required")
	}
	if r.Population != nil && *r.Population < 0 {
		return fmt.Errorf("population must not be negative")
	}
	return r.Demographics.Validate()
}

func (r CreateServiceAreaRequest) ToModel(businessID int64) *ServiceArea {
	return &ServiceArea{
		BusinessID:   businessID,
		City:         strings.TrimSpace(r.City),
		State:        strings.TrimSpace(r.State),
		ZipCodes:     r.ZipCodes.Clean(),
		Population:   r.Population,
		Demographics: r.Demographics,
		CreatedAt:    time.Now().UTC(),
	}
}

// BulkAreasRequest adds areas from "City, State" strings.
type BulkAreasRequest struct {
	Areas []string `json:"areas"`
}

// ParseAreaLabel splits "City, State"; a missing state becomes "Unknown".
func ParseAreaLabel(label string) (city, state string) {
	parts := strings.Split(label, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	city = parts[0]
	if city == "" {
		city = strings.TrimSpace(label)
	}
	state = "Unknown"
	if len(parts) > 1 && parts[1] != "" {
		state = parts[1]
	}
	return city, state
}
