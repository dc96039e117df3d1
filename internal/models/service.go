package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Service is something a business sells.
type Service struct {
	bun.BaseModel `bun:"table:services,alias:s"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	BusinessID  int64      `bun:"business_id,notnull" json:"business_id"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description *string    `bun:"description" json:"description,omitempty"`
	PriceRange  *string    `bun:"price_range" json:"price_range,omitempty"`
	Duration    *string    `bun:"duration" json:"duration,omitempty"`
	Benefits    StringList `bun:"benefits,type:jsonb" json:"benefits"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type CreateServiceRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	PriceRange  string     `json:"price_range,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Benefits    StringList `json:"benefits,omitempty"`
}

func (r CreateServiceRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("service name is required")
	}
	return nil
}

func (r CreateServiceRequest) ToModel(businessID int64) *Service {
	return &Service{
		BusinessID:  businessID,
		Name:        strings.TrimSpace(r.Name),
		Description: optional(r.Description),
		PriceRange:  optional(r.PriceRange),
		Duration:    optional(r.Duration),
		Benefits:    r.Benefits.Clean(),
		CreatedAt:   time.Now().UTC(),
	}
}

// BulkServicesRequest adds services by name only.
type BulkServicesRequest struct {
	Services []string `json:"services"`
}
