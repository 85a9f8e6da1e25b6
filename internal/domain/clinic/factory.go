package clinic

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateClinicRequest) Clinic {
	now := time.Now().UTC()

	country := req.Country
	if country == "" {
		country = "Turkey"
	}

	return Clinic{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		City:        req.City,
		Country:     country,
		Address:     req.Address,
		Specialties: req.Specialties,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
		Featured:    req.Featured,
		Verified:    req.Verified,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
