package clinic

import (
	"errors"
	"time"
)

type Clinic struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Address       string    `json:"address,omitempty"`
	Specialties   []string  `json:"specialties"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Website       string    `json:"website,omitempty"`
	Description   string    `json:"description"`
	Rating        float64   `json:"rating"`
	Featured      bool      `json:"featured"`
	Verified      bool      `json:"verified"`
	Active        bool      `json:"active"`
	TotalPatients int       `json:"totalPatients"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("clinic not found")
var ErrSlugTaken = errors.New("clinic slug already in use")

// with pointers if optional, it will be nil
type ListFilter struct {
	Specialty *string
	City      *string
	Featured  bool
}

type CreateClinicRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=160"`
	Slug        string   `json:"slug" binding:"required,min=2,max=160"`
	City        string   `json:"city" binding:"required,min=2,max=80"`
	Country     string   `json:"country" binding:"omitempty,max=80"`
	Address     string   `json:"address" binding:"omitempty,max=240"`
	Specialties []string `json:"specialties" binding:"required,min=1,dive,min=2"`
	Phone       string   `json:"phone" binding:"required,max=40"`
	Email       string   `json:"email" binding:"required,email"`
	Website     string   `json:"website" binding:"omitempty,url"`
	Description string   `json:"description" binding:"required,min=10"`
	Featured    bool     `json:"featured"`
	Verified    bool     `json:"verified"`
}

// Full update payload. The three flags are pointers so an omitted field
// leaves the stored value alone instead of silently flipping it off.
type UpdateClinicRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=160"`
	Slug        string   `json:"slug" binding:"required,min=2,max=160"`
	City        string   `json:"city" binding:"required,min=2,max=80"`
	Country     string   `json:"country" binding:"omitempty,max=80"`
	Address     string   `json:"address" binding:"omitempty,max=240"`
	Specialties []string `json:"specialties" binding:"required,min=1,dive,min=2"`
	Phone       string   `json:"phone" binding:"required,max=40"`
	Email       string   `json:"email" binding:"required,email"`
	Website     string   `json:"website" binding:"omitempty,url"`
	Description string   `json:"description" binding:"required,min=10"`
	Featured    *bool    `json:"featured"`
	Verified    *bool    `json:"verified"`
	Active      *bool    `json:"active"`
}
