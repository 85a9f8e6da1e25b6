package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "pending"
	UrgencyNormal = "normal"
)

type Application struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Country   string     `json:"country"`
	Age       *int       `json:"age,omitempty"`
	Treatment string     `json:"treatment"`
	Message   string     `json:"message"`
	Budget    string     `json:"budget,omitempty"`
	Urgency   string     `json:"urgency"`
	Status    string     `json:"status"`
	ClinicID  *string    `json:"clinicId,omitempty"`
	Clinic    *ClinicRef `json:"clinic,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ClinicRef is the clinic summary joined onto admin lead listings.
type ClinicRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	City string `json:"city"`
}

var ErrNotFound = errors.New("application not found")
var ErrUnknownClinic = errors.New("unknown clinic")

type ListFilter struct {
	Status    *string
	Treatment *string
}

type CreateApplicationRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=120"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required,min=5,max=40"`
	Country   string  `json:"country" binding:"omitempty,max=80"`
	Age       *int    `json:"age" binding:"omitempty,min=1,max=120"`
	Treatment string  `json:"treatment" binding:"required,min=2,max=80"`
	Message   string  `json:"message" binding:"required,min=5,max=2000"`
	Budget    string  `json:"budget" binding:"omitempty,max=80"`
	Urgency   string  `json:"urgency" binding:"omitempty,oneof=low normal high"`
	ClinicID  *string `json:"clinicId" binding:"omitempty,uuid"`
}

// A factory to build an Application from the incoming DTO.
func NewFromCreateRequest(req CreateApplicationRequest) Application {
	country := req.Country
	if country == "" {
		country = "Spain"
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = UrgencyNormal
	}

	return Application{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Country:   country,
		Age:       req.Age,
		Treatment: req.Treatment,
		Message:   req.Message,
		Budget:    req.Budget,
		Urgency:   urgency,
		Status:    StatusPending,
		ClinicID:  req.ClinicID,
		CreatedAt: time.Now().UTC(),
	}
}
