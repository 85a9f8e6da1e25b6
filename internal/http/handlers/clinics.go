package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/turkhealth/clinichub/internal/config"
	"github.com/turkhealth/clinichub/internal/domain/application"
	"github.com/turkhealth/clinichub/internal/domain/clinic"
)

type ClinicsStore interface {
	Create(ctx context.Context, req clinic.CreateClinicRequest) (clinic.Clinic, error)
	List(ctx context.Context, filter clinic.ListFilter) ([]clinic.Clinic, error)
	GetByID(ctx context.Context, id string) (clinic.Clinic, error)
	Update(ctx context.Context, id string, req clinic.UpdateClinicRequest) (clinic.Clinic, error)
	SoftDelete(ctx context.Context, id string) (clinic.Clinic, error)
}

type ClinicApplicationsReader interface {
	ListRecentByClinic(ctx context.Context, clinicID string, limit int) ([]application.Application, error)
}

type ClinicsHandler struct {
	repo ClinicsStore
	apps ClinicApplicationsReader
}

func NewClinicsHandler(repo ClinicsStore, apps ClinicApplicationsReader) *ClinicsHandler {
	return &ClinicsHandler{
		repo: repo,
		apps: apps,
	}
}

// number of recent leads shown on the clinic detail
const recentApplicationsLimit = 10

func (h *ClinicsHandler) List(ctx *gin.Context) {
	var filter clinic.ListFilter

	if s := ctx.Query("specialty"); s != "" {
		filter.Specialty = &s
	}

	if c := ctx.Query("city"); c != "" {
		filter.City = &c
	}

	if ctx.Query("featured") == "true" {
		filter.Featured = true
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	clinics, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch clinics")
		return
	}

	RespondList(ctx, clinics, len(clinics))
}

type clinicDetail struct {
	clinic.Clinic
	Applications []application.Application `json:"applications"`
}

func (h *ClinicsHandler) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		RespondBadRequest(ctx, "Clinic id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, clinic.ErrNotFound) {
			RespondNotFound(ctx, "Clinic not found")
			return
		}

		RespondInternal(ctx, "Failed to fetch clinic")
		return
	}

	apps, err := h.apps.ListRecentByClinic(cctx, id, recentApplicationsLimit)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch clinic")
		return
	}

	RespondData(ctx, http.StatusOK, clinicDetail{
		Clinic:       c,
		Applications: apps,
	})
}

func (h *ClinicsHandler) Create(ctx *gin.Context) {
	var req clinic.CreateClinicRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, clinic.ErrSlugTaken) {
			RespondConflict(ctx, "Clinic slug already in use")
			return
		}

		RespondInternal(ctx, "Failed to create clinic")
		return
	}

	RespondMessage(ctx, http.StatusCreated, c, "Clinic created successfully")
}

func (h *ClinicsHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		RespondBadRequest(ctx, "Clinic id must be a valid UUID")
		return
	}

	var req clinic.UpdateClinicRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Update(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, clinic.ErrNotFound):
			RespondNotFound(ctx, "Clinic not found")
		case errors.Is(err, clinic.ErrSlugTaken):
			RespondConflict(ctx, "Clinic slug already in use")
		default:
			RespondInternal(ctx, "Failed to update clinic")
		}
		return
	}

	RespondMessage(ctx, http.StatusOK, c, "Clinic updated successfully")
}

// Delete deactivates, it never removes the row.
func (h *ClinicsHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		RespondBadRequest(ctx, "Clinic id must be a valid UUID")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.SoftDelete(cctx, id)

	if err != nil {
		if errors.Is(err, clinic.ErrNotFound) {
			RespondNotFound(ctx, "Clinic not found")
			return
		}

		RespondInternal(ctx, "Failed to delete clinic")
		return
	}

	RespondMessage(ctx, http.StatusOK, c, "Clinic deleted successfully")
}
