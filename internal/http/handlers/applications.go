package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/turkhealth/clinichub/internal/config"
	"github.com/turkhealth/clinichub/internal/domain/application"
)

type ApplicationsStore interface {
	Create(ctx context.Context, req application.CreateApplicationRequest) (application.Application, error)
	List(ctx context.Context, filter application.ListFilter) ([]application.Application, error)
}

type ApplicationsHandler struct {
	repo ApplicationsStore
	log  *slog.Logger
}

func NewApplicationsHandler(repo ApplicationsStore, log *slog.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{
		repo: repo,
		log:  log,
	}
}

// Create is the public lead-capture endpoint. Anyone may submit; only staff
// may read the pipeline back out.
func (h *ApplicationsHandler) Create(ctx *gin.Context) {
	var req application.CreateApplicationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	app, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, application.ErrUnknownClinic) {
			RespondBadRequest(ctx, "Unknown clinic")
			return
		}

		h.log.Error("application insert failed", "err", err)
		RespondInternal(ctx, "Failed to submit application")
		return
	}

	// leads are the business; make them visible in the logs
	h.log.Info("new application received",
		"id", app.ID,
		"treatment", app.Treatment,
		"country", app.Country,
		"urgency", app.Urgency,
	)

	RespondMessage(ctx, http.StatusCreated, app, "Application submitted successfully")
}

func (h *ApplicationsHandler) List(ctx *gin.Context) {
	var filter application.ListFilter

	if s := ctx.Query("status"); s != "" {
		filter.Status = &s
	}

	if t := ctx.Query("treatment"); t != "" {
		filter.Treatment = &t
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	apps, err := h.repo.List(cctx, filter)

	if err != nil {
		h.log.Error("application list failed", "err", err)
		RespondInternal(ctx, "Failed to fetch applications")
		return
	}

	RespondList(ctx, apps, len(apps))
}
