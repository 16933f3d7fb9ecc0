package handlers

import (
	"github.com/l9kyuu/gamepanel-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health *HealthHandler
	Report *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(),
		Report: NewReportHandler(svcs.Report, svcs.Export),
	}
}
