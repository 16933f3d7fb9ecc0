package services

import (
	"github.com/l9kyuu/gamepanel-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Report *ReportService
	Export *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Report: NewReportService(repos.Game),
		Export: NewExportService(),
	}
}
