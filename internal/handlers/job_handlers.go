package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/jobs/background"
)

// JobHandlers exposes scheduler introspection
type JobHandlers struct {
	scheduler *background.JobScheduler
}

func NewJobHandlers(scheduler *background.JobScheduler) *JobHandlers {
	return &JobHandlers{scheduler: scheduler}
}

// GetJobStatus reports the registered background jobs
func (h *JobHandlers) GetJobStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}
