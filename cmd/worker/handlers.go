package main

import (
	"github.com/hibiken/asynq"

	catalogJob "library-catalog/internal/domains/catalog/job"
	"library-catalog/internal/shared"
	"library-catalog/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	refreshSummary *catalogJob.RefreshSummaryHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		refreshSummary: c.RefreshSummaryJob,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeRefreshCatalogSummary, h.refreshSummary.ProcessTask)
}
