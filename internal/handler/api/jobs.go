package api

import (
	"net/http"
	"strconv"

	resdto "rental-hunter/internal/handler/dto/response"
	"rental-hunter/internal/handler/httperr"
	"rental-hunter/internal/scheduler"
	"rental-hunter/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type JobsHandler struct {
	sched *scheduler.Scheduler
	q     queries.JobQueries
}

func NewJobsHandler(sched *scheduler.Scheduler, q queries.JobQueries) *JobsHandler {
	return &JobsHandler{sched: sched, q: q}
}

// Status reports the registered schedules together with recent run history.
func (h *JobsHandler) Status(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = iv
		}
	}

	runs, err := h.q.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load job runs", nil)
		return
	}

	var entries []scheduler.EntryStatus
	if h.sched != nil {
		entries = h.sched.Snapshot()
	}
	c.JSON(http.StatusOK, resdto.FromJobs(entries, runs))
}
