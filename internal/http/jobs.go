package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/refhub/internal/entities"
)

// JobsController exposes the conversion job log.
type JobsController struct {
	store JobReader
}

func NewJobsController(store JobReader) *JobsController {
	return &JobsController{store: store}
}

// ListJobs handles GET /api/tools/ref/jobs?limit&offset&format
func (jc *JobsController) ListJobs(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	var (
		jobs  []entities.ConversionJob
		total int64
		err   error
	)
	if format := c.Query("format"); format != "" {
		sourceFormat := entities.SourceFormat(format)
		switch sourceFormat {
		case entities.FormatXML, entities.FormatRIS, entities.FormatEndNote, entities.FormatUnknown:
		default:
			respondBadRequest(c, "invalid format")
			return
		}
		jobs, total, err = jc.store.GetJobsByFormat(sourceFormat, limit, offset)
	} else {
		jobs, total, err = jc.store.GetJobs(limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list conversion jobs")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(jobs, total, limit, offset))
}

// GetJob handles GET /api/tools/ref/jobs/:id
func (jc *JobsController) GetJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := jc.store.GetJobByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "job")
			return
		}
		respondInternalError(c, err, "get conversion job")
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetStats handles GET /api/tools/ref/jobs/stats
func (jc *JobsController) GetStats(c *gin.Context) {
	stats, err := jc.store.GetStats()
	if err != nil {
		respondInternalError(c, err, "conversion job stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
