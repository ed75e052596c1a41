package handlers

import (
	"net/http"

	"busfinder/internal/domain"
	"busfinder/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/buses/options
func (h *Handler) GetOptions(c *gin.Context) {
	opts, err := h.Filters.Options(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"options":     opts,
		"submittable": opts.Submittable(),
	})
}

// POST /api/buses/search
func (h *Handler) SearchBuses(c *gin.Context) {
	var form models.FilterForm
	if !BindJSONOrError(c, &form) {
		return
	}

	res := h.Search.Submit(c.Request.Context(), form)
	if res.State == domain.StateFailed {
		RespondDomainError(c, res.Err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/buses/search/export
func (h *Handler) ExportBuses(c *gin.Context) {
	var form models.FilterForm
	if err := c.ShouldBindQuery(&form); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_query", "invalid query parameters", err.Error())
		return
	}
	form.BlankAsMissing(c.Request.URL.Query())

	ctx := c.Request.Context()
	criteria, err := h.Filters.Collect(ctx, form)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res := h.Search.Execute(ctx, criteria)
	if res.State == domain.StateFailed {
		RespondDomainError(c, res.Err)
		return
	}

	pdfBytes, filename, err := h.Export.BuildResultsPDF(criteria, res.Rows)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "failed to render pdf", Err: err})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
