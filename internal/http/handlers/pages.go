package handlers

import (
	"net/http"
	"strconv"

	"busfinder/internal/domain"
	"busfinder/internal/domain/models"
	"busfinder/internal/http/middleware"
	"busfinder/internal/services"

	"github.com/gin-gonic/gin"
)

var resultHeaders = []string{"Bus Name", "Bus Type", "Departure", "Arrival", "Ticket Price", "Rating"}

type filterPage struct {
	Title      string
	Active     string
	RequestID  string
	Options    models.FormOptions
	OptionsErr string
	CanSubmit  bool
	Values     formValues
	Result     services.SearchResult
	Headers    []string
}

// formValues is what the form controls show: the defaults before a
// submission, the submitted values after one.
type formValues struct {
	State     string
	FromPlace string
	ToPlace   string
	MinRating string
	AfterHour int
	PriceMin  int
	PriceMax  int
}

func defaultValues(opts models.FormOptions) formValues {
	ctl := opts.Controls
	v := formValues{
		MinRating: strconv.FormatFloat(ctl.Rating.Default, 'f', 1, 64),
		AfterHour: ctl.Hour.Default,
		PriceMin:  ctl.Price.DefaultMin,
		PriceMax:  ctl.Price.DefaultMax,
	}
	if len(opts.States) > 0 {
		v.State = opts.States[0]
	}
	if len(opts.FromPlaces) > 0 {
		v.FromPlace = opts.FromPlaces[0]
	}
	if len(opts.ToPlaces) > 0 {
		v.ToPlace = opts.ToPlaces[0]
	}
	return v
}

func criteriaValues(c models.FilterCriteria) formValues {
	return formValues{
		State:     c.State,
		FromPlace: c.FromPlace,
		ToPlace:   c.ToPlace,
		MinRating: strconv.FormatFloat(c.MinRating, 'f', 1, 64),
		AfterHour: c.AfterHour,
		PriceMin:  c.Price.Min,
		PriceMax:  c.Price.Max,
	}
}

// GET /
func (h *Handler) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Title":  "RedBus Project",
		"Active": "home",
	})
}

func (h *Handler) newFilterPage(c *gin.Context) filterPage {
	page := filterPage{
		Title:     "Bus Filter Form",
		Active:    "filter",
		RequestID: middleware.GetRequestID(c),
		Result:    services.AwaitingSubmission(),
		Headers:   resultHeaders,
	}
	opts, err := h.Filters.Options(c.Request.Context())
	if err != nil {
		page.OptionsErr = "Error: " + err.Error()
		opts.Controls = h.Filters.Controls
	}
	page.Options = opts
	page.CanSubmit = err == nil && opts.Submittable()
	page.Values = defaultValues(opts)
	return page
}

// GET /buses/filter
func (h *Handler) FilterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "filter.tmpl", h.newFilterPage(c))
}

// POST /buses/filter
func (h *Handler) SubmitFilterPage(c *gin.Context) {
	page := h.newFilterPage(c)

	var form models.FilterForm
	if err := c.ShouldBind(&form); err != nil {
		page.Result = services.SearchResult{
			State:   domain.StateFailed,
			Message: "Error: invalid form submission",
			Err:     domain.ValidationError{Msg: "invalid form submission", Err: err},
		}
		c.HTML(http.StatusBadRequest, "filter.tmpl", page)
		return
	}
	form.BlankAsMissing(c.Request.Form)

	page.Result = h.Search.Submit(c.Request.Context(), form)
	if page.Result.Criteria != nil {
		page.Values = criteriaValues(*page.Result.Criteria)
	}

	status := http.StatusOK
	if page.Result.State == domain.StateFailed && domain.IsValidation(page.Result.Err) {
		status = http.StatusBadRequest
	}
	c.HTML(status, "filter.tmpl", page)
}
