package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"care-compliance/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Handler struct {
	rosterService  service.RosterService
	therapyService service.TherapyService
	noteService    service.NoteService
	daycareService service.DaycareService
	alertService   service.AlertService
	reportService  service.ReportService
	clock          service.Clock
	log            *zap.Logger
}

func NewHandler(
	rosterService service.RosterService,
	therapyService service.TherapyService,
	noteService service.NoteService,
	daycareService service.DaycareService,
	alertService service.AlertService,
	reportService service.ReportService,
	clock service.Clock,
	log *zap.Logger,
) *Handler {
	return &Handler{
		rosterService:  rosterService,
		therapyService: therapyService,
		noteService:    noteService,
		daycareService: daycareService,
		alertService:   alertService,
		reportService:  reportService,
		clock:          clock,
		log:            log.Named("http"),
	}
}

// Router mounts every route. All routes except /health and organization
// creation require the organization header.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Post("/organizations", h.CreateOrganization)

	r.Group(func(r chi.Router) {
		r.Use(requireOrganization)
		h.registerRosterRoutes(r)
		h.registerTherapyRoutes(r)
		h.registerDaycareRoutes(r)
	})
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	success(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into dst and writes a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload: "+err.Error())
		return false
	}
	return true
}

// pathID parses the {id} route parameter and writes a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_id", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// period reads ?from and ?to as calendar dates; to is inclusive. Missing
// bounds default to the current calendar month.
func (h *Handler) period(r *http.Request) (service.Period, error) {
	now := h.clock()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	p := service.Period{From: first, To: first.AddDate(0, 1, 0)}

	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return p, errors.New("from must be YYYY-MM-DD")
		}
		p.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return p, errors.New("to must be YYYY-MM-DD")
		}
		p.To = to.AddDate(0, 0, 1)
	}
	if !p.From.Before(p.To) {
		return p, errors.New("from must not be after to")
	}
	return p, nil
}

// date accepts "2006-01-02" or RFC 3339 in request bodies.
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d *date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
