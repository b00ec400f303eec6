package api

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"PowerPos/internal/service/report"
	"PowerPos/internal/usecase"
	xhttp "PowerPos/pkg/http"
	xlogger "PowerPos/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatusHandler exposes the operator surface: liveness, last-run status and
// the recent report files.
type StatusHandler struct {
	logger    *xlogger.Logger
	scheduler *usecase.Scheduler
	reportDir string
	started   time.Time
}

func NewStatusHandler(l *xlogger.Logger, s *usecase.Scheduler, reportDir string) *StatusHandler {
	return &StatusHandler{logger: l, scheduler: s, reportDir: reportDir, started: time.Now()}
}

func (h *StatusHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/status", h.Status)
	g.GET("/reports", h.Reports)
	g.GET("/reports/:name", h.Report)
}

func (h *StatusHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

type statusResponse struct {
	LastRunTime    *time.Time `json:"last_run_time,omitempty"`
	LastOutcome    string     `json:"last_outcome,omitempty"`
	LastTradeCount int        `json:"last_trade_count"`
	TotalRuns      int        `json:"total_runs"`
	LastCleanup    *time.Time `json:"last_cleanup,omitempty"`
}

func (h *StatusHandler) Status(c echo.Context) error {
	st := h.scheduler.Status()
	resp := statusResponse{
		LastOutcome:    st.LastOutcome,
		LastTradeCount: st.LastTradeCount,
		TotalRuns:      st.TotalRuns,
	}
	if !st.LastRunTime.IsZero() {
		resp.LastRunTime = &st.LastRunTime
	}
	if !st.LastCleanup.IsZero() {
		resp.LastCleanup = &st.LastCleanup
	}
	return xhttp.SuccessResponse(c, resp)
}

type reportsRequest struct {
	Limit int `query:"limit" default:"20" validate:"gte=1,lte=200"`
}

type reportEntry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	IsError  bool      `json:"is_error"`
}

func (h *StatusHandler) Reports(c echo.Context) error {
	req := &reportsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	matches, err := filepath.Glob(filepath.Join(h.reportDir, report.FilePattern))
	if err != nil {
		h.logger.Error("report listing failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("report listing failed"))
	}

	entries := make([]reportEntry, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		name := filepath.Base(path)
		entries = append(entries, reportEntry{
			Name:     name,
			Size:     info.Size(),
			Modified: info.ModTime(),
			IsError:  isErrorReport(name),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Modified.After(entries[j].Modified)
	})
	total := int64(len(entries))
	if len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}
	return xhttp.ListResponse(c, entries, total)
}

// Report returns the metadata of a single report file by name.
func (h *StatusHandler) Report(c echo.Context) error {
	name := filepath.Base(c.Param("name"))
	if ok, err := filepath.Match(report.FilePattern, name); err != nil || !ok {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("not a report file name"))
	}

	info, err := os.Stat(filepath.Join(h.reportDir, name))
	if os.IsNotExist(err) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("report not found"))
	}
	if err != nil {
		h.logger.Error("report stat failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("stat report %s", name))
	}

	return xhttp.SuccessResponse(c, reportEntry{
		Name:     name,
		Size:     info.Size(),
		Modified: info.ModTime(),
		IsError:  isErrorReport(name),
	})
}

func isErrorReport(name string) bool {
	return strings.HasSuffix(name, "_ERROR.csv")
}
