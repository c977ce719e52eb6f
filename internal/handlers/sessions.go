// Package handlers exposes the import wizard's backend over HTTP: session
// upload, mapping overrides, the reconciliation grid, and the final commit.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fleetdesk/driver-import/internal/dedupe"
	"github.com/fleetdesk/driver-import/internal/grid"
	"github.com/fleetdesk/driver-import/internal/importer"
	"github.com/fleetdesk/driver-import/internal/mapping"
	"github.com/fleetdesk/driver-import/internal/schema"
	"github.com/fleetdesk/driver-import/internal/tabular"
	"github.com/fleetdesk/driver-import/internal/validate"
)

const maxUploadBytes = 32 << 20

// Store is the destination store boundary the handlers need: the one-shot
// reference read plus the create call.
type Store interface {
	ListAll(ctx context.Context, orgID string) ([]dedupe.Existing, error)
	CreateDriver(ctx context.Context, rec mapping.Record, actor importer.Actor) (string, error)
}

// session pairs a grid with the mutex serializing its mutations. The grid
// itself is single-mutator; the mutex only orders concurrent HTTP requests
// against the same session.
type session struct {
	mu   sync.Mutex
	grid *grid.Grid
}

// Server holds all live wizard sessions in memory. Sessions vanish on
// restart; nothing persists until import.
type Server struct {
	store Store
	log   *zap.Logger
	orgID string
	opts  validate.Options

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer builds the session server.
func NewServer(store Store, log *zap.Logger, orgID string, opts validate.Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		store:    store,
		log:      log,
		orgID:    orgID,
		opts:     opts,
		sessions: make(map[string]*session),
	}
}

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleUpload)
	mux.HandleFunc("GET /sessions/{id}/mappings", s.handleGetMappings)
	mux.HandleFunc("PUT /sessions/{id}/mappings", s.handleSetMapping)
	mux.HandleFunc("POST /sessions/{id}/preview", s.handlePreview)
	mux.HandleFunc("GET /sessions/{id}/rows", s.handleRows)
	mux.HandleFunc("POST /sessions/{id}/edit", s.handleEdit)
	mux.HandleFunc("POST /sessions/{id}/skip", s.handleSkip)
	mux.HandleFunc("POST /sessions/{id}/import", s.handleImport)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDiscard)
	mux.HandleFunc("GET /template", s.handleTemplate)
	return mux
}

/* ───────── session lifecycle ───────── */

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	table, err := parseUpload(file, hdr.Filename)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, tabular.ErrEmptyFile) || errors.Is(err, tabular.ErrNoDataRows) {
			status = http.StatusUnprocessableEntity
		}
		s.fail(w, status, err)
		return
	}

	existing, err := s.store.ListAll(r.Context(), s.orgID)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	g := grid.New(table, existing, s.opts)
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{grid: g}
	s.mu.Unlock()

	s.log.Info("import session opened",
		zap.String("session", id),
		zap.String("file", hdr.Filename),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", len(table.Headers)))

	writeJSON(w, http.StatusCreated, map[string]any{
		"sessionId":  id,
		"mappings":   g.Mappings(),
		"quickFixes": g.QuickFixes(),
		"counts":     g.Counts(),
	})
}

// parseUpload picks the decoder from the filename extension; everything that
// is not a workbook goes through the delimited-text path.
func parseUpload(file io.Reader, name string) (*tabular.Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return tabular.ParseWorkbook(file)
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return tabular.ParseDelimited(string(content))
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		s.fail(w, http.StatusNotFound, fmt.Errorf("unknown session %s", id))
		return
	}
	s.log.Info("import session discarded", zap.String("session", id))
	w.WriteHeader(http.StatusNoContent)
}

/* ───────── mapping stage ───────── */

func (s *Server) handleGetMappings(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) (int, any, error) {
		return http.StatusOK, map[string]any{
			"mappings":        sess.grid.Mappings(),
			"quickFixes":      sess.grid.QuickFixes(),
			"previewRowIndex": sess.grid.PreviewIndex(),
		}, nil
	})
}

func (s *Server) handleSetMapping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceColumn string       `json:"sourceColumn"`
		Destination  schema.Field `json:"destinationField"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.withSession(w, r, func(sess *session) (int, any, error) {
		if err := sess.grid.SetMapping(req.SourceColumn, req.Destination); err != nil {
			return http.StatusBadRequest, nil, err
		}
		return http.StatusOK, map[string]any{
			"mappings":   sess.grid.Mappings(),
			"quickFixes": sess.grid.QuickFixes(),
			"counts":     sess.grid.Counts(),
		}, nil
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RowIndex int `json:"rowIndex"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.withSession(w, r, func(sess *session) (int, any, error) {
		if err := sess.grid.SetPreviewIndex(req.RowIndex); err != nil {
			return http.StatusBadRequest, nil, err
		}
		return http.StatusOK, map[string]any{"mappings": sess.grid.Mappings()}, nil
	})
}

/* ───────── reconciliation stage ───────── */

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	view := grid.View(r.URL.Query().Get("view"))
	if view == "" {
		view = grid.ViewAll
	}
	switch view {
	case grid.ViewAll, grid.ViewReady, grid.ViewErrors, grid.ViewDuplicates:
	default:
		s.fail(w, http.StatusBadRequest, fmt.Errorf("unknown view %q", view))
		return
	}
	s.withSession(w, r, func(sess *session) (int, any, error) {
		return http.StatusOK, map[string]any{
			"rows":   sess.grid.Rows(view),
			"counts": sess.grid.Counts(),
		}, nil
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RowIndex int          `json:"rowIndex"`
		Field    schema.Field `json:"field"`
		Value    string       `json:"value"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.withSession(w, r, func(sess *session) (int, any, error) {
		findings, err := sess.grid.CommitEdit(req.RowIndex, req.Field, req.Value)
		if err != nil {
			return http.StatusBadRequest, nil, err
		}
		return http.StatusOK, map[string]any{
			"findings": findings,
			"counts":   sess.grid.Counts(),
		}, nil
	})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RowIndex int `json:"rowIndex"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.withSession(w, r, func(sess *session) (int, any, error) {
		if err := sess.grid.SkipDuplicate(req.RowIndex); err != nil {
			return http.StatusBadRequest, nil, err
		}
		return http.StatusOK, map[string]any{"counts": sess.grid.Counts()}, nil
	})
}

/* ───────── import ───────── */

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !decode(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	s.withSession(w, r, func(sess *session) (int, any, error) {
		ready := sess.grid.ReadyRecords()
		imp := importer.New(s.store, s.log, s.opts, nil)
		res, err := imp.Run(r.Context(), ready, importer.Actor{OrgID: s.orgID, UserID: req.UserID})
		if err != nil {
			var ce *importer.CommitError
			if errors.As(err, &ce) {
				// some prefix of the ready set is already committed
				return http.StatusBadGateway, map[string]any{
					"error":     ce.Error(),
					"committed": ce.Committed,
					"failedRow": ce.RowOrdinal,
				}, nil
			}
			return http.StatusInternalServerError, nil, err
		}
		s.log.Info("import committed",
			zap.String("session", id),
			zap.Int("rows", res.Committed))
		return http.StatusOK, res, nil
	})
}

/* ───────── template download ───────── */

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("format") {
	case "xlsx":
		x, err := tabular.TemplateWorkbook()
		if err != nil {
			s.fail(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="driver_import_template.xlsx"`)
		if err := x.Write(w); err != nil {
			s.log.Error("template write failed", zap.Error(err))
		}
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="driver_import_template.csv"`)
		if err := tabular.WriteTemplateCSV(w); err != nil {
			s.log.Error("template write failed", zap.Error(err))
		}
	default:
		s.fail(w, http.StatusBadRequest, fmt.Errorf("unknown template format"))
	}
}

/* ───────── plumbing ───────── */

// withSession resolves the session, serializes the mutation against it, and
// writes the handler's JSON response.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*session) (int, any, error)) {
	id := r.PathValue("id")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		s.fail(w, http.StatusNotFound, fmt.Errorf("unknown session %s", id))
		return
	}
	sess.mu.Lock()
	status, body, err := fn(sess)
	sess.mu.Unlock()
	if err != nil {
		s.fail(w, status, err)
		return
	}
	writeJSON(w, status, body)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.log.Warn("request failed", zap.Int("status", status), zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
