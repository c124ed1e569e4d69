package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/pipeline"
	"github.com/matzehuels/netplot/pkg/report"
)

// maxBodySize bounds uploaded edgelists (8 MiB).
const maxBodySize = 8 << 20

// analyzeResponse is the JSON shape returned by POST /analyze.
type analyzeResponse struct {
	RunID string       `json:"run_id"`
	Input string       `json:"input"`
	Nodes int          `json:"nodes"`
	Edges int          `json:"edges"`
	Rows  []report.Row `json:"rows"`
}

// errorResponse is the JSON shape of every error.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze runs the pipeline on the uploaded edgelist.
//
// The body is a tab-separated edgelist. Query parameters mirror the CLI
// flags: layout, size, width, seed, name, refresh. The output parameter
// selects the response: "json" (default) returns the centrality table,
// "png" or "svg" returns the rendered image.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeIO, err, "read request body"))
		return
	}
	if len(body) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "empty request body"))
		return
	}

	opts, output, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.execute(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch output {
	case "png":
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Image)
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Image)
	default:
		writeJSON(w, http.StatusOK, analyzeResponse{
			RunID: result.RunID,
			Input: result.Name,
			Nodes: result.Stats.NodeCount,
			Edges: result.Stats.EdgeCount,
			Rows:  result.Table.Rows,
		})
	}
}

// handleLatestRun returns the most recent persisted run for an input
// name. Requires a configured store; without one every input is a 404.
func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "input")

	doc, ok, err := s.runner.Store.LatestRun(r.Context(), input)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "query runs for %q", input))
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:    string(errors.ErrCodeInvalidInput),
			Message: "no recorded run for " + input,
		})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// execute writes the uploaded edgelist to a scratch file and runs the
// pipeline on it. The runner keys its cache by file content, so the
// scratch path does not defeat caching.
func (s *Server) execute(ctx context.Context, body []byte, opts pipeline.Options) (*pipeline.Result, error) {
	dir, err := os.MkdirTemp("", "netplot-upload-")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create scratch dir")
	}
	defer os.RemoveAll(dir)

	// The name came from the query string; keep it inside the scratch dir.
	name := filepath.Base(opts.Input)
	path := filepath.Join(dir, name+".csv")
	if err := os.WriteFile(path, body, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write scratch file")
	}

	opts.Input = path
	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Best-effort, same as the batch writer: the response is the
	// primary output.
	doc := report.Document{
		RunID:     result.RunID,
		Input:     result.Name,
		CreatedAt: time.Now().UTC(),
		Rows:      result.Table.Rows,
	}
	if err := s.runner.Store.SaveRun(ctx, doc); err != nil {
		s.logger.Warn("failed to record run", "input", result.Name, "err", err)
	}
	return result, nil
}

// optionsFromQuery builds pipeline options from the query string and
// returns the requested output kind (json, png, or svg).
func optionsFromQuery(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()

	output := q.Get("output")
	if output == "" {
		output = "json"
	}
	if output != "json" && !pipeline.ValidFormats[output] {
		return pipeline.Options{}, "", errors.New(errors.ErrCodeInvalidInput,
			"invalid output %q (must be one of: json, png, svg)", output)
	}

	name := q.Get("name")
	if name == "" {
		name = "upload"
	}

	opts := pipeline.Options{
		Input:         name, // replaced with the scratch path in execute
		Layout:        q.Get("layout"),
		SizeByDegree:  q.Get("size") == "true",
		WidthByWeight: q.Get("width") == "true",
		Refresh:       q.Get("refresh") == "true",
	}
	if output != "json" {
		opts.Format = output
	}
	if seed := q.Get("seed"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return pipeline.Options{}, "", errors.New(errors.ErrCodeInvalidInput, "invalid seed %q", seed)
		}
		opts.Seed = n
	}
	return opts, output, nil
}

// writeError maps the error taxonomy onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeSchema, errors.ErrCodeDataType, errors.ErrCodeInvalidInput, errors.ErrCodeUnknownLayout:
		status = http.StatusBadRequest
	case errors.ErrCodeConvergence, errors.ErrCodeComputation, errors.ErrCodeDegenerateRange:
		status = http.StatusUnprocessableEntity
	}

	s.logger.Error("request failed",
		"path", r.URL.Path,
		"code", code,
		"err", err,
		"request_id", requestIDFromContext(r.Context()))

	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
