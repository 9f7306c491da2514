package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"

	"github.com/matzehuels/animaut/pkg/buildinfo"
	"github.com/matzehuels/animaut/pkg/errors"
	"github.com/matzehuels/animaut/pkg/pipeline"
	"github.com/matzehuels/animaut/pkg/render/sink"
)

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Cache"

// graphvizContentType is the media type of laid-out DOT responses.
const graphvizContentType = "text/vnd.graphviz; charset=utf-8"

// request is the JSON form of a conversion request.
type request struct {
	Graph   string          `json:"graph"`
	Options json.RawMessage `json:"options,omitempty"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Cache  string         `json:"cache,omitempty"`
	Build  buildinfo.Info `json:"build"`
}

// pinger is implemented by caches with a remote backend.
type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := healthResponse{Status: "ok", Build: buildinfo.Get()}
	if p, ok := s.runner.Cache.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body.Status = "degraded"
			body.Cache = err.Error()
		}
	}
	writeJSON(w, status, body)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	src, opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := sink.FormatSVG
	if q := r.URL.Query().Get("format"); q != "" {
		if format, err = sink.ParseFormat(q); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	opts.Formats = []string{string(format)}

	result, err := s.runner.Execute(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set(CacheHeader, cacheStatus(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	src, opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	laidOut, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", graphvizContentType)
	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(laidOut)
}

// decode reads the DOT source and the request options. The body is either
// raw DOT or a JSON request; the query parameters policy and engine override
// both.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) ([]byte, pipeline.Options, error) {
	opts := s.base
	opts.Formats = append([]string(nil), s.base.Formats...)
	opts.Logger = loggerFrom(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, opts, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}

	src := body
	if isJSON(r, body) {
		var req request
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
		if len(req.Options) > 0 {
			if err := json.Unmarshal(req.Options, &opts); err != nil {
				return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options")
			}
		}
		src = []byte(req.Graph)
	}

	q := r.URL.Query()
	if p := q.Get("policy"); p != "" {
		opts.Policy = p
	}
	if e := q.Get("engine"); e != "" {
		opts.Engine = e
	}

	if err := errors.ValidateSource(src); err != nil {
		return nil, opts, err
	}
	return src, opts, nil
}

func isJSON(r *http.Request, body []byte) bool {
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		return mt == "application/json"
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("{"))
}

// statusFor maps error codes to HTTP statuses: caller mistakes are 400,
// everything else is 500.
func statusFor(err error) int {
	if errors.IsInvalid(err) {
		return http.StatusBadRequest
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	l := loggerFrom(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error("request failed", "status", status, "err", err)
	} else {
		l.Warn("bad request", "status", status, "err", err)
	}

	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: code, Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
