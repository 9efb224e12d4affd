package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"

	"github.com/yanqian/weatherfit/internal/infra/config"
	apperrors "github.com/yanqian/weatherfit/pkg/errors"
)

const replayBodyLimit = 1 << 20 // 1 MiB

var errReplayBodyTooLarge = errors.New("request body exceeds replay limit")

// withRetry replays POST requests whose handler answered with a transient 5xx.
// Attempts are buffered and only the final one reaches the client, so a
// replayed advice request (recommendation, forecast, suggest) looks like a
// single response. Paths listed in cfg.Exclude are never replayed.
func withRetry(next http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return next
	}
	logger = logger.With("component", "http.retry")
	excluded := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		excluded[path] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := excluded[r.URL.Path]; skip || r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		body, err := readReplayBody(r)
		if err != nil {
			if errors.Is(err, errReplayBodyTooLarge) {
				writeJSONError(w, NewHTTPError(http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), err))
				return
			}
			writeJSONError(w, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "could not read request body", err))
			return
		}

		// Every attempt shares one request id so the replays correlate in logs.
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}

		var last *bufferedResponse
		err = retry.Do(
			func() error {
				last = newBufferedResponse()
				next.ServeHTTP(last, replayRequest(r, body))
				return last.outcome()
			},
			retry.Context(r.Context()),
			retry.Attempts(uint(cfg.MaxAttempts)),
			retry.Delay(cfg.BaseBackoff),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				logger.Warn("transient failure, retrying request",
					"path", r.URL.Path, "attempt", n+1, "request_id", id, "error", err)
			}),
		)
		if last == nil {
			logger.Debug("client went away before first attempt", "path", r.URL.Path, "request_id", id)
			return
		}
		if err != nil && r.Context().Err() != nil {
			logger.Debug("retry abandoned", "path", r.URL.Path, "request_id", id, "error", err)
		}
		last.commit(w)
	})
}

func readReplayBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, replayBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > replayBodyLimit {
		return nil, errReplayBodyTooLarge
	}
	return data, nil
}

func replayRequest(r *http.Request, body []byte) *http.Request {
	replay := r.Clone(r.Context())
	replay.Body = io.NopCloser(bytes.NewReader(body))
	replay.ContentLength = int64(len(body))
	return replay
}

// bufferedResponse holds one attempt's response until it is known to be final.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wrote {
		return
	}
	b.status = status
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wrote = true
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

// outcome classifies the attempt for retry.Do. Anything below 500 is final.
// 501 and 505 will not change on a replay.
func (b *bufferedResponse) outcome() error {
	switch {
	case b.status < http.StatusInternalServerError:
		return nil
	case b.status == http.StatusNotImplemented, b.status == http.StatusHTTPVersionNotSupported:
		return retry.Unrecoverable(fmt.Errorf("handler answered %d", b.status))
	default:
		return fmt.Errorf("handler answered %d", b.status)
	}
}

func (b *bufferedResponse) commit(w http.ResponseWriter) {
	dst := w.Header()
	for k, values := range b.header {
		dst[k] = append([]string(nil), values...)
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
