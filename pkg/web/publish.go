package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/router"
)

// Publisher appends a raw event to the event stream.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) (string, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type publishResponse struct {
	ID string `json:"id"`
}

// PublishHandler accepts a raw order event and appends it to the stream.
// The body is validated with the same decoder the consumer uses, so a
// message accepted here is never dropped as malformed later.
func PublishHandler(pub Publisher, maxBytes int64, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "event too large"})
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"})
			return
		}

		ev, err := router.Decode(body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if !ev.Type.Known() {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "unknown event type: " + string(ev.Type)})
			return
		}

		id, err := pub.Publish(r.Context(), body)
		if err != nil {
			log.ErrorContext(r.Context(), "failed to publish event", logger.EventType(string(ev.Type)), logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "event stream unavailable"})
			return
		}

		log.InfoContext(r.Context(), "event accepted",
			logger.EventType(string(ev.Type)),
			logger.OrderRef(ev.Data.OrderNumber),
			logger.MessageID(id),
		)
		writeJSON(w, http.StatusAccepted, publishResponse{ID: id})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
