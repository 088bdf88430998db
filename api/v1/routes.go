package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gnocchid/gnocchid/metering"
)

// maxBatchBody bounds how big an inbound sample batch may be.
const maxBatchBody = 8 << 20 // 8 MiB

// NewHandler returns the top handler of the v1 API.
func NewHandler(cs *ControlSurface) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/samples", func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handlePostSamples(cs, rw, r)
	})

	mux.HandleFunc("/v1/status", func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleGetStatus(cs, rw)
	})

	return mux
}

// handlePostSamples decodes a sample batch, dispatches it synchronously and
// returns the dispatch summary. Unit failures do not fail the request; they
// are part of the summary.
func handlePostSamples(cs *ControlSurface, rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(rw, r.Body, maxBatchBody))
	if err != nil {
		apiError(rw, "Could not read request body", err.Error(), http.StatusBadRequest)
		return
	}

	samples, err := metering.ParseBatch(body)
	if err != nil {
		apiError(rw, "Invalid sample batch", err.Error(), http.StatusBadRequest)
		return
	}

	summary := cs.Dispatcher.Dispatch(r.Context(), samples)
	cs.Status.RecordBatch(summary)

	data, err := json.Marshal(summary)
	if err != nil {
		apiError(rw, "Encoding summary failed", err.Error(), http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write(data)
}

func handleGetStatus(cs *ControlSurface, rw http.ResponseWriter) {
	data, err := json.Marshal(cs.Status)
	if err != nil {
		apiError(rw, "Encoding status failed", err.Error(), http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write(data)
}
