package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sanonone/kektorkv/pkg/metrics"
)

// registerHTTPHandlers sets up the KV routes. Method patterns make the mux
// answer 405 with an Allow header when the verb does not match.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /set", s.handleSet)
	mux.HandleFunc("GET /get", s.handleGet)
	mux.HandleFunc("DELETE /remove", s.handleRemove)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req SetRequest
	if err := decodeSingleJSON(r.Body, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeHTTPError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		s.writeHTTPError(w, http.StatusBadRequest, "Invalid JSON, expected an object with string fields 'key' and 'value'")
		return
	}
	if req.Key == nil || req.Value == nil {
		s.writeHTTPError(w, http.StatusBadRequest, "Fields 'key' and 'value' are required")
		return
	}

	s.store.Set(*req.Key, *req.Value)
	metrics.ObserveSet()

	s.writeText(w, http.StatusOK, msgValueSet)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key, ok := queryKey(r)
	if !ok {
		s.writeHTTPError(w, http.StatusBadRequest, "Query parameter 'key' is required")
		return
	}

	// One lookup decides both the status and the body.
	value, found := s.store.Get(key)
	metrics.ObserveGet(found)

	if !found {
		s.writeHTTPError(w, http.StatusNotFound, msgNotFound)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, GetResponse{Value: value})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	key, ok := queryKey(r)
	if !ok {
		s.writeHTTPError(w, http.StatusBadRequest, "Query parameter 'key' is required")
		return
	}

	s.store.Remove(key)
	metrics.ObserveRemove()

	s.writeText(w, http.StatusOK, msgValueRemoved)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeSingleJSON decodes exactly one JSON value from body into v.
// Anything other than whitespace after that value is an error.
func decodeSingleJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errTrailingData
	}
}

var errTrailingData = errors.New("unexpected data after JSON body")

// queryKey returns the "key" query parameter. "?key=" is a present, empty key.
func queryKey(r *http.Request) (string, bool) {
	q := r.URL.Query()
	if !q.Has("key") {
		return "", false
	}
	return q.Get("key"), true
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, ErrorResponse{Error: message})
}

func (s *Server) writeText(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write([]byte(body))
}
