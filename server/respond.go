package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/zeebo/xxh3"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSON encodes v, tags it with a content hash and answers 304 when the
// client already holds that representation.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("❌ Pulse: encode response: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeTagged(w, r, "application/json", body)
}

// writeTagged sends body with an xxh3 ETag, honouring If-None-Match.
func writeTagged(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	tag := etag(body)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")
	if matchesETag(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func etag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}

// matchesETag handles "*", lists and weak validators.
func matchesETag(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Code: code})
}
