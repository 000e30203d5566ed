package rest

import (
	"mime"
	"net/http"
	"strings"

	"team-project-backend/internal/core/domain/submission"
)

// errorResponse is the JSON error body, sent when the client asks for JSON.
type errorResponse struct {
	Error   string         `json:"error"`
	Details []violationDTO `json:"details,omitempty"`
}

type violationDTO struct {
	Loc  string `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func toViolationDTOs(vs []submission.Violation) []violationDTO {
	out := make([]violationDTO, len(vs))
	for i, v := range vs {
		out[i] = violationDTO{Loc: v.Loc, Msg: v.Msg, Type: v.Type}
	}
	return out
}

// wantsJSON reports whether the Accept header names application/json.
// Plain text is the default.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}
