// Package ping contains handlers for pinging the server
package ping

import (
	"net/http"

	mJson "github.com/matt-dz/recipehub/internal/json"
)

type PingResponse struct {
	Status string `json:"status"`
}

// HandlePing reports that the server is up. It needs no profile.
//
//	@Summary	Ping endpoint.
//	@Tags		Ping
//
//	@Success	200	{object}	PingResponse
//	@Router		/api/ping [GET]
func HandlePing(w http.ResponseWriter, r *http.Request) {
	_ = mJson.Write(w, http.StatusOK, PingResponse{Status: "ok"})
}
