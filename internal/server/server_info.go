package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/xcoinlabs/xcoin/internal/version"
)

func (s *Server) serverInfoHandler(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	host = strings.TrimSpace(host)
	writeJSON(w, http.StatusOK, serverInfoResponse{
		Name:       s.site.Site.Name,
		APIVersion: 1,
		Version:    version.Current(),
		Release:    version.IsRelease(),
		Hostname:   host,
		Pages:      len(s.site.Pages()),
	})
}
