package handler

import (
	"encoding/json"
	"html/template"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/delivery/http/response"
	"github.com/user/threat-log-analyzer/internal/entity"
)

// threatTable is the page scraped by the analyzer: one table whose first row
// is a header, followed by one address/description row per threat.
var threatTable = template.Must(template.New("threats").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Threat IPs</title></head>
<body>
<h1>Threat IPs</h1>
<table>
<tr><th>IP</th><th>Description</th></tr>
{{- range .}}
<tr><td>{{.IP}}</td><td>{{.Description}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

// Handler serves the threat listing as an HTML table and as JSON.
type Handler struct {
	entries []response.ThreatEntry
	logger  *zap.Logger
}

// NewHandler serves a fixed threat mapping, listed in address order.
func NewHandler(threats entity.ThreatMapping, logger *zap.Logger) *Handler {
	entries := make([]response.ThreatEntry, 0, len(threats))
	for ip, desc := range threats {
		entries = append(entries, response.ThreatEntry{IP: ip, Description: desc})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].IP < entries[j].IP })

	return &Handler{entries: entries, logger: logger}
}

func (h *Handler) HandleThreatTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := threatTable.Execute(w, h.entries); err != nil {
		h.logger.Error("Failed to render threat table", zap.Error(err))
	}
}

func (h *Handler) HandleListThreats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.ThreatListResponse{
		Count:   len(h.entries),
		Threats: h.entries,
	})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}
