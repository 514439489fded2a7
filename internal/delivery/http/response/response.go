package response

// ThreatEntry is one row of the threat listing.
type ThreatEntry struct {
	IP          string `json:"ip"`
	Description string `json:"description"`
}

// ThreatListResponse is the JSON form of the threat listing.
type ThreatListResponse struct {
	Count   int           `json:"count"`
	Threats []ThreatEntry `json:"threats"`
}
