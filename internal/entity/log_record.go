package entity

// LogRecord is one access-log line that matched the record pattern.
type LogRecord struct {
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	Status    string `json:"status"`
}

// CorrelatedRecord is a LogRecord whose address appears in the threat mapping.
// The embedded record's fields are flattened when marshalled.
type CorrelatedRecord struct {
	LogRecord
	ThreatDescription string `json:"threat_description"`
}

// CSVHeader is the fixed column order of the tabular log export.
var CSVHeader = []string{"ip", "timestamp", "method", "status"}

// CSVRow returns the record's fields in CSVHeader order.
func (r LogRecord) CSVRow() []string {
	return []string{r.IP, r.Timestamp, r.Method, r.Status}
}
