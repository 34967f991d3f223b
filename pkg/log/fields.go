package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Search
	FieldQuery     = "query"
	FieldSearchID  = "search_id"
	FieldSessionID = "session_id"
	FieldPage      = "page"
	FieldIndex     = "index"

	// Service
	FieldService = "service"
)
