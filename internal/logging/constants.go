package logging

import "time"

// Field names shared by the client, the controller and the commands.
const (
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldRequestID     = "request_id"
	FieldEndpoint      = "endpoint"
	FieldMethod        = "method"
	FieldSequence      = "fetch_seq"
	FieldPruned        = "pruned"
	FieldFile          = "file_path"
	FieldPreset        = "preset"
)

// Request returns the fields identifying one backend call.
func Request(method, endpoint, requestID string) []Field {
	return []Field{
		F(FieldMethod, method),
		F(FieldEndpoint, endpoint),
		F(FieldRequestID, requestID),
	}
}

// Elapsed is the FieldDuration field for the time since start, in milliseconds.
func Elapsed(start time.Time) Field {
	return F(FieldDuration, time.Since(start).Milliseconds())
}
