package session

// NoTimestampCorrelationError reports that StartTime was called with
// requireCorrelation set and the file carries no timestamp_correlation/162
// message to anchor its relative timeline to an absolute one.
type NoTimestampCorrelationError struct{}

func (e *NoTimestampCorrelationError) Error() string {
	return "session: no timestamp_correlation message present"
}

var errNoTimestampCorrelation = &NoTimestampCorrelationError{}
