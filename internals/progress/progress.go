// Package progress carries install progress between the core and
// whatever frontend is watching (CLI spinner, GUI bar, nothing).
package progress

// Report is a single progress update on a channel.
// Done counts completed units out of Total; Message is optional.
type Report struct {
	Done    int
	Total   int
	Message string
}

// Finished marks the terminating report of a channel
func Finished(total int) Report {
	return Report{Done: total, Total: total, Message: "done"}
}

// Send delivers r without ever blocking the install. A full or
// abandoned channel simply drops the report.
func Send(ch chan<- Report, r Report) {
	if ch == nil {
		return
	}
	select {
	case ch <- r:
	default:
	}
}
