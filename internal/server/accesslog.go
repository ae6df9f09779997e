package server

import (
	"log"

	"github.com/fatih/color"
)

// accessLog writes one line per connection.
type accessLog struct {
	l       *log.Logger
	success *color.Color
	client  *color.Color
	failure *color.Color
}

// newAccessLog colors statuses when enabled is true, never when it is false
// and when the terminal supports it when enabled is nil.
func newAccessLog(l *log.Logger, enabled *bool) *accessLog {
	a := &accessLog{
		l:       l,
		success: color.New(color.FgGreen),
		client:  color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
	if enabled != nil {
		for _, c := range []*color.Color{a.success, a.client, a.failure} {
			if *enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
	return a
}

func (a *accessLog) request(remote, line string, status int, sent int64) {
	a.l.Printf("%s %q %s %d", remote, line, a.status(status), sent)
}

func (a *accessLog) abort(remote, reason string) {
	a.l.Printf("%s aborted: %s", remote, a.failure.Sprint(reason))
}

func (a *accessLog) status(code int) string {
	switch {
	case code >= 500:
		return a.failure.Sprint(code)
	case code >= 400:
		return a.client.Sprint(code)
	default:
		return a.success.Sprint(code)
	}
}
