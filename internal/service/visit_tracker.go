package service

import (
	"time"

	"github.com/gin-contrib/sessions"
)

const (
	sessionKeyVisits    = "visits"
	sessionKeyLastVisit = "last_visit"
)

// AdvanceVisit applies the per-session visit rules and returns the new visit
// count and last-visit timestamp. It is a pure function of its inputs.
//
// When at least one whole day has passed since lastVisit the count goes up by
// one and the timestamp moves to now. Otherwise the count drops back to 1 and
// the timestamp is left alone. The same-day branch deliberately resets rather
// than no-ops: repeat visits within a day always report 1, no matter what the
// stored count was. That matches the long-standing observable behavior of the
// site and changing it would change what returning visitors see.
func AdvanceVisit(now time.Time, visits int, lastVisit time.Time) (int, time.Time) {
	if visits < 1 {
		visits = 1
	}

	if int(now.Sub(lastVisit).Hours()/24) >= 1 {
		return visits + 1, now
	}

	return 1, lastVisit
}

// TrackVisit reads the visit state from the session, advances it, writes it
// back, and returns the visit count to display. Missing or malformed session
// values degrade to first-visit defaults instead of erroring.
func TrackVisit(session sessions.Session, now time.Time) int {
	visits := 1
	if raw, ok := session.Get(sessionKeyVisits).(int); ok && raw > 0 {
		visits = raw
	}

	lastVisit := now
	if raw, ok := session.Get(sessionKeyLastVisit).(string); ok {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			lastVisit = parsed
		}
	}

	visits, lastVisit = AdvanceVisit(now, visits, lastVisit)

	session.Set(sessionKeyVisits, visits)
	session.Set(sessionKeyLastVisit, lastVisit.Format(time.RFC3339))
	session.Save()

	return visits
}
