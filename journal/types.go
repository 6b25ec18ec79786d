//go:generate go run github.com/golang/mock/mockgen -destination=mockjournal/journal.go -package=mockjournal . Journal

package journal

import (
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"
)

var log = logging.Logger("journal")

var (
	// DefaultDisabledEvents lists the event types that are not journaled
	// unless explicitly enabled. Expiry notices are raised on every sweep
	// visit and would otherwise dominate the journal.
	DefaultDisabledEvents = DisabledEvents{
		EventType{System: "filebank", Event: "lease_expires_soon"},
	}
)

// DisabledEvents is the set of event types whose journaling is suppressed.
type DisabledEvents []EventType

// ParseDisabledEvents parses "system1:event1,system1:event2[,...]". Whitespace
// around entries is ignored.
func ParseDisabledEvents(s string) (DisabledEvents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DisabledEvents{}, nil
	}
	evts := strings.Split(s, ",")
	ret := make(DisabledEvents, 0, len(evts))
	for _, evt := range evts {
		evt = strings.TrimSpace(evt)
		s := strings.Split(evt, ":")
		if len(s) != 2 {
			return nil, xerrors.Errorf("invalid event type: %s", s)
		}
		ret = append(ret, EventType{System: s[0], Event: s[1]})
	}
	return ret, nil
}

// EventType identifies a kind of journal entry.
type EventType struct {
	System string
	Event  string

	enabled bool

	// set only on types handed out by a registry
	safe bool
}

func (et EventType) String() string {
	return et.System + ":" + et.Event
}

// Enabled reports whether entries of this type are recorded. Check it before
// building an expensive payload.
func (et EventType) Enabled() bool {
	return et.safe && et.enabled
}

type EventTypeRegistry interface {
	// RegisterEventType returns the token components use to tag entries of
	// (system, event) and to check whether that type is suppressed.
	RegisterEventType(system, event string) EventType
}

// Journal is an audit trail of ledger actions. Payloads must be JSON
// serializable.
type Journal interface {
	EventTypeRegistry

	// RecordEvent calls supplier and records its result if evtType is
	// enabled. Implementations recover from panics raised by supplier.
	RecordEvent(evtType EventType, supplier func() interface{})

	Close() error
}

// Event is one journal entry.
type Event struct {
	EventType

	Timestamp time.Time
	Data      interface{}
}
