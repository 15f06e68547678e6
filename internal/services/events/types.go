package events

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Mailchimp sends fired_at without a zone designator.
const firedAtLayout = "2006-01-02 15:04:05"

// Known webhook event types.
const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypeProfile     = "profile"
	TypeEmailChange = "upemail"
	TypeCleaned     = "cleaned"
	TypeCampaign    = "campaign"
)

// Event represents a single Mailchimp webhook callback.
type Event struct {
	Type    string
	FiredAt time.Time
	Data    map[string]string
}

// IsKnown reports whether the event type is one Mailchimp documents.
func (e *Event) IsKnown() bool {
	switch e.Type {
	case TypeSubscribe, TypeUnsubscribe, TypeProfile, TypeEmailChange, TypeCleaned, TypeCampaign:
		return true
	default:
		return false
	}
}

// ParseForm builds an Event from the form-encoded webhook payload. The
// payload carries a "type" key, a "fired_at" timestamp and a set of
// "data[...]" keys describing the subject of the event.
func ParseForm(form url.Values) (*Event, error) {
	eventType := form.Get("type")
	if eventType == "" {
		return nil, fmt.Errorf("missing event type")
	}

	event := &Event{
		Type: eventType,
		Data: make(map[string]string),
	}

	if fired := form.Get("fired_at"); fired != "" {
		if parsed, err := time.Parse(firedAtLayout, fired); err == nil {
			event.FiredAt = parsed
		}
	}

	for key, values := range form {
		name, ok := dataKey(key)
		if !ok || len(values) == 0 {
			continue
		}
		event.Data[name] = values[0]
	}

	return event, nil
}

// dataKey flattens "data[merges][FNAME]" into "merges.FNAME".
func dataKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "data[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(key, "data["), "]")
	if inner == "" {
		return "", false
	}
	return strings.ReplaceAll(inner, "][", "."), true
}
