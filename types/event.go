package types

import "encoding/json"

// JSON field names shared by events and records.
const (
	fieldFullName  = "fullName"
	fieldBrowserID = "browserId"
	fieldMessage   = "message"
	fieldStack     = "stack"
)

// TestEvent is a single raw result object handed over by the test tool.
// The named fields are the ones the reporter interprets; everything else the
// tool attaches travels through Extra untouched and ends up verbatim in the
// persisted report. Events are treated as immutable once received: enrichment
// always operates on a Clone.
type TestEvent struct {
	FullName  string
	BrowserID string
	Message   string
	Stack     string
	Extra     map[string]any
}

// Identity derives the report key for the event. Both name parts join with a
// dot, a single part stands alone, no parts give the empty key. Key collisions
// overwrite on purpose: a later event for the same key replaces the earlier one.
func (e TestEvent) Identity() string {
	switch {
	case e.FullName != "" && e.BrowserID != "":
		return e.FullName + "." + e.BrowserID
	case e.FullName != "":
		return e.FullName
	default:
		return e.BrowserID
	}
}

// Clone returns a copy of the event with its own Extra map
func (e TestEvent) Clone() TestEvent {
	out := e
	if e.Extra != nil {
		out.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// WithExtra returns a copy of the event with key set in its Extra map
func (e TestEvent) WithExtra(key string, value any) TestEvent {
	out := e.Clone()
	if out.Extra == nil {
		out.Extra = make(map[string]any, 1)
	}
	out.Extra[key] = value
	return out
}

// ExtraString returns the string passthrough field for key, or "" when the
// field is absent or not a string.
func (e TestEvent) ExtraString(key string) string {
	s, _ := e.Extra[key].(string)
	return s
}

// ExtraBool returns the boolean passthrough field for key, or false when the
// field is absent or not a boolean.
func (e TestEvent) ExtraBool(key string) bool {
	b, _ := e.Extra[key].(bool)
	return b
}

// toMap flattens the event into a single JSON object. Named fields are
// emitted only when set and shadow passthrough fields of the same name.
func (e TestEvent) toMap() map[string]any {
	m := make(map[string]any, len(e.Extra)+4)
	for k, v := range e.Extra {
		m[k] = v
	}
	if e.FullName != "" {
		m[fieldFullName] = e.FullName
	}
	if e.BrowserID != "" {
		m[fieldBrowserID] = e.BrowserID
	}
	if e.Message != "" {
		m[fieldMessage] = e.Message
	}
	if e.Stack != "" {
		m[fieldStack] = e.Stack
	}
	return m
}

func (e TestEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toMap())
}

func (e *TestEvent) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = EventFromMap(raw)
	return nil
}

// EventFromMap builds a TestEvent from a decoded JSON object. Recognized
// fields that are not strings are kept as passthrough instead of being coerced.
func EventFromMap(raw map[string]any) TestEvent {
	var e TestEvent
	for k, v := range raw {
		s, isString := v.(string)
		switch {
		case k == fieldFullName && isString:
			e.FullName = s
		case k == fieldBrowserID && isString:
			e.BrowserID = s
		case k == fieldMessage && isString:
			e.Message = s
		case k == fieldStack && isString:
			e.Stack = s
		default:
			if e.Extra == nil {
				e.Extra = make(map[string]any)
			}
			e.Extra[k] = v
		}
	}
	return e
}
