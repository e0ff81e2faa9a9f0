// Package virb joins FIT recording sessions to their companion MP4/GLV
// video clips by UUID equality (§4.11), generalized from the original
// implementation's directory-walking VirbSession::sessions_from_path: the
// walk and MP4 uuid-atom reading are out of scope here, so Link takes
// already-extracted clip UUIDs as a plain map instead of searching a
// directory itself.
package virb

import (
	"fmt"

	"github.com/kjordahl/fitvirb/fit/session"
)

// LinkedSession pairs one recording session span with the clip paths
// resolved for its UUIDs, and any UUIDs that had no match.
type LinkedSession struct {
	Span      session.Span
	ClipPaths []string
	Unmatched []string
}

// NoSuchSessionError reports that a requested clip UUID was not logged by
// any recording session span.
type NoSuchSessionError struct {
	UUID string
}

func (e *NoSuchSessionError) Error() string {
	return fmt.Sprintf("virb: no session contains uuid %q", e.UUID)
}

// Link resolves every span's UUIDs against clipUUIDs (video clip path
// keyed by UUID, produced by an out-of-scope MP4 reader), returning one
// LinkedSession per span in the same order as spans.
func Link(spans []session.Span, clipUUIDs map[string]string) []LinkedSession {
	out := make([]LinkedSession, len(spans))
	for i, span := range spans {
		ls := LinkedSession{Span: span}
		for _, uuid := range span.UUIDs {
			if path, ok := clipUUIDs[uuid]; ok {
				ls.ClipPaths = append(ls.ClipPaths, path)
			} else {
				ls.Unmatched = append(ls.Unmatched, uuid)
			}
		}
		out[i] = ls
	}
	return out
}

// FindSession returns the span that logged uuid among its clip UUIDs.
func FindSession(spans []session.Span, uuid string) (session.Span, error) {
	for _, span := range spans {
		for _, u := range span.UUIDs {
			if u == uuid {
				return span, nil
			}
		}
	}
	return session.Span{}, &NoSuchSessionError{UUID: uuid}
}
