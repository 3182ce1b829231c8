package models

import (
	"errors"
	"reflect"
)

// ErrSelfLink is returned when a link points at the object that owns it.
var ErrSelfLink = errors.New("an object should not link to itself")

// AbsoluteURLer is implemented by objects that have a canonical URL.
type AbsoluteURLer interface {
	AbsoluteURL() string
}

// LinkTarget points either at an arbitrary URL or at another object.
// An explicit URL always takes precedence over the linked object.
type LinkTarget struct {
	URL    string        `json:"url,omitempty"`
	Object AbsoluteURLer `json:"-"`
}

// AbsoluteURL resolves the link. The boolean is false when neither an
// explicit URL nor a linked object with a URL is available.
func (l LinkTarget) AbsoluteURL() (string, bool) {
	if l.URL != "" {
		return l.URL, true
	}
	if l.Object == nil {
		return "", false
	}
	u := l.Object.AbsoluteURL()
	return u, u != ""
}

// Validate rejects a link whose object is its owner.
func (l LinkTarget) Validate(owner AbsoluteURLer) error {
	if l.Object == nil || owner == nil {
		return nil
	}
	if reflect.TypeOf(l.Object).Comparable() && l.Object == owner {
		return ErrSelfLink
	}
	return nil
}
