// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"net/url"
)

// MaxFieldLength is the declared width of the name and comment columns.
// SQLite does not enforce it and neither does the site.
const MaxFieldLength = 100

// Field is a single submitted form value. Present is false when the key was
// absent from the request body, which is stored as NULL.
type Field struct {
	Value   string
	Present bool
}

// Set returns a present field holding v.
func Set(v string) Field { return Field{Value: v, Present: true} }

// Blank reports whether the field is absent or empty. Whitespace counts as
// a value.
func (f Field) Blank() bool {
	return !f.Present || f.Value == ""
}

// String returns the value, "" when absent.
func (f Field) String() string { return f.Value }

// FeedbackEntry is the single persisted record type.
type FeedbackEntry struct {
	ID      int64
	Name    Field
	Comment Field
}

// Line renders the entry the way the listing shows it: "name (comment)".
func (e FeedbackEntry) Line() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Comment)
}

// Form field keys.
const (
	FieldName         = "name"
	FieldComment      = "comment"
	FieldGuestName    = "guest-name"
	FieldGuestEmail   = "guest-email"
	FieldGuestComment = "guest-comment"
)

// MissingFieldsMessage is shown when a required form field is blank.
const MissingFieldsMessage = "Please fill out all fields."

// FeedbackForm is the POST /feedback body.
type FeedbackForm struct {
	Name    Field
	Comment Field
}

// GuestbookForm is the POST /guestbook body.
type GuestbookForm struct {
	Name    Field
	Email   Field
	Comment Field
}

// DecodeFeedbackForm extracts the feedback fields from a parsed form body.
func DecodeFeedbackForm(values url.Values) FeedbackForm {
	return FeedbackForm{
		Name:    field(values, FieldName),
		Comment: field(values, FieldComment),
	}
}

// DecodeGuestbookForm extracts the guestbook fields from a parsed form body.
func DecodeGuestbookForm(values url.Values) GuestbookForm {
	return GuestbookForm{
		Name:    field(values, FieldGuestName),
		Email:   field(values, FieldGuestEmail),
		Comment: field(values, FieldGuestComment),
	}
}

// Incomplete reports whether name or comment is blank.
func (f FeedbackForm) Incomplete() bool { return f.Name.Blank() || f.Comment.Blank() }

// Incomplete reports whether name or comment is blank. Email is optional.
func (f GuestbookForm) Incomplete() bool { return f.Name.Blank() || f.Comment.Blank() }

// Entry converts the form into an unsaved entry.
func (f FeedbackForm) Entry() FeedbackEntry {
	return FeedbackEntry{Name: f.Name, Comment: f.Comment}
}

// Entry converts the guestbook form into an unsaved entry. Email has no
// column and is dropped.
func (f GuestbookForm) Entry() FeedbackEntry {
	return FeedbackEntry{Name: f.Name, Comment: f.Comment}
}

func field(values url.Values, key string) Field {
	if !values.Has(key) {
		return Field{}
	}
	return Set(values.Get(key))
}
