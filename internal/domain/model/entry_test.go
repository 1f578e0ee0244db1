package model

import (
	"net/url"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeFeedbackForm(t *testing.T) {
	Convey("Given a feedback form body", t, func() {
		Convey("When both fields are sent", func() {
			form := DecodeFeedbackForm(url.Values{"name": {"Alice"}, "comment": {"Great site!"}})

			Convey("Then both are present with their values", func() {
				So(form.Name, ShouldResemble, Field{Value: "Alice", Present: true})
				So(form.Comment, ShouldResemble, Field{Value: "Great site!", Present: true})
				So(form.Incomplete(), ShouldBeFalse)
			})
		})

		Convey("When a field is absent", func() {
			form := DecodeFeedbackForm(url.Values{"name": {"Bob"}})

			Convey("Then it decodes as not present", func() {
				So(form.Comment.Present, ShouldBeFalse)
				So(form.Comment.String(), ShouldEqual, "")
				So(form.Incomplete(), ShouldBeTrue)
			})
		})

		Convey("When a field is sent empty", func() {
			form := DecodeFeedbackForm(url.Values{"name": {""}, "comment": {"x"}})

			Convey("Then it is present but blank", func() {
				So(form.Name.Present, ShouldBeTrue)
				So(form.Name.Blank(), ShouldBeTrue)
				So(form.Incomplete(), ShouldBeTrue)
			})
		})

		Convey("When a field is only whitespace", func() {
			form := DecodeFeedbackForm(url.Values{"name": {"  "}, "comment": {" "}})

			Convey("Then it counts as filled in", func() {
				So(form.Name.Blank(), ShouldBeFalse)
				So(form.Comment.Blank(), ShouldBeFalse)
				So(form.Incomplete(), ShouldBeFalse)
			})
		})

		Convey("When converted to an entry", func() {
			entry := DecodeFeedbackForm(url.Values{"name": {"Alice"}, "comment": {"Hi"}}).Entry()

			Convey("Then the entry is unsaved and keeps the values", func() {
				So(entry.ID, ShouldEqual, 0)
				So(entry.Line(), ShouldEqual, "Alice (Hi)")
			})
		})
	})
}

func TestDecodeGuestbookForm(t *testing.T) {
	Convey("Given a guestbook form body", t, func() {
		form := DecodeGuestbookForm(url.Values{
			"guest-name":    {"A"},
			"guest-email":   {"B"},
			"guest-comment": {"C"},
		})

		Convey("Then the prefixed keys map to the fields", func() {
			So(form.Name.Value, ShouldEqual, "A")
			So(form.Email.Value, ShouldEqual, "B")
			So(form.Comment.Value, ShouldEqual, "C")
			So(form.Incomplete(), ShouldBeFalse)
		})

		Convey("Then the entry drops the email", func() {
			So(form.Entry().Line(), ShouldEqual, "A (C)")
		})

		Convey("Then the unprefixed keys are ignored", func() {
			other := DecodeGuestbookForm(url.Values{"name": {"A"}, "comment": {"C"}})
			So(other.Name.Present, ShouldBeFalse)
			So(other.Incomplete(), ShouldBeTrue)
		})
	})
}

func TestEntryLineWithAbsentFields(t *testing.T) {
	Convey("Given an entry stored without values", t, func() {
		So(FeedbackEntry{ID: 3}.Line(), ShouldEqual, " ()")
	})
}
