// Package servicedef describes the resource exposed by the service under test: the fields of a
// post record, and the payloads that the contract tests send.
//
// Records are represented as ldvalue.Value objects rather than structs, because the tests have
// to compare whatever the service returns, including fields they did not expect.
package servicedef

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	FieldID     = "id"
	FieldTitle  = "title"
	FieldBody   = "body"
	FieldUserID = "userId"
)

// PostFields are the client-supplied fields of a post. The id is always assigned by the
// service.
var PostFields = []string{FieldTitle, FieldBody, FieldUserID}

const (
	TemplateTitle  = "New Post"
	TemplateBody   = "This is the body of the new post."
	TemplateUserID = 1

	UpdatedTitle  = "Updated Title"
	UpdatedBody   = "Updated body text."
	UpdatedUserID = 3
)

// NewPostTemplate returns the payload used to create a post. Every call returns a new value, so
// a test can modify its copy freely.
func NewPostTemplate() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set(FieldTitle, ldvalue.String(TemplateTitle)).
		Set(FieldBody, ldvalue.String(TemplateBody)).
		Set(FieldUserID, ldvalue.Int(TemplateUserID)).
		Build()
}

// NewFullUpdate returns the payload for replacing the post with the given ID.
func NewFullUpdate(id int) ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set(FieldID, ldvalue.Int(id)).
		Set(FieldTitle, ldvalue.String(UpdatedTitle)).
		Set(FieldBody, ldvalue.String(UpdatedBody)).
		Set(FieldUserID, ldvalue.Int(TemplateUserID)).
		Build()
}

// PartialUpdate is a single-field change sent with PATCH.
type PartialUpdate struct {
	Field string
	Value ldvalue.Value
}

// PartialUpdates are the single-field changes that the update tests try.
func PartialUpdates() []PartialUpdate {
	return []PartialUpdate{
		{FieldTitle, ldvalue.String(UpdatedTitle)},
		{FieldBody, ldvalue.String(UpdatedBody)},
		{FieldUserID, ldvalue.Int(UpdatedUserID)},
	}
}

// AsPayload returns the PATCH body for this change.
func (u PartialUpdate) AsPayload() ldvalue.Value {
	return ldvalue.ObjectBuild().Set(u.Field, u.Value).Build()
}

// Without returns a copy of the object with the named property removed.
func Without(record ldvalue.Value, field string) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, k := range record.Keys() {
		if k != field {
			b.Set(k, record.GetByKey(k))
		}
	}
	return b.Build()
}

// Merge returns a copy of the object with every property of changes added or replaced.
func Merge(record, changes ldvalue.Value) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, k := range record.Keys() {
		b.Set(k, record.GetByKey(k))
	}
	for _, k := range changes.Keys() {
		b.Set(k, changes.GetByKey(k))
	}
	return b.Build()
}

// RecordID returns the integer id property of a record, if it has one.
func RecordID(record ldvalue.Value) ldvalue.OptionalInt {
	id := record.GetByKey(FieldID)
	if !id.IsInt() {
		return ldvalue.OptionalInt{}
	}
	return ldvalue.NewOptionalInt(id.IntValue())
}

// MaxID returns the greatest integer id among the records in a listing.
func MaxID(listing ldvalue.Value) ldvalue.OptionalInt {
	var max ldvalue.OptionalInt
	for i := 0; i < listing.Count(); i++ {
		id := RecordID(listing.GetByIndex(i))
		if id.IsDefined() && (!max.IsDefined() || id.IntValue() > max.IntValue()) {
			max = id
		}
	}
	return max
}

// NonexistentID returns an id that is assumed not to exist in the service: one greater than the
// greatest id in the listing, or 1 if the listing has no ids.
func NonexistentID(listing ldvalue.Value) int {
	if max := MaxID(listing); max.IsDefined() {
		return max.IntValue() + 1
	}
	return 1
}
