// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"strings"

	"github.com/jeranaias/signup-tui/internal/strength"
)

// =============================================================================
// FIELD
// =============================================================================

// FieldID identifies a field by the name the server expects.
type FieldID string

const (
	FirstName       FieldID = "first_name"
	Phone           FieldID = "phone"
	Address         FieldID = "address"
	Email           FieldID = "email"
	Password        FieldID = "password1"
	ConfirmPassword FieldID = "password2"
	ProfilePic      FieldID = "profile_pic"
)

// Field is one input control of the form.
type Field struct {
	ID          FieldID
	Label       string
	Placeholder string
	Value       string
	Required    bool

	// Secret marks password inputs; Masked is their current visibility.
	Secret bool
	Masked bool

	// File marks inputs whose value is a local path uploaded as a file part.
	File bool

	ErrorMessage string
	HasError     bool
}

func (f *Field) clearError() {
	f.ErrorMessage = ""
	f.HasError = false
}

func (f *Field) setError(msg string) {
	f.ErrorMessage = msg
	f.HasError = true
}

// DefaultFields returns the signup field set in display order.
func DefaultFields() []Field {
	return []Field{
		{ID: FirstName, Label: "First name", Placeholder: "Ana", Required: true},
		{ID: Phone, Label: "Phone", Placeholder: "+1 2345678901", Required: true},
		{ID: Address, Label: "Delivery address", Placeholder: "12 Market St", Required: true},
		{ID: Email, Label: "Email", Placeholder: "ana@example.com", Required: true},
		{ID: Password, Label: "Password", Required: true, Secret: true, Masked: true},
		{ID: ConfirmPassword, Label: "Confirm password", Required: true, Secret: true, Masked: true},
		{ID: ProfilePic, Label: "Profile picture", Placeholder: "optional path to an image", File: true},
	}
}

// =============================================================================
// FORM
// =============================================================================

// Form is the ordered set of fields plus derived UI state.
type Form struct {
	fields []*Field
	byID   map[FieldID]*Field

	// Submittable mirrors the submit control's enabled state. Only Refresh writes it.
	Submittable bool

	// StrengthVisible turns on at the first password input and stays on.
	StrengthVisible bool
	Strength        int
}

// New creates a form with the default signup fields.
func New() *Form {
	return NewWithFields(DefaultFields()...)
}

// NewWithFields creates a form from the given fields, kept in order.
// Duplicate IDs keep the first occurrence.
func NewWithFields(fields ...Field) *Form {
	f := &Form{byID: make(map[FieldID]*Field, len(fields))}
	for i := range fields {
		fld := fields[i]
		if _, dup := f.byID[fld.ID]; dup {
			continue
		}
		f.fields = append(f.fields, &fld)
		f.byID[fld.ID] = &fld
	}
	return f
}

// Fields returns the fields in display order. The pointers are live.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Field returns the field with the given id, or nil.
func (f *Form) Field(id FieldID) *Field {
	return f.byID[id]
}

// Lookup finds a field by its wire name. Unknown names return nil.
func (f *Form) Lookup(name string) *Field {
	return f.byID[FieldID(name)]
}

// Value returns the current value of id, or "" when the field does not exist.
func (f *Form) Value(id FieldID) string {
	if fld := f.byID[id]; fld != nil {
		return fld.Value
	}
	return ""
}

// SetValue stores a new value without validating it.
func (f *Form) SetValue(id FieldID, value string) {
	if fld := f.byID[id]; fld != nil {
		fld.Value = value
	}
}

// =============================================================================
// EFFECT LAYER
// =============================================================================

// Validate re-checks one field and writes the result into its error state:
// the previous error is always cleared first, then set again if the value
// fails. Calling it twice on the same values yields the same state.
func (f *Form) Validate(id FieldID) Verdict {
	fld := f.byID[id]
	if fld == nil {
		return valid()
	}
	fld.clearError()
	v := Check(fld.ID, fld.Value, fld.Required, f.Value(Password))
	if !v.Valid && v.Message != "" {
		fld.setError(v.Message)
	}
	return v
}

// ValidateAll validates every field and reports whether none ended in an
// error state.
func (f *Form) ValidateAll() bool {
	ok := true
	for _, fld := range f.fields {
		f.Validate(fld.ID)
		if fld.HasError {
			ok = false
		}
	}
	return ok
}

// Refresh recomputes Submittable. It never touches error messages.
func (f *Form) Refresh() bool {
	ok := true
	for _, fld := range f.fields {
		if !fld.Required {
			continue
		}
		if strings.TrimSpace(fld.Value) == "" || fld.HasError {
			ok = false
			break
		}
	}
	if f.Value(Password) != f.Value(ConfirmPassword) {
		ok = false
	}
	f.Submittable = ok
	return ok
}

// UpdateStrength reveals the meter and rescores the password.
func (f *Form) UpdateStrength() int {
	f.StrengthVisible = true
	f.Strength = strength.Score(f.Value(Password))
	return f.Strength
}

// ToggleMask flips the visibility of a secret field and returns the new
// masked state. Non-secret fields are left alone.
func (f *Form) ToggleMask(id FieldID) bool {
	fld := f.byID[id]
	if fld == nil || !fld.Secret {
		return false
	}
	fld.Masked = !fld.Masked
	return fld.Masked
}

// HasErrors reports whether any field is in an error state.
func (f *Form) HasErrors() bool {
	for _, fld := range f.fields {
		if fld.HasError {
			return true
		}
	}
	return false
}

// ClearErrors removes every field's message and error state.
func (f *Form) ClearErrors() {
	for _, fld := range f.fields {
		fld.clearError()
	}
}

// ApplyRemoteErrors writes server-reported messages onto matching fields,
// joining each list with spaces. Names with no matching field are skipped.
// It returns the ids that received an error, in form order.
func (f *Form) ApplyRemoteErrors(errs map[string][]string) []FieldID {
	if len(errs) == 0 {
		return nil
	}
	var applied []FieldID
	for _, fld := range f.fields {
		msgs, ok := errs[string(fld.ID)]
		if !ok {
			continue
		}
		fld.setError(strings.Join(msgs, " "))
		applied = append(applied, fld.ID)
	}
	return applied
}

// Entry is one name/value pair of the submitted payload.
type Entry struct {
	Name  string
	Value string
	File  bool
}

// Entries returns the field values in form order, ready to serialize.
// Values are sent as typed; the server applies its own normalization.
func (f *Form) Entries() []Entry {
	out := make([]Entry, 0, len(f.fields))
	for _, fld := range f.fields {
		out = append(out, Entry{Name: string(fld.ID), Value: fld.Value, File: fld.File})
	}
	return out
}
