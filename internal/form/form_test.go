// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillValid(f *Form) {
	f.SetValue(FirstName, "Ana")
	f.SetValue(Phone, "+1 2345678901")
	f.SetValue(Address, "12 Market St")
	f.SetValue(Email, "ana@example.com")
	f.SetValue(Password, "Secret1!")
	f.SetValue(ConfirmPassword, "Secret1!")
}

func TestNew_DefaultFieldOrder(t *testing.T) {
	f := New()
	var ids []FieldID
	for _, fld := range f.Fields() {
		ids = append(ids, fld.ID)
	}
	want := []FieldID{FirstName, Phone, Address, Email, Password, ConfirmPassword, ProfilePic}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, f.Field(Password).Masked)
	assert.False(t, f.Field(ProfilePic).Required)
}

func TestNewWithFields_DropsDuplicates(t *testing.T) {
	f := NewWithFields(Field{ID: Email, Label: "first"}, Field{ID: Email, Label: "second"})
	require.Len(t, f.Fields(), 1)
	assert.Equal(t, "first", f.Field(Email).Label)
}

func TestValidate_ClearsThenSets(t *testing.T) {
	f := New()
	f.SetValue(FirstName, "Al")
	v := f.Validate(FirstName)
	assert.False(t, v.Valid)
	assert.True(t, f.Field(FirstName).HasError)
	assert.Equal(t, MsgNameTooShort, f.Field(FirstName).ErrorMessage)

	f.SetValue(FirstName, "Ana")
	f.Validate(FirstName)
	assert.False(t, f.Field(FirstName).HasError)
	assert.Empty(t, f.Field(FirstName).ErrorMessage)
}

func TestValidate_Idempotent(t *testing.T) {
	f := New()
	f.SetValue(Email, "a@b")
	f.Validate(Email)
	first := *f.Field(Email)
	f.Validate(Email)
	assert.Equal(t, first, *f.Field(Email))
}

func TestValidate_UnknownFieldIsNoop(t *testing.T) {
	f := New()
	assert.True(t, f.Validate(FieldID("nope")).Valid)
}

func TestValidate_ConfirmUsesCurrentPassword(t *testing.T) {
	f := New()
	f.SetValue(Password, "Secret1!")
	f.SetValue(ConfirmPassword, "Secret1")
	f.Validate(ConfirmPassword)
	assert.Equal(t, MsgPasswordMatch, f.Field(ConfirmPassword).ErrorMessage)

	f.SetValue(ConfirmPassword, "Secret1!")
	f.Validate(ConfirmPassword)
	assert.False(t, f.Field(ConfirmPassword).HasError)
}

func TestValidateAll(t *testing.T) {
	f := New()
	assert.False(t, f.ValidateAll())
	assert.Equal(t, MsgRequired, f.Field(FirstName).ErrorMessage)
	assert.False(t, f.Field(ProfilePic).HasError)

	fillValid(f)
	assert.True(t, f.ValidateAll())
	assert.False(t, f.HasErrors())
}

func TestRefresh_AllConditions(t *testing.T) {
	f := New()
	fillValid(f)
	f.ValidateAll()
	require.True(t, f.Refresh())
	require.True(t, f.Submittable)

	// Each of these flips enablement on its own.
	cases := []struct {
		name   string
		mutate func(*Form)
	}{
		{"empty required", func(f *Form) { f.SetValue(Address, "  ") }},
		{"error state", func(f *Form) { f.Field(Email).setError("taken") }},
		{"password mismatch", func(f *Form) { f.SetValue(ConfirmPassword, "Secret1") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			fillValid(g)
			g.ValidateAll()
			tc.mutate(g)
			assert.False(t, g.Refresh())
			assert.False(t, g.Submittable)
		})
	}
}

func TestRefresh_IgnoresOptionalFields(t *testing.T) {
	f := New()
	fillValid(f)
	f.ValidateAll()
	f.Field(ProfilePic).setError(MsgInvalidImage)
	assert.True(t, f.Refresh(), "optional fields do not gate submission")
}

func TestRefresh_DoesNotTouchMessages(t *testing.T) {
	f := New()
	f.SetValue(FirstName, "Al")
	f.Validate(FirstName)
	f.Refresh()
	assert.Equal(t, MsgNameTooShort, f.Field(FirstName).ErrorMessage)
	assert.Empty(t, f.Field(Email).ErrorMessage)
}

func TestRefresh_PasswordMismatchEvenWithoutErrors(t *testing.T) {
	f := New()
	fillValid(f)
	// Mismatch introduced without re-validating: the aggregator still catches it.
	f.SetValue(Password, "Another1!")
	assert.False(t, f.Refresh())
}

func TestUpdateStrength(t *testing.T) {
	f := New()
	assert.False(t, f.StrengthVisible)
	f.SetValue(Password, "Abcdef1!")
	assert.Equal(t, 5, f.UpdateStrength())
	assert.True(t, f.StrengthVisible)

	f.SetValue(Password, "")
	assert.Equal(t, 0, f.UpdateStrength())
	assert.True(t, f.StrengthVisible, "meter stays visible once shown")
}

func TestToggleMask(t *testing.T) {
	f := New()
	assert.False(t, f.ToggleMask(Password))
	assert.False(t, f.Field(Password).Masked)
	assert.True(t, f.ToggleMask(Password))
	assert.True(t, f.Field(ConfirmPassword).Masked, "toggle only affects its own field")

	assert.False(t, f.ToggleMask(Email))
	assert.False(t, f.Field(Email).Masked)
}

func TestApplyRemoteErrors(t *testing.T) {
	f := New()
	fillValid(f)
	f.SetValue(FirstName, "Al")
	f.Validate(FirstName)

	f.ClearErrors()
	applied := f.ApplyRemoteErrors(map[string][]string{
		"email":   {"Already", "registered"},
		"phone":   {},
		"unknown": {"ignored"},
	})

	assert.Equal(t, []FieldID{Phone, Email}, applied)
	assert.Equal(t, "Already registered", f.Field(Email).ErrorMessage)
	assert.True(t, f.Field(Email).HasError)
	assert.True(t, f.Field(Phone).HasError, "empty message list still marks the field")
	assert.Empty(t, f.Field(Phone).ErrorMessage)
	assert.False(t, f.Field(FirstName).HasError, "cleared before merge")
	assert.Nil(t, f.Lookup("unknown"))
}

func TestEntries(t *testing.T) {
	f := New()
	fillValid(f)
	entries := f.Entries()
	require.Len(t, entries, 7)
	assert.Equal(t, Entry{Name: "first_name", Value: "Ana"}, entries[0])
	assert.Equal(t, Entry{Name: "password2", Value: "Secret1!"}, entries[5])
	assert.Equal(t, Entry{Name: "profile_pic", File: true}, entries[6])
}
