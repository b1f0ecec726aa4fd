package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"journal/internal/app/api"
)

func TestValidate_LoginForm(t *testing.T) {
	assert.Nil(t, Validate(LoginForm{Email: "me@example.com", Password: "abc"}))

	assert.Equal(t, FormErrors{"email": "Required", "password": "Required"}, Validate(LoginForm{}))
	assert.Equal(t, FormErrors{"email": "Invalid email address"}, Validate(LoginForm{Email: "me@", Password: "abc"}))
	assert.Equal(t, FormErrors{"password": "Too short"}, Validate(LoginForm{Email: "ME@EXAMPLE.COM", Password: "ab"}))
}

func TestValidate_SignupForm(t *testing.T) {
	assert.Nil(t, Validate(SignupForm{Email: "me@example.com", Password: "abc", PasswordConfirm: "abc"}))

	assert.Equal(t,
		FormErrors{"passwordConfirm": "Passwords don't match"},
		Validate(SignupForm{Email: "me@example.com", Password: "abc", PasswordConfirm: "abd"}))

	assert.Equal(t,
		FormErrors{"email": "Required", "password": "Required", "passwordConfirm": "Required"},
		Validate(SignupForm{}))

	// a missing confirmation of a filled-in password is a mismatch
	assert.Equal(t,
		FormErrors{"passwordConfirm": "Passwords don't match"},
		Validate(SignupForm{Email: "me@example.com", Password: "abc"}))
}

func TestValidate_DefinitionFormFlagsEveryDuplicate(t *testing.T) {
	got := Validate(DefinitionForm{
		Title: "Sleep",
		Fields: []FieldInput{
			{Name: "hours", FieldType: "DECIMAL"},
			{Name: "hours", FieldType: "NUMBER"},
			{Name: "note", FieldType: "SINGLE_TEXT"},
		},
	})
	assert.Equal(t, FormErrors{
		"fields[0].name": "This name is not unique",
		"fields[1].name": "This name is not unique",
	}, got)
}

func TestValidate_DefinitionForm(t *testing.T) {
	valid := DefinitionForm{
		Title:  "Sleep",
		Fields: []FieldInput{{Name: "start", FieldType: "DATE_TIME"}, {Name: "end", FieldType: "DATE_TIME"}},
	}
	assert.Nil(t, Validate(valid))

	assert.Equal(t,
		FormErrors{"title": "Required", "fields": "At least one field must be defined"},
		Validate(DefinitionForm{}))

	assert.Equal(t,
		FormErrors{"title": "Too short"},
		Validate(DefinitionForm{Title: "Zz", Fields: valid.Fields}))

	got := Validate(DefinitionForm{
		Title: "Sleep",
		Fields: []FieldInput{
			{Name: "start", FieldType: "DATE_TIME"},
			{Name: "s", FieldType: ""},
			{Name: "start", FieldType: "COLOUR"},
			{},
		},
	})
	assert.Equal(t, FormErrors{
		"fields[0].name":      "This name is not unique",
		"fields[1].name":      "Too short",
		"fields[1].fieldType": "Required",
		"fields[2].name":      "This name is not unique",
		"fields[2].fieldType": "Unknown field type",
		"fields[3].name":      "Required",
		"fields[3].fieldType": "Required",
	}, got)
}

func TestSubmissionErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FormErrors
	}{
		{
			name: "field errors",
			err:  &api.GraphQLError{Message: "[email: has already been taken], [password: should be at least 4 characters]"},
			want: FormErrors{"email": "Has already been taken", "password": "Should be at least 4 characters"},
		},
		{
			name: "plain api message",
			err:  &api.GraphQLError{Message: "Invalid email/password"},
			want: FormErrors{FormErrorKey: "Invalid email/password"},
		},
		{
			name: "offline",
			err:  fmt.Errorf("login: %w", errors.Join(api.ErrOffline, errors.New("connection refused"))),
			want: FormErrors{FormErrorKey: "You are offline"},
		},
		{
			name: "anything else",
			err:  errors.New("weird"),
			want: FormErrors{FormErrorKey: "Something went wrong. Please try again."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SubmissionErrors(tc.err))
		})
	}
}
