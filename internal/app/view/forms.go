package view

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"journal/internal/app/api"
	"journal/internal/pkg/errs"
)

// FormErrorKey holds the form-level error in FormErrors.
const FormErrorKey = "_error"

// FormErrors maps a field path ("email", "fields[1].name") to its message.
type FormErrors map[string]string

// Form returns the form-level error.
func (e FormErrors) Form() string { return e[FormErrorKey] }

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,journal_email"`
	Password string `form:"password" validate:"required,min=3"`
}

// SignupForm is the sign-up form.
type SignupForm struct {
	Email           string `form:"email" validate:"required,journal_email"`
	Password        string `form:"password" validate:"required,min=3"`
	PasswordConfirm string `form:"passwordConfirm" validate:"eqfield=Password,required"`
}

// FieldInput is one field row of the experience definition form.
type FieldInput struct {
	Name      string `form:"name" validate:"required,min=2"`
	FieldType string `form:"fieldType" validate:"required,field_type"`
}

// DefinitionForm is the new experience definition form.
type DefinitionForm struct {
	Title  string       `form:"title" validate:"required,min=3"`
	Intro  string       `form:"intro"`
	Fields []FieldInput `form:"fields" validate:"min=1,dive"`
}

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})

	_ = v.RegisterValidation("journal_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("field_type", func(fl validator.FieldLevel) bool {
		return api.FieldDataType(fl.Field().String()).Valid()
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		form := sl.Current().Interface().(DefinitionForm)
		counts := make(map[string]int, len(form.Fields))
		for _, f := range form.Fields {
			counts[f.Name]++
		}
		// every row sharing a name is flagged, not only the later ones
		for i, f := range form.Fields {
			if f.Name != "" && counts[f.Name] > 1 {
				sl.ReportError(f.Name, "fields["+strconv.Itoa(i)+"].name", "Name", "unique", "")
			}
		}
	}, DefinitionForm{})

	return v
}

// message renders a validation failure in the wording the sign-in and definition forms use.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "journal_email":
		return "Invalid email address"
	case "eqfield":
		return "Passwords don't match"
	case "unique":
		return "This name is not unique"
	case "field_type":
		return "Unknown field type"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "At least one field must be defined"
		}
		return "Too short"
	default:
		return "Invalid"
	}
}

// Validate checks form and returns nil when it is valid.
func Validate(form any) FormErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FormErrors{FormErrorKey: errs.NewError(errs.ErrInvalidParams).Message}
	}

	out := make(FormErrors, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		if _, exists := out[key]; !exists {
			out[key] = message(fe)
		}
	}
	return out
}

// fieldKey drops the struct name from a validator namespace: "SignupForm.email" -> "email".
// Struct-level errors report their own path, which is kept after the first dot as well.
func fieldKey(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

var serverFieldError = regexp.MustCompile(`\[([^\[\]:]+):\s([^\[\]]+)\]`)

// SubmissionErrors converts an API failure into form errors. API messages of the form
// "[field: message]" become field errors; other API messages become the form-level error.
func SubmissionErrors(err error) FormErrors {
	var gqlErr *api.GraphQLError
	switch {
	case errors.As(err, &gqlErr):
		matches := serverFieldError.FindAllStringSubmatch(gqlErr.Message, -1)
		if len(matches) == 0 {
			return FormErrors{FormErrorKey: gqlErr.Message}
		}
		out := make(FormErrors, len(matches))
		for _, m := range matches {
			out[strings.TrimSpace(m[1])] = capitalize(strings.TrimSpace(m[2]))
		}
		return out

	case errors.Is(err, api.ErrOffline):
		return FormErrors{FormErrorKey: errs.NewError(errs.ErrOffline).Message}

	default:
		return FormErrors{FormErrorKey: errs.NewError(errs.ErrUnknown, err).Message}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
