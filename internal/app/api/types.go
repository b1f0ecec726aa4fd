package api

import "journal/internal/app/session"

// User is the UserFragment returned by login and createUser.
type User struct {
	ID       string  `json:"id"`
	Username *string `json:"username"`
	Email    string  `json:"email"`
	JWT      string  `json:"jwt"`
}

// Session converts the user into the client's session.
func (u User) Session() session.Session {
	s := session.Session{ID: u.ID, Email: u.Email, Token: u.JWT}
	if u.Username != nil {
		s.Username = *u.Username
	}
	return s
}

// Credentials is the LoginUserInput / CreateUserInput shape.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Experience is the ExperienceFragment.
type Experience struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Intro      *string `json:"intro"`
	InsertedAt string  `json:"insertedAt"`
}

// Field is the FieldFragment.
type Field struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	FieldType  FieldDataType `json:"fieldType"`
	InsertedAt string        `json:"insertedAt"`
}

// FieldDataType is the type of value a field of an experience holds.
type FieldDataType string

const (
	FieldBoolean    FieldDataType = "BOOLEAN"
	FieldDate       FieldDataType = "DATE"
	FieldDateTime   FieldDataType = "DATE_TIME"
	FieldDecimal    FieldDataType = "DECIMAL"
	FieldMultiText  FieldDataType = "MULTI_TEXT"
	FieldNumber     FieldDataType = "NUMBER"
	FieldSingleText FieldDataType = "SINGLE_TEXT"
)

// FieldDataTypes lists every FieldDataType in display order.
var FieldDataTypes = []FieldDataType{
	FieldSingleText,
	FieldMultiText,
	FieldNumber,
	FieldDecimal,
	FieldBoolean,
	FieldDate,
	FieldDateTime,
}

// Valid reports whether t is a known FieldDataType.
func (t FieldDataType) Valid() bool {
	for _, known := range FieldDataTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NewExperience is the CreateExperienceInput shape.
type NewExperience struct {
	Title string  `json:"title"`
	Intro *string `json:"intro,omitempty"`
}

// NewField is the SingleField input shape.
type NewField struct {
	Name      string        `json:"name"`
	FieldType FieldDataType `json:"fieldType"`
}

// FieldsCollection is the result of createExperienceFieldsCollection.
type FieldsCollection struct {
	Experience Experience `json:"experience"`
	Fields     []Field    `json:"fields"`
}
