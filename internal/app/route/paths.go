package route

import "strings"

// URL paths shared with the rest of the client. They are an external contract: bookmarks
// and the API's e-mails link to them.
const (
	RootURL                   = "/"
	SignupURL                 = "/signup"
	LoginURL                  = "/login"
	NewExperienceDefURL       = "/new-experience-def"
	NewExperienceIDParam      = "experienceId"
	NewExperienceURL          = "/new-experience/:" + NewExperienceIDParam
	newExperienceURLParamSpec = ":" + NewExperienceIDParam
)

// MakeNewExperienceURL fills the experience id into NewExperienceURL.
func MakeNewExperienceURL(id string) string {
	return strings.Replace(NewExperienceURL, newExperienceURLParamSpec, id, 1)
}
