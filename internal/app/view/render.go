package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"journal/internal/app/api"
	"journal/internal/app/route"
	"journal/internal/app/session"
	"journal/internal/pkg/auth/jwt"
	"journal/internal/pkg/logx"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names a renderable page.
type Page string

const (
	PageLoading          Page = "loading"
	PageSignin           Page = "signin"
	PageHome             Page = "home"
	PageNewExperience    Page = "new_experience"
	PageNewExperienceDef Page = "new_experience_def"
)

var pages = []Page{PageLoading, PageSignin, PageHome, PageNewExperience, PageNewExperienceDef}

// PageFor maps a routed view to the page that renders it.
func PageFor(v route.View) (Page, bool) {
	switch v {
	case route.ViewLogin, route.ViewSignup:
		return PageSignin, true
	case route.ViewHome:
		return PageHome, true
	case route.ViewNewExperience:
		return PageNewExperience, true
	case route.ViewNewExperienceDefinition:
		return PageNewExperienceDef, true
	}
	return "", false
}

// Data is the model handed to every template.
type Data struct {
	Title        string
	Session      session.Session
	RefreshAfter int

	Errors FormErrors
	Values map[string]string

	// signin
	Signup bool
	Next   string

	// home
	Experiences []api.Experience

	// new experience
	ExperienceID string

	// new experience definition
	DefinitionFields []FieldInput
	FieldTypes       []api.FieldDataType
}

// SessionExpiry reads the expiry from the session token; zero when the token carries none.
func (d Data) SessionExpiry() time.Time {
	if d.Session.Token == "" {
		return time.Time{}
	}
	claims, err := jwt.Inspect(d.Session.Token)
	if err != nil {
		return time.Time{}
	}
	return claims.Expiry()
}

func (Data) RootURL() string             { return route.RootURL }
func (Data) LoginURL() string            { return route.LoginURL }
func (Data) SignupURL() string           { return route.SignupURL }
func (Data) NewExperienceDefURL() string { return route.NewExperienceDefURL }

// Renderer holds one parsed template set per page.
type Renderer struct {
	sets map[Page]*template.Template
}

var funcs = template.FuncMap{
	"newExperienceURL": route.MakeNewExperienceURL,
	"inc":              func(i int) int { return i + 1 },
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{sets: make(map[Page]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.New(string(p)).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+string(p)+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", p, err)
		}
		r.sets[p] = t
	}
	return r, nil
}

// Render writes page with the given status. The page is executed into a buffer
// first so a template failure never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page Page, data Data) {
	t, ok := r.sets[page]
	if !ok {
		logx.Error(fmt.Errorf("unknown page %q", page), "Render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logx.Error(err, "Render failed", "page", string(page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Placeholder is served while the persisted session is still being loaded.
func (r *Renderer) Placeholder() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		r.Render(w, http.StatusServiceUnavailable, PageLoading, Data{RefreshAfter: 1})
	})
}
