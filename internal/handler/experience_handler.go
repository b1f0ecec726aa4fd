/*
Package handler provides the HTTP handlers of the journal client.

This file handles the new experience definition form.
*/
package handler

import (
	"net/http"

	"journal/internal/app/api"
	"journal/internal/app/route"
	"journal/internal/app/session"
	"journal/internal/app/view"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/req"
)

const opAddField = "add-field"

// HandleCreateExperienceDefinition validates the definition form and creates the experience
// with its fields. Posting with op=add-field re-renders the form with one more field row.
func HandleCreateExperienceDefinition(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if !sess.Authenticated() {
			http.Redirect(w, r, route.LoginURL, http.StatusSeeOther)
			return
		}

		data := view.Data{
			Title:      viewTitles[route.ViewNewExperienceDefinition],
			Session:    sess,
			FieldTypes: api.FieldDataTypes,
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			data.DefinitionFields = []view.FieldInput{{}}
			data.Errors = view.FormErrors{view.FormErrorKey: customErr.Message}
			deps.Renderer.Render(w, customErr.Status, view.PageNewExperienceDef, data)
			return
		}

		form := definitionForm(r)
		data.Values = map[string]string{"title": form.Title, "intro": form.Intro}
		data.DefinitionFields = form.Fields

		if req.Field(r, "op") == opAddField {
			data.DefinitionFields = append(data.DefinitionFields, view.FieldInput{})
			deps.Renderer.Render(w, http.StatusOK, view.PageNewExperienceDef, data)
			return
		}

		if formErrs := view.Validate(form); formErrs != nil {
			if len(data.DefinitionFields) == 0 {
				data.DefinitionFields = []view.FieldInput{{}}
			}
			data.Errors = formErrs
			deps.Renderer.Render(w, http.StatusUnprocessableEntity, view.PageNewExperienceDef, data)
			return
		}

		exp := api.NewExperience{Title: form.Title}
		if form.Intro != "" {
			exp.Intro = &form.Intro
		}
		fields := make([]api.NewField, len(form.Fields))
		for i, f := range form.Fields {
			fields[i] = api.NewField{Name: f.Name, FieldType: api.FieldDataType(f.FieldType)}
		}

		collection, err := deps.API.CreateExperienceFieldsCollection(r.Context(), exp, fields)
		if err != nil {
			if signedOut(err) {
				http.Redirect(w, r, route.LoginURL, http.StatusSeeOther)
				return
			}
			logx.FromRequest(r).Info().Err(err).Msg("Experience definition rejected")
			data.Errors = view.SubmissionErrors(err)
			deps.Renderer.Render(w, submissionStatus(err), view.PageNewExperienceDef, data)
			return
		}

		logx.Info("Experience defined", "experience_id", collection.Experience.ID, "fields", len(collection.Fields))
		http.Redirect(w, r, route.RootURL, http.StatusSeeOther)
	}
}

// definitionForm reads the posted definition. Field rows arrive as parallel
// "fields.name" and "fields.fieldType" lists.
func definitionForm(r *http.Request) view.DefinitionForm {
	names := req.Fields(r, "fields.name")
	types := req.Fields(r, "fields.fieldType")

	n := max(len(names), len(types))
	fields := make([]view.FieldInput, 0, n)
	for i := 0; i < n; i++ {
		var f view.FieldInput
		if i < len(names) {
			f.Name = names[i]
		}
		if i < len(types) {
			f.FieldType = types[i]
		}
		fields = append(fields, f)
	}

	return view.DefinitionForm{
		Title:  req.Field(r, "title"),
		Intro:  req.Field(r, "intro"),
		Fields: fields,
	}
}
