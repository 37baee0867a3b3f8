package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appdomain "recruitment-portal/internal/domain/application"
	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/domain/identity"
	appuc "recruitment-portal/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	appuc.Engine

	submitted  appuc.SubmitInput
	cvContent  string
	submitErr  error
	status     string
	statusErr  error
	withdrawID uuid.UUID
	get        func(identity.Caller, uuid.UUID) (appdomain.Application, error)
}

func (f *fakeEngine) Get(_ context.Context, caller identity.Caller, id uuid.UUID) (appdomain.Application, error) {
	return f.get(caller, id)
}

type memDocuments struct {
	files  map[string]string
	opened []string
}

func (m *memDocuments) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	m.opened = append(m.opened, ref)
	content, ok := m.files[ref]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", ref, fs.ErrNotExist)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *fakeEngine) Submit(_ context.Context, applicant identity.Applicant, jobID uuid.UUID, in appuc.SubmitInput) (appdomain.Application, error) {
	f.submitted = in
	if in.CV.Content != nil {
		b, _ := io.ReadAll(in.CV.Content)
		f.cvContent = string(b)
	}
	if f.submitErr != nil {
		return appdomain.Application{}, f.submitErr
	}
	return appdomain.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		ApplicantID: applicant.ID,
		FullName:    in.FullName,
		CVFile:      "cvs/x.pdf",
		Status:      appdomain.StatusPending,
		IsActive:    true,
	}, nil
}

func (f *fakeEngine) UpdateStatus(_ context.Context, _ identity.Poster, id uuid.UUID, status string) (appdomain.Application, error) {
	f.status = status
	if f.statusErr != nil {
		return appdomain.Application{}, f.statusErr
	}
	return appdomain.Application{ID: id, Status: appdomain.Status(status)}, nil
}

func (f *fakeEngine) Withdraw(_ context.Context, _ identity.Applicant, id uuid.UUID) (appdomain.Application, error) {
	f.withdrawID = id
	return appdomain.Application{ID: id, Status: appdomain.StatusPending}, nil
}

func multipartApply(t *testing.T, target string, withCV bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"full_name":    "Ada Lovelace",
		"email":        "ada@example.com",
		"phone_number": "+62 811",
		"skills":       "Go",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	if withCV {
		fw, err := w.CreateFormFile("cv_file", "resume.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestApplicationHandler_SubmitMultipart(t *testing.T) {
	engine := &fakeEngine{}
	applicant := identity.Applicant{ID: uuid.New()}
	app := newTestApp(applicant)
	h := NewApplicationHandler(engine, nil)
	app.Post("/jobs/:id/applications", h.Submit)

	jobID := uuid.New()
	status, env := send(t, app, multipartApply(t, "/jobs/"+jobID.String()+"/applications", true))
	require.Equal(t, fiber.StatusCreated, status)

	assert.Equal(t, "Ada Lovelace", engine.submitted.FullName)
	assert.Equal(t, "ada@example.com", engine.submitted.Email)
	assert.Equal(t, "resume.pdf", engine.submitted.CV.Filename)
	assert.Equal(t, "%PDF-1.4", engine.cvContent)
	assert.Nil(t, engine.submitted.AdditionalDocument)

	var body struct {
		ID                     uuid.UUID `json:"id"`
		JobID                  uuid.UUID `json:"job_id"`
		CVFileURL              string    `json:"cv_file_url"`
		AdditionalDocumentsURL string    `json:"additional_documents_url"`
		Status                 string    `json:"status"`
	}
	decodeData(t, env, &body)
	assert.Equal(t, jobID, body.JobID)
	assert.Equal(t, "/api/v1/applications/"+body.ID.String()+"/documents/cv", body.CVFileURL)
	assert.Empty(t, body.AdditionalDocumentsURL)
	assert.Equal(t, "Pending", body.Status)
}

func TestApplicationHandler_SubmitRequiresApplicant(t *testing.T) {
	app := newTestApp(identity.Poster{ID: uuid.New()})
	h := NewApplicationHandler(&fakeEngine{}, nil)
	app.Post("/jobs/:id/applications", h.Submit)

	status, _ := send(t, app, multipartApply(t, "/jobs/"+uuid.NewString()+"/applications", true))
	assert.Equal(t, fiber.StatusForbidden, status)

	anon := newTestApp(nil)
	anon.Post("/jobs/:id/applications", h.Submit)
	status, _ = send(t, anon, multipartApply(t, "/jobs/"+uuid.NewString()+"/applications", true))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestApplicationHandler_SubmitErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &appuc.ValidationError{Fields: map[string]string{"cv_file": "is required"}}, fiber.StatusBadRequest},
		{"duplicate", appuc.ErrDuplicateApplication, fiber.StatusConflict},
		{"missing job", appuc.ErrNotFound, fiber.StatusNotFound},
		{"forbidden", appuc.ErrForbidden, fiber.StatusForbidden},
		{"storage", fmt.Errorf("save cv: %w", errors.New("disk full")), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(identity.Applicant{ID: uuid.New()})
			h := NewApplicationHandler(&fakeEngine{submitErr: tc.err}, nil)
			app.Post("/jobs/:id/applications", h.Submit)

			status, env := send(t, app, multipartApply(t, "/jobs/"+uuid.NewString()+"/applications", false))
			assert.Equal(t, tc.want, status)
			if tc.want == fiber.StatusBadRequest {
				var fields map[string]string
				decodeData(t, env, &fields)
				assert.Equal(t, "is required", fields["cv_file"])
			}
			if tc.want == fiber.StatusInternalServerError {
				assert.NotContains(t, env.Message, "disk full")
			}
		})
	}
}

func TestApplicationHandler_BadIDIsNotFound(t *testing.T) {
	app := newTestApp(identity.Applicant{ID: uuid.New()})
	h := NewApplicationHandler(&fakeEngine{}, nil)
	app.Post("/applications/:id/withdraw", h.Withdraw)

	status, _ := send(t, app, jsonRequest(http.MethodPost, "/applications/not-a-uuid/withdraw", ""))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	engine := &fakeEngine{}
	app := newTestApp(identity.Poster{ID: uuid.New()})
	h := NewApplicationHandler(engine, nil)
	app.Put("/applications/:id/status", h.UpdateStatus)

	id := uuid.New()
	status, _ := send(t, app, jsonRequest(http.MethodPut, "/applications/"+id.String()+"/status", `{"status":"Interview"}`))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Interview", engine.status)

	status, env := send(t, app, jsonRequest(http.MethodPut, "/applications/"+id.String()+"/status", `{}`))
	assert.Equal(t, fiber.StatusBadRequest, status)
	var fields map[string]string
	decodeData(t, env, &fields)
	assert.Contains(t, fields, "status")
}

func TestApplicationHandler_UpdateStatusInvalidValue(t *testing.T) {
	engine := &fakeEngine{statusErr: &appuc.ValidationError{Fields: map[string]string{"status": "must be one of Pending, Interview, Accepted, Rejected"}}}
	app := newTestApp(identity.Poster{ID: uuid.New()})
	h := NewApplicationHandler(engine, nil)
	app.Put("/applications/:id/status", h.UpdateStatus)

	status, _ := send(t, app, jsonRequest(http.MethodPut, "/applications/"+uuid.NewString()+"/status", `{"status":"Hired"}`))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestApplicationHandler_Withdraw(t *testing.T) {
	engine := &fakeEngine{}
	app := newTestApp(identity.Applicant{ID: uuid.New()})
	h := NewApplicationHandler(engine, nil)
	app.Post("/applications/:id/withdraw", h.Withdraw)

	id := uuid.New()
	status, _ := send(t, app, jsonRequest(http.MethodPost, "/applications/"+id.String()+"/withdraw", ""))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, id, engine.withdrawID)
}

func TestApplicationHandler_DocumentStreamsToAllowedCaller(t *testing.T) {
	applicant := identity.Applicant{ID: uuid.New()}
	id := uuid.New()
	cvRef := "cvs/" + id.String() + ".pdf"
	var seen identity.Caller
	engine := &fakeEngine{get: func(caller identity.Caller, got uuid.UUID) (appdomain.Application, error) {
		seen = caller
		return appdomain.Application{ID: got, ApplicantID: applicant.ID, CVFile: cvRef}, nil
	}}
	docs := &memDocuments{files: map[string]string{cvRef: "%PDF-1.4 resume"}}
	app := newTestApp(applicant)
	app.Get("/applications/:id/documents/:kind", NewApplicationHandler(engine, docs).Document)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/applications/"+id.String()+"/documents/cv", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 resume", string(b))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), id.String()+".pdf")
	assert.Equal(t, applicant, seen)
}

func TestApplicationHandler_DocumentErrors(t *testing.T) {
	id := uuid.New()
	stored := appdomain.Application{ID: id, CVFile: "cvs/" + id.String() + ".pdf"}

	cases := []struct {
		name   string
		kind   string
		getErr error
		files  map[string]string
		want   int
	}{
		{name: "not owner", kind: dto.DocumentCV, getErr: appuc.ErrForbidden, want: fiber.StatusForbidden},
		{name: "unknown application", kind: dto.DocumentCV, getErr: appuc.ErrNotFound, want: fiber.StatusNotFound},
		{name: "no additional document", kind: dto.DocumentAdditional, want: fiber.StatusNotFound},
		{name: "unknown kind", kind: "photo", want: fiber.StatusNotFound},
		{name: "file missing on disk", kind: dto.DocumentCV, files: map[string]string{}, want: fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &fakeEngine{get: func(identity.Caller, uuid.UUID) (appdomain.Application, error) {
				if tc.getErr != nil {
					return appdomain.Application{}, tc.getErr
				}
				return stored, nil
			}}
			docs := &memDocuments{files: tc.files}
			app := newTestApp(identity.Poster{ID: uuid.New()})
			app.Get("/applications/:id/documents/:kind", NewApplicationHandler(engine, docs).Document)

			status, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/applications/"+id.String()+"/documents/"+tc.kind, nil))
			assert.Equal(t, tc.want, status)
			if tc.getErr != nil {
				assert.Empty(t, docs.opened)
			}
		})
	}
}
