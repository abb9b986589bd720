package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srijnnn17/resume-genius/internal/ai"
	"github.com/Srijnnn17/resume-genius/internal/resume"
	"github.com/Srijnnn17/resume-genius/internal/store"
)

// mockStore is an in-memory ResumeStore for handler tests.
type mockStore struct {
	saved     map[uuid.UUID]store.SavedResume
	saveErr   error
	fetchErr  error
	lastOwner uuid.UUID
}

func newMockStore() *mockStore {
	return &mockStore{saved: map[uuid.UUID]store.SavedResume{}}
}

func (m *mockStore) FetchAll(_ context.Context, ownerID uuid.UUID) ([]store.SavedResume, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	m.lastOwner = ownerID
	var out []store.SavedResume
	for _, sr := range m.saved {
		if sr.OwnerID == ownerID {
			out = append(out, sr)
		}
	}
	return out, nil
}

func (m *mockStore) Save(_ context.Context, ownerID uuid.UUID, r resume.Resume, existingID uuid.UUID) (uuid.UUID, error) {
	if m.saveErr != nil {
		return uuid.Nil, m.saveErr
	}
	m.lastOwner = ownerID
	id := existingID
	if id == uuid.Nil {
		id = uuid.New()
	}
	m.saved[id] = store.SavedResume{ID: id, OwnerID: ownerID, Resume: r}
	return id, nil
}

func (m *mockStore) Load(_ context.Context, resumeID, ownerID uuid.UUID) (*store.SavedResume, error) {
	sr, ok := m.saved[resumeID]
	if !ok || sr.OwnerID != ownerID {
		return nil, nil
	}
	return &sr, nil
}

func (m *mockStore) Remove(_ context.Context, resumeID, ownerID uuid.UUID) error {
	if sr, ok := m.saved[resumeID]; ok && sr.OwnerID == ownerID {
		delete(m.saved, resumeID)
	}
	return nil
}

// mockAI returns canned replies for handler tests.
type mockAI struct {
	enhanced   string
	atsResult  ai.ATSResult
	err        error
	lastReq    any
	calledKind string
}

func (m *mockAI) Enhance(_ context.Context, req ai.EnhanceRequest) (string, error) {
	m.calledKind = "enhance"
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.enhanced, nil
}

func (m *mockAI) MatchATS(_ context.Context, req ai.ATSRequest) (ai.ATSResult, error) {
	m.calledKind = "ats"
	m.lastReq = req
	if m.err != nil {
		return ai.ATSResult{}, m.err
	}
	return m.atsResult, nil
}

// mockExporter returns fixed bytes without launching a browser.
type mockExporter struct {
	pdf []byte
	err error
}

func (m *mockExporter) RenderPDF(_ context.Context, _ string) ([]byte, error) {
	return m.pdf, m.err
}

func newTestServer(t *testing.T) (*Server, *mockStore, *mockAI, *mockExporter) {
	t.Helper()
	st := newMockStore()
	aiSvc := &mockAI{}
	exp := &mockExporter{pdf: []byte("%PDF-1.4 fake")}
	return newServer(st, aiSvc, exp), st, aiSvc, exp
}

func doRequest(s *Server, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(into))
}

func TestHandleHealth(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	rec := doRequest(s, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestListResumes_RequiresOwner(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	rec := doRequest(s, "GET", "/resumes", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "owner_id is required", body["error"])
}

func TestListResumes_BadOwnerID(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	rec := doRequest(s, "GET", "/resumes?owner_id=not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListResumes_EmptyIsList(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	owner := uuid.New()

	rec := doRequest(s, "GET", "/resumes?owner_id="+owner.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Resumes []store.SavedResume `json:"resumes"`
		Count   int                 `json:"count"`
	}
	decodeBody(t, rec, &body)
	assert.NotNil(t, body.Resumes)
	assert.Equal(t, 0, body.Count)
}

func TestSaveResume_InsertThenLoad(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	owner := uuid.New()

	r := resume.New()
	r.PersonalInfo.FullName = "Ada Lovelace"
	rec := doRequest(s, "POST", "/resumes?owner_id="+owner.String(), SaveResumeRequest{Resume: r})

	require.Equal(t, http.StatusCreated, rec.Code)
	var saveResp SaveResumeResponse
	decodeBody(t, rec, &saveResp)
	require.NotEmpty(t, saveResp.ID)

	rec = doRequest(s, "GET", fmt.Sprintf("/resumes/%s?owner_id=%s", saveResp.ID, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded store.SavedResume
	decodeBody(t, rec, &loaded)
	assert.Equal(t, "Ada Lovelace", loaded.Resume.PersonalInfo.FullName)
}

func TestSaveResume_UpdateKeepsStatus200(t *testing.T) {
	s, st, _, _ := newTestServer(t)
	owner := uuid.New()
	existing := uuid.New()
	st.saved[existing] = store.SavedResume{ID: existing, OwnerID: owner, Resume: resume.New()}

	rec := doRequest(s, "POST", "/resumes?owner_id="+owner.String(), SaveResumeRequest{
		ID:     existing.String(),
		Resume: resume.New(),
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var saveResp SaveResumeResponse
	decodeBody(t, rec, &saveResp)
	assert.Equal(t, existing.String(), saveResp.ID)
}

func TestSaveResume_InvalidBody(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	owner := uuid.New()

	req := httptest.NewRequest("POST", "/resumes?owner_id="+owner.String(), strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveResume_InvalidExistingID(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	owner := uuid.New()

	rec := doRequest(s, "POST", "/resumes?owner_id="+owner.String(), SaveResumeRequest{
		ID:     "nope",
		Resume: resume.New(),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoadResume_NotFound(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	rec := doRequest(s, "GET", fmt.Sprintf("/resumes/%s?owner_id=%s", uuid.New(), uuid.New()), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Resume not found", body["error"])
}

func TestLoadResume_OtherOwnerIsNotFound(t *testing.T) {
	s, st, _, _ := newTestServer(t)
	owner := uuid.New()
	id := uuid.New()
	st.saved[id] = store.SavedResume{ID: id, OwnerID: owner, Resume: resume.New()}

	rec := doRequest(s, "GET", fmt.Sprintf("/resumes/%s?owner_id=%s", id, uuid.New()), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteResume(t *testing.T) {
	s, st, _, _ := newTestServer(t)
	owner := uuid.New()
	id := uuid.New()
	st.saved[id] = store.SavedResume{ID: id, OwnerID: owner, Resume: resume.New()}

	rec := doRequest(s, "DELETE", fmt.Sprintf("/resumes/%s?owner_id=%s", id, owner), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, st.saved)
}

func TestDeleteResume_MissingIsOK(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	rec := doRequest(s, "DELETE", fmt.Sprintf("/resumes/%s?owner_id=%s", uuid.New(), uuid.New()), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRender_ReturnsHTML(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	r := resume.New()
	r.PersonalInfo.FullName = "Ada Lovelace"
	rec := doRequest(s, "POST", "/render", RenderRequest{Resume: r, Template: "minimal", Accent: "teal"})

	require.Equal(t, http.StatusOK, rec.Code)
	var body RenderResponse
	decodeBody(t, rec, &body)
	assert.Contains(t, body.HTML, "Ada Lovelace")
	assert.Contains(t, body.HTML, "#14B8A6")
}

func TestRender_DefaultsApplied(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	rec := doRequest(s, "POST", "/render", RenderRequest{Resume: resume.New()})

	require.Equal(t, http.StatusOK, rec.Code)
	var body RenderResponse
	decodeBody(t, rec, &body)
	assert.Contains(t, body.HTML, `data-variant="modern"`)
	assert.Contains(t, body.HTML, "#3B82F6")
}

func TestRender_UnknownVariant(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	rec := doRequest(s, "POST", "/render", RenderRequest{Resume: resume.New(), Template: "fancy"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_ReturnsPDF(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	r := resume.New()
	r.PersonalInfo.FullName = "Ada Lovelace"
	rec := doRequest(s, "POST", "/export", RenderRequest{Resume: r})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Ada_Lovelace_Resume.pdf")
	assert.Equal(t, "%PDF-1.4 fake", rec.Body.String())
}

func TestExport_ExporterFailure(t *testing.T) {
	s, _, _, exp := newTestServer(t)
	exp.err = fmt.Errorf("chrome not found")

	rec := doRequest(s, "POST", "/export", RenderRequest{Resume: resume.New()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAI_UnknownType(t *testing.T) {
	s, _, aiSvc, _ := newTestServer(t)

	rec := doRequest(s, "POST", "/ai", map[string]any{"type": "summarize", "data": map[string]any{}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Invalid request type", body["error"])
	assert.Empty(t, aiSvc.calledKind)
}

func TestAI_Enhance(t *testing.T) {
	s, _, aiSvc, _ := newTestServer(t)
	aiSvc.enhanced = "Shipped the thing."

	rec := doRequest(s, "POST", "/ai", map[string]any{
		"type": "enhance",
		"data": map[string]string{"text": "did stuff", "position": "Engineer"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body EnhanceResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Shipped the thing.", body.Enhanced)
	req, ok := aiSvc.lastReq.(ai.EnhanceRequest)
	require.True(t, ok)
	assert.Equal(t, "did stuff", req.Text)
	assert.Equal(t, "Engineer", req.Position)
}

func TestAI_EnhanceMissingText(t *testing.T) {
	s, _, aiSvc, _ := newTestServer(t)

	rec := doRequest(s, "POST", "/ai", map[string]any{
		"type": "enhance",
		"data": map[string]string{"position": "Engineer"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, aiSvc.calledKind)
}

func TestAI_RateLimited(t *testing.T) {
	s, _, aiSvc, _ := newTestServer(t)
	aiSvc.err = ai.ErrRateLimited

	rec := doRequest(s, "POST", "/ai", map[string]any{
		"type": "enhance",
		"data": map[string]string{"text": "did stuff"},
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "try again")
}

func TestAI_QuotaExhausted(t *testing.T) {
	s, _, aiSvc, _ := newTestServer(t)
	aiSvc.err = ai.ErrQuotaExhausted

	rec := doRequest(s, "POST", "/ai", map[string]any{
		"type": "ats",
		"data": map[string]any{"jobDescription": "jd"},
	})

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "credits")
}

func TestAI_ATS(t *testing.T) {
	s, _, aiSvc, _ := newTestServer(t)
	aiSvc.atsResult = ai.ATSResult{Score: 82, MissingKeywords: []string{"Go"}, Suggestions: []string{"Add Go"}}

	rec := doRequest(s, "POST", "/ai", map[string]any{
		"type": "ats",
		"data": map[string]any{"jobDescription": "We need Go.", "resume": resume.New()},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body ai.ATSResult
	decodeBody(t, rec, &body)
	assert.Equal(t, float64(82), body.Score)
	assert.Equal(t, []string{"Go"}, body.MissingKeywords)
}

func TestAI_ATSMissingJobDescription(t *testing.T) {
	s, _, aiSvc, _ := newTestServer(t)

	rec := doRequest(s, "POST", "/ai", map[string]any{
		"type": "ats",
		"data": map[string]any{"resume": resume.New()},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, aiSvc.calledKind)
}

func TestWithCORS_Preflight(t *testing.T) {
	s, _, _, _ := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/resumes", nil)
	rec := httptest.NewRecorder()
	s.withCORS(s.routes()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
