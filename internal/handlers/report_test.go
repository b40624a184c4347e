package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"lostfound/internal/models"
	"lostfound/internal/service"
)

func authedHeader() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer tok")
	return h
}

func newReportRouter(reports *mockReports, auth *mockAuth) http.Handler {
	if auth == nil {
		auth = &mockAuth{parseID: 7}
	}
	return newTestRouter(&service.Service{Authorization: auth, Reports: reports})
}

func TestCreateReportHandler_JSON(t *testing.T) {
	reports := &mockReports{created: models.Report{
		ID: 9, OwnerID: 7, Title: "Blue Backpack", Status: models.StatusLost,
	}}
	r := newReportRouter(reports, nil)

	w := postJSON(r, "/report/",
		`{"title":"Blue Backpack","content":"Lost near library","location":"Library 2F","status":"Lost"}`,
		authedHeader())
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if reports.lastCreateOwner != 7 {
		t.Fatalf("expected owner from token, got %d", reports.lastCreateOwner)
	}
	if reports.lastCreateIn.Image != nil {
		t.Fatalf("JSON create must not carry an image")
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	data := env.Data.(map[string]any)
	if int(data["owner"].(float64)) != 7 || data["status"] != models.StatusLost {
		t.Fatalf("unexpected report payload: %v", data)
	}

	// missing field → 400
	w = postJSON(r, "/report/", `{"title":"x"}`, authedHeader())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// no token → 401
	w = postJSON(r, "/report/", `{}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestCreateReportHandler_MultipartWithImage(t *testing.T) {
	reports := &mockReports{created: models.Report{ID: 9, OwnerID: 7}}
	r := newReportRouter(reports, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("title", "Blue Backpack")
	_ = mw.WriteField("content", "Lost near library")
	_ = mw.WriteField("location", "Library 2F")
	_ = mw.WriteField("status", "Lost")
	fw, err := mw.CreateFormFile("image", "pack.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake-image-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/report/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	in := reports.lastCreateIn
	if in.Title != "Blue Backpack" || in.Status != "Lost" {
		t.Fatalf("form fields not bound: %+v", in)
	}
	if in.Image == nil || in.Image.Filename != "pack.png" || string(in.Image.Data) != "fake-image-bytes" {
		t.Fatalf("image part not forwarded: %+v", in.Image)
	}
}

func TestUpdateReportHandler(t *testing.T) {
	reports := &mockReports{updated: models.Report{ID: 9, OwnerID: 7, Content: "updated"}}
	r := newReportRouter(reports, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/report/9",
		bytes.NewBufferString(`{"content":"updated"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if reports.lastUpdateArgs != [2]int{7, 9} {
		t.Fatalf("unexpected args: %v", reports.lastUpdateArgs)
	}
	if reports.lastContent == nil || *reports.lastContent != "updated" || reports.lastStatus != nil {
		t.Fatalf("partial fields not forwarded: content=%v status=%v", reports.lastContent, reports.lastStatus)
	}

	// ownership opacity: service NotFound renders 404
	reports.updateErr = service.ErrNotFound
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/report/9",
		bytes.NewBufferString(`{"content":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	// non-numeric id → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/report/abc",
		bytes.NewBufferString(`{"content":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestDeleteReportHandler(t *testing.T) {
	reports := &mockReports{}
	r := newReportRouter(reports, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/report/9", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if reports.lastDeleteArgs != [2]int{7, 9} {
		t.Fatalf("unexpected args: %v", reports.lastDeleteArgs)
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	if !env.Success {
		t.Fatalf("expected success envelope, got %+v", env)
	}

	reports.deleteErr = service.ErrNotFound
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/report/9", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListHandlers(t *testing.T) {
	reports := &mockReports{
		byOwner: []models.Report{{ID: 1, OwnerID: 3, Title: "Keys"}},
		all: []models.ReportWithOwner{{
			Report: models.Report{ID: 2, OwnerID: 3, Title: "Wallet"},
			Owner:  models.PublicUser{ID: 3, Name: "Alice", Email: "a@x.com"},
		}},
	}
	r := newReportRouter(reports, nil)

	// by owner
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report/user/3", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if reports.lastListOwner != 3 {
		t.Fatalf("expected lookup of user 3, got %d", reports.lastListOwner)
	}

	// list all with embedded owner
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/report/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var env struct {
		Data []struct {
			Title string `json:"title"`
			Owner struct {
				Email string `json:"email"`
			} `json:"owner_details"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].Owner.Email != "a@x.com" {
		t.Fatalf("owner not embedded: %s", w.Body.String())
	}

	// empty collection surfaces the service's 404
	reports.allErr = service.ErrNotFound
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/report/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty collection, got %d", w.Code)
	}
}
