package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"diary/internal/models"
	"diary/internal/pkg/diary"
	"diary/internal/pkg/openai"

	. "github.com/onsi/gomega"
)

var testModels = diary.Models{
	Analysis:     "gpt-4o-mini",
	ImagePrompt:  "gpt-4o",
	GiftAnalysis: "gpt-4o",
	Image:        "dall-e-3",
	APIImage:     "dall-e-2",
	Temperature:  0.7,
}

// newAnalyzer wires a real client onto http.DefaultClient so httpmock sees
// every upstream call.
func newAnalyzer() *diary.Analyzer {
	client, err := openai.New("test-openai-api-key", "")
	Expect(err).NotTo(HaveOccurred())
	client.UseDefaultClient()
	return diary.NewAnalyzer(client, client, testModels)
}

type memoryStore struct {
	mu   sync.Mutex
	rows []*models.Diary
	err  error
}

func (m *memoryStore) Insert(_ context.Context, d *models.Diary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, d)
	return nil
}

func (m *memoryStore) Rows() []*models.Diary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Diary(nil), m.rows...)
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// browser replays the session cookie the way a real browser would.
type browser struct {
	handler http.Handler
	cookies []*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form map[string]string) *httptest.ResponseRecorder {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func newRecorder(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
