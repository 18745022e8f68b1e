package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OliveiraNt/netbind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAPIColors_List(t *testing.T) {
	s, _ := buildColorsServer(t)

	rec := httptest.NewRecorder()
	s.apiListColors(rec, httptest.NewRequest(http.MethodGet, "/colors", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	list := decode[colorList](t, rec)
	assert.Equal(t, []domain.Color{{Name: "red", Value: "#ff0000"}, {Name: "blue", Value: "#0000ff"}}, list.Data)
}

func TestAPIColors_CreateThenGet(t *testing.T) {
	s, pub := buildColorsServer(t)

	req := httptest.NewRequest(http.MethodPost, "/colors", strings.NewReader(`{"name":"teal","value":"#008080"}`))
	rec := httptest.NewRecorder()
	s.apiCreateColor(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Color](t, rec)
	assert.Equal(t, domain.Color{Name: "teal", Value: "#008080"}, created)

	req = httptest.NewRequest(http.MethodGet, "/colors/teal", nil)
	req = req.WithContext(chiCtxWithParam("name", "teal", req))
	rec = httptest.NewRecorder()
	s.apiGetColor(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[domain.Color](t, rec))

	require.Len(t, pub.Published(), 1)
	assert.Equal(t, domain.ColorCreated, pub.Published()[0].Type)
}

func TestAPIColors_CreateRejected(t *testing.T) {
	s, _ := buildColorsServer(t)

	for name, body := range map[string]string{
		"malformed":     `{"name":`,
		"missing value": `{"name":"x"}`,
		"missing name":  `{"value":"#fff"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.apiCreateColor(rec, httptest.NewRequest(http.MethodPost, "/colors", strings.NewReader(body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			got := decode[errorBody](t, rec)
			assert.True(t, got.Error)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestAPIColors_NotFoundIsOKWithErrorFlag(t *testing.T) {
	s, pub := buildColorsServer(t)

	handlers := map[string]http.HandlerFunc{
		http.MethodGet:    s.apiGetColor,
		http.MethodPut:    s.apiUpdateColor,
		http.MethodDelete: s.apiDeleteColor,
	}
	for method, h := range handlers {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/colors/ghost", strings.NewReader(`{"value":"#fff"}`))
			req = req.WithContext(chiCtxWithParam("name", "ghost", req))
			rec := httptest.NewRecorder()
			h(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"error": true}`, rec.Body.String())
		})
	}
	assert.Empty(t, pub.Published())
}

func TestAPIColors_UpdatePartial(t *testing.T) {
	s, _ := buildColorsServer(t)

	update := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/colors/red", strings.NewReader(body))
		req = req.WithContext(chiCtxWithParam("name", "red", req))
		rec := httptest.NewRecorder()
		s.apiUpdateColor(rec, req)
		return rec
	}

	rec := update(`{"value":"#cc0000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Color{Name: "red", Value: "#cc0000"}, decode[domain.Color](t, rec))

	rec = update(`{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#cc0000", decode[domain.Color](t, rec).Value)

	rec = update(`not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIColors_DeleteRemovesFromListing(t *testing.T) {
	s, pub := buildColorsServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/colors/red", nil)
	req = req.WithContext(chiCtxWithParam("name", "red", req))
	rec := httptest.NewRecorder()
	s.apiDeleteColor(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Color{Name: "red", Value: "#ff0000"}, decode[domain.Color](t, rec))

	rec = httptest.NewRecorder()
	s.apiListColors(rec, httptest.NewRequest(http.MethodGet, "/colors", nil))
	assert.Equal(t, []domain.Color{{Name: "blue", Value: "#0000ff"}}, decode[colorList](t, rec).Data)

	require.Len(t, pub.Published(), 1)
	assert.Equal(t, domain.ColorDeleted, pub.Published()[0].Type)
}
