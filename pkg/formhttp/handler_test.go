package formhttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/locales"
	"github.com/dmitrymomot/fieldrules/pkg/formhttp"
	"github.com/dmitrymomot/fieldrules/pkg/formstate"
	"github.com/dmitrymomot/fieldrules/pkg/i18n"
	"github.com/dmitrymomot/fieldrules/pkg/rules"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

func newHandler(t *testing.T, opts ...formhttp.Option) *formhttp.Handler {
	t.Helper()

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(locales.FS, "."))
	require.NoError(t, err)

	manager := formstate.NewManager(validator.New(), formstate.NewMemoryStore(), nil,
		formstate.WithLookup(func(ctx context.Context) validator.MessageLookup {
			return tr.Lookup(i18n.GetLocale(ctx))
		}),
	)
	manager.Apply(context.Background(), map[string]*rules.RuleSet{
		"signup": rules.Normalize(rules.Declarations{
			rules.Required("email"),
			rules.Field("password", &rules.Spec{MinLength: rules.Plain(8)}),
			rules.Field("nickname", &rules.Spec{MaxLength: rules.Override(10, "Nickname is too long")}),
		}),
	})

	return formhttp.New(manager, append([]formhttp.Option{formhttp.WithTranslator(tr)}, opts...)...)
}

func postJSON(t *testing.T, h http.Handler, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) formstate.State {
	t.Helper()
	var st formstate.State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	return st
}

func TestValidate(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	tests := []struct {
		name       string
		header     http.Header
		data       map[string]any
		wantStatus int
		wantErrors map[string]string
	}{
		{
			name:       "valid",
			data:       map[string]any{"email": "a@b.co", "password": "long enough"},
			wantStatus: http.StatusOK,
			wantErrors: map[string]string{},
		},
		{
			name:       "invalid english",
			data:       map[string]any{"password": "short", "nickname": "much too long nickname"},
			wantStatus: http.StatusUnprocessableEntity,
			wantErrors: map[string]string{
				"email":    "email is required",
				"password": "password must be at least 8 characters long",
				"nickname": "Nickname is too long",
			},
		},
		{
			name:       "invalid german",
			header:     http.Header{"Accept-Language": {"de-DE,de;q=0.9,en;q=0.5"}},
			data:       map[string]any{"password": "short"},
			wantStatus: http.StatusUnprocessableEntity,
			wantErrors: map[string]string{
				"email":    "email ist erforderlich",
				"password": "password muss mindestens 8 Zeichen lang sein",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := postJSON(t, h, "/forms/signup/validate", formhttp.Submission{Session: "s-" + tt.name, Data: tt.data}, tt.header)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			st := decodeState(t, rec)
			assert.Equal(t, "signup", st.Form)
			assert.Equal(t, "s-"+tt.name, st.Session)
			assert.True(t, st.Validated)
			assert.Equal(t, tt.wantErrors, st.Errors)
		})
	}
}

func TestValidate_GeneratesSession(t *testing.T) {
	t.Parallel()

	rec := postJSON(t, newHandler(t), "/forms/signup/validate", map[string]any{"data": map[string]any{}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, decodeState(t, rec).Session, 36)
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := postJSON(t, h, "/forms/unknown/validate", formhttp.Submission{Session: "s"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown form")

	req := httptest.NewRequest(http.MethodPost, "/forms/signup/validate", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), formhttp.ErrInvalidBody.Error())
}

func TestLive(t *testing.T) {
	t.Parallel()

	h := newHandler(t)
	sse := http.Header{"Accept": {"text/event-stream"}}
	live := func(data map[string]any) (*httptest.ResponseRecorder, formhttp.LiveSignals) {
		rec := postJSON(t, h, "/forms/signup/live", formhttp.Submission{Session: "live-1", Data: data}, sse)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		return rec, parseSignals(t, rec.Body.String())
	}

	// Before the first submit nothing is validated.
	rec, signals := live(map[string]any{})
	assert.Contains(t, rec.Body.String(), "datastar-patch-signals")
	assert.Equal(t, "live-1", signals.Session)
	assert.False(t, signals.Validated)
	assert.False(t, signals.Valid)
	assert.Equal(t, map[string]string{"email": "", "password": "", "nickname": ""}, signals.Errors)

	submit := postJSON(t, h, "/forms/signup/validate", formhttp.Submission{Session: "live-1", Data: map[string]any{}}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, submit.Code)

	_, signals = live(map[string]any{"password": "short"})
	assert.True(t, signals.Validated)
	assert.False(t, signals.Valid)
	assert.Equal(t, "email is required", signals.Errors["email"])
	assert.Equal(t, "password must be at least 8 characters long", signals.Errors["password"])
	assert.Empty(t, signals.Errors["nickname"])

	_, signals = live(map[string]any{"email": "a@b.co", "password": "long enough"})
	assert.True(t, signals.Valid)
	assert.Equal(t, map[string]string{"email": "", "password": "", "nickname": ""}, signals.Errors)
}

func TestLive_MissingSession(t *testing.T) {
	t.Parallel()

	rec := postJSON(t, newHandler(t), "/forms/signup/live", formhttp.Submission{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLive_BodyTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"session":"s1","data":{"note":"` + strings.Repeat("a", 1<<20) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/forms/signup/live", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), formhttp.ErrInvalidBody.Error())
}

// parseSignals extracts the JSON of a datastar-patch-signals event.
func parseSignals(t *testing.T, body string) formhttp.LiveSignals {
	t.Helper()

	var payload strings.Builder
	for line := range strings.SplitSeq(body, "\n") {
		if rest, ok := strings.CutPrefix(line, "data: signals "); ok {
			payload.WriteString(rest)
		}
	}
	var signals formhttp.LiveSignals
	require.NoError(t, json.Unmarshal([]byte(payload.String()), &signals), body)
	return signals
}

func TestState(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	get := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		return rec
	}

	rec := get("/forms/signup/state?session=s1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeState(t, rec).Validated)

	postJSON(t, h, "/forms/signup/validate", formhttp.Submission{Session: "s1", Data: map[string]any{"email": "a@b.co"}}, nil)

	rec = get("/forms/signup/state?session=s1")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.True(t, st.Validated)
	assert.True(t, st.IsValid())

	assert.Equal(t, http.StatusBadRequest, get("/forms/signup/state").Code)
	assert.Equal(t, http.StatusNotFound, get("/forms/missing/state?session=s1").Code)

	rec = get("/forms")
	assert.JSONEq(t, `{"forms":["signup"]}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newHandler(t,
		formhttp.WithHealthCheck("rules", func(context.Context) error { return nil }),
		formhttp.WithHealthCheck("redis", func(context.Context) error { return errors.New("down") }),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"redis":"failed","rules":"ok"}}`, rec.Body.String())
}
