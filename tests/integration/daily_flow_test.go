package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dailyglow/glow/internal/achievement"
	"github.com/dailyglow/glow/internal/catalog"
	"github.com/dailyglow/glow/internal/deck"
	"github.com/dailyglow/glow/internal/domain"
	"github.com/dailyglow/glow/internal/events"
	"github.com/dailyglow/glow/internal/httpserver/deps"
	"github.com/dailyglow/glow/internal/httpserver/routes"
	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/selection"
	"github.com/dailyglow/glow/internal/sources/library"
	"github.com/dailyglow/glow/internal/store/memory"
	"github.com/dailyglow/glow/internal/streak"
	"github.com/dailyglow/glow/internal/utils"
)

// newTestServer wires the whole service over the in-memory store and the
// builtin library, exactly as the app does minus Redis and schedulers.
func newTestServer(t *testing.T) (*httptest.Server, deps.Deps) {
	t.Helper()

	log := logger.New("error", false)
	kv := memory.NewStore()
	cat := catalog.NewIndex()
	cat.Replace(library.Builtin())

	sink := events.Nop{}
	deckEngine := deck.NewEngine(kv, log, deck.DefaultMinValidRatio)
	streakTracker := streak.NewTracker(kv, log, sink, time.Now)
	achievements := achievement.NewEngine(kv, log, sink, time.Now)
	sel := selection.NewService(cat, deckEngine, kv, streakTracker, achievements, sink, log, time.Now)

	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		TimeNow:       time.Now,
		Store:         kv,
		Catalog:       cat,
		Selection:     sel,
		Streak:        streakTracker,
		Achievements:  achievements,
		ReloadTrigger: make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, d
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer utils.Close(resp.Body)
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: decode: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("POST %s: encode: %v", url, err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer utils.Close(resp.Body)
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("POST %s: decode: %v", url, err)
		}
	}
	return resp.StatusCode
}

type sessionResponse struct {
	Affirmation *domain.Affirmation   `json:"affirmation"`
	DisplayText string                `json:"displayText"`
	Batch       []*domain.Affirmation `json:"batch"`
}

type listResponse struct {
	Affirmations []*domain.Affirmation `json:"affirmations"`
	Count        int                   `json:"count"`
}

func TestDailyFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	// First session of the day: streak starts, item of the day appears.
	var session sessionResponse
	if code := postJSON(t, srv.URL+"/session?name=Sam", nil, &session); code != http.StatusOK {
		t.Fatalf("POST /session = %d, want 200", code)
	}
	if session.Affirmation == nil || len(session.Batch) != 10 {
		t.Fatalf("session: affirmation=%v batch=%d, want item + 10 cards",
			session.Affirmation, len(session.Batch))
	}
	todayID := session.Affirmation.ID

	// Same-day /today returns the same selection.
	var today sessionResponse
	if code := getJSON(t, srv.URL+"/today", &today); code != http.StatusOK {
		t.Fatalf("GET /today = %d, want 200", code)
	}
	if today.Affirmation.ID != todayID {
		t.Errorf("today id %q, want session id %q", today.Affirmation.ID, todayID)
	}

	// View and favorite the item of the day.
	if code := postJSON(t, srv.URL+"/affirmations/"+todayID+"/view", nil, nil); code != http.StatusNoContent {
		t.Errorf("POST view = %d, want 204", code)
	}
	var fav struct {
		ID       string `json:"id"`
		Favorite bool   `json:"favorite"`
	}
	if code := postJSON(t, srv.URL+"/affirmations/"+todayID+"/favorite", nil, &fav); code != http.StatusOK {
		t.Fatalf("POST favorite = %d, want 200", code)
	}
	if !fav.Favorite {
		t.Errorf("favorite toggle reported false")
	}

	var favorites listResponse
	getJSON(t, srv.URL+"/favorites", &favorites)
	if favorites.Count != 1 || favorites.Affirmations[0].ID != todayID {
		t.Errorf("favorites = %+v, want just %q", favorites, todayID)
	}

	// Streak, stats and progression reflect the activity.
	var streakResp struct {
		Count int `json:"count"`
	}
	getJSON(t, srv.URL+"/streak", &streakResp)
	if streakResp.Count != 1 {
		t.Errorf("streak count = %d, want 1", streakResp.Count)
	}

	var stats domain.Statistics
	getJSON(t, srv.URL+"/stats", &stats)
	if stats.TotalViewed != 1 || stats.FavoriteCount != 1 {
		t.Errorf("stats = %+v, want 1 view and 1 favorite", stats)
	}

	var achResp struct {
		Achievements []domain.Achievement `json:"achievements"`
		Unlocked     int                  `json:"unlocked"`
		Total        int                  `json:"total"`
	}
	getJSON(t, srv.URL+"/achievements", &achResp)
	if achResp.Total != len(domain.AchievementDefinitions()) {
		t.Errorf("achievement total = %d, want %d",
			achResp.Total, len(domain.AchievementDefinitions()))
	}

	var prog struct {
		TotalPoints int `json:"totalPoints"`
		Level       int `json:"level"`
	}
	getJSON(t, srv.URL+"/progression", &prog)
	if prog.Level != 1 {
		t.Errorf("level = %d, want 1", prog.Level)
	}

	// Search and widget surfaces.
	var results listResponse
	getJSON(t, srv.URL+"/search?q=grateful", &results)
	if results.Count == 0 {
		t.Errorf("search for 'grateful' found nothing")
	}

	var snap domain.WidgetSnapshot
	if code := getJSON(t, srv.URL+"/widget", &snap); code != http.StatusOK {
		t.Errorf("GET /widget = %d, want 200", code)
	} else if snap.TodayText == "" {
		t.Errorf("widget snapshot has empty text")
	}

	// Unknown ids are rejected.
	if code := getJSON(t, srv.URL+"/affirmations/nope", nil); code != http.StatusNotFound {
		t.Errorf("GET unknown affirmation = %d, want 404", code)
	}
}

func TestPreferencesRestrictBatch(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string][]string{"categories": {string(domain.CategoryGratitude)}}
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/preferences/categories", encode(t, body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /preferences/categories: %v", err)
	}
	utils.Close(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /preferences/categories = %d, want 200", resp.StatusCode)
	}

	var today sessionResponse
	if code := getJSON(t, srv.URL+"/today", &today); code != http.StatusOK {
		t.Fatalf("GET /today = %d, want 200", code)
	}
	for _, item := range today.Batch {
		if item.Category != domain.CategoryGratitude {
			t.Errorf("batch item %q has category %q outside the filter",
				item.ID, item.Category)
		}
	}
}

func TestResetWipesUserState(t *testing.T) {
	srv, _ := newTestServer(t)

	var session sessionResponse
	postJSON(t, srv.URL+"/session", nil, &session)
	postJSON(t, srv.URL+"/affirmations/"+session.Affirmation.ID+"/favorite", nil, nil)

	if code := postJSON(t, srv.URL+"/reset", nil, nil); code != http.StatusNoContent {
		t.Fatalf("POST /reset = %d, want 204", code)
	}

	var favorites listResponse
	getJSON(t, srv.URL+"/favorites", &favorites)
	if favorites.Count != 0 {
		t.Errorf("favorites survived reset: %d", favorites.Count)
	}

	var streakResp struct {
		Count int `json:"count"`
	}
	getJSON(t, srv.URL+"/streak", &streakResp)
	if streakResp.Count != 0 {
		t.Errorf("streak survived reset: %d", streakResp.Count)
	}

	// A fresh item of the day still exists after reset.
	var today sessionResponse
	if code := getJSON(t, srv.URL+"/today", &today); code != http.StatusOK || today.Affirmation == nil {
		t.Errorf("GET /today after reset = %d, affirmation=%v", code, today.Affirmation)
	}
}

func encode(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		t.Fatal(err)
	}
	return &buf
}
