package store

import (
	"context"
	"net/http"
	"testing"
)

func cascadeHandler(t *testing.T, failLeaguesFor string) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/cities", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","name":"Riga"},{"id":"2","name":"Tallinn"}]`))
	})
	mux.HandleFunc("/leagues", func(w http.ResponseWriter, r *http.Request) {
		cityID := r.URL.Query().Get("cityId")
		if cityID == failLeaguesFor {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"leagues":[{"id":"L` + cityID + `","name":"League","cityId":"` + cityID + `","order":1,"sportType":"football"}]}`))
	})
	mux.HandleFunc("/seasons", func(w http.ResponseWriter, r *http.Request) {
		cityID := r.URL.Query().Get("cityId")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"seasons":[{"id":"S` + cityID + `","name":"2026","cityId":"` + cityID + `","leagueId":"L` + cityID + `","order":1}]}`))
	})
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"teams":[{"id":"T1","name":"Dynamo","cityId":"1","sportType":"football"}]}`))
	})
	mux.HandleFunc("/cups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[{"id":"C1","name":"Spring Cup","cityId":"1","sportType":"football"}]}`))
	})
	return mux
}

func TestRefresh_AllCities(t *testing.T) {
	st := newTestStore(t, cascadeHandler(t, ""))

	res, err := st.Refresh(context.Background(), Selection{})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.Failed != 0 {
		t.Fatalf("unexpected failures: %+v", res.Errors)
	}

	if got := st.Cities.ByScope(AllScope()); len(got) != 2 {
		t.Fatalf("expected two cities, got %+v", got)
	}
	if got := st.Leagues.All(); len(got) != 2 {
		t.Fatalf("expected one league per city, got %+v", got)
	}
	if got := st.Seasons.All(); len(got) != 2 {
		t.Fatalf("expected one season per city, got %+v", got)
	}
	if got := st.Teams.ByScope(AllScope()); len(got) != 1 {
		t.Fatalf("expected unscoped teams under the all scope, got %+v", got)
	}
	if got := st.Cups.ByScope(AllScope()); len(got) != 1 {
		t.Fatalf("expected unscoped cups under the all scope, got %+v", got)
	}
}

func TestRefresh_CitiesFailureIsFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cities", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})
	st := newTestStore(t, mux)

	if _, err := st.Refresh(context.Background(), Selection{}); err == nil {
		t.Fatalf("expected fatal error when the city list fails")
	}
}

func TestRefresh_PartialFailureIsCollected(t *testing.T) {
	st := newTestStore(t, cascadeHandler(t, "2"))

	res, err := st.Refresh(context.Background(), Selection{})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.Failed == 0 {
		t.Fatalf("expected at least one collected failure")
	}

	// The healthy city still loaded, the failed scope carries an error.
	if got := st.Leagues.ByScope(ForParent("1")); len(got) != 1 {
		t.Fatalf("healthy city lost its leagues: %+v", got)
	}
	if st.Leagues.Err(ForParent("2")) == "" {
		t.Fatalf("failed scope missing its error")
	}
}

func TestRefresh_SingleCitySelection(t *testing.T) {
	st := newTestStore(t, cascadeHandler(t, ""))

	res, err := st.Refresh(context.Background(), Selection{CityID: "1"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.Failed != 0 {
		t.Fatalf("unexpected failures: %+v", res.Errors)
	}

	if got := st.Leagues.ByScope(ForParent("1")); len(got) != 1 {
		t.Fatalf("selected city missing leagues: %+v", got)
	}
	if got := st.Leagues.ByScope(ForParent("2")); len(got) != 0 {
		t.Fatalf("unselected city should stay empty, got %+v", got)
	}
	if got := st.Teams.ByScope(ForParent("1")); len(got) != 1 {
		t.Fatalf("selected city missing teams: %+v", got)
	}
}
