package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/matchdesk/league-console/internal/domain/season"
)

func toursHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/S1/tours", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tours":[
			{"id":"t2","seasonId":"S1","number":2},
			{"id":"t1","seasonId":"S1","number":1,
				"matches":[{"id":"m1","tourId":"t1","team1Id":"T1","team2Id":"T2"}]}
		]}`))
	})
	mux.HandleFunc("/seasons/tours/t1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/seasons/tours/t1/matches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"m2","tourId":"t1","team1Id":"T3","team2Id":"T4"}`))
	})
	mux.HandleFunc("/seasons/matches/m1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestFetchTours_SortedByNumberWithEmbeddedMatches(t *testing.T) {
	st := newTestStore(t, toursHandler(t))

	if err := st.FetchTours(context.Background(), "S1"); err != nil {
		t.Fatalf("fetch tours: %v", err)
	}

	got := st.Tours.ByScope(ForParent("S1"))
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Fatalf("expected number-sorted tours [t1 t2], got %+v", got)
	}
	if len(got[0].Matches) != 1 || got[0].Matches[0].ID != "m1" {
		t.Fatalf("embedded matches lost: %+v", got[0])
	}
}

func TestUpdateTour_PreservesEmbeddedMatches(t *testing.T) {
	st := newTestStore(t, toursHandler(t))
	ctx := context.Background()

	if err := st.FetchTours(ctx, "S1"); err != nil {
		t.Fatalf("fetch tours: %v", err)
	}

	err := st.UpdateTour(ctx, "t1", season.Tour{Number: 1, Name: "Opening Round"})
	if err != nil {
		t.Fatalf("update tour: %v", err)
	}

	got, ok := st.Tours.GetByID("t1")
	if !ok {
		t.Fatalf("tour missing after update")
	}
	if got.Name != "Opening Round" {
		t.Fatalf("rename not applied: %+v", got)
	}
	if got.SeasonID != "S1" {
		t.Fatalf("season id lost: %+v", got)
	}
	if len(got.Matches) != 1 {
		t.Fatalf("rename dropped the match list: %+v", got)
	}
}

func TestCreateMatch_AppendsToOwningTour(t *testing.T) {
	st := newTestStore(t, toursHandler(t))
	ctx := context.Background()

	if err := st.FetchTours(ctx, "S1"); err != nil {
		t.Fatalf("fetch tours: %v", err)
	}

	created, err := st.CreateMatch(ctx, "t1", season.Match{Team1ID: "T3", Team2ID: "T4"})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if created.ID != "m2" {
		t.Fatalf("unexpected created match: %+v", created)
	}

	got, _ := st.Tours.GetByID("t1")
	if len(got.Matches) != 2 {
		t.Fatalf("match not appended: %+v", got.Matches)
	}
}

func TestDeleteMatch_RemovesFromOwningTour(t *testing.T) {
	st := newTestStore(t, toursHandler(t))
	ctx := context.Background()

	if err := st.FetchTours(ctx, "S1"); err != nil {
		t.Fatalf("fetch tours: %v", err)
	}

	if err := st.DeleteMatch(ctx, "m1"); err != nil {
		t.Fatalf("delete match: %v", err)
	}

	got, _ := st.Tours.GetByID("t1")
	if len(got.Matches) != 0 {
		t.Fatalf("match still present: %+v", got.Matches)
	}

	// Repeating the delete is a cache no-op, not an error.
	if err := st.DeleteMatch(ctx, "m1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
