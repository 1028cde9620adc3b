package store

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/matchdesk/league-console/internal/domain/cup"
)

func collapsedGroupsHandler(t *testing.T, detailCalls *atomic.Int32) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/cups/10/groups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[
			{"id":"g1","cupTournamentId":"10","name":"Group A","order":1},
			{"id":"g2","cupTournamentId":"10","name":"Group B","order":2}
		]}`))
	})
	mux.HandleFunc("/cups/10/groups/g1", func(w http.ResponseWriter, r *http.Request) {
		if detailCalls != nil {
			detailCalls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"g1","cupTournamentId":"10","name":"Group A","order":1,
			"teams":[{"teamId":"77","teamName":"Dynamo","seed":1}],
			"tours":[{"id":"t1","groupId":"g1","team1Id":"77","team2Id":"88"}]
		}`))
	})
	mux.HandleFunc("/cups/10/groups/g1/teams/77", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestExpandCupGroup_MergesDetailOnce(t *testing.T) {
	var detailCalls atomic.Int32
	st := newTestStore(t, collapsedGroupsHandler(t, &detailCalls))
	ctx := context.Background()

	if err := st.FetchCupGroups(ctx, "10"); err != nil {
		t.Fatalf("fetch cup groups: %v", err)
	}

	g, ok := st.CupGroups.GetByID("g1")
	if !ok {
		t.Fatalf("group missing after list fetch")
	}
	if g.Expanded() {
		t.Fatalf("list fetch must leave groups collapsed")
	}

	if err := st.ExpandCupGroup(ctx, "10", "g1"); err != nil {
		t.Fatalf("expand: %v", err)
	}

	g, _ = st.CupGroups.GetByID("g1")
	if !g.Expanded() {
		t.Fatalf("group still collapsed after expand")
	}
	if len(g.Teams) != 1 || g.Teams[0].TeamID != "77" {
		t.Fatalf("unexpected teams: %+v", g.Teams)
	}
	if len(g.Tours) != 1 || g.Tours[0].ID != "t1" {
		t.Fatalf("unexpected tours: %+v", g.Tours)
	}

	// Second expand is a no-op against the server.
	if err := st.ExpandCupGroup(ctx, "10", "g1"); err != nil {
		t.Fatalf("re-expand: %v", err)
	}
	if got := detailCalls.Load(); got != 1 {
		t.Fatalf("expected one detail fetch, got %d", got)
	}
}

func TestExpandCupGroup_EmptyDetailStillCountsAsExpanded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cups/10/groups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[{"id":"g1","cupTournamentId":"10","name":"Group A","order":1}]}`))
	})
	mux.HandleFunc("/cups/10/groups/g1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"g1","cupTournamentId":"10","name":"Group A","order":1}`))
	})
	st := newTestStore(t, mux)
	ctx := context.Background()

	if err := st.FetchCupGroups(ctx, "10"); err != nil {
		t.Fatalf("fetch cup groups: %v", err)
	}
	if err := st.ExpandCupGroup(ctx, "10", "g1"); err != nil {
		t.Fatalf("expand: %v", err)
	}

	g, _ := st.CupGroups.GetByID("g1")
	if !g.Expanded() {
		t.Fatalf("empty group must still count as expanded")
	}
	if g.Teams == nil || g.Tours == nil {
		t.Fatalf("expanded group must carry non-nil sub-lists: %+v", g)
	}
}

func TestRemoveTeamFromCupGroup_FiltersExpandedList(t *testing.T) {
	st := newTestStore(t, collapsedGroupsHandler(t, nil))
	ctx := context.Background()

	if err := st.FetchCupGroups(ctx, "10"); err != nil {
		t.Fatalf("fetch cup groups: %v", err)
	}
	if err := st.ExpandCupGroup(ctx, "10", "g1"); err != nil {
		t.Fatalf("expand: %v", err)
	}

	if err := st.RemoveTeamFromCupGroup(ctx, "10", "g1", "77"); err != nil {
		t.Fatalf("remove team: %v", err)
	}

	g, _ := st.CupGroups.GetByID("g1")
	if len(g.Teams) != 0 {
		t.Fatalf("team 77 still present: %+v", g.Teams)
	}
	if g.Teams == nil {
		t.Fatalf("removal must not collapse the group")
	}
}

func TestAddTeamToCupGroup_CollapsedGroupStaysCollapsed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cups/10/groups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[{"id":"g1","cupTournamentId":"10","name":"Group A","order":1}]}`))
	})
	mux.HandleFunc("/cups/10/groups/g1/teams", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"teamId":"77","teamName":"Dynamo","seed":1}`))
	})
	st := newTestStore(t, mux)
	ctx := context.Background()

	if err := st.FetchCupGroups(ctx, "10"); err != nil {
		t.Fatalf("fetch cup groups: %v", err)
	}

	added, err := st.AddTeamToCupGroup(ctx, "10", "g1", cup.GroupTeam{TeamID: "77"})
	if err != nil {
		t.Fatalf("add team: %v", err)
	}
	if added.Name != "Dynamo" {
		t.Fatalf("server response dropped: %+v", added)
	}

	// The collapsed group picks the membership up on expand instead.
	g, _ := st.CupGroups.GetByID("g1")
	if g.Teams != nil {
		t.Fatalf("collapsed group must stay collapsed, got %+v", g.Teams)
	}
}

func TestCreateCupGroup_LandsInCupScope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cups/10/groups", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"g9","cupTournamentId":"10","name":"Group C","order":3}`))
	})
	st := newTestStore(t, mux)

	created, err := st.CreateCupGroup(context.Background(), "10", cup.Group{Name: "Group C", Order: 3})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if created.ID != "g9" {
		t.Fatalf("unexpected created group: %+v", created)
	}

	got := st.CupGroups.ByScope(ForParent("10"))
	if len(got) != 1 || got[0].ID != "g9" {
		t.Fatalf("created group missing from cup scope: %+v", got)
	}
	if got[0].Expanded() {
		t.Fatalf("freshly created group must start collapsed")
	}
}

func TestUpdateCupGroup_KeepsSubLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cups/10/groups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[{"id":"g1","cupTournamentId":"10","name":"Group A","order":1}]}`))
	})
	mux.HandleFunc("/cups/10/groups/g1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"g1","cupTournamentId":"10","name":"Group A","order":1,
				"teams":[{"teamId":"77","teamName":"Dynamo"}],"tours":[]}`))
		case http.MethodPut:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	st := newTestStore(t, mux)
	ctx := context.Background()

	if err := st.FetchCupGroups(ctx, "10"); err != nil {
		t.Fatalf("fetch cup groups: %v", err)
	}
	if err := st.ExpandCupGroup(ctx, "10", "g1"); err != nil {
		t.Fatalf("expand: %v", err)
	}

	err := st.UpdateCupGroup(ctx, "10", "g1", cup.Group{CupID: "10", Name: "Group Alpha", Order: 1})
	if err != nil {
		t.Fatalf("update group: %v", err)
	}

	g, _ := st.CupGroups.GetByID("g1")
	if g.Name != "Group Alpha" {
		t.Fatalf("rename not applied: %+v", g)
	}
	if len(g.Teams) != 1 || g.Teams[0].TeamID != "77" {
		t.Fatalf("rename dropped the teams sub-list: %+v", g)
	}
}
