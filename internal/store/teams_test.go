package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchdesk/league-console/internal/domain/player"
	"github.com/matchdesk/league-console/internal/domain/sport"
	"github.com/matchdesk/league-console/internal/domain/team"
)

func teamsHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"teams":[
				{"id":"T1","name":"Dynamo","cityId":"5","sportType":"football"},
				{"id":"T2","name":"Ajax","cityId":"5","sportType":"football"}
			]}`))
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"T3","name":"Celtic","cityId":"5","sportType":"football"}`))
		}
	})
	mux.HandleFunc("/teams/T1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/players", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"players":[{"id":"P1","profileId":"PR1","teamId":"T1","name":"Ozols"}]}`))
	})
	return mux
}

func TestTeams_NameSortedAndCreateInsertsInOrder(t *testing.T) {
	st := newTestStore(t, teamsHandler(t))
	ctx := context.Background()

	require.NoError(t, st.FetchTeams(ctx, ForParent("5"), ""))

	got := st.Teams.ByScope(ForParent("5"))
	require.Len(t, got, 2)
	require.Equal(t, "Ajax", got[0].Name, "teams must sort by collated name")

	created, err := st.CreateTeam(ctx, team.Team{Name: "Celtic", CityID: "5", Sport: sport.Football})
	require.NoError(t, err)
	require.Equal(t, "T3", created.ID)

	got = st.Teams.ByScope(ForParent("5"))
	require.Len(t, got, 3)
	require.Equal(t, []string{"Ajax", "Celtic", "Dynamo"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestUpdateTeam_OptimisticPayloadKeepsID(t *testing.T) {
	st := newTestStore(t, teamsHandler(t))
	ctx := context.Background()

	require.NoError(t, st.FetchTeams(ctx, ForParent("5"), ""))
	require.NoError(t, st.UpdateTeam(ctx, "T1", team.Team{
		Name:         "Dynamo Riga",
		PrimaryColor: "#ff0000",
		CityID:       "5",
		Sport:        sport.Football,
	}))

	got, ok := st.Teams.GetByID("T1")
	require.True(t, ok)
	require.Equal(t, "Dynamo Riga", got.Name)
	require.Equal(t, "#ff0000", got.PrimaryColor)
}

func TestDeleteTeam_EvictsRoster(t *testing.T) {
	st := newTestStore(t, teamsHandler(t))
	ctx := context.Background()

	require.NoError(t, st.FetchTeams(ctx, ForParent("5"), ""))
	require.NoError(t, st.FetchPlayers(ctx, "T1", ""))
	require.Len(t, st.Players.ByScope(ForParent("T1")), 1)

	require.NoError(t, st.DeleteTeam(ctx, "T1"))

	_, ok := st.Teams.GetByID("T1")
	require.False(t, ok)
	require.Empty(t, st.Players.ByScope(ForParent("T1")))
}

func TestCreatePlayer_LandsInTeamScope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/players", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"P2","profileId":"PR2","teamId":"T1","name":"Berzins"}`))
	})
	st := newTestStore(t, mux)

	created, err := st.CreatePlayer(context.Background(), player.Player{ProfileID: "PR2", TeamID: "T1"})
	require.NoError(t, err)
	require.Equal(t, "P2", created.ID)
	require.Len(t, st.Players.ByScope(ForParent("T1")), 1)
}
