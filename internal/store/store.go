package store

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matchdesk/league-console/external/leagueapi"
	"github.com/matchdesk/league-console/internal/domain/city"
	"github.com/matchdesk/league-console/internal/domain/cup"
	"github.com/matchdesk/league-console/internal/domain/league"
	"github.com/matchdesk/league-console/internal/domain/player"
	"github.com/matchdesk/league-console/internal/domain/season"
	"github.com/matchdesk/league-console/internal/domain/sport"
	"github.com/matchdesk/league-console/internal/domain/team"
	"github.com/matchdesk/league-console/internal/domain/user"
	"github.com/matchdesk/league-console/internal/platform/logging"
)

const defaultCascadeWorkers = 4

type Options struct {
	Logger *logging.Logger
	// Locale drives name collation for teams and players. Zero value
	// falls back to language-neutral ordering.
	Locale  language.Tag
	Workers int
}

// Store is the console's normalized cache: one collection per entity
// type, mutated only through the operations defined on Store, read
// through the collections' selectors. Construct one per process (or per
// test); there is no package-level instance.
type Store struct {
	client  *leagueapi.Client
	logger  *logging.Logger
	workers int

	Cities       *Collection[city.City]
	Leagues      *Collection[league.League]
	LeagueGroups *Collection[league.Group]
	Seasons      *Collection[season.Season]
	Tours        *Collection[season.Tour]
	Teams        *Collection[team.Team]
	Players      *Collection[player.Player]
	Profiles     *Collection[player.Profile]
	Cups         *Collection[cup.Cup]
	CupGroups    *Collection[cup.Group]
	Users        *Collection[user.User]

	expandMu  sync.Mutex
	expanding map[string]struct{}
}

func New(client *leagueapi.Client, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultCascadeWorkers
	}

	// Collators are not safe for concurrent use; each name-sorted
	// collection gets its own and only calls it under its write lock.
	teamCollate := collate.New(opts.Locale)
	playerCollate := collate.New(opts.Locale)

	return &Store{
		client:    client,
		logger:    logger,
		workers:   workers,
		expanding: make(map[string]struct{}),

		Cities: newCollection(collectionConfig[city.City]{
			name:  "cities",
			id:    func(c city.City) string { return c.ID },
			scope: func(city.City) Scope { return AllScope() },
			valid: func(c city.City) bool { return c.ID != "" && c.Name != "" },
		}),
		Leagues: newCollection(collectionConfig[league.League]{
			name:  "leagues",
			id:    func(l league.League) string { return l.ID },
			scope: func(l league.League) Scope { return ForParent(l.CityID) },
			less:  func(a, b league.League) bool { return a.Order < b.Order },
			valid: func(l league.League) bool { return l.ID != "" && l.Name != "" },
		}),
		LeagueGroups: newCollection(collectionConfig[league.Group]{
			name:  "league_groups",
			id:    func(g league.Group) string { return g.ID },
			scope: func(league.Group) Scope { return AllScope() },
			less:  func(a, b league.Group) bool { return a.Order < b.Order },
		}),
		Seasons: newCollection(collectionConfig[season.Season]{
			name:  "seasons",
			id:    func(s season.Season) string { return s.ID },
			scope: func(s season.Season) Scope { return ForParent(s.CityID) },
			less:  func(a, b season.Season) bool { return a.Order < b.Order },
			valid: func(s season.Season) bool { return s.ID != "" && s.Name != "" },
		}),
		Tours: newCollection(collectionConfig[season.Tour]{
			name:  "tours",
			id:    func(t season.Tour) string { return t.ID },
			scope: func(t season.Tour) Scope { return ForParent(t.SeasonID) },
			less:  func(a, b season.Tour) bool { return a.Number < b.Number },
		}),
		Teams: newCollection(collectionConfig[team.Team]{
			name:  "teams",
			id:    func(t team.Team) string { return t.ID },
			scope: func(t team.Team) Scope { return ForParent(t.CityID) },
			less:  func(a, b team.Team) bool { return teamCollate.CompareString(a.Name, b.Name) < 0 },
			valid: func(t team.Team) bool { return t.ID != "" && t.Name != "" },
		}),
		Players: newCollection(collectionConfig[player.Player]{
			name:  "players",
			id:    func(p player.Player) string { return p.ID },
			scope: func(p player.Player) Scope { return ForParent(p.TeamID) },
			less:  func(a, b player.Player) bool { return playerCollate.CompareString(a.Name, b.Name) < 0 },
			valid: func(p player.Player) bool { return p.ID != "" && p.Name != "" },
		}),
		Profiles: newCollection(collectionConfig[player.Profile]{
			name:  "profiles",
			id:    func(p player.Profile) string { return p.ID },
			scope: func(p player.Profile) Scope { return ForParent(p.Sport.String()) },
		}),
		Cups: newCollection(collectionConfig[cup.Cup]{
			name:  "cups",
			id:    func(c cup.Cup) string { return c.ID },
			scope: func(c cup.Cup) Scope { return ForParent(c.CityID) },
			valid: func(c cup.Cup) bool { return c.ID != "" && c.Name != "" },
		}),
		CupGroups: newCollection(collectionConfig[cup.Group]{
			name:  "cup_groups",
			id:    func(g cup.Group) string { return g.ID },
			scope: func(g cup.Group) Scope { return ForParent(g.CupID) },
			valid: func(g cup.Group) bool { return g.ID != "" && g.Name != "" },
		}),
		Users: newCollection(collectionConfig[user.User]{
			name:  "users",
			id:    func(u user.User) string { return u.ID },
			scope: func(user.User) Scope { return AllScope() },
		}),
	}
}

// LeagueGroupScope keys the league-groups collection, which the backend
// filters by city and sport together.
func LeagueGroupScope(cityID string, sportType sport.Type) Scope {
	return ForPair(cityID, sportType.String())
}

// ProfileScope keys the profiles collection by sport.
func ProfileScope(sportType sport.Type) Scope {
	return ForParent(sportType.String())
}
