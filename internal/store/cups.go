package store

import (
	"context"

	"github.com/matchdesk/league-console/external/leagueapi"
	"github.com/matchdesk/league-console/internal/domain/cup"
	"github.com/matchdesk/league-console/internal/domain/sport"
)

// FetchCups loads cups for one city or, under the all scope, every cup
// at once. Sport narrows either call.
func (s *Store) FetchCups(ctx context.Context, scope Scope, sportType sport.Type) error {
	seq := s.Cups.beginFetch(scope)

	q := leagueapi.CupQuery{Sport: sportType}
	if !scope.IsAll() {
		q.CityID = scope.Parent()
	}
	items, err := s.client.ListCups(ctx, q)
	if err != nil {
		s.Cups.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch cups failed", "scope", scope.String(), "error", err)
		return err
	}

	s.Cups.completeFetch(scope, seq, items)
	return nil
}

func (s *Store) CreateCup(ctx context.Context, in cup.Cup) (cup.Cup, error) {
	if err := in.Validate(); err != nil {
		return cup.Cup{}, err
	}

	created, err := s.client.CreateCup(ctx, in)
	if err != nil {
		return cup.Cup{}, err
	}

	s.Cups.insert(created)
	return created, nil
}

func (s *Store) UpdateCup(ctx context.Context, id string, in cup.Cup) (cup.Cup, error) {
	if err := in.Validate(); err != nil {
		return cup.Cup{}, err
	}

	updated, err := s.client.UpdateCup(ctx, id, in)
	if err != nil {
		return cup.Cup{}, err
	}

	s.Cups.apply(id, func(cup.Cup) cup.Cup { return updated })
	return updated, nil
}

func (s *Store) DeleteCup(ctx context.Context, id string) error {
	if err := s.client.DeleteCup(ctx, id); err != nil {
		return err
	}

	for _, g := range s.CupGroups.ByScope(ForParent(id)) {
		s.CupGroups.remove(g.ID)
	}
	s.Cups.remove(id)
	return nil
}

// FetchCupGroups loads a cup's group list. The list endpoint returns
// collapsed groups: Teams and Tours stay nil until ExpandCupGroup
// fetches the group detail.
func (s *Store) FetchCupGroups(ctx context.Context, cupID string) error {
	scope := ForParent(cupID)
	seq := s.CupGroups.beginFetch(scope)

	items, err := s.client.ListCupGroups(ctx, cupID)
	if err != nil {
		s.CupGroups.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch cup groups failed", "cup_id", cupID, "error", err)
		return err
	}

	s.CupGroups.completeFetch(scope, seq, items)
	return nil
}

// ExpandCupGroup fetches one group's teams and fixtures and merges them
// into the collapsed entry. Expanding an already expanded group is a
// no-op, as is a second concurrent expand of the same group.
func (s *Store) ExpandCupGroup(ctx context.Context, cupID, groupID string) error {
	if g, ok := s.CupGroups.GetByID(groupID); ok && g.Expanded() {
		return nil
	}

	s.expandMu.Lock()
	if _, busy := s.expanding[groupID]; busy {
		s.expandMu.Unlock()
		return nil
	}
	s.expanding[groupID] = struct{}{}
	s.expandMu.Unlock()

	defer func() {
		s.expandMu.Lock()
		delete(s.expanding, groupID)
		s.expandMu.Unlock()
	}()

	full, err := s.client.GetCupGroup(ctx, cupID, groupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "expand cup group failed", "cup_id", cupID, "group_id", groupID, "error", err)
		return err
	}

	// Empty sub-lists come back non-nil so Expanded() holds afterwards.
	if full.Teams == nil {
		full.Teams = make([]cup.GroupTeam, 0)
	}
	if full.Tours == nil {
		full.Tours = make([]cup.Tour, 0)
	}

	if !s.CupGroups.apply(groupID, func(cup.Group) cup.Group { return full }) {
		s.CupGroups.insert(full)
	}
	return nil
}

// IsExpanding reports whether a group detail fetch is in flight.
func (s *Store) IsExpanding(groupID string) bool {
	s.expandMu.Lock()
	defer s.expandMu.Unlock()

	_, ok := s.expanding[groupID]
	return ok
}

func (s *Store) CreateCupGroup(ctx context.Context, cupID string, in cup.Group) (cup.Group, error) {
	in.CupID = cupID
	if err := in.Validate(); err != nil {
		return cup.Group{}, err
	}

	created, err := s.client.CreateCupGroup(ctx, cupID, in)
	if err != nil {
		return cup.Group{}, err
	}
	if created.CupID == "" {
		created.CupID = cupID
	}

	s.CupGroups.insert(created)
	return created, nil
}

// UpdateCupGroup merges the payload optimistically and keeps the cached
// sub-lists, which the rename payload never carries.
func (s *Store) UpdateCupGroup(ctx context.Context, cupID, groupID string, in cup.Group) error {
	if err := s.client.UpdateCupGroup(ctx, cupID, groupID, in); err != nil {
		return err
	}

	s.CupGroups.apply(groupID, func(prev cup.Group) cup.Group {
		next := in
		next.ID = prev.ID
		next.CupID = prev.CupID
		next.Teams = prev.Teams
		next.Tours = prev.Tours
		return next
	})
	return nil
}

func (s *Store) DeleteCupGroup(ctx context.Context, cupID, groupID string) error {
	if err := s.client.DeleteCupGroup(ctx, cupID, groupID); err != nil {
		return err
	}

	s.CupGroups.remove(groupID)
	return nil
}

// AddTeamToCupGroup registers a team in the group. The cached Teams
// list is only touched when the group is expanded; a collapsed group
// picks the change up on expand.
func (s *Store) AddTeamToCupGroup(ctx context.Context, cupID, groupID string, in cup.GroupTeam) (cup.GroupTeam, error) {
	added, err := s.client.AddCupGroupTeam(ctx, cupID, groupID, in)
	if err != nil {
		return cup.GroupTeam{}, err
	}
	if added.TeamID == "" {
		added.TeamID = in.TeamID
	}

	s.CupGroups.apply(groupID, func(prev cup.Group) cup.Group {
		if prev.Teams == nil {
			return prev
		}
		next := prev
		next.Teams = append(append([]cup.GroupTeam(nil), prev.Teams...), added)
		return next
	})
	return added, nil
}

func (s *Store) RemoveTeamFromCupGroup(ctx context.Context, cupID, groupID, teamID string) error {
	if err := s.client.RemoveCupGroupTeam(ctx, cupID, groupID, teamID); err != nil {
		return err
	}

	s.CupGroups.apply(groupID, func(prev cup.Group) cup.Group {
		if prev.Teams == nil {
			return prev
		}
		next := prev
		next.Teams = make([]cup.GroupTeam, 0, len(prev.Teams))
		for _, t := range prev.Teams {
			if t.TeamID != teamID {
				next.Teams = append(next.Teams, t)
			}
		}
		return next
	})
	return nil
}

func (s *Store) CreateCupTour(ctx context.Context, cupID, groupID string, in cup.Tour) (cup.Tour, error) {
	in.GroupID = groupID
	if err := in.Validate(); err != nil {
		return cup.Tour{}, err
	}

	created, err := s.client.CreateCupTour(ctx, cupID, groupID, in)
	if err != nil {
		return cup.Tour{}, err
	}
	if created.GroupID == "" {
		created.GroupID = groupID
	}

	s.CupGroups.apply(groupID, func(prev cup.Group) cup.Group {
		if prev.Tours == nil {
			return prev
		}
		next := prev
		next.Tours = append(append([]cup.Tour(nil), prev.Tours...), created)
		return next
	})
	return created, nil
}

// UpdateCupTour locates the fixture's owning group and rewrites it in
// place; the endpoint answers 204.
func (s *Store) UpdateCupTour(ctx context.Context, tourID string, in cup.Tour) error {
	if err := s.client.UpdateCupTour(ctx, tourID, in); err != nil {
		return err
	}

	groupID, ok := s.groupOfCupTour(tourID)
	if !ok {
		return nil
	}
	s.CupGroups.apply(groupID, func(prev cup.Group) cup.Group {
		next := prev
		next.Tours = append([]cup.Tour(nil), prev.Tours...)
		for idx, t := range next.Tours {
			if t.ID != tourID {
				continue
			}
			merged := in
			merged.ID = t.ID
			merged.GroupID = t.GroupID
			next.Tours[idx] = merged
			break
		}
		return next
	})
	return nil
}

func (s *Store) DeleteCupTour(ctx context.Context, tourID string) error {
	if err := s.client.DeleteCupTour(ctx, tourID); err != nil {
		return err
	}

	groupID, ok := s.groupOfCupTour(tourID)
	if !ok {
		return nil
	}
	s.CupGroups.apply(groupID, func(prev cup.Group) cup.Group {
		next := prev
		next.Tours = make([]cup.Tour, 0, len(prev.Tours))
		for _, t := range prev.Tours {
			if t.ID != tourID {
				next.Tours = append(next.Tours, t)
			}
		}
		return next
	})
	return nil
}

func (s *Store) groupOfCupTour(tourID string) (string, bool) {
	for _, g := range s.CupGroups.All() {
		for _, t := range g.Tours {
			if t.ID == tourID {
				return g.ID, true
			}
		}
	}
	return "", false
}
