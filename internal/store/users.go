package store

import "context"

// FetchUsers loads the registered user directory. Users are read-only
// in the console; there are no mutation operations.
func (s *Store) FetchUsers(ctx context.Context) error {
	scope := AllScope()
	seq := s.Users.beginFetch(scope)

	items, err := s.client.ListUsers(ctx)
	if err != nil {
		s.Users.failFetch(scope, seq, err)
		s.logger.ErrorContext(ctx, "fetch users failed", "error", err)
		return err
	}

	s.Users.completeFetch(scope, seq, items)
	return nil
}
