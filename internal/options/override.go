package options

// Override is a single temporary assignment. Overrides are applied and
// restored in slice order.
type Override struct {
	Key   string
	Value any
}

// Apply snapshots the current value of every overridden key, then sets the
// overrides. The snapshot walk completes before anything changes, so an
// unknown key fails with the store untouched. The returned restore puts every
// snapshotted key back in order; calling it more than once is a no-op.
func (s *Store) Apply(overrides ...Override) (restore func(), err error) {
	previous := make([]Override, 0, len(overrides))
	for _, o := range overrides {
		value, err := s.Get(o.Key)
		if err != nil {
			return nil, err
		}
		previous = append(previous, Override{Key: o.Key, Value: value})
	}

	for _, o := range overrides {
		if err := s.Set(o.Key, o.Value); err != nil {
			return nil, err
		}
	}

	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		for _, p := range previous {
			s.values[p.Key] = p.Value
		}
	}, nil
}

// WithOverrides runs fn with the overrides in effect and restores the prior
// values when fn returns, errors, or panics. fn is not called when an
// override names an unknown key.
func (s *Store) WithOverrides(overrides []Override, fn func() error) error {
	restore, err := s.Apply(overrides...)
	if err != nil {
		return err
	}
	defer restore()

	return fn()
}
