package markup

import "context"

// StaticStore serves a fixed rule set, used when no document store is
// configured.
type StaticStore struct {
	rules []Rule
}

func NewStaticStore(rules []Rule) *StaticStore {
	return &StaticStore{rules: rules}
}

func (s *StaticStore) ActiveRules(_ context.Context) ([]Rule, error) {
	active := make([]Rule, 0, len(s.rules))
	for _, rule := range s.rules {
		if rule.Status == StatusActive {
			active = append(active, rule)
		}
	}

	return active, nil
}
