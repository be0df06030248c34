package app

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/routine"
)

var (
	// ErrNotFound is returned when no block or task matches an id.
	ErrNotFound = errors.New("app: no block or task matches id")
	// ErrAmbiguous is returned when an id prefix matches more than one node.
	ErrAmbiguous = errors.New("app: id prefix is ambiguous")
)

// Locate resolves id, or a unique prefix of it, to the block, task or
// sub-task it names in the tree an edit in scope would see. An exact id
// always wins over prefixes.
func (s *Service) Locate(scope mutate.Scope, id string) (mutate.Ref, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return mutate.Ref{}, ErrNotFound
	}
	s.mu.Lock()
	blocks := mutate.Tree(s.data, s.resolver(), scope)
	s.mu.Unlock()

	var matches []mutate.Ref
	for _, ref := range refs(blocks) {
		leaf := ref.BlockID
		if !ref.IsBlock() {
			leaf = ref.TaskID
		}
		if leaf == id {
			return ref, nil
		}
		if strings.HasPrefix(leaf, id) {
			matches = append(matches, ref)
		}
	}
	switch len(matches) {
	case 0:
		return mutate.Ref{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return mutate.Ref{}, fmt.Errorf("%w: %s matches %d nodes", ErrAmbiguous, id, len(matches))
	}
}

func refs(blocks []routine.Block) []mutate.Ref {
	var out []mutate.Ref
	for _, b := range blocks {
		out = append(out, mutate.BlockRef(b.ID))
		for _, t := range b.Tasks {
			out = append(out, mutate.TaskRef(b.ID, t.ID))
			for _, sub := range t.SubTasks {
				out = append(out, mutate.SubTaskRef(b.ID, t.ID, sub.ID))
			}
		}
	}
	return out
}

// GoalID resolves a recurring goal id or unique prefix.
func (s *Service) GoalID(id string) (string, error) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.data.RecurringGoals))
	for _, g := range s.data.RecurringGoals {
		ids = append(ids, g.ID)
	}
	s.mu.Unlock()
	return matchID(ids, id)
}

// TemplateID resolves a template id, unique id prefix or exact name.
func (s *Service) TemplateID(id string) (string, error) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.data.Templates))
	for _, t := range s.data.Templates {
		if t.Name == id {
			s.mu.Unlock()
			return t.ID, nil
		}
		ids = append(ids, t.ID)
	}
	s.mu.Unlock()
	return matchID(ids, id)
}

// InboxID resolves an inbox task id or unique prefix.
func (s *Service) InboxID(id string) (string, error) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.data.InboxTasks))
	for _, t := range s.data.InboxTasks {
		ids = append(ids, t.ID)
	}
	s.mu.Unlock()
	return matchID(ids, id)
}

func matchID(ids []string, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrNotFound
	}
	var found []string
	for _, candidate := range ids {
		if candidate == id {
			return candidate, nil
		}
		if strings.HasPrefix(candidate, id) {
			found = append(found, candidate)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d ids", ErrAmbiguous, id, len(found))
	}
}
