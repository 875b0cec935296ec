package names

import "github.com/nobet/nobet/pkg/model"

// Resolver maps raw person references (a staff id or a free-text name)
// to staff ids. It is built once per engine run from the staff index
// and holds no state beyond its lookup tables.
type Resolver struct {
	byID        map[string]*model.StaffMember
	byCanonical map[string]string
	byFirstLast map[string]string
	byLast      map[string][]string
}

// NewResolver indexes the given staff members.
func NewResolver(staff []*model.StaffMember) *Resolver {
	r := &Resolver{
		byID:        make(map[string]*model.StaffMember, len(staff)),
		byCanonical: make(map[string]string, len(staff)),
		byFirstLast: make(map[string]string, len(staff)),
		byLast:      make(map[string][]string),
	}
	for _, s := range staff {
		r.byID[s.ID] = s
		canonical := s.NameCanonical
		if canonical == "" {
			canonical = Canonical(s.Name)
		}
		if canonical == "" {
			continue
		}
		if _, exists := r.byCanonical[canonical]; !exists {
			r.byCanonical[canonical] = s.ID
		}
		tokens := Tokens(canonical)
		if len(tokens) >= 2 {
			key := tokens[0] + " " + tokens[len(tokens)-1]
			if _, exists := r.byFirstLast[key]; !exists {
				r.byFirstLast[key] = s.ID
			}
		}
		if len(tokens) >= 1 {
			last := tokens[len(tokens)-1]
			r.byLast[last] = append(r.byLast[last], s.ID)
		}
	}
	return r
}

// Lookup returns the staff member for a known id.
func (r *Resolver) Lookup(id string) (*model.StaffMember, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Resolve maps a raw id-or-name to a staff id. Matching order: known
// id, exact canonical name, first+last token, last token when unique
// among staff. Returns false when nothing matches.
func (r *Resolver) Resolve(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if _, ok := r.byID[raw]; ok {
		return raw, true
	}

	canonical := Canonical(raw)
	if canonical == "" {
		return "", false
	}
	if id, ok := r.byCanonical[canonical]; ok {
		return id, true
	}

	tokens := Tokens(canonical)
	if len(tokens) >= 2 {
		key := tokens[0] + " " + tokens[len(tokens)-1]
		if id, ok := r.byFirstLast[key]; ok {
			return id, true
		}
	}
	if len(tokens) >= 1 {
		if ids := r.byLast[tokens[len(tokens)-1]]; len(ids) == 1 {
			return ids[0], true
		}
	}
	return "", false
}

// ResolveMember resolves a raw reference directly to a staff member.
func (r *Resolver) ResolveMember(raw string) (*model.StaffMember, bool) {
	id, ok := r.Resolve(raw)
	if !ok {
		return nil, false
	}
	s, ok := r.byID[id]
	return s, ok
}
