package registry

import (
	"github.com/coopstore/coopstore/internal/domain"
)

// MemberIDPrefix is prepended to every generated member id
const MemberIDPrefix = "M-"

// MemberRegistry holds members in enrollment order
type MemberRegistry struct {
	members list[domain.Member]
	names   *nameIndex
	seq     sequence
}

func NewMemberRegistry() *MemberRegistry {
	return &MemberRegistry{
		members: newList(func(m *domain.Member) string { return m.ID }),
		names:   newNameIndex(),
		seq:     newSequence(MemberIDPrefix, 1),
	}
}

// RestoreMemberRegistry rebuilds a registry from saved members and the saved
// counter. It fails on duplicate ids.
func RestoreMemberRegistry(members []*domain.Member, next int) (*MemberRegistry, error) {
	r := NewMemberRegistry()
	r.seq = newSequence(MemberIDPrefix, next)
	for _, m := range members {
		if err := r.members.add(m); err != nil {
			return nil, err
		}
		r.seq.observe(m.ID)
		r.names.insert(m.Name, m.ID)
	}
	return r, nil
}

// Add assigns the next member id and stores the member
func (r *MemberRegistry) Add(m *domain.Member) string {
	m.ID = r.seq.issue()
	// ids come from the sequence so add cannot collide
	_ = r.members.add(m)
	r.names.insert(m.Name, m.ID)
	return m.ID
}

func (r *MemberRegistry) Get(id string) (*domain.Member, bool) {
	return r.members.get(id)
}

// Remove deletes a member permanently; its id is never issued again
func (r *MemberRegistry) Remove(id string) bool {
	m, ok := r.members.remove(id)
	if ok {
		r.names.remove(m.Name, m.ID)
	}
	return ok
}

// Rename changes a member's name and keeps the name index in step
func (r *MemberRegistry) Rename(id, name string) bool {
	m, ok := r.members.get(id)
	if !ok {
		return false
	}
	r.names.remove(m.Name, m.ID)
	m.Name = name
	r.names.insert(m.Name, m.ID)
	return true
}

func (r *MemberRegistry) All() []*domain.Member {
	return r.members.all()
}

// SearchByName returns members whose name starts with prefix, any case
func (r *MemberRegistry) SearchByName(prefix string) []*domain.Member {
	var out []*domain.Member
	for _, id := range r.names.withPrefix(prefix) {
		if m, ok := r.members.get(id); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *MemberRegistry) Len() int {
	return r.members.len()
}

// Next is the counter value the next enrollment will use
func (r *MemberRegistry) Next() int {
	return r.seq.next
}
