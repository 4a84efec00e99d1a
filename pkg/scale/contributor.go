package scale

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// ContributorID identifies the mark or view that owns a contribution slot.
//
// IDs are issued by [Scale.Attach] and are only valid on the scale that
// issued them. They order by issue time, which fixes the order in which
// ordinal categories are first observed. The zero value is never issued.
type ContributorID struct {
	seq uint64
	uid uuid.UUID
}

// String returns the contributor's UUID, or "none" for the zero ID.
func (id ContributorID) String() string {
	if id.IsZero() {
		return "none"
	}
	return id.uid.String()
}

// IsZero reports whether id is the zero value.
func (id ContributorID) IsZero() bool { return id.seq == 0 }

// slot is one contributor's partial domain.
type slot struct {
	id     ContributorID
	domain Domain
}

// Attach issues a new contributor id with an empty slot on s.
func (s *Scale) Attach() ContributorID {
	s.nextSeq++
	id := ContributorID{seq: s.nextSeq, uid: uuid.New()}
	s.live[id] = struct{}{}
	s.logger.Debug("contributor attached", "scale", s.name, "contributor", id)
	return id
}

// Detach removes the contributor's slot, recomputes the domain and retires
// the id. Later writes through id are ignored.
func (s *Scale) Detach(id ContributorID) {
	if _, ok := s.live[id]; !ok {
		return
	}
	delete(s.live, id)
	s.logger.Debug("contributor detached", "scale", s.name, "contributor", id)
	s.DelDomain(id)
}

// Attached reports whether id is live on s.
func (s *Scale) Attached(id ContributorID) bool {
	_, ok := s.live[id]
	return ok
}

// Contributors returns the ids holding a non-deleted slot, in attach order.
func (s *Scale) Contributors() []ContributorID {
	out := make([]ContributorID, 0, len(s.contributions))
	for _, sl := range s.slots() {
		out = append(out, sl.id)
	}
	return out
}

// Contribution returns a copy of the partial domain stored for id.
func (s *Scale) Contribution(id ContributorID) (Domain, bool) {
	d, ok := s.contributions[id]
	if !ok {
		return Domain{}, false
	}
	return d.Clone(), true
}

// slots returns the contribution slots in ascending id order.
func (s *Scale) slots() []slot {
	out := make([]slot, 0, len(s.contributions))
	for id, d := range s.contributions {
		out = append(out, slot{id: id, domain: d})
	}
	slices.SortFunc(out, func(a, b slot) int { return cmp.Compare(a.id.seq, b.id.seq) })
	return out
}
