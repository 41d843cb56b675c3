package core

import (
	"fmt"
	"sort"
	"strconv"
)

// Directory is the read-only member table keyed by username.
type Directory struct {
	order   []string
	members map[string]Member
}

var _ MemberLookup = (*Directory)(nil)

// NewDirectory indexes members by username. A later duplicate replaces the
// earlier record but keeps its position.
func NewDirectory(members []Member) *Directory {
	d := &Directory{members: make(map[string]Member, len(members))}
	for _, m := range members {
		if _, seen := d.members[m.Username]; !seen {
			d.order = append(d.order, m.Username)
		}
		d.members[m.Username] = m
	}
	return d
}

// Lookup implements MemberLookup.
func (d *Directory) Lookup(username string) (Member, bool) {
	if d == nil {
		return Member{}, false
	}
	m, ok := d.members[username]
	return m, ok
}

// Members returns all members in directory order.
func (d *Directory) Members() []Member {
	if d == nil {
		return nil
	}
	out := make([]Member, 0, len(d.order))
	for _, u := range d.order {
		out = append(out, d.members[u])
	}
	return out
}

// Len returns the number of members.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Snapshot returns the flat username -> field map used for persistence.
func (d *Directory) Snapshot() map[string]map[string]string {
	out := make(map[string]map[string]string, d.Len())
	for _, m := range d.Members() {
		out[m.Username] = map[string]string{
			FieldUsername: m.Username,
			FieldName:     m.Name,
			FieldUnitBox:  m.UnitBox,
			FieldBannerID: m.BannerID,
			FieldYear:     strconv.Itoa(m.Year),
		}
	}
	return out
}

// DirectoryFromSnapshot rebuilds a Directory from Snapshot output. Members
// are ordered by username.
func DirectoryFromSnapshot(snap map[string]map[string]string, book AddressBook) (*Directory, error) {
	usernames := make([]string, 0, len(snap))
	for u := range snap {
		usernames = append(usernames, u)
	}
	sort.Strings(usernames)

	members := make([]Member, 0, len(usernames))
	for _, u := range usernames {
		fields := snap[u]
		m, err := NewMember(MemberFields{
			Username: u,
			Name:     fields[FieldName],
			UnitBox:  fields[FieldUnitBox],
			BannerID: fields[FieldBannerID],
			Year:     fields[FieldYear],
		}, book)
		if err != nil {
			return nil, fmt.Errorf("snapshot member %s: %w", u, err)
		}
		members = append(members, m)
	}
	return NewDirectory(members), nil
}
