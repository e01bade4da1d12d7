package roster

// MembershipKind classifies how an entry relates to the organization.
type MembershipKind string

const (
	KindMember    MembershipKind = "member"
	KindSupporter MembershipKind = "supporter"
	// KindBoth marks an entry whose (name, phone) pair appeared in both
	// source collections.
	KindBoth MembershipKind = "both"
)

// Entry is one person or organization eligible to pay. Entries are
// immutable once the builder has finished; the matcher reads them only.
type Entry struct {
	ID          string
	Name        string
	Phone       string
	Email       string
	CompanyName string
	JoinDate    string
	Kind        MembershipKind

	// ExpectedAmount is the pledged amount, 0 when none is known.
	// Meaningful for supporters; drives amount-based matching.
	ExpectedAmount float64

	// MergedCount is how many source rows collapsed into this entry.
	MergedCount int
}

// Roster is the deduplicated master list. Entries keeps the order ids were
// assigned in; matching scans it in that order so ties are stable.
type Roster struct {
	Entries []Entry
}

// Lookup returns the entry with the given id, or nil.
func (r *Roster) Lookup(id string) *Entry {
	for i := range r.Entries {
		if r.Entries[i].ID == id {
			return &r.Entries[i]
		}
	}
	return nil
}

// BuildStats reports what the builder did with the raw rows. Skips are
// counted by reason instead of silently dropped so data-quality problems
// stay visible.
type BuildStats struct {
	MemberRows    int
	SupporterRows int
	Skipped       map[string]int
	Merged        int
}

// Skip reasons used by the builder.
const (
	SkipNoName = "no_name"
)
