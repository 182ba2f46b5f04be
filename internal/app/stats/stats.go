// Package stats computes read-only roster summaries. Everything here is a
// pure function over a members snapshot; the snapshot is never mutated.
package stats

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// Summary is the aggregated view backing the statistics page. All counts
// exclude removed members; ByDepartment additionally counts active members
// only, since departments roster people who actually serve.
type Summary struct {
	Total         int            `json:"total"`
	Active        int            `json:"active"`
	Inactive      int            `json:"inactive"`
	Removed       int            `json:"removed"`
	ByPosition    map[string]int `json:"byPosition"`
	ByDepartment  map[string]int `json:"byDepartment"`
	ByGender      map[string]int `json:"byGender"`
	ByBaptismType map[string]int `json:"byBaptismType"`
	ByAgeGroup    map[string]int `json:"byAgeGroup"`
}

const unspecified = "미지정"

// Summarize aggregates the snapshot as of now (used for age grouping).
func Summarize(members []domain.Member, now time.Time) Summary {
	s := Summary{
		ByPosition:    map[string]int{},
		ByDepartment:  map[string]int{},
		ByGender:      map[string]int{},
		ByBaptismType: map[string]int{},
		ByAgeGroup:    map[string]int{},
	}
	for _, m := range members {
		switch m.Status {
		case domain.StatusActive:
			s.Active++
		case domain.StatusInactive:
			s.Inactive++
		case domain.StatusRemoved:
			s.Removed++
			continue
		}
		s.Total++

		s.ByPosition[bucket(m.Position)]++
		s.ByGender[bucket(m.Gender)]++
		s.ByBaptismType[bucket(m.BaptismType)]++
		s.ByAgeGroup[ageGroup(m.BirthDate, now)]++
		if m.Status == domain.StatusActive {
			s.ByDepartment[bucket(m.Department)]++
		}
	}
	return s
}

func bucket(p *string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return unspecified
	}
	return strings.TrimSpace(*p)
}

// ageGroup maps a birth date to a decade label ("20대", "70대 이상").
// Partial dates ("1954", "1954-07") count too; only the year matters.
func ageGroup(birthDate *string, now time.Time) string {
	year, ok := birthYear(birthDate)
	if !ok {
		return unspecified
	}
	age := now.Year() - year
	switch {
	case age < 0:
		return unspecified
	case age < 10:
		return "10대 미만"
	case age >= 70:
		return "70대 이상"
	default:
		return strconv.Itoa(age/10*10) + "대"
	}
}

func birthYear(birthDate *string) (int, bool) {
	if birthDate == nil {
		return 0, false
	}
	s := strings.TrimSpace(*birthDate)
	if len(s) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil || year < 1000 {
		return 0, false
	}
	return year, true
}

// BirthdaysInMonth returns non-removed members whose birthday falls in the
// given month (1..12), sorted by day then name. Members whose birth date
// has no month component ("1954") are excluded.
func BirthdaysInMonth(members []domain.Member, month time.Month) []domain.Member {
	type entry struct {
		day int
		m   domain.Member
	}
	var hits []entry
	for _, m := range members {
		if m.Status == domain.StatusRemoved {
			continue
		}
		mm, day, ok := birthMonthDay(m.BirthDate)
		if !ok || mm != int(month) {
			continue
		}
		hits = append(hits, entry{day: day, m: m})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].day != hits[j].day {
			return hits[i].day < hits[j].day
		}
		return hits[i].m.Name < hits[j].m.Name
	})
	out := make([]domain.Member, len(hits))
	for i, h := range hits {
		out[i] = h.m
	}
	return out
}

// birthMonthDay parses the month and day out of an ISO-ish birth date.
// Day defaults to 0 when absent ("1954-07") so month-only entries still
// show up in the month view, sorted first.
func birthMonthDay(birthDate *string) (month, day int, ok bool) {
	if birthDate == nil {
		return 0, 0, false
	}
	parts := strings.SplitN(strings.TrimSpace(*birthDate), "-", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	if len(parts) >= 3 {
		if d, err := strconv.Atoi(parts[2]); err == nil {
			day = d
		}
	}
	return month, day, true
}

// Household is one family grouping: the head (when present on the roster)
// and every member whose familyHead names them.
type Household struct {
	HeadName string          `json:"headName"`
	Head     *domain.Member  `json:"head,omitempty"`
	Members  []domain.Member `json:"members"`
}

// Households groups non-removed members by exact familyHead match.
// Members without a familyHead that nobody else points at are returned as
// single-person households. Linkage is by name string, not ID; two members
// sharing a name will collide, which mirrors how backups record families.
func Households(members []domain.Member) []Household {
	byName := make(map[string]*domain.Member, len(members))
	for i := range members {
		if members[i].Status == domain.StatusRemoved {
			continue
		}
		if _, dup := byName[members[i].Name]; !dup {
			byName[members[i].Name] = &members[i]
		}
	}

	grouped := map[string][]domain.Member{}
	var order []string
	add := func(head string, m domain.Member) {
		if _, seen := grouped[head]; !seen {
			order = append(order, head)
		}
		grouped[head] = append(grouped[head], m)
	}
	for _, m := range members {
		if m.Status == domain.StatusRemoved {
			continue
		}
		head := m.Name
		if m.FamilyHead != nil && *m.FamilyHead != "" {
			head = *m.FamilyHead
		}
		add(head, m)
	}

	out := make([]Household, 0, len(order))
	for _, head := range order {
		h := Household{HeadName: head, Members: grouped[head]}
		if hm, ok := byName[head]; ok {
			c := hm.Clone()
			h.Head = &c
		}
		out = append(out, h)
	}
	return out
}
