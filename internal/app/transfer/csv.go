// Package transfer converts between the roster's in-memory shapes and the
// exchange formats members are imported from and exported to: the Korean
// spreadsheet CSV layout the church has always used, and the prayer-import
// JSON document. Matching import rows to existing members happens here, by
// exact name equality; all mutation still goes through the roster store.
package transfer

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/app/roster"
	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// bom is prepended on export so Korean headers open correctly in Excel.
const bom = "\xEF\xBB\xBF"

// csvHeaders is the canonical column order. Import maps headers by name, so
// reordered or partial files still load; export always writes this layout.
var csvHeaders = []string{
	"이름", "연락처", "주소", "상세주소", "생년월일", "성별", "직분", "소속", "구역",
	"세대주", "관계", "세례종류", "세례일", "세례받은교회", "등록일", "세례교인회원가입일",
	"활동여부", "비고",
}

var statusLabels = map[domain.MemberStatus]string{
	domain.StatusActive:   "활동",
	domain.StatusInactive: "비활동",
	domain.StatusRemoved:  "제적",
}

func statusFromLabel(s string) (domain.MemberStatus, bool) {
	switch strings.TrimSpace(s) {
	case "활동", string(domain.StatusActive):
		return domain.StatusActive, true
	case "비활동", string(domain.StatusInactive):
		return domain.StatusInactive, true
	case "제적", string(domain.StatusRemoved):
		return domain.StatusRemoved, true
	}
	return "", false
}

// ParseCSV parses a member spreadsheet into form data ready for
// Store.Add. Rows that cannot be imported are reported as row-numbered
// messages rather than failing the whole file; now supplies the default
// registration date for rows that omit one.
func ParseCSV(csvText string, now time.Time) ([]roster.MemberFormData, []string) {
	csvText = strings.TrimPrefix(csvText, bom)

	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, []string{fmt.Sprintf("CSV를 읽을 수 없습니다: %v", err)}
	}
	if len(rows) < 2 {
		return nil, []string{"CSV 파일에 데이터가 없습니다."}
	}

	// Map each column to a field by its header.
	setters := make([]func(*roster.MemberFormData, string), len(rows[0]))
	nameCol := -1
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		setters[i] = columnSetters[h]
		if h == "이름" {
			nameCol = i
		}
	}
	if nameCol == -1 {
		return nil, []string{"'이름' 열을 찾을 수 없습니다. 첫 번째 행에 '이름' 헤더가 필요합니다."}
	}

	var (
		members []roster.MemberFormData
		errs    []string
	)
	for rowNum, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		form := roster.MemberFormData{
			Position:         "성도",
			RegistrationDate: now.Format("2006-01-02"),
			Status:           domain.StatusActive,
		}
		for i, field := range row {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			if field = strings.TrimSpace(field); field != "" {
				setters[i](&form, field)
			}
		}

		if strings.TrimSpace(form.Name) == "" {
			errs = append(errs, fmt.Sprintf("%d행: 이름이 비어 있어 건너뜁니다.", rowNum+2))
			continue
		}
		members = append(members, form)
	}

	return members, errs
}

var columnSetters = map[string]func(*roster.MemberFormData, string){
	"이름":         func(f *roster.MemberFormData, v string) { f.Name = v },
	"연락처":        func(f *roster.MemberFormData, v string) { f.Phone = v },
	"주소":         func(f *roster.MemberFormData, v string) { f.Address = v },
	"상세주소":       func(f *roster.MemberFormData, v string) { f.DetailAddress = v },
	"생년월일":       func(f *roster.MemberFormData, v string) { f.BirthDate = v },
	"성별":         func(f *roster.MemberFormData, v string) { f.Gender = v },
	"직분":         func(f *roster.MemberFormData, v string) { f.Position = v },
	"소속":         func(f *roster.MemberFormData, v string) { f.Department = v },
	"구역":         func(f *roster.MemberFormData, v string) { f.District = v },
	"세대주":        func(f *roster.MemberFormData, v string) { f.FamilyHead = v },
	"관계":         func(f *roster.MemberFormData, v string) { f.Relationship = v },
	"세례종류":       func(f *roster.MemberFormData, v string) { f.BaptismType = v },
	"세례일":        func(f *roster.MemberFormData, v string) { f.BaptismDate = v },
	"세례받은교회":     func(f *roster.MemberFormData, v string) { f.BaptismChurch = v },
	"등록일":        func(f *roster.MemberFormData, v string) { f.RegistrationDate = v },
	"세례교인회원가입일":  func(f *roster.MemberFormData, v string) { f.MemberJoinDate = v },
	"비고":         func(f *roster.MemberFormData, v string) { f.Notes = v },
	"활동여부": func(f *roster.MemberFormData, v string) {
		if st, ok := statusFromLabel(v); ok {
			f.Status = st
		}
	},
}

func isBlankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ExportCSV renders the collection in the canonical spreadsheet layout,
// BOM-prefixed for Excel.
func ExportCSV(members []domain.Member) (string, error) {
	var b strings.Builder
	b.WriteString(bom)

	w := csv.NewWriter(&b)
	if err := w.Write(csvHeaders); err != nil {
		return "", err
	}
	for _, m := range members {
		row := []string{
			m.Name,
			str(m.Phone),
			str(m.Address),
			str(m.DetailAddress),
			str(m.BirthDate),
			str(m.Gender),
			str(m.Position),
			str(m.Department),
			str(m.District),
			str(m.FamilyHead),
			str(m.Relationship),
			str(m.BaptismType),
			str(m.BaptismDate),
			str(m.BaptismChurch),
			str(m.RegistrationDate),
			str(m.MemberJoinDate),
			statusLabels[m.Status],
			str(m.Notes),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
