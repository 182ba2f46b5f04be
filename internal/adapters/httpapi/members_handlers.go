package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"

	"github.com/browncherrycoffee/gwanak-church/internal/app/roster"
	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

type membersResponse struct {
	Members []domain.Member `json:"members"`
}

// memberFormDTO is the create shape: plain strings, empty means unset.
type memberFormDTO struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	DetailAddress    string `json:"detailAddress"`
	BirthDate        string `json:"birthDate"`
	Gender           string `json:"gender"`
	Position         string `json:"position"`
	Department       string `json:"department"`
	District         string `json:"district"`
	FamilyHead       string `json:"familyHead"`
	Relationship     string `json:"relationship"`
	BaptismDate      string `json:"baptismDate"`
	BaptismType      string `json:"baptismType"`
	BaptismChurch    string `json:"baptismChurch"`
	RegistrationDate string `json:"registrationDate"`
	MemberJoinDate   string `json:"memberJoinDate"`
	Notes            string `json:"notes"`
	PhotoURL         string `json:"photoUrl"`
	Status           string `json:"memberStatus"`
}

func (d memberFormDTO) toForm() roster.MemberFormData {
	return roster.MemberFormData{
		Name:             d.Name,
		Phone:            d.Phone,
		Address:          d.Address,
		DetailAddress:    d.DetailAddress,
		BirthDate:        d.BirthDate,
		Gender:           d.Gender,
		Position:         d.Position,
		Department:       d.Department,
		District:         d.District,
		FamilyHead:       d.FamilyHead,
		Relationship:     d.Relationship,
		BaptismDate:      d.BaptismDate,
		BaptismType:      d.BaptismType,
		BaptismChurch:    d.BaptismChurch,
		RegistrationDate: d.RegistrationDate,
		MemberJoinDate:   d.MemberJoinDate,
		Notes:            d.Notes,
		PhotoURL:         d.PhotoURL,
		Status:           domain.MemberStatus(d.Status),
	}
}

// memberPatchDTO is the partial-update shape. Absent keys leave the field
// alone; explicit null clears it.
type memberPatchDTO struct {
	Name             nullable.Nullable[string] `json:"name"`
	Phone            nullable.Nullable[string] `json:"phone"`
	Address          nullable.Nullable[string] `json:"address"`
	DetailAddress    nullable.Nullable[string] `json:"detailAddress"`
	BirthDate        nullable.Nullable[string] `json:"birthDate"`
	Gender           nullable.Nullable[string] `json:"gender"`
	Position         nullable.Nullable[string] `json:"position"`
	Department       nullable.Nullable[string] `json:"department"`
	District         nullable.Nullable[string] `json:"district"`
	FamilyHead       nullable.Nullable[string] `json:"familyHead"`
	Relationship     nullable.Nullable[string] `json:"relationship"`
	BaptismDate      nullable.Nullable[string] `json:"baptismDate"`
	BaptismType      nullable.Nullable[string] `json:"baptismType"`
	BaptismChurch    nullable.Nullable[string] `json:"baptismChurch"`
	RegistrationDate nullable.Nullable[string] `json:"registrationDate"`
	MemberJoinDate   nullable.Nullable[string] `json:"memberJoinDate"`
	Notes            nullable.Nullable[string] `json:"notes"`
	PhotoURL         nullable.Nullable[string] `json:"photoUrl"`
	Status           nullable.Nullable[string] `json:"memberStatus"`
}

func (d memberPatchDTO) toPatch() roster.MemberPatch {
	p := roster.MemberPatch{
		Name:             optFromNullable(d.Name),
		Phone:            optFromNullable(d.Phone),
		Address:          optFromNullable(d.Address),
		DetailAddress:    optFromNullable(d.DetailAddress),
		BirthDate:        optFromNullable(d.BirthDate),
		Gender:           optFromNullable(d.Gender),
		Position:         optFromNullable(d.Position),
		Department:       optFromNullable(d.Department),
		District:         optFromNullable(d.District),
		FamilyHead:       optFromNullable(d.FamilyHead),
		Relationship:     optFromNullable(d.Relationship),
		BaptismDate:      optFromNullable(d.BaptismDate),
		BaptismType:      optFromNullable(d.BaptismType),
		RegistrationDate: optFromNullable(d.RegistrationDate),
		BaptismChurch:    optFromNullable(d.BaptismChurch),
		MemberJoinDate:   optFromNullable(d.MemberJoinDate),
		Notes:            optFromNullable(d.Notes),
		PhotoURL:         optFromNullable(d.PhotoURL),
	}
	if d.Status.IsSpecified() {
		if d.Status.IsNull() {
			p.Status = roster.Null[domain.MemberStatus]()
		} else {
			v, _ := d.Status.Get()
			p.Status = roster.Some(domain.MemberStatus(v))
		}
	}
	return p
}

func optFromNullable(n nullable.Nullable[string]) roster.Optional[string] {
	if !n.IsSpecified() {
		return roster.Unspecified[string]()
	}
	if n.IsNull() {
		return roster.Null[string]()
	}
	v, err := n.Get()
	if err != nil {
		return roster.Null[string]()
	}
	return roster.Some(v)
}

// handleListMembers returns the roster, fuzzily filtered and ranked when a
// query is present.
func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members := s.Roster.GetAll()
	if q := r.URL.Query().Get("q"); q != "" {
		members = s.Searcher.Search(members, q)
	}
	writeJSON(w, http.StatusOK, membersResponse{Members: members})
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var dto memberFormDTO
	if err := decodeJSON(r, &dto); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.Roster.Add(dto.toForm())
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	m, ok := s.Roster.GetByID(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "member not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	var dto memberPatchDTO
	if err := decodeJSON(r, &dto); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.Roster.Update(id, dto.toPatch())
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	if !s.Roster.Delete(id) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "member not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleStatus(w http.ResponseWriter, r *http.Request) {
	id := domain.MemberID(chi.URLParam(r, "memberID"))
	m, err := s.Roster.ToggleStatus(id)
	if err != nil {
		writeRosterError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func writeRosterError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roster.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "member not found")
	case errors.Is(err, roster.ErrNameRequired):
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
	case errors.Is(err, roster.ErrInvalidStatus):
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid member status")
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
