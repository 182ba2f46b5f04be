package roster

import (
	"time"

	"github.com/browncherrycoffee/gwanak-church/internal/domain"
)

// SeedMembers returns the built-in sample set used when no usable snapshot
// exists, and by ResetToSeed. IDs and timestamps are fixed so reseeding is
// reproducible.
func SeedMembers() []domain.Member {
	seeded := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	return []domain.Member{
		{
			ID:             "seed-0001",
			Name:           "김영수",
			Phone:          ptr("010-1234-5678"),
			Address:        ptr("서울시 관악구 봉천동"),
			BirthDate:      ptr("1958-03-15"),
			Gender:         ptr("남"),
			Position:       ptr("장로"),
			Department:     ptr("제1남전도회"),
			District:       ptr("1구역"),
			FamilyHead:     ptr("김영수"),
			Relationship:   ptr("본인(세대주)"),
			BaptismType:    ptr("세례"),
			BaptismDate:    ptr("1979-04-08"),
			Status:         domain.StatusActive,
			PrayerRequests: []domain.PrayerRequest{},
			PastoralVisits: []domain.PastoralVisit{},
			CreatedAt:      seeded,
			UpdatedAt:      seeded,
		},
		{
			ID:             "seed-0002",
			Name:           "박순자",
			Phone:          ptr("010-2345-6789"),
			Address:        ptr("서울시 관악구 봉천동"),
			BirthDate:      ptr("1961-11-02"),
			Gender:         ptr("여"),
			Position:       ptr("집사"),
			Department:     ptr("제1여전도회"),
			District:       ptr("1구역"),
			FamilyHead:     ptr("김영수"),
			Relationship:   ptr("배우자"),
			BaptismType:    ptr("세례"),
			Status:         domain.StatusActive,
			PrayerRequests: []domain.PrayerRequest{},
			PastoralVisits: []domain.PastoralVisit{},
			CreatedAt:      seeded,
			UpdatedAt:      seeded,
		},
		{
			ID:             "seed-0003",
			Name:           "이민지",
			Phone:          ptr("010-3456-7890"),
			Address:        ptr("서울시 동작구 사당동"),
			BirthDate:      ptr("1994-07-21"),
			Gender:         ptr("여"),
			Position:       ptr("청년"),
			Department:     ptr("청년부직장인"),
			District:       ptr("3구역"),
			Status:         domain.StatusActive,
			PrayerRequests: []domain.PrayerRequest{},
			PastoralVisits: []domain.PastoralVisit{},
			CreatedAt:      seeded,
			UpdatedAt:      seeded,
		},
		{
			ID:             "seed-0004",
			Name:           "최재호",
			Phone:          ptr("010-4567-8901"),
			BirthDate:      ptr("1947"),
			Gender:         ptr("남"),
			Position:       ptr("성도"),
			District:       ptr("2구역"),
			Notes:          ptr("거동 불편, 심방 시 연락 필수"),
			Status:         domain.StatusInactive,
			PrayerRequests: []domain.PrayerRequest{},
			PastoralVisits: []domain.PastoralVisit{},
			CreatedAt:      seeded,
			UpdatedAt:      seeded,
		},
		{
			ID:             "seed-0005",
			Name:           "정은혜",
			Gender:         ptr("여"),
			Position:       ptr("학생"),
			Department:     ptr("중고등SFC"),
			Status:         domain.StatusActive,
			PrayerRequests: []domain.PrayerRequest{},
			PastoralVisits: []domain.PastoralVisit{},
			CreatedAt:      seeded,
			UpdatedAt:      seeded,
		},
	}
}

func ptr(s string) *string { return &s }
