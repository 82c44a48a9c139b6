package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

func day(month, dom int) time.Time {
	return time.Date(2025, time.Month(month), dom, 9, 0, 0, 0, time.Local)
}

func TestBirthdaysOnMatchesMonthAndDay(t *testing.T) {
	cs := []model.Contact{
		{Name: "Ana", Email: "ana@example.com", BirthMonth: 3, BirthDay: 14, GroupIDs: []string{"g1"}},
		{Name: "Luis", Email: "luis@example.com", BirthMonth: 3, BirthDay: 15, GroupIDs: []string{"g1"}},
		{Name: "Carla", Email: "carla@example.com", BirthMonth: 4, BirthDay: 14, GroupIDs: []string{"g1"}},
	}

	matches := BirthdaysOn(cs, "g1", day(3, 14))
	assert.Equal(t, []model.Match{{Name: "Ana", Email: "ana@example.com"}}, matches)
}

func TestBirthdaysOnFiltersByGroup(t *testing.T) {
	cs := []model.Contact{
		{Name: "Ana", Email: "ana@example.com", BirthMonth: 3, BirthDay: 14, GroupIDs: []string{"members"}},
		{Name: "Luis", Email: "luis@example.com", BirthMonth: 3, BirthDay: 14, GroupIDs: []string{"staff"}},
	}

	matches := BirthdaysOn(cs, "members", day(3, 14))
	assert.Len(t, matches, 1)
	assert.Equal(t, "Ana", matches[0].Name)

	// Empty group disables membership filtering.
	matches = BirthdaysOn(cs, "", day(3, 14))
	assert.Len(t, matches, 2)
}

func TestBirthdaysOnSkipsIncompleteContacts(t *testing.T) {
	cs := []model.Contact{
		{Name: "", Email: "noname@example.com", BirthMonth: 3, BirthDay: 14},
		{Name: "NoEmail", Email: "", BirthMonth: 3, BirthDay: 14},
		{Name: "NoBirthday", Email: "nb@example.com"},
		{Name: "Ana", Email: "ana@example.com", BirthMonth: 3, BirthDay: 14},
	}

	matches := BirthdaysOn(cs, "", day(3, 14))
	assert.Equal(t, []model.Match{{Name: "Ana", Email: "ana@example.com"}}, matches)
}

func TestBirthdaysOnIgnoresYearInBirthday(t *testing.T) {
	cs := []model.Contact{
		{Name: "Ana", Email: "ana@example.com", BirthMonth: 12, BirthDay: 31, GroupIDs: []string{"g"}},
	}

	assert.Len(t, BirthdaysOn(cs, "g", day(12, 31)), 1)
	assert.Empty(t, BirthdaysOn(cs, "g", day(1, 1)))
}
