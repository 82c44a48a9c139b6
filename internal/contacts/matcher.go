package contacts

import (
	"slices"
	"time"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

// BirthdaysOn filters contacts down to members of groupID whose birthday
// month and day equal the given day. Contacts missing a name, email or
// birthday are skipped. An empty groupID disables the membership filter.
func BirthdaysOn(cs []model.Contact, groupID string, day time.Time) []model.Match {
	month := int(day.Month())
	dom := day.Day()

	var matches []model.Match
	for _, c := range cs {
		if c.Name == "" || c.Email == "" || c.BirthMonth == 0 || c.BirthDay == 0 {
			continue
		}
		if groupID != "" && !slices.Contains(c.GroupIDs, groupID) {
			continue
		}
		if c.BirthMonth == month && c.BirthDay == dom {
			matches = append(matches, model.Match{Name: c.Name, Email: c.Email})
		}
	}
	return matches
}
