package model

// Contact is a directory entry as returned by the contacts provider.
type Contact struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	BirthMonth int      `json:"birthMonth"` // 1-12, 0 if unknown
	BirthDay   int      `json:"birthDay"`   // 1-31, 0 if unknown
	GroupIDs   []string `json:"groupIds"`
}

// Group is a contact group in the directory.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match is a contact whose birthday falls on the queried day.
type Match struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
