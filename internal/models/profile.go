package models

// UserProfile is shared read-only by every panel.
type UserProfile struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	LastCheckup string `json:"lastCheckup"`
	Language    string `json:"language"`
}

func DefaultProfile() UserProfile {
	return UserProfile{Name: "John Doe", Age: 68, LastCheckup: "Aug 2025", Language: "en"}
}
