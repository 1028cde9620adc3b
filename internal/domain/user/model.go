package user

// User is an account directory entry. The console only lists users; it
// never creates or mutates them.
type User struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	FirebaseUID string `json:"firebaseUid,omitempty"`
}
