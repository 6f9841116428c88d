package domain

// Identity is the user an access token resolves to.
type Identity struct {
	ID    string // Opaque identifier, echoed back unchanged
	Name  string // Display name
	Email string // Contact address
}
