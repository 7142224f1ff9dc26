package domain

// Member is a stregsystem user profile, assembled from the id-by-username
// and info-by-id lookups. Balance is in øre. Never cached beyond the
// caller's lifetime.
type Member struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Balance  int64  `json:"balance"`
}
