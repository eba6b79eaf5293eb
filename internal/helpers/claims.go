package helpers

type EnhancedClaims struct {
	*CustomClaims
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}
