package auth

import "easyshop/internal/domain"

// HasRole reports whether p carries role. The zero Principal is anonymous
// and holds no role.
func HasRole(p domain.Principal, role string) bool {
	return role != "" && p.UserID != 0 && p.Role == role
}
