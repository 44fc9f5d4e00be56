package domain

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID       int    `db:"user_id"         json:"id"`
	Username string `db:"username"        json:"username"`
	Hash     string `db:"hashed_password" json:"-"`
	Role     string `db:"role"            json:"role"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   int
	Username string
	Role     string
}
