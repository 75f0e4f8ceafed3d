package models

// Role names are a fixed set; the seeder creates exactly these two.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User is an account that can place orders. Password holds the bcrypt hash
// and is never serialised.
type User struct {
	Base
	FirstName string `gorm:"size:255" json:"first_name"`
	LastName  string `gorm:"size:255" json:"last_name"`
	UserName  string `gorm:"size:255;not null;uniqueIndex" json:"user_name"`
	Email     string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

// Role is an authorisation group.
type Role struct {
	Base
	Name        string `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

// HasRole reports whether the user's loaded role set contains name.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// PrimaryRole returns Admin when present, else User. It is what goes into
// the JWT role claim.
func (u User) PrimaryRole() string {
	if u.HasRole(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}
