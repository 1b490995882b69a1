package identity

import (
	"regexp"
	"strings"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// User is the authenticated account as reported by the backend
type User struct {
	ID    shared.ID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Role  string    `json:"role,omitempty"`
}

// Credentials are the phone/password pair used to log in
type Credentials struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate checks the credentials before they are sent to the backend
func (c *Credentials) Validate() error {
	c.Phone = normalizePhone(c.Phone)
	if !phonePattern.MatchString(c.Phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must contain 10 to 15 digits")
	}
	if c.Password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password is required")
	}
	return nil
}

// Registration is the body of a new account request
type Registration struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate checks the registration before it is sent to the backend
func (r *Registration) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = normalizePhone(r.Phone)
	if r.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if len(r.Name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if !phonePattern.MatchString(r.Phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must contain 10 to 15 digits")
	}
	if len(r.Password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	return nil
}

func normalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}
