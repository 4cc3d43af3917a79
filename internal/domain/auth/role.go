package auth

import (
	"strings"

	"club-roster/internal/pkg/errs"
)

var ErrInvalidRole = errs.New("invalid role")

// Role gates the operator API. Viewers read rosters and statistics;
// admins may also force a refresh of the upstream fetch.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleAdmin  Role = "admin"
)

var roleLevel = map[Role]int{
	RoleViewer: 1,
	RoleAdmin:  2,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleLevel[r]
	return ok
}

// AtLeast reports whether r grants everything min does.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleLevel[r]
	want, minOK := roleLevel[min]
	return ok && minOK && have >= want
}

func NewRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Operator is the identity carried by an access token.
type Operator struct {
	Subject string
	Role    Role
}
