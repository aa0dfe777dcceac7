package domain

import "time"

// Permissions understood by the access enforcement layer.
const (
	PermissionManageUsers      = "MANAGE_USERS"
	PermissionManageRoles      = "MANAGE_ROLES"
	PermissionManageCategories = "MANAGE_CATEGORIES"
)

// Role is a named bundle of permissions. Roles are shared reference data:
// users hold non-owning references by id, and a role's lifecycle is
// independent of any single user.
type Role struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Name        string   `json:"name" bson:"name"`
	Permissions []string `json:"permissions" bson:"permissions"`
}

// HasPermission reports whether the role grants the named permission.
func (r *Role) HasPermission(perm string) bool {
	for _, p := range r.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// User models a managed account.
//
// Password is transient: it carries the plaintext submitted on create/update
// and is never persisted or serialized back out. PasswordHash is the only
// stored credential form. RoleIDs is the persisted assignment; Roles is
// populated from the catalog when a user is loaded.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	Password     string    `json:"-" bson:"-"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	RoleIDs      []string  `json:"-" bson:"role_ids"`
	Roles        []*Role   `json:"roles" bson:"-"`
	Enabled      bool      `json:"enabled" bson:"enabled"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// HasRole reports whether the user is assigned the role with the given id.
func (u *User) HasRole(roleID string) bool {
	for _, id := range u.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// AssignmentSlots aligns the user's assigned roles against the full catalog:
// the result has the same length and order as the catalog, holding the role
// at index k when it is assigned and nil when it is not. This is the
// edit-form representation only; storage keeps RoleIDs, so reordering the
// catalog between load and submit cannot corrupt assignments.
func (u *User) AssignmentSlots(catalog []*Role) []*Role {
	slots := make([]*Role, len(catalog))
	for i, role := range catalog {
		if u.HasRole(role.ID) {
			slots[i] = role
		}
	}
	return slots
}

// RoleIDsFromSlots collapses a positional slot list back into the assigned
// role ids, dropping nil entries. Order follows the slot list.
func RoleIDsFromSlots(slots []*Role) []string {
	ids := make([]string, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Principal is the authenticated identity attached to a request by the auth
// middleware. Permissions is the union over the principal's roles, flattened
// into the token at login so authorization checks need no catalog lookup.
type Principal struct {
	Username    string
	Roles       []string
	Permissions []string
}

// Can reports whether the principal holds the named permission.
func (p *Principal) Can(perm string) bool {
	for _, held := range p.Permissions {
		if held == perm {
			return true
		}
	}
	return false
}
