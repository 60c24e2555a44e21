package models

const (
	RolePersonal = "Personal"
	RolePaciente = "Paciente"
	RoleAdmin    = "Admin"
)

type User struct {
	Email       string           `json:"email"`
	Password    string           `json:"-"`    // bcrypt hash, never serialised
	Role        string           `json:"role"` // "Personal", "Paciente", "Admin"
	Name        string           `json:"name"`
	Title       string           `json:"title,omitempty"`
	RoleType    string           `json:"roleType,omitempty"`
	Permissions *UserPermissions `json:"permissions,omitempty"`
}

// Clone returns a copy that shares no memory with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Permissions != nil {
		p := *u.Permissions
		c.Permissions = &p
	}
	return &c
}

type RoleTemplate struct {
	Description string          `json:"description"`
	Permissions UserPermissions `json:"permissions"`
}
