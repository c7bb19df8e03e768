package domain

// Role identifies a desk operator's access level.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSoporte      Role = "soporte"
	RoleEspecialista Role = "especialista"
	RoleTecnico      Role = "tecnico"
)

// User is the canonical operator identity. Username is the login email.
type User struct {
	ID          int64
	Username    string
	Name        string
	Role        Role
	Avatar      string
	Permissions []string
}
