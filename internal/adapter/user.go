package adapter

import (
	"encoding/json"
	"strings"

	"github.com/ricardo-aragon/ticashop-desk/internal/auth"
	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

// DecodeUser parses a raw upstream usuario.
func DecodeUser(data []byte) (domain.User, []Fallback) {
	var p UsuarioPayload
	if err := json.Unmarshal(data, &p); err != nil {
		u, fb := UserFromBackend(UsuarioPayload{})
		return u, append(fb, Fallback{Entity: "user", Field: "payload", Used: "unparseable: " + err.Error()})
	}
	return UserFromBackend(p)
}

// DecodeUserList parses an upstream list response in either list shape.
func DecodeUserList(data []byte) ([]domain.User, []Fallback) {
	items, fb := unwrapList(data, "user")
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		u, itemFB := DecodeUser(item)
		users = append(users, u)
		fb = append(fb, itemFB...)
	}
	return users, fb
}

// UserFromBackend maps a decoded usuario into the canonical model. The role
// string is carried as-is: the role gate fails closed on anything it does not
// recognize, so no sentinel substitution happens here.
func UserFromBackend(p UsuarioPayload) (domain.User, []Fallback) {
	var fb []Fallback

	username := firstNonEmpty(p.Correo, p.Email, p.Username)
	if username == "" {
		username = SentinelEmail
		fb = append(fb, Fallback{Entity: "user", Field: "username", Used: SentinelEmail})
	}

	name := strings.TrimSpace(strings.TrimSpace(p.Nombre) + " " + strings.TrimSpace(p.Apellido))
	if name == "" {
		name = username
		fb = append(fb, Fallback{Entity: "user", Field: "name", Used: "username"})
	}

	role := domain.Role(strings.ToLower(strings.TrimSpace(firstNonEmpty(p.Rol, p.Role))))

	return domain.User{
		ID:          p.ID,
		Username:    username,
		Name:        name,
		Role:        role,
		Avatar:      Initials(name),
		Permissions: auth.PermissionTags(role),
	}, fb
}

// Initials builds the avatar string from up to the first two words of a name.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		initials = append(initials, []rune(strings.ToUpper(word))[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

// UserDraft carries outbound fields for account creation.
type UserDraft struct {
	Nombre   string
	Apellido string
	Correo   string
	Rol      domain.Role
	Password string
}

// UserToBackend builds the upstream create payload.
func UserToBackend(d UserDraft) map[string]any {
	return map[string]any{
		"nombre":   d.Nombre,
		"apellido": d.Apellido,
		"correo":   d.Correo,
		"rol":      string(d.Rol),
		"password": d.Password,
	}
}

// UserUpdate carries a partial account update.
type UserUpdate struct {
	Nombre   *string
	Apellido *string
	Correo   *string
	Rol      *domain.Role
	Password *string
}

// UserUpdateToBackend builds the upstream PATCH payload.
func UserUpdateToBackend(u UserUpdate) map[string]any {
	payload := map[string]any{}
	if u.Nombre != nil {
		payload["nombre"] = *u.Nombre
	}
	if u.Apellido != nil {
		payload["apellido"] = *u.Apellido
	}
	if u.Correo != nil {
		payload["correo"] = *u.Correo
	}
	if u.Rol != nil {
		payload["rol"] = string(*u.Rol)
	}
	if u.Password != nil {
		payload["password"] = *u.Password
	}
	return payload
}
