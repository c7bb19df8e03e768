package auth

import (
	"testing"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
)

func TestAdminCanPerformEverything(t *testing.T) {
	for _, action := range AllActions {
		if !CanPerform(domain.RoleAdmin, action) {
			t.Errorf("admin denied %q", action)
		}
	}
}

func TestUnknownRoleCanPerformNothing(t *testing.T) {
	for _, role := range []domain.Role{"", "cliente", "ADMIN "} {
		for _, action := range AllActions {
			if CanPerform(role, action) {
				t.Errorf("role %q unexpectedly allowed %q", role, action)
			}
		}
	}
}

func TestRoleActionMatrix(t *testing.T) {
	cases := []struct {
		role    domain.Role
		action  Action
		allowed bool
	}{
		{domain.RoleSoporte, ActionTicketCreate, true},
		{domain.RoleSoporte, ActionTicketClose, true},
		{domain.RoleSoporte, ActionExport, true},
		{domain.RoleSoporte, ActionTicketEscalate, false},
		{domain.RoleSoporte, ActionUserManage, false},
		{domain.RoleEspecialista, ActionTicketAssign, true},
		{domain.RoleEspecialista, ActionTicketEscalate, true},
		{domain.RoleEspecialista, ActionTicketDelete, false},
		{domain.RoleEspecialista, ActionReporteRead, false},
		{domain.RoleTecnico, ActionTicketRead, true},
		{domain.RoleTecnico, ActionReporteRead, true},
		{domain.RoleTecnico, ActionTicketUpdate, false},
		{domain.RoleTecnico, ActionLicitacionRead, false},
	}
	for _, tc := range cases {
		if got := CanPerform(tc.role, tc.action); got != tc.allowed {
			t.Errorf("CanPerform(%q, %q) = %v, want %v", tc.role, tc.action, got, tc.allowed)
		}
	}
}

func TestPermittedViews(t *testing.T) {
	admin := PermittedViews(domain.RoleAdmin)
	if len(admin) != 5 {
		t.Errorf("admin views = %v", admin)
	}
	if _, ok := admin[ViewAdministracion]; !ok {
		t.Error("admin missing administracion view")
	}

	tecnico := PermittedViews(domain.RoleTecnico)
	if _, ok := tecnico[ViewLicitaciones]; ok {
		t.Error("tecnico should not see licitaciones")
	}
	if _, ok := tecnico[ViewReportes]; !ok {
		t.Error("tecnico should see reportes")
	}

	if views := PermittedViews(""); len(views) != 0 {
		t.Errorf("empty role views = %v, want none", views)
	}
}

func TestPermissionTags(t *testing.T) {
	tags := PermissionTags(domain.RoleAdmin)
	want := []string{"tickets", "licitaciones", "reportes", "admin"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i, tag := range want {
		if tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], tag)
		}
	}
}
