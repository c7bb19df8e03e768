package auth

import "github.com/ricardo-aragon/ticashop-desk/internal/domain"

// View identifies a gated panel of the desk.
type View string

const (
	ViewDashboard      View = "dashboard"
	ViewTickets        View = "tickets"
	ViewLicitaciones   View = "licitaciones"
	ViewReportes       View = "reportes"
	ViewAdministracion View = "admin"
)

// Action identifies a gated operation.
type Action string

const (
	ActionTicketRead      Action = "ticket:read"
	ActionTicketCreate    Action = "ticket:create"
	ActionTicketUpdate    Action = "ticket:update"
	ActionTicketDelete    Action = "ticket:delete"
	ActionTicketClose     Action = "ticket:close"
	ActionTicketAssign    Action = "ticket:assign"
	ActionTicketEscalate  Action = "ticket:escalate"
	ActionCommentCreate   Action = "comment:create"
	ActionLicitacionRead  Action = "licitacion:read"
	ActionLicitacionWrite Action = "licitacion:write"
	ActionReporteRead     Action = "reporte:read"
	ActionReporteCreate   Action = "reporte:create"
	ActionExport          Action = "export"
	ActionUserManage      Action = "user:manage"
)

// AllActions lists every defined action, in a stable order.
var AllActions = []Action{
	ActionTicketRead, ActionTicketCreate, ActionTicketUpdate, ActionTicketDelete,
	ActionTicketClose, ActionTicketAssign, ActionTicketEscalate, ActionCommentCreate,
	ActionLicitacionRead, ActionLicitacionWrite,
	ActionReporteRead, ActionReporteCreate,
	ActionExport, ActionUserManage,
}

var roleActions = map[domain.Role][]Action{
	domain.RoleSoporte: {
		ActionTicketRead, ActionTicketCreate, ActionTicketUpdate, ActionTicketDelete,
		ActionTicketClose, ActionCommentCreate,
		ActionLicitacionRead, ActionLicitacionWrite,
		ActionReporteRead, ActionExport,
	},
	domain.RoleEspecialista: {
		ActionTicketRead, ActionTicketUpdate, ActionTicketAssign, ActionTicketEscalate,
		ActionCommentCreate,
		ActionLicitacionRead, ActionLicitacionWrite,
	},
	domain.RoleTecnico: {
		ActionTicketRead, ActionReporteRead,
	},
}

var roleViews = map[domain.Role][]View{
	domain.RoleAdmin:        {ViewDashboard, ViewTickets, ViewLicitaciones, ViewReportes, ViewAdministracion},
	domain.RoleSoporte:      {ViewDashboard, ViewTickets, ViewLicitaciones, ViewReportes},
	domain.RoleEspecialista: {ViewDashboard, ViewTickets, ViewLicitaciones},
	domain.RoleTecnico:      {ViewDashboard, ViewTickets, ViewReportes},
}

// PermittedViews returns the set of panels the role may open. Unknown or
// absent roles get an empty set.
func PermittedViews(role domain.Role) map[View]struct{} {
	views := make(map[View]struct{}, len(roleViews[role]))
	for _, v := range roleViews[role] {
		views[v] = struct{}{}
	}
	return views
}

// CanPerform reports whether the role may execute the action. Admins may
// perform every defined action; unknown or absent roles may perform none.
func CanPerform(role domain.Role, action Action) bool {
	if role == domain.RoleAdmin {
		for _, a := range AllActions {
			if a == action {
				return true
			}
		}
		return false
	}
	for _, a := range roleActions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// PermissionTags derives the capability tags carried by a canonical User.
func PermissionTags(role domain.Role) []string {
	views := roleViews[role]
	tags := make([]string, 0, len(views))
	for _, v := range views {
		if v == ViewDashboard {
			continue
		}
		tags = append(tags, string(v))
	}
	return tags
}
