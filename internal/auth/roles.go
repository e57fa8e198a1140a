package auth

import "slices"

const (
	RoleDoctor     = "doctor"
	RoleResearcher = "researcher"
	RoleAdmin      = "admin"
)

const (
	PermPatientCreate  = "patient.create"
	PermPatientView    = "patient.view"
	PermPatientViewAll = "patient.view:all"
	PermPatientUpdate  = "patient.update"
	PermPatientDelete  = "patient.delete"
	PermRelationCreate = "relation.create"
	PermLinkCreate     = "link.create"
	PermPedigreeView   = "pedigree.view"
	PermPedigreeExport = "pedigree.export"
)

// AllPermissions is granted to admins and to the master API key.
var AllPermissions = []string{
	PermPatientCreate,
	PermPatientView,
	PermPatientViewAll,
	PermPatientUpdate,
	PermPatientDelete,
	PermRelationCreate,
	PermLinkCreate,
	PermPedigreeView,
	PermPedigreeExport,
}

var patientPermissions = []string{
	PermPatientCreate,
	PermPatientView,
	PermPatientUpdate,
	PermPatientDelete,
	PermPedigreeView,
	PermPedigreeExport,
}

var rolePermissions = map[string][]string{
	RoleAdmin:      AllPermissions,
	RoleResearcher: append(slices.Clone(patientPermissions), PermRelationCreate, PermLinkCreate),
	RoleDoctor:     patientPermissions,
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// PermissionsForRole returns a copy of the permissions granted to role. Unknown roles get none.
func PermissionsForRole(role string) []string {
	return slices.Clone(rolePermissions[role])
}
