// ABOUTME: Closed enum types for the gateway's string-typed statuses and roles
// ABOUTME: One display label table per enum instead of ad hoc string switches

package view

// Role is a gateway account role.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleChefOp     Role = "CHEFOP"
	RoleChefTech   Role = "CHEFTECH"
	RoleTechnicien Role = "TECHNICIEN"
)

// Department is a gateway department. QUALITÉ carries its accent on the wire.
type Department string

const (
	DeptProduction  Department = "PRODUCTION"
	DeptMaintenance Department = "MAINTENANCE"
	DeptQualite     Department = "QUALITÉ"
	DeptLogistique  Department = "LOGISTIQUE"
	DeptIT          Department = "IT"
)

// UserStatus is a gateway account lifecycle state.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserPending   UserStatus = "PENDING"
	UserSuspended UserStatus = "SUSPENDED"
	UserArchived  UserStatus = "ARCHIVED"
)

// Priority is a work order priority.
type Priority string

const (
	PriorityBasse   Priority = "BASSE"
	PriorityMoyenne Priority = "MOYENNE"
	PriorityElevee  Priority = "ELEVEE"
	PriorityUrgente Priority = "URGENTE"
)

// Status is the shared work order / intervention / planning lifecycle.
type Status string

const (
	StatusEnAttente Status = "EN_ATTENTE"
	StatusEnCours   Status = "EN_COURS"
	StatusTermine   Status = "TERMINE"
	StatusAnnule    Status = "ANNULE"
)

// AssetStatus is a machine's operational state.
type AssetStatus string

const (
	AssetOperational AssetStatus = "OPERATIONAL"
	AssetMaintenance AssetStatus = "MAINTENANCE"
	AssetDown        AssetStatus = "DOWN"
	AssetRetired     AssetStatus = "RETIRED"
)

// Condition is a machine's wear grade.
type Condition string

const (
	CondExcellent Condition = "EXCELLENT"
	CondGood      Condition = "GOOD"
	CondFair      Condition = "FAIR"
	CondPoor      Condition = "POOR"
)

// Criticality is a machine's importance to production.
type Criticality string

const (
	CritCritical Criticality = "CRITICAL"
	CritHigh     Criticality = "HIGH"
	CritMedium   Criticality = "MEDIUM"
	CritLow      Criticality = "LOW"
)

var roleLabels = map[Role]string{
	RoleAdmin:      "Administrateur",
	RoleChefOp:     "Chef Opérateur",
	RoleChefTech:   "Chef Technicien",
	RoleTechnicien: "Technicien",
}

var departmentLabels = map[Department]string{
	DeptProduction:  "Production",
	DeptMaintenance: "Maintenance",
	DeptQualite:     "Qualité",
	DeptLogistique:  "Logistique",
	DeptIT:          "IT",
}

var userStatusLabels = map[UserStatus]string{
	UserActive:    "Actif",
	UserInactive:  "Inactif",
	UserPending:   "En attente",
	UserSuspended: "Suspendu",
	UserArchived:  "Archivé",
}

var priorityLabels = map[Priority]string{
	PriorityBasse:   "Basse",
	PriorityMoyenne: "Moyenne",
	PriorityElevee:  "Élevée",
	PriorityUrgente: "Urgente",
}

var statusLabels = map[Status]string{
	StatusEnAttente: "En attente",
	StatusEnCours:   "En cours",
	StatusTermine:   "Terminé",
	StatusAnnule:    "Annulé",
}

var assetStatusLabels = map[AssetStatus]string{
	AssetOperational: "Opérationnel",
	AssetMaintenance: "En maintenance",
	AssetDown:        "Hors service",
	AssetRetired:     "Retiré",
}

var conditionLabels = map[Condition]string{
	CondExcellent: "Excellent",
	CondGood:      "Bon",
	CondFair:      "Moyen",
	CondPoor:      "Mauvais",
}

var criticalityLabels = map[Criticality]string{
	CritCritical: "Critique",
	CritHigh:     "Élevée",
	CritMedium:   "Moyenne",
	CritLow:      "Faible",
}

// labelFor returns the display label for value, or the raw value when the
// gateway sends something the table does not know yet.
func labelFor[K ~string](labels map[K]string, value K) string {
	if value == "" {
		return ""
	}
	if label, ok := labels[value]; ok {
		return label
	}
	return string(value)
}

func (r Role) Label() string        { return labelFor(roleLabels, r) }
func (d Department) Label() string  { return labelFor(departmentLabels, d) }
func (s UserStatus) Label() string  { return labelFor(userStatusLabels, s) }
func (p Priority) Label() string    { return labelFor(priorityLabels, p) }
func (s Status) Label() string      { return labelFor(statusLabels, s) }
func (s AssetStatus) Label() string { return labelFor(assetStatusLabels, s) }
func (c Condition) Label() string   { return labelFor(conditionLabels, c) }
func (c Criticality) Label() string { return labelFor(criticalityLabels, c) }
