// ABOUTME: View-models derived from gateway entities for display
// ABOUTME: Statuses lower-cased, dates rendered dd/mm/yyyy

package view

import (
	"strings"
	"time"

	"github.com/sagmcom/eamctl/internal/client"
)

// dateLayout matches the gateway UI's French-style short date.
const dateLayout = "02/01/2006"

// FormatDate renders a gateway timestamp for display, empty when absent.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Asset is the display shape of a machine. It is derived, never written
// back; the gateway entity stays the source of truth.
type Asset struct {
	ID              int64
	Name            string
	Type            string
	Location        string
	Status          string
	StatusLabel     string
	Condition       string
	Criticality     string
	LastMaintenance string
	NextMaintenance string
}

// MapAsset maps a gateway machine to its display shape.
func MapAsset(m client.Machine) Asset {
	return Asset{
		ID:              m.ID,
		Name:            m.Nom,
		Type:            m.Type,
		Location:        m.Emplacement,
		Status:          strings.ToLower(m.Statut),
		StatusLabel:     Status(m.Statut).Label(),
		Condition:       Condition(m.Condition).Label(),
		Criticality:     Criticality(m.Criticality).Label(),
		LastMaintenance: FormatDate(m.DateDerniereMaintenance),
		NextMaintenance: FormatDate(m.DateProchaineMaintenance),
	}
}

// MapAssets maps a machine list, preserving order.
func MapAssets(machines []client.Machine) []Asset {
	out := make([]Asset, len(machines))
	for i, m := range machines {
		out[i] = MapAsset(m)
	}
	return out
}

// Account is the display shape of a user.
type Account struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Role        string
	RoleLabel   string
	Department  string
	Status      string
	StatusLabel string
}

// MapAccount maps a gateway user to its display shape.
func MapAccount(u client.User) Account {
	return Account{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        strings.ToLower(u.Role),
		RoleLabel:   Role(u.Role).Label(),
		Department:  Department(u.Department).Label(),
		Status:      strings.ToLower(u.Status),
		StatusLabel: UserStatus(u.Status).Label(),
	}
}

// MapAccounts maps a user list, preserving order.
func MapAccounts(users []client.User) []Account {
	out := make([]Account, len(users))
	for i, u := range users {
		out[i] = MapAccount(u)
	}
	return out
}

// Order is the display shape of a work order.
type Order struct {
	ID            int64
	Title         string
	Description   string
	Created       string
	Priority      string
	PriorityLabel string
	Status        string
	StatusLabel   string
	AssignedTo    int64
}

// MapOrder maps a gateway work order to its display shape.
func MapOrder(w client.WorkOrder) Order {
	return Order{
		ID:            w.ID,
		Title:         w.Titre,
		Description:   w.Description,
		Created:       FormatDate(w.DateCreation),
		Priority:      strings.ToLower(w.Priorite),
		PriorityLabel: Priority(w.Priorite).Label(),
		Status:        strings.ToLower(w.Statut),
		StatusLabel:   Status(w.Statut).Label(),
		AssignedTo:    w.AssignedTo,
	}
}

// MapOrders maps a work order list, preserving order.
func MapOrders(orders []client.WorkOrder) []Order {
	out := make([]Order, len(orders))
	for i, w := range orders {
		out[i] = MapOrder(w)
	}
	return out
}

// Job is the display shape of an intervention.
type Job struct {
	ID          int64
	Title       string
	Report      string
	Date        string
	Status      string
	StatusLabel string
	WorkOrderID int64
}

// MapJob maps a gateway intervention to its display shape.
func MapJob(iv client.Intervention) Job {
	return Job{
		ID:          iv.ID,
		Title:       iv.Titre,
		Report:      iv.Rapport,
		Date:        FormatDate(iv.DateIntervention),
		Status:      strings.ToLower(iv.Statut),
		StatusLabel: Status(iv.Statut).Label(),
		WorkOrderID: iv.OrdreTravailID,
	}
}

// MapJobs maps an intervention list, preserving order.
func MapJobs(jobs []client.Intervention) []Job {
	out := make([]Job, len(jobs))
	for i, iv := range jobs {
		out[i] = MapJob(iv)
	}
	return out
}
