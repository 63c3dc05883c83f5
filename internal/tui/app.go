// ABOUTME: Root bubbletea model for the dashboard TUI
// ABOUTME: Fetches all resource feeds in parallel and renders overview panes

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/sagmcom/eamctl/internal/client"
	"github.com/sagmcom/eamctl/internal/tui/styles"
	"github.com/sagmcom/eamctl/internal/view"
)

// fetchTimeout bounds one full dashboard refresh.
const fetchTimeout = 30 * time.Second

// pane identifies which table has keyboard focus.
type pane int

const (
	paneAssets pane = iota
	paneOrders
)

// snapshot is one consistent pull of every dashboard feed.
type snapshot struct {
	assets        []client.Machine
	orders        []client.WorkOrder
	jobs          []client.Intervention
	notifications []client.Notification
}

// snapshotMsg is sent when a refresh completes.
type snapshotMsg struct {
	snap *snapshot
	err  error
}

// App is the root model for the dashboard TUI.
type App struct {
	client  *client.Client
	spinner spinner.Model
	assets  table.Model
	orders  table.Model

	snap       *snapshot
	loading    bool
	err        error
	focus      pane
	width      int
	height     int
	lastUpdate time.Time
}

// New creates the dashboard model.
func New(apiClient *client.Client) *App {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)))

	assetCols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 22},
		{Title: "Type", Width: 14},
		{Title: "Location", Width: 16},
		{Title: "Status", Width: 12},
	}
	orderCols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Title", Width: 28},
		{Title: "Priority", Width: 10},
		{Title: "Status", Width: 12},
	}

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.Bold(true).Foreground(styles.Primary)
	tableStyles.Selected = tableStyles.Selected.Foreground(styles.Text).Background(styles.Primary)

	assets := table.New(table.WithColumns(assetCols), table.WithHeight(8), table.WithFocused(true))
	assets.SetStyles(tableStyles)
	orders := table.New(table.WithColumns(orderCols), table.WithHeight(8))
	orders.SetStyles(tableStyles)

	return &App{
		client:  apiClient,
		spinner: sp,
		assets:  assets,
		orders:  orders,
		loading: true,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.fetch())
}

// fetch pulls every feed in parallel. A single slow or failing feed fails
// the refresh as a whole; the previous snapshot stays on screen.
func (a *App) fetch() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		snap := &snapshot{}
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			snap.assets, err = c.Assets.List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			snap.orders, err = c.WorkOrders.List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			snap.jobs, err = c.Interventions.List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			snap.notifications, err = c.Notifications.List(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "r":
			if !a.loading {
				a.loading = true
				a.err = nil
				return a, tea.Batch(a.spinner.Tick, a.fetch())
			}
			return a, nil
		case "tab":
			a.toggleFocus()
			return a, nil
		}

	case snapshotMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.snap = msg.snap
		a.lastUpdate = time.Now()
		a.assets.SetRows(assetRows(msg.snap.assets))
		a.orders.SetRows(orderRows(msg.snap.orders))
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	var cmd tea.Cmd
	if a.focus == paneAssets {
		a.assets, cmd = a.assets.Update(msg)
	} else {
		a.orders, cmd = a.orders.Update(msg)
	}
	return a, cmd
}

func (a *App) toggleFocus() {
	if a.focus == paneAssets {
		a.focus = paneOrders
		a.assets.Blur()
		a.orders.Focus()
	} else {
		a.focus = paneAssets
		a.orders.Blur()
		a.assets.Focus()
	}
}

// assetRows converts machines to table rows with display statuses.
func assetRows(machines []client.Machine) []table.Row {
	rows := make([]table.Row, len(machines))
	for i, a := range view.MapAssets(machines) {
		rows[i] = table.Row{fmt.Sprint(a.ID), a.Name, a.Type, a.Location, a.Status}
	}
	return rows
}

// orderRows converts work orders to table rows with display statuses.
func orderRows(orders []client.WorkOrder) []table.Row {
	rows := make([]table.Row, len(orders))
	for i, o := range view.MapOrders(orders) {
		rows[i] = table.Row{fmt.Sprint(o.ID), o.Title, o.Priority, o.Status}
	}
	return rows
}

// overview summarizes the snapshot for the header line.
func (a *App) overview() string {
	if a.snap == nil {
		return ""
	}
	open := 0
	for _, o := range a.snap.orders {
		if o.Statut == string(view.StatusEnAttente) || o.Statut == string(view.StatusEnCours) {
			open++
		}
	}
	unread := 0
	for _, n := range a.snap.notifications {
		if !n.Read {
			unread++
		}
	}
	return fmt.Sprintf("Machines: %d   Work orders: %d (%d open)   Interventions: %d   Unread: %d",
		len(a.snap.assets), len(a.snap.orders), open, len(a.snap.jobs), unread)
}

// View implements tea.Model
func (a *App) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Sagmcom EAM"))
	sb.WriteString("\n")

	if a.loading {
		sb.WriteString(a.spinner.View())
		sb.WriteString(" Loading gateway data...\n")
		return sb.String()
	}
	if a.err != nil {
		sb.WriteString(styles.StatusCritical.Render("Error: " + a.err.Error()))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r refresh · q quit"))
		return sb.String()
	}

	sb.WriteString(styles.Subtitle.Render(a.overview()))
	sb.WriteString("\n")

	assetPanel := styles.Panel
	orderPanel := styles.Panel
	if a.focus == paneAssets {
		assetPanel = styles.ActivePanel
	} else {
		orderPanel = styles.ActivePanel
	}
	left := assetPanel.Render(styles.Subtitle.Render("Machines") + "\n" + a.assets.View())
	right := orderPanel.Render(styles.Subtitle.Render("Work orders") + "\n" + a.orders.View())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	sb.WriteString("\n")

	refreshed := ""
	if !a.lastUpdate.IsZero() {
		refreshed = " · refreshed " + a.lastUpdate.Format("15:04:05")
	}
	sb.WriteString(styles.Help.Render("tab switch pane · r refresh · q quit" + refreshed))
	return sb.String()
}
