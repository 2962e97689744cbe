package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lioncurt/shopfront-cli/internal/application"
	"github.com/lioncurt/shopfront-cli/internal/domain"
)

// visibleRows caps how many products render at once; the cursor scrolls the
// window.
const visibleRows = 12

// loadMoreMargin is how close to the bottom the cursor gets before the next
// page is requested.
const loadMoreMargin = 3

func newBrowseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long:  "Opens an interactive catalog view. Type to search (with debounced queries), press enter to search immediately, scroll to load more pages, esc to clear the search, q to quit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context(), app)
		},
	}
}

type catalogLoadedMsg struct {
	err error
}

type searchDoneMsg struct {
	err error
}

type moreLoadedMsg struct {
	fetched bool
	err     error
}

type browseStyles struct {
	title    lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style
	price    lipgloss.Style
	err      lipgloss.Style
	hint     lipgloss.Style
}

func newBrowseStyles() browseStyles {
	return browseStyles{
		title:    lipgloss.NewStyle().Bold(true),
		row:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		price:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		err:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		hint:     lipgloss.NewStyle().Faint(true),
	}
}

type browseModel struct {
	ctx     context.Context
	catalog *application.CatalogService
	send    func(tea.Msg)

	input   textinput.Model
	spin    spinner.Model
	styles  browseStyles
	cursor  int
	offset  int
	loading bool
	lastErr error
}

func newBrowseModel(ctx context.Context, catalog *application.CatalogService, send func(tea.Msg)) browseModel {
	input := textinput.New()
	input.Placeholder = "type to search, enter to search now"
	input.Prompt = "search: "
	input.Focus()

	return browseModel{
		ctx:     ctx,
		catalog: catalog,
		send:    send,
		input:   input,
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		styles:  newBrowseStyles(),
		loading: true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return catalogLoadedMsg{err: m.catalog.LoadBrowse(m.ctx, domain.PageRequest{})}
	})
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case catalogLoadedMsg:
		m.loading = false
		m.lastErr = msg.err
		return m, nil
	case searchDoneMsg:
		m.loading = false
		m.lastErr = msg.err
		m.cursor = 0
		m.offset = 0
		return m, nil
	case moreLoadedMsg:
		m.loading = false
		m.lastErr = msg.err
		return m, nil
	default:
		return m, nil
	}
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.input.Value() != "" || m.catalog.Searching() {
			m.input.SetValue("")
			m.catalog.ClearSearch()
			m.cursor = 0
			m.offset = 0
			return m, nil
		}
		return m, tea.Quit
	case "enter":
		query := m.input.Value()
		m.loading = true
		return m, func() tea.Msg {
			return searchDoneMsg{err: m.catalog.SubmitSearch(m.ctx, query, domain.PageRequest{})}
		}
	case "up":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
		return m, nil
	case "down":
		return m.moveDown()
	default:
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.queueSearch(m.input.Value())
		}
		return m, cmd
	}
}

func (m browseModel) moveDown() (tea.Model, tea.Cmd) {
	items := m.catalog.Active().Len()
	if m.cursor < items-1 {
		m.cursor++
		if m.cursor >= m.offset+visibleRows {
			m.offset++
		}
	}

	// Near the bottom of the accumulated list: pull the next page. The
	// pager no-ops when exhausted or already loading.
	if m.cursor >= items-loadMoreMargin && m.catalog.Active().HasMore() {
		m.loading = true
		return m, func() tea.Msg {
			fetched, err := m.catalog.LoadMore(m.ctx)
			return moreLoadedMsg{fetched: fetched, err: err}
		}
	}
	return m, nil
}

// queueSearch hands the query to the debounced search; the result lands
// back in the program as a searchDoneMsg.
func (m browseModel) queueSearch(query string) {
	m.catalog.DebouncedSearch(m.ctx, query, domain.PageRequest{}, func(err error) {
		m.send(searchDoneMsg{err: err})
	})
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Shopfront"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	pager := m.catalog.Active()
	items := pager.Items()

	if m.loading && len(items) == 0 {
		b.WriteString(m.spin.View() + " loading...\n")
		return b.String()
	}

	if m.lastErr != nil {
		b.WriteString(m.styles.err.Render(m.lastErr.Error()))
		b.WriteString("\n")
	}

	if len(items) == 0 {
		b.WriteString(m.styles.meta.Render("No products found."))
		b.WriteString("\n")
	}

	end := m.offset + visibleRows
	if end > len(items) {
		end = len(items)
	}
	for i := m.offset; i < end; i++ {
		product := items[i]
		line := fmt.Sprintf("%s  %s  %s",
			product.Name,
			m.styles.price.Render(fmt.Sprintf("$%.2f", product.Price)),
			m.styles.meta.Render(fmt.Sprintf("stock %d", product.Stock)))
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	status := fmt.Sprintf("%d of %d", len(items), pager.Total())
	if pager.HasMore() {
		status += ", scroll for more"
	}
	if m.loading {
		status = m.spin.View() + " " + status
	}
	b.WriteString("\n")
	b.WriteString(m.styles.meta.Render(status))
	b.WriteString("\n")
	b.WriteString(m.styles.hint.Render("type to search · enter search now · esc clear · ctrl+c quit"))

	return b.String()
}

func runBrowse(ctx context.Context, app *app) error {
	// The interactive view can outlive the access token; keep it fresh in
	// the background for the duration of the session.
	if app.session.Authenticated() {
		app.session.StartAutoRefresh(ctx)
		defer app.session.StopAutoRefresh()
	}

	var program *tea.Program
	model := newBrowseModel(ctx, app.catalog, func(msg tea.Msg) {
		program.Send(msg)
	})

	program = tea.NewProgram(model, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
