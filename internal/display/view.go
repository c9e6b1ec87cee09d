package display

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/input"
	"github.com/hammamikhairi/brewrush/internal/timer"
)

// View renders the current screen.
func (m Model) View() string {
	switch m.screen {
	case screenTitle:
		return m.titleView()
	case screenBook:
		return m.bookView()
	case screenOver:
		return m.overView()
	}
	return m.playView()
}

func (m Model) titleView() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(RenderBanner(m.width))
	b.WriteString("\n")
	b.WriteString(center(m.width, primaryStyle.Render("Brew potions. Keep the customers happy. Mind the clock.")))
	b.WriteString("\n\n")
	b.WriteString(center(m.width, secondaryStyle.Render("press any key to open the shop · q to leave")))
	b.WriteString("\n")
	return b.String()
}

func center(width int, s string) string {
	if width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// ── Play screen ──────────────────────────────────────────────────

func (m Model) playView() string {
	w := m.width
	if w <= 0 {
		w = MinWidth
	}
	col := w/3 - 2

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Customers", m.customersView(), col),
		panel("Time", m.timeView(), col),
		panel("Revenue", m.revenueView(), col),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Inventory", m.inventoryView(), col),
		panel("Input", m.inputView(), col),
		panel("Map", m.mapView(), col),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func panel(title, body string, width int) string {
	return panelStyle.Width(width).Render(titleStyle.Render(title) + "\n" + body)
}

func (m Model) customersView() string {
	s := m.snap
	if len(s.Customers) == 0 {
		return secondaryStyle.Render("The shop is quiet.")
	}
	var b strings.Builder
	for i, c := range s.Customers {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%d.", i)),
			primaryStyle.Render(c.RecipeName),
			moneyStyle.Render(fmt.Sprintf("$%d", c.Payout)),
		)
		fmt.Fprintf(&b, "   %s\n", secondaryStyle.Render(c.Summary))
		b.WriteString("   " + patienceStyle(c).Render(timer.Clockface(c.Remaining)+" left"))
	}
	return b.String()
}

// patienceStyle colours a customer's countdown by the share of patience left.
func patienceStyle(c domain.CustomerView) lipgloss.Style {
	if c.Patience <= 0 {
		return urgentStyle
	}
	switch frac := float64(c.Remaining) / float64(c.Patience); {
	case frac > 0.5:
		return calmStyle
	case frac > 0.2:
		return hurryStyle
	default:
		return urgentStyle
	}
}

func (m Model) timeView() string {
	s := m.snap
	frac := 0.0
	if m.total > 0 {
		frac = float64(s.TimeRemaining) / float64(m.total)
	}
	style := calmStyle
	if s.TimeRemaining < time.Minute {
		style = urgentStyle
	}
	return style.Render(timer.Clockface(s.TimeRemaining)) + "\n" +
		m.bar.ViewAs(frac) + "\n" +
		secondaryStyle.Render(timer.Humanize(s.TimeRemaining)+" until closing")
}

func (m Model) revenueView() string {
	s := m.snap
	return moneyStyle.Render(fmt.Sprintf("$%d", s.Revenue)) + "\n" +
		labelStyle.Render(fmt.Sprintf("served %d · lost %d", s.Fulfilled, s.Expired))
}

func (m Model) inventoryView() string {
	s := m.snap
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("%d/%d slots", s.InventoryUsed, s.InventoryCap)))
	held := input.Held(s)
	if len(held) == 0 {
		b.WriteString(secondaryStyle.Render("Your bag is empty."))
		return b.String()
	}
	trashing := m.decoder.Mode() == input.ModeTrash
	for i, item := range held {
		line := fmt.Sprintf("%s x%d", item, s.Inventory[item])
		if trashing {
			line = fmt.Sprintf("%d. %s", i, line)
		}
		b.WriteString(primaryStyle.Render(line))
		if i < len(held)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) inputView() string {
	s := m.snap
	var lines []string
	if p := m.decoder.Prompt(); p != "" {
		lines = append(lines, promptStyle.Render(p), secondaryStyle.Render("9 or esc to cancel"))
	}
	if s.Warning != "" {
		lines = append(lines, urgentStyle.Render(s.Warning))
	}
	if s.Flavor != "" {
		lines = append(lines, flavorStyle.Render(s.Flavor))
	}
	lines = append(lines, "", m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) mapView() string {
	s := m.snap
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", hereStyle.Render(s.LocationName))

	dirs := make([]domain.Direction, 0, len(s.Neighbors))
	for d := range s.Neighbors {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return compassOrder(dirs[i]) < compassOrder(dirs[j]) })
	for _, d := range dirs {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(arrow(d)), primaryStyle.Render(string(s.Neighbors[d])))
	}

	items := input.Collectible(s)
	if len(items) == 0 {
		b.WriteString(secondaryStyle.Render("Nothing to gather here."))
		return b.String()
	}
	b.WriteString(labelStyle.Render("Here:"))
	for i, item := range items {
		fmt.Fprintf(&b, "\n%s", primaryStyle.Render(fmt.Sprintf("%d. %s (%d)", i, item, s.Collectible[item])))
	}
	return b.String()
}

func compassOrder(d domain.Direction) int {
	switch d {
	case domain.North:
		return 0
	case domain.East:
		return 1
	case domain.South:
		return 2
	default:
		return 3
	}
}

func arrow(d domain.Direction) string {
	switch d {
	case domain.North:
		return "↑"
	case domain.South:
		return "↓"
	case domain.East:
		return "→"
	case domain.West:
		return "←"
	}
	return "?"
}

// ── Book ─────────────────────────────────────────────────────────

func (m Model) bookView() string {
	titles, byChapter := m.book.Chapters()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recipe Book") + "\n\n")

	if m.carried {
		b.WriteString(hereStyle.Render("Using what you carry") + "\n")
		recipes := m.carriedRecipes()
		if len(recipes) == 0 {
			b.WriteString(secondaryStyle.Render("Nothing in your bag goes into a recipe.") + "\n")
		}
		writeRecipes(&b, recipes)
		b.WriteString("\n" + secondaryStyle.Render("s/8: contents · 9: close"))
		return panelStyle.Render(b.String())
	}

	if m.chapter < 0 || m.chapter >= len(titles) {
		for i, t := range titles {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%d.", i)), primaryStyle.Render(t))
		}
		b.WriteString("\n" + secondaryStyle.Render("digit: open chapter · s: what you carry · 9: close"))
		return panelStyle.Render(b.String())
	}

	title := titles[m.chapter]
	b.WriteString(hereStyle.Render(title) + "\n")
	writeRecipes(&b, byChapter[title])
	b.WriteString("\n" + secondaryStyle.Render("8: contents · 9: close"))
	return panelStyle.Render(b.String())
}

func writeRecipes(b *strings.Builder, recipes []domain.RecipeSummary) {
	for _, r := range recipes {
		fmt.Fprintf(b, "%s %s\n   %s\n",
			primaryStyle.Render(r.Name),
			moneyStyle.Render(fmt.Sprintf("$%d", r.Payout)),
			secondaryStyle.Render(r.Summary),
		)
	}
}

// ── Game over ────────────────────────────────────────────────────

func (m Model) overView() string {
	s := m.snap
	var b strings.Builder
	heading := "The shop is closed."
	if s.Status == domain.SessionAborted {
		heading = "The shop burned down."
	}
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("revenue"), moneyStyle.Render(fmt.Sprintf("$%d", s.Revenue)))
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("served "), s.Fulfilled)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("lost   "), s.Expired)
	if m.err != nil {
		fmt.Fprintf(&b, "\n%s\n", urgentStyle.Render(m.err.Error()))
	}

	if len(m.best) > 0 {
		b.WriteString("\n" + titleStyle.Render("Best runs") + "\n")
		for i, r := range m.best {
			line := fmt.Sprintf("%d. $%-5d %2d served  %s", i+1, r.Revenue, r.Fulfilled, r.StartedAt.Local().Format("Jan 2 15:04"))
			if r.ID == s.SessionID {
				b.WriteString(hereStyle.Render(line))
			} else {
				b.WriteString(primaryStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n" + secondaryStyle.Render("press any key to leave"))
	return panelStyle.Render(b.String())
}
