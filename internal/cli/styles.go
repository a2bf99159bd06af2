package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"despesas/internal/core"
)

var (
	PrimaryColor = lipgloss.Color("#2E86AB")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	SubtleColor  = lipgloss.Color("#666666")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// TableHeaderStyle underlines the header row of expense and report tables.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)

const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
)

func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt)
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(m core.Money) string {
	return m.String()
}

// cell pads s to width columns, aligning right when right is set.
func cell(s string, width int, right bool) string {
	st := lipgloss.NewStyle().Width(width).PaddingRight(2)
	if right {
		st = st.Align(lipgloss.Right)
	}
	return st.Render(s)
}

// RenderExpenses renders the expense list as a table in insertion order.
func RenderExpenses(expenses []core.Expense) string {
	if len(expenses) == 0 {
		return SubtleStyle.Render("Nenhuma despesa registrada.")
	}

	idW, descW, amtW, payerW := len("ID"), len("Descrição"), len("Valor"), len("Quem pagou")
	for _, e := range expenses {
		idW = max(idW, len(strconv.FormatInt(e.ID, 10)))
		descW = max(descW, lipgloss.Width(e.Description))
		amtW = max(amtW, lipgloss.Width(FormatMoney(e.Amount)))
		payerW = max(payerW, lipgloss.Width(e.Payer))
	}
	descW = min(descW, 40)

	row := func(id, desc, amt, payer, cat string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			cell(id, idW+2, false),
			cell(desc, descW+2, false),
			cell(amt, amtW+2, true),
			cell(payer, payerW+2, false),
			cat,
		)
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(row("ID", "Descrição", "Valor", "Quem pagou", "Categoria")))
	b.WriteString("\n")
	for _, e := range expenses {
		b.WriteString(row(strconv.FormatInt(e.ID, 10), e.Description, FormatMoney(e.Amount), e.Payer, e.Category))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderReport renders the overall total and the per-payer and per-category sums.
func RenderReport(r core.Report) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Total: " + FormatMoney(r.Total)))
	b.WriteString("\n\n")

	b.WriteString(TableHeaderStyle.Render("Por pessoa"))
	b.WriteString("\n")
	for _, p := range r.ByPayer {
		fmt.Fprintf(&b, "%s %s\n", cell(p.Name, 20, false), FormatMoney(p.Amount))
	}

	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render("Por categoria"))
	b.WriteString("\n")
	if len(r.ByCategory) == 0 {
		b.WriteString(SubtleStyle.Render("Nenhuma despesa registrada."))
	}
	for _, c := range r.ByCategory {
		fmt.Fprintf(&b, "%s %s\n", cell(c.Name, 20, false), FormatMoney(c.Amount))
	}
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderCategories lists categories with the index used by rename and remove.
func RenderCategories(names []string) string {
	if len(names) == 0 {
		return SubtleStyle.Render("Nenhuma categoria cadastrada.")
	}
	var b strings.Builder
	for i, name := range names {
		fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render(fmt.Sprintf("%2d", i)), name)
	}
	return strings.TrimRight(b.String(), "\n")
}
