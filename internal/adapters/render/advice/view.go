package advice

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/roeshane/life-coach-reflections/internal/domain"
)

const defaultWidth = 80

type Card struct {
	Persona domain.Persona
	State   domain.AdviceState
}

type Report struct {
	Snapshot       domain.JournalSnapshot
	CredentialHint string
	Cards          []Card
}

type RenderOptions struct {
	Width int
	// Markdown renders advice text through glamour. MarkdownStyle names a
	// glamour standard style; empty selects "notty", which keeps emphasis
	// markers. "auto" picks dark or light on a terminal stdout.
	Markdown      bool
	MarkdownStyle string
}

func renderView(report Report, opts RenderOptions, s styles) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	lines := []string{
		s.title.Render("오늘의 코칭"),
		s.header.Render(headerLine(report)),
	}

	if len(report.Cards) == 0 {
		lines = append(lines, s.empty.Render("표시할 코치가 없습니다."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
	}

	var md *glamour.TermRenderer
	if opts.Markdown {
		style := opts.MarkdownStyle
		if style == "" {
			style = "notty"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("create markdown renderer: %w", err)
		}
		md = renderer
	}

	for _, card := range report.Cards {
		rendered, err := renderCard(card, width, md, s)
		if err != nil {
			return "", err
		}
		lines = append(lines, s.section.Render(rendered))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
}

func headerLine(report Report) string {
	parts := make([]string, 0, 3)
	if report.Snapshot.Date != "" {
		parts = append(parts, report.Snapshot.Date)
	}
	parts = append(parts, fmt.Sprintf("코치: %d", len(report.Cards)))
	if report.CredentialHint != "" {
		parts = append(parts, "API 키: "+report.CredentialHint)
	}

	return strings.Join(parts, " · ")
}

func renderCard(card Card, width int, md *glamour.TermRenderer, s styles) (string, error) {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.initials.Render(card.Persona.Initials()),
		" ",
		s.persona.Render(card.Persona.DisplayName),
		" ",
		s.subtitle.Render(card.Persona.Title),
		" ",
		phaseBadge(card.State, s),
	)

	parts := []string{title}
	if card.Persona.StyleDescription != "" {
		parts = append(parts, s.subtitle.Render(card.Persona.StyleDescription))
	}

	body, err := cardBody(card.State, width, md, s)
	if err != nil {
		return "", err
	}
	parts = append(parts, body)

	return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
}

func phaseBadge(state domain.AdviceState, s styles) string {
	label := "[" + state.Phase.Label() + "]"

	switch state.Phase {
	case domain.PhaseSucceeded:
		return s.succeeded.Render(label)
	case domain.PhaseFailed:
		return s.failed.Render(label)
	case domain.PhaseLoading:
		return s.loading.Render(label)
	default:
		return s.awaiting.Render(label)
	}
}

func cardBody(state domain.AdviceState, width int, md *glamour.TermRenderer, s styles) (string, error) {
	switch state.Phase {
	case domain.PhaseSucceeded:
		if md != nil {
			out, err := md.Render(state.Text)
			if err != nil {
				return "", fmt.Errorf("render advice markdown: %w", err)
			}
			return strings.TrimRight(out, "\n"), nil
		}
		return s.body.Width(width).Render(state.Text), nil
	case domain.PhaseFailed:
		guidance := state.ErrorKind.Guidance()
		if state.StatusCode != 0 {
			guidance = fmt.Sprintf("%s (HTTP %d)", guidance, state.StatusCode)
		}
		return s.guidance.Width(width).Render(guidance), nil
	case domain.PhaseLoading:
		return s.body.Render("조언을 불러오는 중입니다..."), nil
	default:
		return s.body.Render("API 키를 먼저 설정해주세요. (coach key set)"), nil
	}
}
