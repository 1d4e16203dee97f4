// Package render draws the tracker state as plain text for the terminal
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

// DefaultBarWidth is the number of cells in the hit point bar
const DefaultBarWidth = 20

// conditionColumns is the width of the condition grid
const conditionColumns = 4

// Options controls how a sheet is drawn
type Options struct {
	// BarWidth defaults to DefaultBarWidth
	BarWidth int
	// Now is used to show how long concentration has been held. Zero hides it.
	Now time.Time
}

// CharacterList writes one line per character, marking the selected one
func CharacterList(w io.Writer, chars []*dnd5e.Character, selectedID string) error {
	if len(chars) == 0 {
		_, err := fmt.Fprintln(w, "No characters. Create one with `tracker character create`.")
		return wrapWrite(err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tHP\tID")
	for _, c := range chars {
		marker := ""
		if c.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, c.Name, hpFraction(c), c.ID)
	}
	return wrapWrite(tw.Flush())
}

// Sheet writes the full session sheet for one character
func Sheet(w io.Writer, c *dnd5e.Character, opts Options) error {
	if c == nil {
		return errors.InvalidArgument("character is required")
	}
	width := opts.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", c.Name, strings.Repeat("=", len([]rune(c.Name))))

	if banner := ConcentrationBanner(c, opts.Now); banner != "" {
		fmt.Fprintf(&b, "%s\n", banner)
	}

	fmt.Fprintf(&b, "HP   %s %s", HPBar(c.CurrentHP, c.MaxHP, width), hpFraction(c))
	if c.TempHP > 0 {
		fmt.Fprintf(&b, "  (+%d temp)", c.TempHP)
	}
	b.WriteString("\n")

	if c.CurrentHP == 0 && c.MaxHP > 0 {
		fmt.Fprintf(&b, "Death saves  success %s  failure %s\n",
			pips(c.DeathSaves.Success, dnd5e.MaxDeathSaves),
			pips(c.DeathSaves.Failure, dnd5e.MaxDeathSaves))
	}

	writeResources(&b, c.Resources)
	writeSlots(&b, c.SpellSlots)
	writeStatuses(&b, c.Statuses)
	writeConditionGrid(&b, c)

	_, err := io.WriteString(w, b.String())
	return wrapWrite(err)
}

// HPBar draws current/max as a fixed-width bar
func HPBar(current, maxHP, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	filled := 0
	if maxHP > 0 && current > 0 {
		filled = (current*width + maxHP - 1) / maxHP
		if filled > width {
			filled = width
		}
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// SlotBoxes draws one box per slot, used slots first
func SlotBoxes(s *dnd5e.SpellSlot) string {
	if s == nil || s.Max <= 0 {
		return ""
	}
	used := s.Used
	if used > s.Max {
		used = s.Max
	}
	if used < 0 {
		used = 0
	}
	return strings.TrimSpace(strings.Repeat("[x] ", used) + strings.Repeat("[ ] ", s.Max-used))
}

// ConcentrationBanner describes the held concentration, or "" when there is none
func ConcentrationBanner(c *dnd5e.Character, now time.Time) string {
	if c == nil || c.Concentration == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("** Concentrating")
	if c.Concentration.Spell != "" {
		fmt.Fprintf(&b, " on %s", c.Concentration.Spell)
	}
	if !now.IsZero() && c.Concentration.Since > 0 {
		held := now.Sub(time.UnixMilli(c.Concentration.Since)).Truncate(time.Second)
		if held > 0 {
			fmt.Fprintf(&b, " for %s", held)
		}
	}
	b.WriteString(". Taking damage requires a CON save. **")
	return b.String()
}

// DamageLine summarises one damage application
func DamageLine(name string, result engine.DamageResult, concentrationDC int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s takes %d damage", name, result.Taken)
	if result.Absorbed > 0 {
		fmt.Fprintf(&b, " (%d absorbed by temp HP)", result.Absorbed)
	}
	b.WriteString(".")
	if concentrationDC > 0 {
		fmt.Fprintf(&b, " Concentration check: DC %d CON save.", concentrationDC)
	}
	return b.String()
}

// RecoveryLabel renders a recovery type for display, e.g. "Short rest"
func RecoveryLabel(r dnd5e.RecoveryType) string {
	// Casers keep state, so each call gets its own
	title := cases.Title(language.English)
	switch r {
	case dnd5e.RecoveryShort, dnd5e.RecoveryLong:
		return title.String(string(r)) + " rest"
	case dnd5e.RecoveryNone:
		return "No recovery"
	default:
		return title.String(string(r))
	}
}

func writeResources(b *strings.Builder, resources []*dnd5e.Resource) {
	if len(resources) == 0 {
		return
	}
	b.WriteString("\nResources\n")
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for _, r := range resources {
		fmt.Fprintf(tw, "  %s\t%d / %d\t%s\t%s\n", r.Name, r.Current, r.Max, RecoveryLabel(r.RecoversOn), r.ID)
	}
	_ = tw.Flush()
}

func writeSlots(b *strings.Builder, slots []*dnd5e.SpellSlot) {
	if len(slots) == 0 {
		return
	}
	b.WriteString("\nSpell slots\n")
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for _, s := range slots {
		label := fmt.Sprintf("Level %d", s.Level)
		if s.Pact {
			label += " [Pact]"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d left\t%s\n", label, SlotBoxes(s), s.Available(), s.ID)
	}
	_ = tw.Flush()
}

func writeStatuses(b *strings.Builder, statuses []*dnd5e.Status) {
	if len(statuses) == 0 {
		return
	}
	b.WriteString("\nStatuses\n")
	for _, s := range statuses {
		fmt.Fprintf(b, "  %s (%d %s)  %s\n", s.Name, s.Remaining, s.DurationType, s.ID)
	}
}

func writeConditionGrid(b *strings.Builder, c *dnd5e.Character) {
	b.WriteString("\nConditions\n")
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for i, name := range dnd5e.StandardConditions {
		box := "[ ]"
		if c.HasCondition(name) {
			box = "[x]"
		}
		sep := "\t"
		if (i+1)%conditionColumns == 0 || i == len(dnd5e.StandardConditions)-1 {
			sep = "\n"
		}
		if i%conditionColumns == 0 {
			fmt.Fprint(tw, "  ")
		}
		fmt.Fprintf(tw, "%s %s%s", box, name, sep)
	}
	_ = tw.Flush()
}

func hpFraction(c *dnd5e.Character) string {
	return fmt.Sprintf("%d / %d", c.CurrentHP, c.MaxHP)
}

func pips(n, total int) string {
	if n > total {
		n = total
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("●", n) + strings.Repeat("○", total-n)
}

func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, "failed to write output")
}
