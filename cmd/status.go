package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/storage"
	"eyecare/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const defaultRecentBreaks = 5

func newStatusCmd(opts *options) *cobra.Command {
	var recent int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved timer state and today's breaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveConfigDir(opts)
			if err != nil {
				return err
			}
			settings, err := storage.LoadSettings(dir)
			if err != nil {
				log.Printf("settings: %v", err)
			}

			snapshot, err := storage.NewSnapshotFile(dir).Read()
			if err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
				return err
			}
			found := err == nil

			journal, err := storage.OpenJournal(storage.JournalPath(dir))
			if err != nil {
				return err
			}
			defer journal.Close()
			totals, err := journal.DailyTotals(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			var entries []model.BreakEntry
			if recent > 0 {
				entries, err = journal.Recent(cmd.Context(), recent)
				if err != nil {
					return err
				}
			}

			view := projectSnapshot(snapshot, settings.BreakLength, time.Now())
			view.found = found
			writeStatus(cmd.OutOrStdout(), view, totals, entries, theme.Colors(settings.Theme))
			return nil
		},
	}
	cmd.Flags().IntVar(&recent, "recent", defaultRecentBreaks, "number of recent breaks to list (0 hides them)")
	return cmd
}

func newResetStateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-state",
		Short: "Delete the saved timer state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveConfigDir(opts)
			if err != nil {
				return err
			}
			file := storage.NewSnapshotFile(dir)
			if err := file.Remove(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", file.Path())
			return nil
		},
	}
}

// statusView is the snapshot as it would look right now.
type statusView struct {
	found     bool
	phase     model.Phase
	running   bool
	remaining int
	selected  model.WorkDuration
	streak    int
	updated   time.Time
}

// projectSnapshot counts down a running snapshot to now, the same way the
// app does on restore.
func projectSnapshot(snapshot model.Snapshot, breakLength time.Duration, now time.Time) statusView {
	view := statusView{
		phase:     model.PhaseWork,
		selected:  model.DefaultWorkDuration,
		remaining: model.DefaultWorkDuration.Seconds(),
	}
	if snapshot.SelectedDuration != nil {
		if duration, ok := model.ParseWorkDuration(*snapshot.SelectedDuration); ok {
			view.selected = duration
			view.remaining = duration.Seconds()
		}
	}
	if snapshot.IsBreakTime != nil && *snapshot.IsBreakTime {
		view.phase = model.PhaseBreak
		if breakLength <= 0 {
			breakLength = model.DefaultBreakLength
		}
		view.remaining = int(breakLength / time.Second)
	}
	if view.phase == model.PhaseBreak && snapshot.BreakTimeRemaining != nil {
		view.remaining = *snapshot.BreakTimeRemaining
	}
	if view.phase == model.PhaseWork && snapshot.TimeRemaining != nil {
		view.remaining = *snapshot.TimeRemaining
	}
	if snapshot.BreakStreak != nil {
		view.streak = *snapshot.BreakStreak
	}
	if snapshot.LastUpdateTime != nil {
		view.updated = *snapshot.LastUpdateTime
	}
	view.running = snapshot.IsRunning != nil && *snapshot.IsRunning

	if view.running && !view.updated.IsZero() {
		elapsed := int(now.Sub(view.updated) / time.Second)
		if elapsed > 0 {
			view.remaining -= elapsed
		}
	}
	if view.remaining <= 0 {
		view.remaining = 0
		view.running = false
	}
	return view
}

func writeStatus(out io.Writer, view statusView, totals model.DailyTotals, recent []model.BreakEntry, palette theme.Palette) {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Terminal(palette.Accent))
	label := lipgloss.NewStyle().Foreground(theme.Terminal(palette.Muted)).Width(12)
	value := lipgloss.NewStyle().Foreground(theme.Terminal(palette.Foreground))
	streak := lipgloss.NewStyle().Foreground(theme.Terminal(palette.Warning))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Terminal(palette.Border)).
		Padding(0, 1)

	row := func(name, text string, style lipgloss.Style) string {
		return label.Render(name) + style.Render(text)
	}

	lines := []string{title.Render(appName)}
	if !view.found {
		lines = append(lines, value.Render("No saved timer state"))
	} else {
		lines = append(lines,
			row("Phase", phaseLabel(view), value),
			row("Remaining", model.FormatClock(view.remaining), value),
			row("Work", view.selected.Title(), value),
			row("Streak", fmt.Sprintf("%d", view.streak), streak),
		)
		if !view.updated.IsZero() {
			lines = append(lines, row("Updated", view.updated.Local().Format("15:04:05"), value))
		}
	}
	lines = append(lines, row("Today", fmt.Sprintf("%d taken, %d skipped", totals.Completed, totals.Skipped), value))
	if len(recent) > 0 {
		lines = append(lines, "", title.Render("Recent"))
		for _, entry := range recent {
			text := fmt.Sprintf("%s  %-9s streak %d", entry.At.Local().Format("Jan 02 15:04"), entry.Outcome, entry.Streak)
			lines = append(lines, value.Render(text))
		}
	}

	fmt.Fprintln(out, box.Render(strings.Join(lines, "\n")))
}

func phaseLabel(view statusView) string {
	name := "Work"
	if view.phase == model.PhaseBreak {
		name = "Break"
	}
	if !view.running {
		return name + " (stopped)"
	}
	return name
}
