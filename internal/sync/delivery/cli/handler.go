package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"markdown-calendar-sync/config"
	"markdown-calendar-sync/internal/sync"
	pkgLog "markdown-calendar-sync/pkg/log"
)

const banner = `
 ######     ###    ##        ######  ##    ## ##    ##  ######
##    ##   ## ##   ##       ##    ##  ##  ##  ###   ## ##    ##
##        ##   ##  ##       ##         ####   ####  ## ##
##       ##     ## ##        ######     ##    ## ## ## ##
##       ######### ##             ##    ##    ##  #### ##
##    ## ##     ## ##       ##    ##    ##    ##   ### ##    ##
 ######  ##     ## ########  ######     ##    ##    ##  ######
`

const warningMsg = `Create your Google Calendar events from .md files.

Warnings!

1. The Google Calendar events will be updated or created
2. A badly formatted .md file aborts the whole run
`

type handler struct {
	l   pkgLog.Logger
	cfg *config.Config
	uc  sync.UseCase
}

// Run drives one sync session: pick an agenda, a period and a set of
// weeks, confirm, then reconcile each week file against the remote
// calendar. Missing options are asked interactively.
func (h *handler) Run(ctx context.Context, opts RunOptions) error {
	agenda, err := h.resolveAgenda(opts)
	if err != nil {
		return err
	}

	year := h.cfg.Schedule.SchoolYear
	if year == 0 {
		year = schoolYearOf(time.Now())
	}

	period := opts.Period
	if period == 0 {
		if period, err = askPeriod(); err != nil {
			return err
		}
	}

	weeks := opts.Weeks
	if len(weeks) == 0 {
		if weeks, err = h.askWeeks(agenda, year, period); err != nil {
			return err
		}
	}
	if len(weeks) == 0 {
		return fmt.Errorf("%w: %s period %d", ErrNoWeekFiles, agenda.ShortName, period)
	}

	paths := weekPaths(agenda.RootPath, year, period, weeks)
	if opts.View {
		fmt.Print(previewText(paths))
	}
	if !opts.Yes {
		fmt.Print(banner + "\n")
		fmt.Print(warningMsg + "\n")
		if !opts.View {
			view, err := askView()
			if err != nil {
				return err
			}
			if view {
				fmt.Print(previewText(paths))
			}
		}
		if err := confirmPush(agenda, year, period, weeks); err != nil {
			return err
		}
	}

	// The reference date anchors year inference to the school year being
	// synced, not to whenever the command happens to run.
	reference := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)

	for _, week := range weeks {
		path := weekPath(agenda.RootPath, year, period, week)
		h.l.Infof(ctx, "syncing %s to %s", path, agenda.LongName)

		out, err := h.uc.SyncFile(ctx, sync.SyncFileInput{
			Path:         path,
			CalendarID:   agenda.CalendarID,
			Reference:    reference,
			DefaultColor: agenda.DefaultColor,
		})
		if err != nil {
			return fmt.Errorf("week %d: %w", week, err)
		}
		h.l.Infof(ctx, "week %d: %d created, %d updated", week, out.Created, out.Updated)
	}
	return nil
}

func (h *handler) resolveAgenda(opts RunOptions) (config.AgendaConfig, error) {
	if opts.Agenda != "" {
		agenda, ok := h.cfg.Agenda(opts.Agenda)
		if !ok {
			return config.AgendaConfig{}, fmt.Errorf("%w: %s", ErrUnknownAgenda, opts.Agenda)
		}
		return agenda, nil
	}
	if !opts.Interactive {
		return h.cfg.DefaultAgenda(), nil
	}

	selected := h.cfg.DefaultAgenda().ShortName
	options := make([]huh.Option[string], 0, len(h.cfg.Agendas))
	for _, agenda := range h.cfg.Agendas {
		options = append(options, huh.NewOption(agenda.LongName, agenda.ShortName))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which agenda do you want to sync?").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return config.AgendaConfig{}, fmt.Errorf("%w: %v", ErrAborted, err)
	}
	agenda, _ := h.cfg.Agenda(selected)
	return agenda, nil
}

func askPeriod() (int, error) {
	periodStr := "1"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Period").
				Description("School-year period, 1 to 5.").
				Validate(func(s string) error {
					p, err := strconv.Atoi(s)
					if err != nil || p < 1 || p > 5 {
						return fmt.Errorf("enter a number between 1 and 5")
					}
					return nil
				}).
				Value(&periodStr),
		),
	)
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAborted, err)
	}
	period, _ := strconv.Atoi(periodStr)
	return period, nil
}

func (h *handler) askWeeks(agenda config.AgendaConfig, year, period int) ([]int, error) {
	available, err := listWeeks(agenda.RootPath, year, period)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: %s period %d", ErrNoWeekFiles, agenda.ShortName, period)
	}

	options := make([]huh.Option[int], 0, len(available))
	for _, week := range available {
		options = append(options, huh.NewOption(fmt.Sprintf("Week %d", week), week))
	}

	var weeks []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Which weeks?").
				Options(options...).
				Value(&weeks),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAborted, err)
	}
	return weeks, nil
}

func askView() (bool, error) {
	view := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Do you want to see the content of the files?").
				Value(&view),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrAborted, err)
	}
	return view, nil
}

func confirmPush(agenda config.AgendaConfig, year, period int, weeks []int) error {
	proceed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("LAST WARNING! Push %d week(s) of period %d to %q?", len(weeks), period, agenda.LongName)).
				Description(fmt.Sprintf("Files under %s", periodDir(agenda.RootPath, year, period))).
				Value(&proceed),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrAborted, err)
	}
	if !proceed {
		return ErrAborted
	}
	return nil
}
