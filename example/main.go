// Command example expands a yaml-described set of shift rotations into
// calendar occurrences and prints them as JSON, the same payload the shifts
// endpoint of the dashboard would serve.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samber/mo"
	"gopkg.in/yaml.v3"

	"github.com/hearthplan/recurrence/shifts"
	"github.com/hearthplan/recurrence/weekday"
)

const dateLayout = "2006-01-02"

// slotConfig describes one shift slot within a rotation cycle.
type slotConfig struct {
	// WeekIndex is the zero-based week of the cycle this slot belongs to.
	WeekIndex int `yaml:"week_index"`
	// DayOfWeek is 0-6, Sunday-first.
	DayOfWeek int `yaml:"day_of_week"`
	// StartTime and EndTime are 24-hour "HH:MM"; "00:00"-"24:00" marks an
	// all-day shift.
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
	Label     string `yaml:"label"`
}

// assignmentConfig binds a user to the rotation over a date range.
type assignmentConfig struct {
	UserID    string `yaml:"user_id"`
	StartDate string `yaml:"start_date"`
	// EndDate is optional; empty means open-ended.
	EndDate string `yaml:"end_date"`
}

type rotationConfig struct {
	Name        string             `yaml:"name"`
	CycleWeeks  int                `yaml:"cycle_weeks"`
	Color       string             `yaml:"color"`
	Slots       []slotConfig       `yaml:"slots"`
	Assignments []assignmentConfig `yaml:"assignments"`
}

type userConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// config is the example's top-level yaml document.
type config struct {
	// EventColor is the fallback occurrence color.
	EventColor string `yaml:"event_color"`
	// UseUserColors colors occurrences by assigned user.
	UseUserColors bool `yaml:"use_user_colors"`
	// WindowStart/WindowEnd bound the expansion; empty means the default
	// window around now (one year back, two forward).
	WindowStart string           `yaml:"window_start"`
	WindowEnd   string           `yaml:"window_end"`
	Users       []userConfig     `yaml:"users"`
	Rotations   []rotationConfig `yaml:"rotations"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml configuration")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	directory := shifts.MapDirectory{}
	for _, u := range cfg.Users {
		directory[u.ID] = shifts.User{ID: u.ID, Name: u.Name, Color: u.Color}
	}

	rotations, err := buildRotations(cfg.Rotations)
	if err != nil {
		logger.Error("invalid rotation configuration", "error", err)
		os.Exit(1)
	}

	window, err := buildWindow(cfg)
	if err != nil {
		logger.Error("invalid window configuration", "error", err)
		os.Exit(1)
	}

	expander := shifts.NewExpander(directory, logger)
	occurrences := expander.Expand(rotations, shifts.Settings{
		EventColor:    cfg.EventColor,
		UseUserColors: cfg.UseUserColors,
	}, window)

	logger.Info("expanded rotations",
		"rotations", len(rotations),
		"occurrences", len(occurrences),
		"window_start", window.Start.Format(dateLayout),
		"window_end", window.End.Format(dateLayout))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(occurrences); err != nil {
		logger.Error("failed to encode occurrences", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func buildRotations(configs []rotationConfig) ([]shifts.Rotation, error) {
	var rotations []shifts.Rotation
	for i, rc := range configs {
		rotation := shifts.Rotation{
			Name:       rc.Name,
			CycleWeeks: rc.CycleWeeks,
			Color:      rc.Color,
			Order:      i,
		}
		for j, sc := range rc.Slots {
			rotation.Slots = append(rotation.Slots, shifts.Slot{
				WeekIndex: sc.WeekIndex,
				DayOfWeek: weekday.Index(sc.DayOfWeek),
				StartTime: sc.StartTime,
				EndTime:   sc.EndTime,
				Label:     sc.Label,
				Order:     j,
			})
		}
		for _, ac := range rc.Assignments {
			start, err := time.ParseInLocation(dateLayout, ac.StartDate, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("rotation %q: bad start_date %q: %w", rc.Name, ac.StartDate, err)
			}
			end := mo.None[time.Time]()
			if ac.EndDate != "" {
				parsed, err := time.ParseInLocation(dateLayout, ac.EndDate, time.UTC)
				if err != nil {
					return nil, fmt.Errorf("rotation %q: bad end_date %q: %w", rc.Name, ac.EndDate, err)
				}
				end = mo.Some(parsed)
			}
			rotation.Assignments = append(rotation.Assignments, shifts.Assignment{
				UserID:    ac.UserID,
				StartDate: start,
				EndDate:   end,
			})
		}
		shifts.EnsureIDs(&rotation)
		rotations = append(rotations, rotation)
	}
	return rotations, nil
}

func buildWindow(cfg config) (shifts.Window, error) {
	if cfg.WindowStart == "" || cfg.WindowEnd == "" {
		return shifts.DefaultWindow(time.Now()), nil
	}
	start, err := time.ParseInLocation(dateLayout, cfg.WindowStart, time.UTC)
	if err != nil {
		return shifts.Window{}, fmt.Errorf("bad window_start %q: %w", cfg.WindowStart, err)
	}
	end, err := time.ParseInLocation(dateLayout, cfg.WindowEnd, time.UTC)
	if err != nil {
		return shifts.Window{}, fmt.Errorf("bad window_end %q: %w", cfg.WindowEnd, err)
	}
	return shifts.Window{Start: start, End: end}, nil
}
