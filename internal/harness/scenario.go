package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/habitual/internal/habit"
	"github.com/roach88/habitual/internal/period"
)

// Scenario describes a habit history and the streaks expected from it.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Now is the frozen current time, "2006-01-02 15:04:05" in UTC.
	Now string `yaml:"now"`

	// Habits are created in order, each with its creation marker at Now.
	Habits []HabitSpec `yaml:"habits"`

	// Completions are recorded in order after every habit exists.
	Completions []CompletionStep `yaml:"completions,omitempty"`

	// Expect lists the values the analysis must produce. Optional.
	Expect *Expectations `yaml:"expect,omitempty"`
}

// HabitSpec declares one habit.
type HabitSpec struct {
	Name        string `yaml:"name"`
	Period      string `yaml:"period"`
	Description string `yaml:"description,omitempty"`

	// Active defaults to true.
	Active *bool `yaml:"active,omitempty"`
}

// IsActive reports whether the habit is created active.
func (h HabitSpec) IsActive() bool {
	return h.Active == nil || *h.Active
}

// CompletionStep records completions of a habit, either at offsets before
// Now or at an absolute time.
type CompletionStep struct {
	Habit string  `yaml:"habit"`
	Ago   AgoList `yaml:"ago,omitempty"`
	At    string  `yaml:"at,omitempty"`
}

// AgoList is one or more offsets such as "3d". It decodes from a scalar or a
// sequence.
type AgoList []string

// UnmarshalYAML accepts both `ago: 1d` and `ago: [1d, 2d]`.
func (a *AgoList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = AgoList{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*a = list
		return nil
	default:
		return fmt.Errorf("line %d: ago must be a string or a list of strings", node.Line)
	}
}

// Expectations are checked after the history is seeded. Map keys are habit
// names, except for Active which is keyed by period filter.
type Expectations struct {
	CurrentStreak map[string]int      `yaml:"current_streak,omitempty"`
	LongestStreak map[string]int      `yaml:"longest_streak,omitempty"`
	Completed     map[string]bool     `yaml:"completed,omitempty"`
	Active        map[string][]string `yaml:"active,omitempty"`
}

// ErrInvalidScenario marks a scenario that parsed but failed the schema or
// its cross-reference checks.
var ErrInvalidScenario = errors.New("invalid scenario")

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or references undeclared habits.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "habit:" vs "habits:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	return &scenario, nil
}

// NowTime parses Now in UTC.
func (s *Scenario) NowTime() (time.Time, error) {
	t, err := time.ParseInLocation(habit.TimestampLayout, s.Now, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("now: %w", err)
	}
	return t, nil
}

// validateScenario checks the things the schema cannot: every name refers
// to a declared habit and every time parses.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Habits) == 0 {
		return fmt.Errorf("habits list is required and must be non-empty")
	}
	if _, err := s.NowTime(); err != nil {
		return err
	}

	declared := make(map[string]bool, len(s.Habits))
	for i, h := range s.Habits {
		name := habit.NormalizeName(h.Name)
		if name == "" {
			return fmt.Errorf("habits[%d]: name is required", i)
		}
		if declared[name] {
			return fmt.Errorf("habits[%d]: duplicate habit %q", i, name)
		}
		if _, err := period.ParseKind(h.Period); err != nil {
			return fmt.Errorf("habits[%d]: %w", i, err)
		}
		declared[name] = true
	}

	for i, c := range s.Completions {
		if !declared[habit.NormalizeName(c.Habit)] {
			return fmt.Errorf("completions[%d]: undeclared habit %q", i, c.Habit)
		}
		if (len(c.Ago) == 0) == (c.At == "") {
			return fmt.Errorf("completions[%d]: exactly one of ago or at is required", i)
		}
		for _, ago := range c.Ago {
			if _, _, err := parseAgo(ago); err != nil {
				return fmt.Errorf("completions[%d]: %w", i, err)
			}
		}
		if c.At != "" {
			if _, err := time.Parse(habit.TimestampLayout, c.At); err != nil {
				return fmt.Errorf("completions[%d]: at: %w", i, err)
			}
		}
	}

	if s.Expect == nil {
		return nil
	}
	for _, names := range []map[string]int{s.Expect.CurrentStreak, s.Expect.LongestStreak} {
		for name := range names {
			if !declared[habit.NormalizeName(name)] {
				return fmt.Errorf("expect: undeclared habit %q", name)
			}
		}
	}
	for name := range s.Expect.Completed {
		if !declared[habit.NormalizeName(name)] {
			return fmt.Errorf("expect.completed: undeclared habit %q", name)
		}
	}
	for filter, names := range s.Expect.Active {
		if filter != "all" {
			if _, err := period.ParseKind(filter); err != nil {
				return fmt.Errorf("expect.active: %w", err)
			}
		}
		for _, name := range names {
			if !declared[habit.NormalizeName(name)] {
				return fmt.Errorf("expect.active[%s]: undeclared habit %q", filter, name)
			}
		}
	}

	return nil
}

var agoPattern = regexp.MustCompile(`^([0-9]+)([hdw])$`)

// parseAgo splits an offset like "3d" into its count and unit.
func parseAgo(s string) (int, byte, error) {
	m := agoPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid offset %q: want <n>h, <n>d or <n>w", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return n, m[2][0], nil
}

// resolveAgo returns the instant s before now. Days and weeks are calendar
// days and keep the wall clock time.
func resolveAgo(now time.Time, s string) (time.Time, error) {
	n, unit, err := parseAgo(s)
	if err != nil {
		return time.Time{}, err
	}
	switch unit {
	case 'h':
		return now.Add(-time.Duration(n) * time.Hour), nil
	case 'w':
		return now.AddDate(0, 0, -7*n), nil
	default:
		return now.AddDate(0, 0, -n), nil
	}
}
