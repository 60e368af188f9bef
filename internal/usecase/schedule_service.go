package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/palpiteria/bolao/internal/domain/championship"
	"github.com/palpiteria/bolao/internal/infrastructure/spreadsheet"
	"github.com/palpiteria/bolao/internal/normalize"
	"github.com/palpiteria/bolao/internal/parser"
)

// ScheduleSheetReader lifts raw schedule rows out of a workbook.
type ScheduleSheetReader interface {
	ReadSchedule(path string) (*spreadsheet.ScheduleSheet, error)
}

// ScheduleService imports and maintains championship schedules.
type ScheduleService struct {
	tables  championship.Repository
	books   ScheduleSheetReader
	matcher *normalize.Matcher
	// MaxRound caps explicit round numbers in schedule inputs.
	MaxRound int
	now      func() time.Time
}

func NewScheduleService(tables championship.Repository, books ScheduleSheetReader, matcher *normalize.Matcher) *ScheduleService {
	if matcher == nil {
		matcher = normalize.NewMatcher(3, 0.34)
	}
	return &ScheduleService{
		tables:   tables,
		books:    books,
		matcher:  matcher,
		MaxRound: parser.DefaultMaxRound,
		now:      time.Now,
	}
}

// ScheduleImportOptions control a schedule import.
type ScheduleImportOptions struct {
	// Round seeds the destination round for games before the first
	// explicit round marker.
	Round int
	// Merge appends to the stored schedule instead of replacing its
	// rounds.
	Merge bool
	// Overwrite confirms replacing a schedule that already has games.
	Overwrite bool
}

type TeamRename struct {
	From string
	To   string
}

type SkippedLine struct {
	Line   int
	Reason string
}

// ScheduleImportResult reports what an import changed. Renamed lists the
// spellings reconciled against teams already in the table.
type ScheduleImportResult struct {
	Slug       string
	Table      championship.Table
	Imported   int
	Rounds     []int
	Renamed    []TeamRename
	Skipped    []SkippedLine
	BackupPath string
}

// scheduleEntry is one game lifted from an input before it lands in the
// table.
type scheduleEntry struct {
	line    int
	round   int
	kickoff time.Time
	home    string
	away    string
	venue   string
}

var (
	dashSeparator = regexp.MustCompile(`\s+-\s+`)
	pairSeparator = regexp.MustCompile(`(?i)\s+x\s+`)
)

// Kick-off layouts carrying their own time, tried before the date-only
// forms.
var kickoffLayouts = []string{
	"2006-01-02 15:04",
	"02/01/2006 15:04",
	"02-01-2006 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/06",
}

const defaultKickoffClock = "16:00"

// ImportText imports a plain-text schedule. Game lines read
// "data hora | mandante x visitante | local", with "-" accepted as the
// separator when surrounded by spaces. "Rodada N" header lines assign
// the games below them; games above the first header flow into
// opts.Round, or round 1.
func (s *ScheduleService) ImportText(ctx context.Context, slug, text string, opts ScheduleImportOptions) (*ScheduleImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ImportText")
	defer span.End()

	var entries []scheduleEntry
	var skipped []SkippedLine

	current := opts.Round
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		num := i + 1
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if n, ok := parser.HeaderRound(line, s.MaxRound); ok {
			current = n
			continue
		}

		entry, ok, reason := parseGameLine(line, num)
		if !ok {
			skipped = append(skipped, SkippedLine{Line: num, Reason: reason})
			continue
		}
		entry.round = current
		if entry.round < 1 {
			entry.round = 1
		}
		entries = append(entries, entry)
	}

	return s.apply(ctx, slug, entries, skipped, opts)
}

// ImportFile imports a schedule workbook. A filled rodada cell assigns
// its row and the rows below it, the same way a text header does.
func (s *ScheduleService) ImportFile(ctx context.Context, slug, path string, opts ScheduleImportOptions) (*ScheduleImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ImportFile")
	defer span.End()

	book, err := s.books.ReadSchedule(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule workbook: %w", err)
	}

	var entries []scheduleEntry
	skipped := make([]SkippedLine, 0, len(book.Skipped))
	for _, skip := range book.Skipped {
		skipped = append(skipped, SkippedLine{Line: skip.Line, Reason: skip.Reason})
	}

	current := opts.Round
	for _, row := range book.Rows {
		if row.Round > s.MaxRound {
			skipped = append(skipped, SkippedLine{Line: row.Line, Reason: fmt.Sprintf("round %d out of range", row.Round)})
			continue
		}
		if row.Round > 0 {
			current = row.Round
		}

		kickoff, ok := parseKickoff(row.Date, row.Time)
		if !ok {
			skipped = append(skipped, SkippedLine{Line: row.Line, Reason: fmt.Sprintf("unparseable date %q", row.Date)})
			continue
		}

		round := current
		if round < 1 {
			round = 1
		}
		venue := row.Venue
		if venue == "" {
			venue = championship.DefaultVenue
		}
		entries = append(entries, scheduleEntry{
			line:    row.Line,
			round:   round,
			kickoff: kickoff,
			home:    row.Home,
			away:    row.Away,
			venue:   venue,
		})
	}

	return s.apply(ctx, slug, entries, skipped, opts)
}

// apply reconciles team spellings, validates the batch and writes it
// into the stored table. Replacing swaps the rounds and keeps the
// championship metadata; merging appends, with match ids continuing from
// the highest stored one.
func (s *ScheduleService) apply(ctx context.Context, slug string, entries []scheduleEntry, skipped []SkippedLine, opts ScheduleImportOptions) (*ScheduleImportResult, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no games found in input", ErrInvalidInput)
	}

	table, found, err := s.tables.Load(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: championship %s", ErrNotFound, slug)
	}

	hasGames := false
	for _, round := range table.Rounds {
		if len(round.Matches) > 0 {
			hasGames = true
			break
		}
	}
	if hasGames && !opts.Merge && !opts.Overwrite {
		return nil, fmt.Errorf("%w: schedule of %s already has games", ErrOverwriteRefused, slug)
	}

	known := championship.KnownTeams(table)
	var renamed []TeamRename
	renameSeen := make(map[string]struct{})
	reconcile := func(name string) string {
		if len(known) == 0 {
			return name
		}
		match, ok := s.matcher.FindSimilar(name, known)
		if !ok || match == name {
			return name
		}
		if _, dup := renameSeen[name]; !dup {
			renameSeen[name] = struct{}{}
			renamed = append(renamed, TeamRename{From: name, To: match})
		}
		return match
	}
	for i := range entries {
		entries[i].home = reconcile(entries[i].home)
		entries[i].away = reconcile(entries[i].away)
	}

	for _, entry := range entries {
		if normalize.Team(entry.home) == normalize.Team(entry.away) {
			return nil, fmt.Errorf("%w: game on line %d has the same team on both sides", ErrInvalidInput, entry.line)
		}
	}

	backupPath := ""
	if hasGames && !opts.Merge {
		backupPath, err = s.tables.Backup(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("backup table: %w", err)
		}
		table.Rounds = nil
	}

	touched := make(map[int]struct{})
	for _, entry := range entries {
		round := championship.EnsureRound(&table, entry.round)
		round.Matches = append(round.Matches, championship.Match{
			ID:        championship.NextMatchID(table),
			HomeTeam:  entry.home,
			AwayTeam:  entry.away,
			KickoffAt: entry.kickoff,
			Venue:     entry.venue,
			Status:    championship.StatusScheduled,
			Mandatory: true,
		})
		touched[entry.round] = struct{}{}
	}

	championship.SortRounds(&table)
	if err := championship.Validate(table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	table.UpdatedAt = s.now()
	if err := s.tables.Save(ctx, slug, table); err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}

	rounds := make([]int, 0, len(touched))
	for n := range touched {
		rounds = append(rounds, n)
	}
	sort.Ints(rounds)

	return &ScheduleImportResult{
		Slug:       slug,
		Table:      table,
		Imported:   len(entries),
		Rounds:     rounds,
		Renamed:    renamed,
		Skipped:    skipped,
		BackupPath: backupPath,
	}, nil
}

// parseGameLine splits "data hora | mandante x visitante | local". The
// venue part is optional. Dashes separate parts only when surrounded by
// spaces, so ISO dates and hyphenated club names survive.
func parseGameLine(line string, num int) (scheduleEntry, bool, string) {
	var parts []string
	if strings.Contains(line, "|") {
		parts = strings.Split(line, "|")
	} else {
		parts = dashSeparator.Split(line, 3)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return scheduleEntry{}, false, "not a schedule line"
	}

	pair := pairSeparator.Split(parts[1], 2)
	if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
		return scheduleEntry{}, false, "no mandante x visitante pair"
	}

	kickoff, ok := parseKickoff(parts[0], "")
	if !ok {
		return scheduleEntry{}, false, fmt.Sprintf("unparseable date %q", parts[0])
	}

	venue := championship.DefaultVenue
	if len(parts) >= 3 && parts[2] != "" {
		venue = parts[2]
	}
	return scheduleEntry{
		line:    num,
		kickoff: kickoff,
		home:    strings.TrimSpace(pair[0]),
		away:    strings.TrimSpace(pair[1]),
		venue:   venue,
	}, true, ""
}

// parseKickoff reads a kick-off from a date cell and an optional clock
// cell. A lone date may carry its own time; without one the clock cell
// applies, and a missing or unreadable clock falls back to 16:00.
func parseKickoff(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, false
	}

	if clock == "" {
		for _, layout := range kickoffLayouts {
			if t, err := time.Parse(layout, date); err == nil {
				return t, true
			}
		}
	}

	for _, layout := range dateLayouts {
		day, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		hm, err := time.Parse("15:04", clock)
		if err != nil {
			hm, _ = time.Parse("15:04", defaultKickoffClock)
		}
		return time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
