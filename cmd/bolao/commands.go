package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/palpiteria/bolao/internal/app"
	"github.com/palpiteria/bolao/internal/normalize"
	"github.com/palpiteria/bolao/internal/parser"
	"github.com/palpiteria/bolao/internal/usecase"
)

func newCLI(a *app.App) *cli.App {
	return &cli.App{
		Name:  "bolao",
		Usage: "administer a closed-group sports prediction pool",
		Commands: []*cli.Command{
			newChampionshipCommand(a),
			newParticipantsCommand(a),
			newScheduleCommand(a),
			newPredictionsCommand(a),
			newResultsCommand(a),
			newRoundCommand(a),
		},
	}
}

func newChampionshipCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "championship",
		Usage: "create championships and their scoring rules",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "register a new championship",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "championship name", Required: true},
					&cli.StringFlag{Name: "season", Usage: "season label, like 2025"},
				},
				Action: func(c *cli.Context) error {
					res, err := a.Championships.Create(c.Context, usecase.CreateChampionshipInput{
						Name:   c.String("name"),
						Season: c.String("season"),
					})
					if err != nil {
						return withHint(err)
					}
					fmt.Fprintf(c.App.Writer, "championship %q created\n  slug: %s\n  join code: %s\n",
						res.Table.Championship, res.Slug, res.Code)
					return nil
				},
			},
			{
				Name:  "rules",
				Usage: "write the standard scoring rules, replacing the stored document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "championship name or slug", Required: true},
				},
				Action: func(c *cli.Context) error {
					slug, err := championshipSlug(c.String("name"))
					if err != nil {
						return err
					}
					set, err := a.Championships.GenerateRules(c.Context, slug)
					if err != nil {
						return withHint(err)
					}
					fmt.Fprintf(c.App.Writer, "scoring rules v%s written for %s (%d rules)\n",
						set.Version, set.Championship, len(set.Rules))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list registered championships",
				Action: func(c *cli.Context) error {
					slugs, err := a.Championships.List(c.Context)
					if err != nil {
						return withHint(err)
					}
					if len(slugs) == 0 {
						fmt.Fprintln(c.App.Writer, "no championships yet")
						return nil
					}
					for _, slug := range slugs {
						fmt.Fprintln(c.App.Writer, slug)
					}
					return nil
				},
			},
		},
	}
}

func newParticipantsCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "participants",
		Usage: "manage the participant registry",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "register participants from a list, a text file or a workbook column",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "championship", Usage: "championship name or slug", Required: true},
					&cli.StringFlag{Name: "names", Usage: "comma-separated participant names"},
					&cli.StringFlag{Name: "file", Usage: "text file with one name per line"},
					&cli.StringFlag{Name: "excel", Usage: "xlsx workbook with a name column"},
					&cli.StringFlag{Name: "column", Usage: "header of the name column", Value: "Nome"},
				},
				Action: func(c *cli.Context) error {
					slug, err := championshipSlug(c.String("championship"))
					if err != nil {
						return err
					}
					names, err := participantNames(c, a)
					if err != nil {
						return err
					}
					res, err := a.Championships.AddParticipants(c.Context, slug, names)
					if err != nil {
						return withHint(err)
					}
					for _, name := range res.Added {
						fmt.Fprintf(c.App.Writer, "added %s\n", name)
					}
					for _, skipped := range res.Skipped {
						fmt.Fprintf(c.App.Writer, "skipped %s: %s\n", skipped.Name, skipped.Reason)
					}
					fmt.Fprintf(c.App.Writer, "%d added, %d skipped\n", len(res.Added), len(res.Skipped))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list registered participants with their sheet sizes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "championship", Usage: "championship name or slug", Required: true},
				},
				Action: func(c *cli.Context) error {
					slug, err := championshipSlug(c.String("championship"))
					if err != nil {
						return err
					}
					sheets, err := a.Championships.Participants(c.Context, slug)
					if err != nil {
						return withHint(err)
					}
					if len(sheets) == 0 {
						fmt.Fprintln(c.App.Writer, "no participants yet")
						return nil
					}
					for _, sheet := range sheets {
						fmt.Fprintf(c.App.Writer, "%s (code %s, %d predictions)\n",
							sheet.Participant, sheet.Code, len(sheet.Predictions))
					}
					return nil
				},
			},
		},
	}
}

func newScheduleCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "import the match schedule",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "import games from a text file or an xlsx workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "championship", Usage: "championship name or slug", Required: true},
					&cli.StringFlag{Name: "file", Usage: "schedule file (.txt or .xlsx)", Required: true},
					&cli.IntFlag{Name: "round", Usage: "round for games before the first round marker"},
					&cli.BoolFlag{Name: "merge", Usage: "append to the stored schedule instead of replacing it"},
					&cli.BoolFlag{Name: "overwrite", Usage: "confirm replacing a schedule that already has games"},
				},
				Action: func(c *cli.Context) error {
					slug, err := championshipSlug(c.String("championship"))
					if err != nil {
						return err
					}
					opts := usecase.ScheduleImportOptions{
						Round:     c.Int("round"),
						Merge:     c.Bool("merge"),
						Overwrite: c.Bool("overwrite"),
					}

					path := c.String("file")
					var res *usecase.ScheduleImportResult
					if isWorkbook(path) {
						res, err = a.Schedules.ImportFile(c.Context, slug, path, opts)
					} else {
						raw, readErr := os.ReadFile(path)
						if readErr != nil {
							return fmt.Errorf("read %s: %w", path, readErr)
						}
						res, err = a.Schedules.ImportText(c.Context, slug, string(raw), opts)
					}
					if err != nil {
						return withHint(err)
					}

					fmt.Fprintf(c.App.Writer, "%d games imported into rounds %s\n",
						res.Imported, joinInts(res.Rounds))
					for _, rename := range res.Renamed {
						fmt.Fprintf(c.App.Writer, "team %q reconciled as %q\n", rename.From, rename.To)
					}
					for _, skipped := range res.Skipped {
						fmt.Fprintf(c.App.Writer, "line %d skipped: %s\n", skipped.Line, skipped.Reason)
					}
					if res.BackupPath != "" {
						fmt.Fprintf(c.App.Writer, "previous schedule backed up to %s\n", res.BackupPath)
					}
					return nil
				},
			},
		},
	}
}

func newPredictionsCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "predictions",
		Usage: "import participant predictions",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "parse a prediction message and store its entries",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "championship", Usage: "championship name or slug", Required: true},
					&cli.StringFlag{Name: "file", Usage: "text file with the prediction message", Required: true},
					&cli.IntFlag{Name: "round", Usage: "round override for sections without a marker"},
					&cli.BoolFlag{Name: "accept-inferred", Usage: "take a round inferred from team mentions"},
					&cli.BoolFlag{Name: "force", Usage: "replace predictions already stored for the round"},
					&cli.BoolFlag{Name: "dry-run", Usage: "parse and pair without saving"},
				},
				Action: func(c *cli.Context) error {
					slug, err := championshipSlug(c.String("championship"))
					if err != nil {
						return err
					}
					raw, err := os.ReadFile(c.String("file"))
					if err != nil {
						return fmt.Errorf("read %s: %w", c.String("file"), err)
					}

					results, err := a.Predictions.Import(c.Context, slug, string(raw), usecase.PredictionImportOptions{
						Round:          c.Int("round"),
						AcceptInferred: c.Bool("accept-inferred"),
						Force:          c.Bool("force"),
						DryRun:         c.Bool("dry-run"),
					})
					if err != nil {
						return withHint(err)
					}

					for _, res := range results {
						fmt.Fprintln(c.App.Writer, formatImport(res))
					}
					return nil
				},
			},
		},
	}
}

func newResultsCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "results",
		Usage: "record final scores",
		Subcommands: []*cli.Command{
			{
				Name:  "set",
				Usage: "store final scores for matches of one round",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "championship", Usage: "championship name or slug", Required: true},
					&cli.IntFlag{Name: "round", Usage: "round number", Required: true},
					&cli.StringSliceFlag{Name: "match", Usage: "match id, like jogo-001 (repeatable)"},
					&cli.StringSliceFlag{Name: "score", Usage: "final score, like 2x1 (one per --match)"},
				},
				Action: func(c *cli.Context) error {
					slug, err := championshipSlug(c.String("championship"))
					if err != nil {
						return err
					}
					matches := c.StringSlice("match")
					scores := c.StringSlice("score")
					if len(matches) == 0 || len(matches) != len(scores) {
						return fmt.Errorf("pass one --score per --match")
					}

					batch := make([]usecase.MatchResult, len(matches))
					for i, id := range matches {
						home, away, err := parseScore(scores[i])
						if err != nil {
							return err
						}
						batch[i] = usecase.MatchResult{MatchID: id, HomeGoals: home, AwayGoals: away}
					}

					round, err := a.Rounds.RecordResults(c.Context, slug, c.Int("round"), batch)
					if err != nil {
						return withHint(err)
					}
					fmt.Fprintf(c.App.Writer, "%d results recorded in round %d\n", len(batch), round.Number)
					return nil
				},
			},
		},
	}
}

func newRoundCommand(a *app.App) *cli.Command {
	return &cli.Command{
		Name:  "round",
		Usage: "score rounds and build the classification",
		Subcommands: []*cli.Command{
			{
				Name:  "process",
				Usage: "score a round; without --final nothing is written",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "championship", Usage: "championship name or slug", Required: true},
					&cli.IntFlag{Name: "round", Usage: "round number", Required: true},
					&cli.BoolFlag{Name: "final", Usage: "close the round: backup, report and current-round advance"},
				},
				Action: func(c *cli.Context) error {
					slug, err := championshipSlug(c.String("championship"))
					if err != nil {
						return err
					}
					res, err := a.Rounds.Process(c.Context, slug, c.Int("round"), usecase.ProcessOptions{
						Final: c.Bool("final"),
					})
					if err != nil {
						return withHint(err)
					}

					if !res.Final && len(res.Pending) > 0 {
						fmt.Fprintf(c.App.Writer, "preview: %d mandatory games still without result\n", len(res.Pending))
						for _, match := range res.Pending {
							fmt.Fprintf(c.App.Writer, "  %s: %s x %s\n", match.ID, match.HomeTeam, match.AwayTeam)
						}
					}
					fmt.Fprintln(c.App.Writer, res.Report)
					fmt.Fprintln(c.App.Writer, res.Summary)
					if res.Final {
						fmt.Fprintf(c.App.Writer, "table backed up to %s\n", res.BackupPath)
						fmt.Fprintf(c.App.Writer, "report archived at %s\n", res.ReportPath)
					}
					return nil
				},
			},
		},
	}
}

// participantNames collects names from exactly one of --names, --file or
// --excel.
func participantNames(c *cli.Context, a *app.App) ([]string, error) {
	sources := 0
	for _, flag := range []string{"names", "file", "excel"} {
		if c.String(flag) != "" {
			sources++
		}
	}
	if sources != 1 {
		return nil, fmt.Errorf("pass exactly one of --names, --file or --excel")
	}

	switch {
	case c.String("names") != "":
		var names []string
		for _, name := range strings.Split(c.String("names"), ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		return names, nil
	case c.String("file") != "":
		raw, err := os.ReadFile(c.String("file"))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", c.String("file"), err)
		}
		var names []string
		for _, line := range strings.Split(string(raw), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				names = append(names, line)
			}
		}
		return names, nil
	default:
		return a.Sheets.ReadColumn(c.String("excel"), c.String("column"))
	}
}

func championshipSlug(name string) (string, error) {
	slug := normalize.Championship(name)
	if slug == "" {
		return "", fmt.Errorf("championship name %q has no usable characters", name)
	}
	return slug, nil
}

func parseScore(text string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(text)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("score %q: want the home x away form, like 2x1", text)
	}
	home, errHome := strconv.Atoi(strings.TrimSpace(parts[0]))
	away, errAway := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errHome != nil || errAway != nil {
		return 0, 0, fmt.Errorf("score %q: want the home x away form, like 2x1", text)
	}
	return home, away, nil
}

func formatImport(res usecase.PredictionImportResult) string {
	var b strings.Builder
	if res.DryRun {
		b.WriteString("[dry-run] ")
	}
	fmt.Fprintf(&b, "%s: %d predictions in round %d", res.Participant, res.Imported, res.Round)
	if res.Inferred {
		b.WriteString(" (round inferred)")
	}
	if res.Replaced > 0 {
		fmt.Fprintf(&b, ", %d replaced", res.Replaced)
	}
	if res.Extras > 0 {
		fmt.Fprintf(&b, ", %d extras", res.Extras)
	}
	return b.String()
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "none"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// withHint appends the re-run guidance for failures the operator can
// resolve with a flag.
func withHint(err error) error {
	var overwrite *usecase.OverwriteError
	if errors.As(err, &overwrite) {
		return fmt.Errorf("%w (re-run with --force to replace them)", err)
	}
	var inferred *usecase.InferredRoundError
	if errors.As(err, &inferred) {
		return fmt.Errorf("%w (re-run with --accept-inferred, or pass --round %d)", err, inferred.Round)
	}
	var ambiguous *parser.AmbiguousRoundError
	if errors.As(err, &ambiguous) {
		return fmt.Errorf("%w (pass --round to pick one)", err)
	}
	var pending *usecase.MandatoryPendingError
	if errors.As(err, &pending) {
		ids := make([]string, len(pending.Pending))
		for i, match := range pending.Pending {
			ids[i] = match.ID
		}
		return fmt.Errorf("%w (record results for %s first)", err, strings.Join(ids, ", "))
	}
	if errors.Is(err, usecase.ErrOverwriteRefused) {
		return fmt.Errorf("%w (re-run with --overwrite to replace the stored schedule)", err)
	}
	return err
}
