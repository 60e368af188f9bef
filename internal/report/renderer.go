// Package report renders the fixed-width classification text written to
// resultados/rodadaNN.txt and echoed on the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"

	"github.com/palpiteria/bolao/internal/domain/scoring"
	"github.com/palpiteria/bolao/internal/domain/standings"
)

const (
	headerRule  = 80
	summaryRule = 30

	tableHeader = "Pos Nome                 Rodada  Total Var"
	codesHeader = " | Códigos de Acerto"

	headerTimeLayout = "02/01/2006 às 15:04"
	fileTimeLayout   = "2006-01-02 15:04:05"
)

// Options carries the metadata stamped on a rendered classification.
type Options struct {
	Championship string
	Season       string
	Round        int
	GeneratedAt  time.Time
}

// Classification renders the ranked round table: banner, fixed-width rows
// with each participant's fired-code trail, and the rule legend. Rows
// render in caller order; standings.Aggregate hands them already ranked.
func Classification(rows []standings.Row, rules scoring.RuleSet, opts Options) string {
	if len(rows) == 0 {
		return "Nenhum resultado encontrado para esta rodada."
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine := func(line string) {
		_, _ = buf.WriteString(line)
		_ = buf.WriteByte('\n')
	}

	rule := strings.Repeat("=", headerRule)
	writeLine(rule)
	writeLine(fmt.Sprintf("RELATÓRIO DE CLASSIFICAÇÃO - RODADA %02d", opts.Round))
	writeLine(rule)
	writeLine("Campeonato: " + opts.Championship)
	if opts.Season != "" {
		writeLine("Temporada: " + opts.Season)
	}
	writeLine("Gerado em: " + opts.GeneratedAt.Format(headerTimeLayout))
	writeLine(rule)
	writeLine("")

	header := tableHeader + codesHeader
	divider := strings.Repeat("-", utf8.RuneCountInString(header))
	writeLine(header)
	writeLine(divider)
	for _, row := range rows {
		writeLine(formatRow(row))
	}
	writeLine(divider)
	writeLine(fmt.Sprintf("Total de participantes: %d", len(rows)))
	writeLine("")

	writeLine("LEGENDA DOS CÓDIGOS:")
	for _, name := range scoring.RuleNames {
		tier, ok := rules.Rules[name]
		if !ok {
			continue
		}
		points := formatPoints(tier.Points)
		if tier.HasBonus {
			points += " + bônus"
		}
		writeLine(fmt.Sprintf("%-2s = %s (%s)", tier.Code, tier.Description, points))
	}
	writeLine(fmt.Sprintf("%-2s = Nenhuma regra atingida (0)", scoring.CodeNoHit))

	return buf.String()
}

// Summary renders the round statistics block. On tied best or worst
// scores the participant listed last keeps the mention.
func Summary(rows []standings.Row, round int) string {
	if len(rows) == 0 {
		return "Nenhum dado disponível para resumo."
	}

	best, worst := rows[0].RoundTotal, rows[0].RoundTotal
	var sum float64
	for _, row := range rows {
		if row.RoundTotal > best {
			best = row.RoundTotal
		}
		if row.RoundTotal < worst {
			worst = row.RoundTotal
		}
		sum += row.RoundTotal
	}
	var bestName, worstName string
	for _, row := range rows {
		if row.RoundTotal == best {
			bestName = row.Participant
		}
		if row.RoundTotal == worst {
			worstName = row.Participant
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine := func(line string) {
		_, _ = buf.WriteString(line)
		_ = buf.WriteByte('\n')
	}

	writeLine(fmt.Sprintf("RESUMO DA RODADA %02d", round))
	writeLine(strings.Repeat("=", summaryRule))
	writeLine(fmt.Sprintf("Participantes: %d", len(rows)))
	writeLine(fmt.Sprintf("Maior pontuação: %.1f (%s)", best, bestName))
	writeLine(fmt.Sprintf("Menor pontuação: %.1f (%s)", worst, worstName))
	writeLine(fmt.Sprintf("Média da rodada: %.1f", sum/float64(len(rows))))

	return buf.String()
}

// RoundFile wraps an already rendered classification and summary into the
// payload persisted for the round.
func RoundFile(round int, generatedAt time.Time, classification, summary string) string {
	return fmt.Sprintf("RELATÓRIO DA RODADA %d\nGerado em: %s\n\n%s\n\n%s\n",
		round, generatedAt.Format(fileTimeLayout), classification, summary)
}

func formatRow(row standings.Row) string {
	delta := "="
	if row.Delta != nil {
		switch {
		case *row.Delta > 0:
			delta = fmt.Sprintf("↑%d", *row.Delta)
		case *row.Delta < 0:
			delta = fmt.Sprintf("↓%d", -*row.Delta)
		}
	}

	line := fmt.Sprintf("%2dº %-20s %5.1f %6.1f %4s",
		row.Rank, row.Participant, row.RoundTotal, row.Cumulative, delta)
	if len(row.Codes) > 0 {
		line += " | " + strings.Join(row.Codes, " ")
	}
	return line + fmt.Sprintf(" (%d jogos)", row.Played)
}

// formatPoints prints whole point values without a decimal tail, keeping
// fractional tiers like 0.5 intact.
func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}
