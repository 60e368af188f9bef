package report

import (
	"strings"
	"testing"
	"time"

	"github.com/palpiteria/bolao/internal/domain/scoring"
	"github.com/palpiteria/bolao/internal/domain/standings"
)

func intPtr(v int) *int { return &v }

func TestClassification_Rendering(t *testing.T) {
	rows := []standings.Row{
		{Participant: "Ana Maria", Rank: 1, RoundTotal: 18.5, Cumulative: 45.0, Delta: intPtr(2), Codes: []string{"AR", "VG", "NP"}, Played: 3},
		{Participant: "Zé Carlos", Rank: 2, RoundTotal: 7.0, Cumulative: 41.5, Delta: intPtr(-1), Codes: []string{"AV", "SP"}, Played: 2},
		{Participant: "Bruno", Rank: 3, RoundTotal: -1.0, Cumulative: 12.0, Delta: intPtr(0), Codes: []string{"SP"}, Played: 0},
	}
	rules := scoring.DefaultRules()

	got := Classification(rows, rules, Options{
		Championship: "Brasileirão Série A",
		Season:       "2025",
		Round:        3,
		GeneratedAt:  time.Date(2025, 8, 10, 21, 30, 0, 0, time.UTC),
	})

	banner := strings.Repeat("=", 80)
	divider := strings.Repeat("-", 62)
	want := strings.Join([]string{
		banner,
		"RELATÓRIO DE CLASSIFICAÇÃO - RODADA 03",
		banner,
		"Campeonato: Brasileirão Série A",
		"Temporada: 2025",
		"Gerado em: 10/08/2025 às 21:30",
		banner,
		"",
		"Pos Nome                 Rodada  Total Var | Códigos de Acerto",
		divider,
		" 1º Ana Maria             18.5   45.0   ↑2 | AR VG NP (3 jogos)",
		" 2º Zé Carlos              7.0   41.5   ↓1 | AV SP (2 jogos)",
		" 3º Bruno                 -1.0   12.0    = | SP (0 jogos)",
		divider,
		"Total de participantes: 3",
		"",
		"LEGENDA DOS CÓDIGOS:",
		"AR = Resultado exato (placar idêntico) (12 + bônus)",
		"VG = Vencedor + gols de uma equipe (7)",
		"VD = Vencedor + diferença de gols (6)",
		"VS = Vencedor + soma total de gols (6)",
		"AV = Apenas vencedor (5)",
		"AE = Apenas empate (5)",
		"AG = Gols de um time (sem resultado) (2)",
		"AS = Apenas soma total de gols (1)",
		"RI = Resultado invertido (penalidade) (-3)",
		"SP = Palpite não enviado (jogo obrigatório) (-1)",
		"NP = Nenhuma regra atingida (0)",
		"",
	}, "\n")

	if got != want {
		t.Fatalf("classification mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestClassification_Empty(t *testing.T) {
	got := Classification(nil, scoring.DefaultRules(), Options{Round: 1})
	if got != "Nenhum resultado encontrado para esta rodada." {
		t.Fatalf("unexpected empty-round text: %q", got)
	}
}

func TestClassification_OmitsBlankSeason(t *testing.T) {
	rows := []standings.Row{{Participant: "Ana", Rank: 1, RoundTotal: 5, Cumulative: 5, Played: 1}}

	got := Classification(rows, scoring.DefaultRules(), Options{
		Championship: "Copa do Bairro",
		Round:        1,
		GeneratedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	})

	if strings.Contains(got, "Temporada:") {
		t.Fatalf("blank season must not render a Temporada line:\n%s", got)
	}
	if !strings.Contains(got, "Campeonato: Copa do Bairro") {
		t.Fatalf("championship line missing:\n%s", got)
	}
}

func TestClassification_RowWithoutCodes(t *testing.T) {
	rows := []standings.Row{{Participant: "Ana", Rank: 1, RoundTotal: 0, Cumulative: 0, Played: 0}}

	got := Classification(rows, scoring.DefaultRules(), Options{Championship: "Copa", Round: 2})

	if strings.Contains(got, " 1º Ana                    0.0    0.0    = |") {
		t.Fatalf("empty code trail must not render a separator:\n%s", got)
	}
	if !strings.Contains(got, " 1º Ana                    0.0    0.0    = (0 jogos)") {
		t.Fatalf("row without codes rendered wrong:\n%s", got)
	}
}

func TestSummary(t *testing.T) {
	rows := []standings.Row{
		{Participant: "Ana", RoundTotal: 10},
		{Participant: "Bruno", RoundTotal: 4},
		{Participant: "Carla", RoundTotal: 10},
	}

	got := Summary(rows, 7)

	// Carla ties Ana for the best score and, listed last, keeps the mention.
	want := strings.Join([]string{
		"RESUMO DA RODADA 07",
		strings.Repeat("=", 30),
		"Participantes: 3",
		"Maior pontuação: 10.0 (Carla)",
		"Menor pontuação: 4.0 (Bruno)",
		"Média da rodada: 8.0",
		"",
	}, "\n")

	if got != want {
		t.Fatalf("summary mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestSummary_Empty(t *testing.T) {
	if got := Summary(nil, 1); got != "Nenhum dado disponível para resumo." {
		t.Fatalf("unexpected empty summary: %q", got)
	}
}

func TestRoundFile(t *testing.T) {
	generatedAt := time.Date(2025, 8, 10, 21, 30, 45, 0, time.UTC)

	got := RoundFile(5, generatedAt, "TABELA\n", "RESUMO\n")

	want := "RELATÓRIO DA RODADA 5\nGerado em: 2025-08-10 21:30:45\n\nTABELA\n\n\nRESUMO\n\n"
	if got != want {
		t.Fatalf("round file mismatch:\ngot  %q\nwant %q", got, want)
	}
}
