package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing side A
	Agent2 int // AgentConfig.ID playing side B
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err = writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err = writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "depth", "pruning", "ordering", "transpositions", "adaptive_depth",
		"w_distance", "w_in_target_camp", "w_out_of_home_camp", "w_immobile", "w_vulnerable", "w_progress",
		"w_mobility", "w_jump_length"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Depth),
			strconv.FormatBool(c.Pruning),
			strconv.FormatBool(c.Ordering),
			strconv.FormatBool(c.Transpositions),
			strconv.FormatBool(c.AdaptiveDepth),
			formatFloat(c.Weights.Distance),
			formatFloat(c.Weights.InTargetCamp),
			formatFloat(c.Weights.OutOfHomeCamp),
			formatFloat(c.Weights.Immobile),
			formatFloat(c.Weights.Vulnerable),
			formatFloat(c.Weights.Progress),
			formatFloat(c.Weights.Mobility),
			formatFloat(c.Weights.JumpLength),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_side", "winner", "reason", "start_time", "end_time", "duration", "moves"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Agent1),
			strconv.Itoa(r.Agent2),
			r.StartingSide.String(),
			r.Winner.String(),
			r.Reason,
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
			strconv.Itoa(r.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "side", "move", "depth", "eval", "nodes", "tt_hits", "cutoffs", "tt_entries", "duration"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			r.Side.String(),
			r.Move,
			strconv.Itoa(r.Depth),
			formatFloat(r.Eval),
			strconv.FormatInt(r.Nodes, 10),
			strconv.FormatInt(r.TTHits, 10),
			strconv.FormatInt(r.Cutoffs, 10),
			strconv.Itoa(r.TTEntries),
			r.Duration.String(),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
