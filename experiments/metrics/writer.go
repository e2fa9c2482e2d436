package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type GameRecord struct {
	ID         int
	Tournament uuid.UUID
	Black      string // Strategy config
	White      string // Strategy config
	Err        string // Set when a decision aborted the game
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// GameRow is the Parquet layout of a GameRecord.
type GameRow struct {
	Tournament string `parquet:"tournament_id,dict"`
	Game       int32  `parquet:"game"`
	Black      string `parquet:"black,dict"`
	White      string `parquet:"white,dict"`
	Winner     string `parquet:"winner,dict"`
	BlackDiscs int32  `parquet:"black_discs"`
	WhiteDiscs int32  `parquet:"white_discs"`
	Plies      int32  `parquet:"plies"`
	Passes     int32  `parquet:"passes"`
	DurationMs int64  `parquet:"duration_ms"`
	StartTime  int64  `parquet:"start_time_ms"`
	Error      string `parquet:"error,optional"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<id> for one experiment run.
func NewWriter(root, name string, id uuid.UUID) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+id.String()[:8])
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteHeader stores the contestant names as a single row.
func (w *Writer) WriteHeader(names []string) error {
	return w.writeCSV("header.csv", nil, [][]string{names})
}

// WriteWinMatrix stores wins[i][j] for contestant i against contestant j.
func (w *Writer) WriteWinMatrix(filename string, wins [][]int) error {
	rows := make([][]string, len(wins))
	for i, line := range wins {
		rows[i] = make([]string, len(line))
		for j, v := range line {
			rows[i][j] = strconv.Itoa(v)
		}
	}
	return w.writeCSV(filename, nil, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "tournament", "black", "white", "winner", "black_discs", "white_discs",
		"plies", "passes", "start_time", "duration", "error"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Tournament.String(),
			record.Black,
			record.White,
			record.Winner.String(),
			strconv.Itoa(record.BlackDiscs),
			strconv.Itoa(record.WhiteDiscs),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Passes),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			record.Err,
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "strategy", "duration", "nodes", "visits",
		"rollouts", "evaluations"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Move.String(),
			record.Strategy,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Visits),
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.Evaluations),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteGameRecordsParquet stores the game records as a zstd-compressed
// Parquet file.
func (w *Writer) WriteGameRecordsParquet(records []GameRecord) error {
	rows := make([]GameRow, len(records))
	for i, record := range records {
		rows[i] = GameRow{
			Tournament: record.Tournament.String(),
			Game:       int32(record.ID),
			Black:      record.Black,
			White:      record.White,
			Winner:     record.Winner.String(),
			BlackDiscs: int32(record.BlackDiscs),
			WhiteDiscs: int32(record.WhiteDiscs),
			Plies:      int32(record.TotalMoves),
			Passes:     int32(record.Passes),
			DurationMs: record.Duration.Milliseconds(),
			StartTime:  record.StartTime.UnixMilli(),
			Error:      record.Err,
		}
	}

	path := filepath.Join(w.baseDir, "game_records.parquet")
	err := parquet.WriteFile(path, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "reversi_game_v1"),
	)
	if err != nil {
		return fmt.Errorf("failed to write parquet game records: %w", err)
	}
	return nil
}

// ReadGameRecordsParquet loads rows written by WriteGameRecordsParquet.
func ReadGameRecordsParquet(path string) ([]GameRow, error) {
	rows, err := parquet.ReadFile[GameRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet game records: %w", err)
	}
	return rows, nil
}

func (w *Writer) writeCSV(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if header != nil {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write %s header: %w", filename, err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", filename, err)
	}
	return nil
}
