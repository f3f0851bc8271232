package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// puzzleDTO mirrors the backend's puzzle object on the wire.
type puzzleDTO struct {
	ID             string   `json:"id"`
	BoardState     string   `json:"boardState"`
	UsedPieces     []string `json:"usedPieces"`
	MovesRemaining int      `json:"movesRemaining"`
}

var (
	serverURL  string
	numPuzzles int
	difficulty string
	outputFile string
	timeout    time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "puzzle-trainer",
		Short: "Batch tooling for the Deadblock puzzle generator",
	}

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate and verify puzzles via a running backend",
		Long: `Request puzzles from a running backend and verify their wire-level
invariants locally.

Examples:
  puzzle-trainer gen --difficulty hard
  puzzle-trainer gen -n 20 --difficulty easy -o puzzles.json`,
		RunE: runGen,
	}

	genCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Backend base URL")
	genCmd.Flags().IntVarP(&numPuzzles, "number", "n", 1, "Number of puzzles to generate")
	genCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "Puzzle difficulty (easy, medium, hard)")
	genCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (JSON array); prints to stdout when empty")
	genCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout per puzzle request")

	rootCmd.AddCommand(genCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGen(cmd *cobra.Command, args []string) error {
	switch difficulty {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("unknown difficulty %q (use easy, medium or hard)", difficulty)
	}

	client := &http.Client{Timeout: timeout}
	puzzles := make([]puzzleDTO, 0, numPuzzles)
	for i := 0; i < numPuzzles; i++ {
		puzzle, err := fetchPuzzle(client)
		if err != nil {
			return fmt.Errorf("puzzle %d/%d: %w", i+1, numPuzzles, err)
		}
		if err := verifyPuzzle(puzzle); err != nil {
			return fmt.Errorf("puzzle %d/%d failed verification: %w", i+1, numPuzzles, err)
		}
		puzzles = append(puzzles, puzzle)
		fmt.Printf("puzzle %d/%d ok: id=%s movesRemaining=%d\n", i+1, numPuzzles, puzzle.ID, puzzle.MovesRemaining)
	}

	data, err := json.MarshalIndent(puzzles, "", "  ")
	if err != nil {
		return err
	}
	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	fmt.Printf("wrote %d puzzle(s) to %s\n", len(puzzles), outputFile)
	return nil
}

func fetchPuzzle(client *http.Client) (puzzleDTO, error) {
	url := strings.TrimRight(serverURL, "/") + "/api/puzzle?difficulty=" + difficulty
	resp, err := client.Get(url)
	if err != nil {
		return puzzleDTO{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return puzzleDTO{}, fmt.Errorf("backend status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return puzzleDTO{}, fmt.Errorf("backend status %d", resp.StatusCode)
	}
	var puzzle puzzleDTO
	if err := json.NewDecoder(resp.Body).Decode(&puzzle); err != nil {
		return puzzleDTO{}, err
	}
	return puzzle, nil
}

// verifyPuzzle re-checks the invariants the backend promises, from
// nothing but the wire payload: board shape, piece letters, the used
// list matching the board, and the declared remaining count.
func verifyPuzzle(p puzzleDTO) error {
	const catalog = "FILNPTUVWXYZ"
	if len(p.BoardState) != 64 {
		return fmt.Errorf("board state length %d, want 64", len(p.BoardState))
	}
	onBoard := map[byte]bool{}
	for i := 0; i < len(p.BoardState); i++ {
		c := p.BoardState[i]
		if c == 'G' {
			continue
		}
		if c == 'H' {
			c = 'Y'
		}
		if !strings.ContainsRune(catalog, rune(c)) {
			return fmt.Errorf("unknown piece letter %q at cell %d", p.BoardState[i], i)
		}
		onBoard[c] = true
	}
	declared := map[byte]bool{}
	for _, id := range p.UsedPieces {
		if len(id) != 1 || !strings.Contains(catalog, id) {
			return fmt.Errorf("bad used piece %q", id)
		}
		if declared[id[0]] {
			return fmt.Errorf("duplicate used piece %q", id)
		}
		declared[id[0]] = true
	}
	if len(onBoard) != len(declared) {
		return fmt.Errorf("used list has %d pieces, board shows %d", len(declared), len(onBoard))
	}
	for c := range onBoard {
		if !declared[c] {
			return fmt.Errorf("piece %q on board but not in used list", string(c))
		}
	}
	if p.MovesRemaining != 12-len(declared) {
		return fmt.Errorf("movesRemaining %d, want %d", p.MovesRemaining, 12-len(declared))
	}
	return nil
}
