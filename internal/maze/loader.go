package maze

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// LoadMaze reads a maze text file: one row per line, one symbol per rune.
// Rows keep their own length; trailing blank lines are dropped.
func LoadMaze(mazePath string) (*Maze, error) {
	file, err := os.Open(mazePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze file %s: %w", mazePath, err)
	}
	defer file.Close()

	m, err := ReadMaze(file)
	if err != nil {
		return nil, fmt.Errorf("maze file %s: %w", mazePath, err)
	}

	log.Printf("[MazeLoader] Loaded %s (%d rows, widest %d)", mazePath, m.Height(), m.Width())
	return m, nil
}

// ReadMaze parses maze rows from r.
func ReadMaze(r io.Reader) (*Maze, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading maze: %w", err)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("maze contains no rows")
	}
	return New(lines), nil
}
