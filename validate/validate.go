// Command validate provides a small CLI that validates board preset JSON
// files in the ../boards directory. It checks:
//   - JSON structure and required fields
//   - Dimension bounds (columns and rows between 4 and 16)
//   - Win length fits on the board in at least one direction
//   - Name uniqueness across presets (names appear in listings and logs)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dropfour/dropfour/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateBoard loads and validates a single board preset JSON file.
func validateBoard(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var board engine.Config
	if err := json.Unmarshal(data, &board); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if board.Name == "" {
		// The manager falls back to the file name, so this is a note only.
		result.Errors = append(result.Errors, fmt.Sprintf("Note: no name set, listings will use %q", trimExt(result.File)))
	}

	if err := board.Validate(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d, connect %d", board.Columns, board.Rows, board.WinLength))

	// A board where only one direction fits the win length still plays,
	// but it is usually a typo worth flagging.
	if board.WinLength > board.Columns {
		result.Errors = append(result.Errors, fmt.Sprintf("Note: win length %d exceeds %d columns, only vertical wins possible", board.WinLength, board.Columns))
	}
	if board.WinLength > board.Rows {
		result.Errors = append(result.Errors, fmt.Sprintf("Note: win length %d exceeds %d rows, only horizontal wins possible", board.WinLength, board.Rows))
	}

	return result
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// checkNameCollisions flags presets that share a display name, which would
// make listings ambiguous.
func checkNameCollisions(files []string) []string {
	names := make(map[string][]string)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		var board engine.Config
		if err := json.Unmarshal(data, &board); err != nil {
			continue
		}
		name := board.Name
		if name == "" {
			name = trimExt(filepath.Base(file))
		}
		names[name] = append(names[name], filepath.Base(file))
	}

	var collisions []string
	for name, sources := range names {
		if len(sources) > 1 {
			collisions = append(collisions, fmt.Sprintf("Name %q used by %s", name, strings.Join(sources, ", ")))
		}
	}
	return collisions
}

// main scans ../boards for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	boardDir := "../boards"
	if len(os.Args) > 1 {
		boardDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(boardDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding board files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No board files found in %s\n", boardDir)
		return
	}

	allValid := true
	for _, file := range files {
		result := validateBoard(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	if collisions := checkNameCollisions(files); len(collisions) > 0 {
		allValid = false
		fmt.Printf("\n%s name collisions\n", strings.Repeat("=", 20))
		for _, c := range collisions {
			fmt.Println("  ❌ " + c)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All boards are valid!")
	} else {
		fmt.Println("❌ Some boards have errors")
		os.Exit(1)
	}
}
