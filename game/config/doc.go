// Package config loads board presets for dropfour.
//
// A preset is a small JSON file describing a board variant:
//
//	{
//	  "name": "big",
//	  "description": "9x7 board, five in a row",
//	  "columns": 9,
//	  "rows": 7,
//	  "win_length": 5
//	}
//
// Presets live in a directory (default "boards") and are addressed by
// filename without the .json extension. The classic 7x6 board is built
// in under the name "classic" and needs no file; a missing preset
// directory simply means only the classic board is available.
//
// Loaded presets are validated against the engine's dimension bounds
// and cached. The manager is safe for concurrent use.
package config
