package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

// LoadSeed reads a JSON array of films, the format served by GET /films
// items.  Sessions may carry taken as an array or as comma-joined text.
func LoadSeed(path string) ([]model.Film, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var films []model.Film
	if err := json.Unmarshal(data, &films); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return films, nil
}
