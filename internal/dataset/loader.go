package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/omarshaarawi/statbot/internal/models"
)

// Snapshot file names expected under the data directory. Files may be
// absent; a load fails only when none of them can be read.
const (
	resultsFile  = "results.json"
	fixturesFile = "fixtures.json"
	playersFile  = "players.json"
	staffFile    = "staff.json"
	lineupsFile  = "lineups.json"
)

var ErrNoData = errors.New("no snapshot files found")

// Loader reads the exported snapshot files and builds the canonical
// in-memory Snapshot.
type Loader struct {
	dir      string
	workers  int
	validate *validator.Validate
	log      *slog.Logger
}

func NewLoader(dir string, workers int, log *slog.Logger) *Loader {
	if workers <= 0 {
		workers = 4
	}
	return &Loader{dir: dir, workers: workers, validate: validator.New(), log: log}
}

// Load decodes all snapshot files in parallel and normalizes them into an
// immutable Snapshot ready for publishing.
func (l *Loader) Load(ctx context.Context) (*models.Snapshot, error) {
	pool, err := ants.NewPool(l.workers)
	if err != nil {
		return nil, fmt.Errorf("creating loader pool: %w", err)
	}
	defer pool.Release()

	var (
		mu    sync.Mutex
		raw   rawCollections
		found int
	)

	steps := []struct {
		file   string
		decode func([]byte) error
	}{
		{resultsFile, func(b []byte) error {
			var rows []rawMatch
			if err := decodeList(b, "results", &rows); err != nil {
				return err
			}
			mu.Lock()
			raw.results = rows
			mu.Unlock()
			return nil
		}},
		{fixturesFile, func(b []byte) error {
			var rows []rawMatch
			if err := decodeList(b, "fixtures", &rows); err != nil {
				return err
			}
			mu.Lock()
			raw.fixtures = rows
			mu.Unlock()
			return nil
		}},
		{playersFile, func(b []byte) error {
			var rows []rawPerson
			if err := decodeList(b, "players", &rows); err != nil {
				return err
			}
			mu.Lock()
			raw.players = rows
			mu.Unlock()
			return nil
		}},
		{staffFile, func(b []byte) error {
			var rows []rawPerson
			if err := decodeList(b, "staff", &rows); err != nil {
				return err
			}
			mu.Lock()
			raw.staff = rows
			mu.Unlock()
			return nil
		}},
		{lineupsFile, func(b []byte) error {
			var rows []rawLineup
			if err := decodeList(b, "lineups", &rows); err != nil {
				return err
			}
			mu.Lock()
			raw.lineups = rows
			mu.Unlock()
			return nil
		}},
	}

	var wg sync.WaitGroup
	for _, step := range steps {
		step := step
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			path := filepath.Join(l.dir, step.file)
			data, err := os.ReadFile(path)
			if err != nil {
				if !os.IsNotExist(err) {
					l.log.Error("Error reading snapshot file", "file", step.file, "error", err)
				}
				return
			}
			if err := step.decode(data); err != nil {
				l.log.Error("Error decoding snapshot file", "file", step.file, "error", err)
				return
			}
			mu.Lock()
			found++
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			return nil, fmt.Errorf("submitting load task: %w", submitErr)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if found == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, l.dir)
	}

	snap := l.buildSnapshot(raw)
	l.log.Info("Snapshot loaded",
		"version", snap.Version,
		"players", len(snap.Players),
		"staff", len(snap.Staff),
		"results", len(snap.Results),
		"fixtures", len(snap.Fixtures),
		"teams", len(snap.TeamNames))
	return snap, nil
}

// decodeList tolerates both envelope shapes the exporters produce: a bare
// JSON array, or an object wrapping the array under the collection's name
// or "data".
func decodeList(data []byte, key string, out any) error {
	if err := sonic.Unmarshal(data, out); err == nil {
		return nil
	}
	var envelope map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decoding %s list: %w", key, err)
	}
	for _, k := range []string{key, "data"} {
		if inner, ok := envelope[k]; ok {
			return sonic.Unmarshal(inner, out)
		}
	}
	return fmt.Errorf("no %q collection in envelope", key)
}
