// Package replay persists finished episodes to SQLite so battles can be
// inspected or replayed after the process exits.
package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tacsim/gridcombat/internal/engine"
)

// Episode is one recorded game from reset to terminal state.
type Episode struct {
	ID        uint       `gorm:"primarykey"`
	CreatedAt time.Time
	Seed      int64
	Turns     int
	Result    string
	Reason    string
	Scenario  []byte     `gorm:"type:blob"` // scenario JSON
	Frames    []FrameRow
}

// FrameRow is one per-turn snapshot belonging to an episode.
type FrameRow struct {
	ID        uint   `gorm:"primarykey"`
	EpisodeID uint   `gorm:"index"`
	Turn      int
	Data      []byte `gorm:"type:blob"` // frame JSON
}

// Store wraps the SQLite database holding recorded episodes.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) a replay database at path. An empty path opens
// a process-shared in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening replay db %q: %w", path, err)
	}
	if err := db.AutoMigrate(&Episode{}, &FrameRow{}); err != nil {
		return nil, fmt.Errorf("migrating replay schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveEpisode writes a finished episode and its frames in one pass.
func (s *Store) SaveEpisode(sc *engine.Scenario, w *engine.WorldState, frames []*engine.Frame) (uint, error) {
	scenarioJSON, err := json.Marshal(sc)
	if err != nil {
		return 0, fmt.Errorf("encoding scenario: %w", err)
	}

	result := "in_progress"
	if w.GameOver {
		result = resultOf(w).String()
	}
	ep := Episode{
		Seed:     sc.Config.Seed,
		Turns:    w.Turn,
		Result:   result,
		Reason:   w.GameOverReason,
		Scenario: scenarioJSON,
	}
	for _, f := range frames {
		data, err := json.Marshal(f)
		if err != nil {
			return 0, fmt.Errorf("encoding frame %d: %w", f.Turn, err)
		}
		ep.Frames = append(ep.Frames, FrameRow{Turn: f.Turn, Data: data})
	}
	if err := s.db.Create(&ep).Error; err != nil {
		return 0, fmt.Errorf("saving episode: %w", err)
	}
	return ep.ID, nil
}

func resultOf(w *engine.WorldState) engine.GameResult {
	switch {
	case w.Winner == nil:
		return engine.ResultDraw
	case *w.Winner == engine.TeamBlue:
		return engine.ResultBlueWins
	default:
		return engine.ResultRedWins
	}
}

// LoadEpisode fetches an episode header without its frames.
func (s *Store) LoadEpisode(id uint) (*Episode, error) {
	var ep Episode
	if err := s.db.First(&ep, id).Error; err != nil {
		return nil, fmt.Errorf("loading episode %d: %w", id, err)
	}
	return &ep, nil
}

// LoadFrames fetches an episode's decoded frames in turn order.
func (s *Store) LoadFrames(episodeID uint) ([]*engine.Frame, error) {
	var rows []FrameRow
	if err := s.db.Where("episode_id = ?", episodeID).Order("turn").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading frames for episode %d: %w", episodeID, err)
	}
	frames := make([]*engine.Frame, 0, len(rows))
	for _, row := range rows {
		var f engine.Frame
		if err := json.Unmarshal(row.Data, &f); err != nil {
			return nil, fmt.Errorf("decoding frame %d: %w", row.Turn, err)
		}
		frames = append(frames, &f)
	}
	return frames, nil
}

// LoadScenario decodes the scenario an episode was played from.
func (s *Store) LoadScenario(episodeID uint) (*engine.Scenario, error) {
	ep, err := s.LoadEpisode(episodeID)
	if err != nil {
		return nil, err
	}
	var sc engine.Scenario
	if err := json.Unmarshal(ep.Scenario, &sc); err != nil {
		return nil, fmt.Errorf("decoding scenario for episode %d: %w", episodeID, err)
	}
	return &sc, nil
}

// Episodes lists recorded episode headers, newest first.
func (s *Store) Episodes(limit int) ([]Episode, error) {
	var eps []Episode
	q := s.db.Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&eps).Error; err != nil {
		return nil, fmt.Errorf("listing episodes: %w", err)
	}
	return eps, nil
}
