// Package history keeps a record of finished games.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Entity struct {
	ID uint `gorm:"primaryKey"`
}

// Result is one finished game.
type Result struct {
	Entity

	GameID    string `gorm:"unique;size:36"`
	StartedAt time.Time
	EndedAt   time.Time `gorm:"index"`
	// "timeout" or "disconnect"
	Reason string `gorm:"size:16"`
	// Connection id of the winner, nil on a tie
	Winner *string `gorm:"size:36"`

	Players []PlayerResult
}

type PlayerResult struct {
	Entity

	ResultID uint   `gorm:"not null;index"`
	Seat     int    `gorm:"not null"`
	PlayerID string `gorm:"not null;size:36"`
	Name     string `gorm:"size:64"`
	Score    int
}

var ErrQueueFull = errors.New("history queue is full")

// Store persists results. Record is safe to call from the game loop: it only
// queues, and Run does the writing.
type Store struct {
	db    *gorm.DB
	queue chan Result
	log   zerolog.Logger
}

func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history db %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Result{}, &PlayerResult{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history db: %w", err)
	}

	return &Store{
		db:    db,
		queue: make(chan Result, 64),
		log:   log.With().Str("component", "history").Logger(),
	}, nil
}

// Record queues r for writing.
func (s *Store) Record(r Result) error {
	select {
	case s.queue <- r:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run writes queued results until ctx is done, then flushes what is left.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case r := <-s.queue:
			s.write(ctx, r)
		case <-ctx.Done():
			for {
				select {
				case r := <-s.queue:
					s.write(context.Background(), r)
				default:
					return
				}
			}
		}
	}
}

func (s *Store) write(ctx context.Context, r Result) {
	if err := s.Save(ctx, &r); err != nil {
		s.log.Error().Err(err).Str("game", r.GameID).Msg("could not save result")
		return
	}
	s.log.Debug().Str("game", r.GameID).Uint("id", r.ID).Msg("saved result")
}

// Save writes r and its players in one transaction.
func (s *Store) Save(ctx context.Context, r *Result) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// Recent returns up to limit results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	var results []Result
	err := s.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("seat")
		}).
		Order("ended_at desc").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	return results, nil
}

// Check pings the database.
func (s *Store) Check() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
