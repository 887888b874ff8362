package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"lexideck/internal/domain"
	"lexideck/internal/repository"
	"lexideck/internal/wordbuilder"
)

// Settings keys for the persisted Word Builder records
const (
	KeyHighScore  = "high_score"
	KeyBestStreak = "best_streak"
)

// TimeUpFunc is called from the ticker goroutine when a challenge ends
type TimeUpFunc func(userID int64, snap wordbuilder.Snapshot)

// GameConfig tunes the game service
type GameConfig struct {
	ChallengeSeconds int
	SessionTTL       time.Duration
	TickInterval     time.Duration
}

// GameService keeps one Word Builder game per user, persists records and
// drives the challenge countdown
type GameService struct {
	words    wordbuilder.WordSource
	settings repository.SettingsRepository
	logger   *zap.Logger
	cfg      GameConfig
	now      func() time.Time
	onTimeUp TimeUpFunc

	mu       sync.Mutex
	sessions map[int64]*gameSession
}

type gameSession struct {
	mu       sync.Mutex
	game     *wordbuilder.Game
	lastUsed time.Time
	stopTick context.CancelFunc
}

// NewGameService creates a new game service
func NewGameService(
	words wordbuilder.WordSource,
	settings repository.SettingsRepository,
	logger *zap.Logger,
	cfg GameConfig,
) *GameService {
	if cfg.ChallengeSeconds <= 0 {
		cfg.ChallengeSeconds = wordbuilder.DefaultChallengeSeconds
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}

	return &GameService{
		words:    words,
		settings: settings,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[int64]*gameSession),
	}
}

// OnTimeUp registers the challenge end notification
func (s *GameService) OnTimeUp(fn TimeUpFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTimeUp = fn
}

// Do runs an action against the user's game, creating the game on first
// use. Records are persisted and the countdown is started or stopped to
// match the game after the action.
func (s *GameService) Do(userID int64, action func(g *wordbuilder.Game) error) (wordbuilder.Snapshot, error) {
	sess, err := s.session(userID)
	if err != nil {
		return wordbuilder.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.game.Stats()
	actionErr := action(sess.game)
	sess.lastUsed = s.now()

	if after := sess.game.Stats(); after != before {
		s.saveStats(userID, before, after)
	}
	s.syncTicker(userID, sess)

	return sess.game.Snapshot(), actionErr
}

// Snapshot returns the user's game state, starting a game if needed
func (s *GameService) Snapshot(userID int64) (wordbuilder.Snapshot, error) {
	return s.Do(userID, func(*wordbuilder.Game) error { return nil })
}

// End stops and forgets the user's game
func (s *GameService) End(userID int64) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if ok {
		sess.mu.Lock()
		sess.stopTicker()
		sess.mu.Unlock()
	}
}

// ActiveSessions returns the number of live games
func (s *GameService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ReapIdleSessions ends games untouched for longer than the session TTL
func (s *GameService) ReapIdleSessions() int {
	cutoff := s.now().Add(-s.cfg.SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for userID, sess := range s.sessions {
		sess.mu.Lock()
		if sess.lastUsed.Before(cutoff) {
			sess.stopTicker()
			delete(s.sessions, userID)
			reaped++
		}
		sess.mu.Unlock()
	}

	if reaped > 0 {
		s.logger.Info("Reaped idle game sessions", zap.Int("count", reaped))
	}
	return reaped
}

func (s *GameService) session(userID int64) (*gameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}

	stats, err := s.loadStats(userID)
	if err != nil {
		return nil, err
	}

	sess := &gameSession{
		game: wordbuilder.New(s.words,
			wordbuilder.WithChallengeSeconds(s.cfg.ChallengeSeconds),
			wordbuilder.WithStats(stats),
		),
		lastUsed: s.now(),
	}
	s.sessions[userID] = sess

	s.logger.Info("Game session started",
		zap.Int64("user_id", userID),
		zap.Int("high_score", stats.HighScore),
	)
	return sess, nil
}

func (s *GameService) loadStats(userID int64) (domain.GameStats, error) {
	highScore, err := s.settings.GetInt(userID, KeyHighScore)
	if err != nil {
		return domain.GameStats{}, fmt.Errorf("failed to load high score: %w", err)
	}
	bestStreak, err := s.settings.GetInt(userID, KeyBestStreak)
	if err != nil {
		return domain.GameStats{}, fmt.Errorf("failed to load best streak: %w", err)
	}
	return domain.GameStats{HighScore: highScore, BestStreak: bestStreak}, nil
}

// saveStats writes changed records. Failures are logged; the game goes on.
func (s *GameService) saveStats(userID int64, before, after domain.GameStats) {
	if after.HighScore != before.HighScore {
		if err := s.settings.SetInt(userID, KeyHighScore, after.HighScore); err != nil {
			s.logger.Error("Failed to save high score", zap.Error(err), zap.Int64("user_id", userID))
		}
	}
	if after.BestStreak != before.BestStreak {
		if err := s.settings.SetInt(userID, KeyBestStreak, after.BestStreak); err != nil {
			s.logger.Error("Failed to save best streak", zap.Error(err), zap.Int64("user_id", userID))
		}
	}
}

// syncTicker starts or stops the countdown. Caller holds sess.mu.
func (s *GameService) syncTicker(userID int64, sess *gameSession) {
	running := sess.game.Challenge() && sess.game.Phase() != wordbuilder.PhaseGameOver
	switch {
	case running && sess.stopTick == nil:
		ctx, cancel := context.WithCancel(context.Background())
		sess.stopTick = cancel
		go s.runTicker(ctx, userID, sess)
	case !running && sess.stopTick != nil:
		sess.stopTicker()
	}
}

// runTicker decrements the countdown once per tick until the game ends or
// the ticker is stopped
func (s *GameService) runTicker(ctx context.Context, userID int64, sess *gameSession) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sess.mu.Lock()
			if ctx.Err() != nil {
				sess.mu.Unlock()
				return
			}
			over := sess.game.Tick()
			snap := sess.game.Snapshot()
			if over {
				sess.stopTicker()
			}
			sess.mu.Unlock()

			if over {
				s.logger.Info("Challenge finished",
					zap.Int64("user_id", userID),
					zap.Int("score", snap.Score),
					zap.Int("words", snap.WordsCompleted),
				)
				s.mu.Lock()
				notify := s.onTimeUp
				s.mu.Unlock()
				if notify != nil {
					notify(userID, snap)
				}
				return
			}
		}
	}
}

func (sess *gameSession) stopTicker() {
	if sess.stopTick != nil {
		sess.stopTick()
		sess.stopTick = nil
	}
}
