package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrNotTerminal = errors.New("game is not finished")

const (
	fieldXWins = "x_wins"
	fieldOWins = "o_wins"
	fieldDraws = "draws"
)

type ScoreRepository interface {
	Record(ctx context.Context, sessionID string, status entity.Status) error
	Get(ctx context.Context, sessionID string) (*entity.Score, error)
	Reset(ctx context.Context, sessionID string) error
}

type dbScore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreRepository keeps one hash per session. A zero ttl never expires.
func NewScoreRepository(client *redis.Client, ttl time.Duration) ScoreRepository {
	return &dbScore{
		client: client,
		ttl:    ttl,
	}
}

func scoreKey(sessionID string) string {
	return "score:" + sessionID
}

func (that *dbScore) Record(ctx context.Context, sessionID string, status entity.Status) error {
	var field string

	switch status {
	case entity.StatusXWins:
		field = fieldXWins
	case entity.StatusOWins:
		field = fieldOWins
	case entity.StatusDraw:
		field = fieldDraws
	default:
		return fmt.Errorf("%w: status %s", ErrNotTerminal, status)
	}

	key := scoreKey(sessionID)

	pipe := that.client.TxPipeline()
	pipe.HIncrBy(ctx, key, field, 1)
	if that.ttl > 0 {
		pipe.Expire(ctx, key, that.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}

	return nil
}

func (that *dbScore) Get(ctx context.Context, sessionID string) (*entity.Score, error) {
	fields, err := that.client.HGetAll(ctx, scoreKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	score := &entity.Score{}
	for field, value := range fields {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse score field %s: %w", field, err)
		}

		switch field {
		case fieldXWins:
			score.XWins = n
		case fieldOWins:
			score.OWins = n
		case fieldDraws:
			score.Draws = n
		}
	}

	return score, nil
}

func (that *dbScore) Reset(ctx context.Context, sessionID string) error {
	if err := that.client.Del(ctx, scoreKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to reset score: %w", err)
	}

	return nil
}
