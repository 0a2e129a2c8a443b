// Package share implements expiring share links: arbitrary JSON blobs
// stored under a random short code with a TTL from a small fixed set of
// durations. Redis owns expiry; once a key lapses a fetch is a plain
// not-found, and a retry of any operation is safe.
package share

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	goredis "github.com/redis/go-redis/v9"

	redisclient "github.com/majeanson/family-social/pkg/redis"
	"github.com/majeanson/family-social/pkg/tracing"
)

const keyPrefix = "share:"

// TTLs is the closed set of share durations a caller can pick from.
var TTLs = map[string]time.Duration{
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Link is the metadata returned when a share is created.
type Link struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// envelope is the stored record: the payload plus enough metadata to check
// ownership on delete.
type envelope struct {
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Service creates, fetches and deletes share links.
type Service struct {
	redis      *redisclient.Client
	logger     ectologger.Logger
	codeLength int
}

// NewService creates a share service. codeLength is the short-code length;
// values below 6 are raised to 6 to keep codes unguessable enough.
func NewService(redis *redisclient.Client, logger ectologger.Logger, codeLength int) *Service {
	if codeLength < 6 {
		codeLength = 6
	}
	return &Service{
		redis:      redis,
		logger:     logger,
		codeLength: codeLength,
	}
}

// Create stores a payload under a fresh code for the given TTL name.
func (s *Service) Create(ctx context.Context, userID string, payload json.RawMessage, ttlName string) (*Link, error) {
	ctx, span := tracing.StartSpan(ctx, "share.Service.Create")
	defer span.End()

	ttl, ok := TTLs[ttlName]
	if !ok {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "unknown share duration")
	}

	now := time.Now().UTC()
	data, err := json.Marshal(envelope{
		UserID:    userID,
		Payload:   payload,
		CreatedAt: now,
	})
	if err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to encode share payload")
	}

	// Codes are random; on the off chance of a collision, retry with a
	// fresh one instead of overwriting someone's link.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to generate share code")
		}

		set, err := s.redis.SetNX(ctx, keyPrefix+code, string(data), ttl)
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("Failed to store share link")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to store share link")
		}
		if !set {
			continue
		}

		return &Link{
			Code:      code,
			ExpiresAt: now.Add(ttl),
			CreatedAt: now,
		}, nil
	}

	return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to allocate share code")
}

// Get returns the stored payload for a code, or a 404 once the link has
// expired or been deleted.
func (s *Service) Get(ctx context.Context, code string) (json.RawMessage, error) {
	ctx, span := tracing.StartSpan(ctx, "share.Service.Get")
	defer span.End()

	raw, err := s.redis.Get(ctx, keyPrefix+code)
	if err == goredis.Nil {
		return nil, httperror.NewHTTPError(http.StatusNotFound, "share link not found")
	}
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to fetch share link")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to fetch share link")
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "corrupt share record")
	}

	return env.Payload, nil
}

// Delete removes a link. Only the creating user may delete it; deleting an
// already-expired link succeeds.
func (s *Service) Delete(ctx context.Context, userID, code string) error {
	ctx, span := tracing.StartSpan(ctx, "share.Service.Delete")
	defer span.End()

	raw, err := s.redis.Get(ctx, keyPrefix+code)
	if err == goredis.Nil {
		return nil
	}
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to fetch share link")
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.UserID != userID {
		return httperror.NewHTTPError(http.StatusForbidden, "share link belongs to another user")
	}

	if err := s.redis.Del(ctx, keyPrefix+code); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to delete share link")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete share link")
	}

	return nil
}

// newCode draws a random short code from the base62 alphabet.
func (s *Service) newCode() (string, error) {
	buf := make([]byte, s.codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
