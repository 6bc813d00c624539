package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore implements driven.ConversationStore using PostgreSQL.
// When a sealer is set, turn content is stored encrypted. Turns whose
// content cannot be opened are logged and left out of List.
type ConversationStore struct {
	db     *DB
	sealer *ContentSealer
	logger *zap.Logger
}

// NewConversationStore creates a new ConversationStore. sealer and logger may be nil.
func NewConversationStore(db *DB, sealer *ContentSealer, logger *zap.Logger) *ConversationStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationStore{db: db, sealer: sealer, logger: logger.With(zap.String("component", "conversation_store"))}
}

// Append inserts a turn at the end of the conversation
func (s *ConversationStore) Append(ctx context.Context, conversationID string, turn domain.Turn) error {
	var content sql.NullString
	var sealed any
	if s.sealer != nil {
		blob, err := s.sealer.Seal(conversationID, turn.Content)
		if err != nil {
			return fmt.Errorf("failed to seal turn: %w", err)
		}
		sealed = blob
	} else {
		content = sql.NullString{String: turn.Content, Valid: true}
	}

	domains := make([]string, len(turn.Domains))
	for i, d := range turn.Domains {
		domains[i] = string(d)
	}

	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO conversation_turns (conversation_id, role, content, content_sealed, label, domains, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		conversationID,
		string(turn.Role),
		content,
		sealed,
		turn.Label,
		pq.Array(domains),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// List returns every turn of the conversation in insertion order
func (s *ConversationStore) List(ctx context.Context, conversationID string) ([]domain.Turn, error) {
	query := `
		SELECT role, content, content_sealed, label, domains, created_at
		FROM conversation_turns
		WHERE conversation_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var (
			role    string
			content sql.NullString
			sealed  []byte
			label   string
			domains []string
			turn    domain.Turn
		)
		if err := rows.Scan(&role, &content, &sealed, &label, pq.Array(&domains), &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}

		turn.Role = domain.Role(role)
		turn.Label = label
		text, err := s.turnContent(conversationID, content, sealed)
		if err != nil {
			s.logger.Warn("skipping unreadable turn",
				zap.String("conversation_id", conversationID),
				zap.Error(err))
			continue
		}
		turn.Content = text
		for _, d := range domains {
			turn.Domains = append(turn.Domains, domain.DomainID(d))
		}

		turns = append(turns, turn)
	}

	return turns, rows.Err()
}

// turnContent returns the plain text of a stored turn, opening sealed content
func (s *ConversationStore) turnContent(conversationID string, content sql.NullString, sealed []byte) (string, error) {
	if len(sealed) == 0 {
		return content.String, nil
	}
	if s.sealer == nil {
		return "", errors.New("turn content is sealed but no encryption key is configured")
	}
	return s.sealer.Open(conversationID, sealed)
}

// Delete removes every turn of the conversation
func (s *ConversationStore) Delete(ctx context.Context, conversationID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversation_turns WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Prune deletes turns older than the cutoff and returns how many were removed
func (s *ConversationStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversation_turns WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to prune conversations: %w", err)
	}
	return result.RowsAffected()
}

// Ping checks the database connection
func (s *ConversationStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
