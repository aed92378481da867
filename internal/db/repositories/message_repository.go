package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// MessageRepository is the sqlx-backed store for direct messages. It keeps
// the raw-SQL side of the data layer; the GORM repositories cover the rest.
type MessageRepository struct {
	db *sqlx.DB
}

var _ cache.Store[entities.Message] = (*MessageRepository)(nil)

// Columns a partial update may touch.
var messagePatchColumns = map[string]string{
	"from_login": "from_login",
	"to_login":   "to_login",
	"text":       "text",
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) List(ctx context.Context) ([]entities.Message, error) {
	var messages []entities.Message
	if err := r.db.SelectContext(ctx, &messages, constants.GetAllMessages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*entities.Message, error) {
	var message entities.Message
	err := r.db.QueryRowxContext(ctx, constants.GetMessageById, id).StructScan(&message)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByLogin returns every message sent or received by the login
func (r *MessageRepository) ListByLogin(ctx context.Context, login string) ([]entities.Message, error) {
	var messages []entities.Message
	if err := r.db.SelectContext(ctx, &messages, constants.GetMessagesByLogin, login); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) Create(ctx context.Context, message *entities.Message) (*entities.Message, error) {
	err := r.db.QueryRowxContext(ctx, constants.InsertMessage,
		message.FromLogin,
		message.ToLogin,
		message.Text,
	).StructScan(message)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (r *MessageRepository) Update(ctx context.Context, id int64, patch cache.Patch) (*entities.Message, error) {
	sets := make([]string, 0, len(patch))
	args := make([]interface{}, 0, len(patch)+1)

	for key, value := range patch {
		column, ok := messagePatchColumns[key]
		if !ok {
			return nil, fmt.Errorf("messages: unknown patch field %q", key)
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE messages SET %s WHERE id = $%d RETURNING id, from_login, to_login, text, created_at",
		strings.Join(sets, ", "), len(args),
	)

	var message entities.Message
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&message)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, constants.DeleteMessageById, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
