package constants

const (
	GetAllMessages = `
	SELECT * FROM messages ORDER BY created_at DESC
	`

	GetMessageById = `
	SELECT * FROM messages WHERE id = $1
	`

	GetMessagesByLogin = `
	SELECT * FROM messages WHERE from_login = $1 OR to_login = $1 ORDER BY created_at DESC
	`

	InsertMessage = `
	INSERT INTO messages (from_login, to_login, text)
	VALUES ($1, $2, $3)
	RETURNING id, from_login, to_login, text, created_at
	`

	DeleteMessageById = `
	DELETE FROM messages WHERE id = $1
	`
)
