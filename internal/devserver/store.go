package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskchat/internal/model"

	_ "modernc.org/sqlite"
)

var errNotFound = errors.New("not found")

// Store is the dev server's sqlite backing. Passwords are stored as-is: this
// server exists for local development and tests, not for real credentials.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and migrates) the database at path. ":memory:" works for
// tests.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'member',
			avatar_url TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS tokens (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'open',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL REFERENCES tasks(id),
			author_id TEXT NOT NULL REFERENCES users(id),
			text TEXT NOT NULL,
			created_at TEXT NOT NULL,
			edited INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id, created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

type user struct {
	ID        string
	Email     string
	Name      string
	Role      model.Role
	AvatarURL string
}

func (u user) viewer() model.Viewer {
	return model.Viewer{ID: u.ID, Name: u.Name, Role: u.Role}
}

func (u user) author() model.Author {
	return model.Author{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

func (s *Store) CreateUser(ctx context.Context, email, password, name string, role model.Role) (user, error) {
	u := user{ID: "user-" + uuid.NewString()[:8], Email: email, Name: name, Role: role}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password, name, role) VALUES (?, ?, ?, ?, ?)`,
		u.ID, email, password, name, string(role))
	return u, err
}

func (s *Store) UserByCredentials(ctx context.Context, email, password string) (user, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, avatar_url FROM users WHERE email = ? AND password = ?`,
		email, password)
	return scanUser(row)
}

func (s *Store) UserByToken(ctx context.Context, token string) (user, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.name, u.role, u.avatar_url
		 FROM tokens t JOIN users u ON u.id = t.user_id
		 WHERE t.token = ?`, token)
	return scanUser(row)
}

func scanUser(row *sql.Row) (user, error) {
	var u user
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return u, errNotFound
	}
	u.Role = model.Role(role)
	return u, err
}

func (s *Store) IssueToken(ctx context.Context, userID string) (string, error) {
	token := "tok-" + uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO tokens (token, user_id) VALUES (?, ?)`, token, userID)
	return token, err
}

func (s *Store) CreateTask(ctx context.Context, title, status string) (model.Task, error) {
	now := time.Now().UTC()
	t := model.Task{ID: "task-" + uuid.NewString()[:8], Title: title, Status: status, CreatedAt: now, UpdatedAt: now}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Status, t.CreatedAt.Format(time.RFC3339Nano), t.UpdatedAt.Format(time.RFC3339Nano))
	return t, err
}

func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, status, created_at, updated_at FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		var created, updated string
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &created, &updated); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		t.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) TaskExists(ctx context.Context, taskID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE id = ?`, taskID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

const commentSelect = `
	SELECT c.id, c.task_id, c.text, c.created_at, c.edited,
	       u.id, u.name, u.avatar_url
	FROM comments c JOIN users u ON u.id = c.author_id`

// CommentsForTask returns the thread newest-first, mirroring the production
// API's wire order. Clients normalize display order themselves.
func (s *Store) CommentsForTask(ctx context.Context, taskID string) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		commentSelect+` WHERE c.task_id = ? ORDER BY c.created_at DESC, c.id DESC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CommentByID(ctx context.Context, commentID string) (model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, commentSelect+` WHERE c.id = ?`, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Comment{}, err
		}
		return model.Comment{}, errNotFound
	}
	return scanComment(rows)
}

func scanComment(rows *sql.Rows) (model.Comment, error) {
	var c model.Comment
	var created string
	var edited int
	if err := rows.Scan(&c.ID, &c.TaskID, &c.Text, &created, &edited,
		&c.Author.ID, &c.Author.Name, &c.Author.AvatarURL); err != nil {
		return c, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	c.Edited = edited != 0
	return c, nil
}

func (s *Store) InsertComment(ctx context.Context, taskID string, author user, text string) (model.Comment, error) {
	c := model.Comment{
		ID:        "cmt-" + uuid.NewString()[:8],
		TaskID:    taskID,
		Author:    author.author(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, task_id, author_id, text, created_at, edited) VALUES (?, ?, ?, ?, ?, 0)`,
		c.ID, c.TaskID, author.ID, c.Text, c.CreatedAt.Format(time.RFC3339Nano))
	return c, err
}

// UpdateComment sets the text and marks the comment edited for good.
func (s *Store) UpdateComment(ctx context.Context, commentID, text string) (model.Comment, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE comments SET text = ?, edited = 1 WHERE id = ?`, text, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Comment{}, errNotFound
	}
	return s.CommentByID(ctx, commentID)
}

func (s *Store) DeleteComment(ctx context.Context, commentID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, commentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errNotFound
	}
	return nil
}

func (s *Store) DeleteAllComments(ctx context.Context, taskID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE task_id = ?`, taskID)
	return err
}
