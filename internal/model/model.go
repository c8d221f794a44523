package model

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Viewer is the currently authenticated user as reported by the server's
// profile endpoint. Ownership and privilege checks compare against it.
type Viewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (v Viewer) IsAdmin() bool { return v.Role == RoleAdmin }

// Author is a comment author's identity captured at creation time.
// It is not re-resolved when the underlying user later changes.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	// Edited is set once by a successful edit and never cleared.
	Edited bool `json:"edited"`
}

// OwnedBy reports whether the viewer authored this comment. Derived, never stored.
func (c Comment) OwnedBy(viewerID string) bool {
	return viewerID != "" && c.Author.ID == viewerID
}

type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
