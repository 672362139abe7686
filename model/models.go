package models

// Post is a single feed entry. TimeStamp is milliseconds since epoch and
// drives the full-feed ordering.
type Post struct {
	ID        string `json:"id"`
	UserID    string `json:"userID"`
	Status    string `json:"status"`
	PostImage string `json:"postImage"`
	TimeStamp int64  `json:"timeStamp"`
}

// UserProfile is created once at registration. Email is the lookup key used
// to resolve the currently signed-in user; UserID is the app-level unique id
// generated on the client.
type UserProfile struct {
	ID        string `json:"id"`
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageLink string `json:"imageLink"`
}

// Like is a relation document keyed by the (userId, postId) composite key.
// Existence of the document is the liked state; there is no boolean field.
type Like struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	PostID string `json:"postId"`
}

// Comment is append-only; the core never updates or deletes one.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	Comment   string `json:"comment"`
	TimeStamp int64  `json:"timeStamp"`
	Name      string `json:"name"`
}

// Connection is a directional edge in the social graph, keyed by the
// (userId, targetId) composite key. Same identity discipline as Like.
type Connection struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	TargetID string `json:"targetId"`
}
