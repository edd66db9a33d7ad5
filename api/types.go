// Package api defines the wire types exchanged with the Splitter backend.
// Field names and JSON tags mirror the server's models exactly; the backend
// owns validation and persistence, these structs only shape requests and
// decode responses.
package api

import "time"

// User is a user profile as transferred over the wire. The password hash and
// other server-side fields never appear here.
type User struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	InstanceDomain      string     `json:"instance_domain"`
	DID                 string     `json:"did"`
	DisplayName         string     `json:"display_name"`
	Bio                 string     `json:"bio,omitempty"`
	AvatarURL           string     `json:"avatar_url,omitempty"`
	PublicKey           string     `json:"public_key"`
	EncryptionPublicKey string     `json:"encryption_public_key,omitempty"`
	Role                string     `json:"role"`
	IsLocked            bool       `json:"is_locked"`
	IsSuspended         bool       `json:"is_suspended"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// Roles a user can hold.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Post visibility settings.
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
)

// Post is a post as transferred over the wire, including the calling user's
// own interaction flags when the request was authenticated.
type Post struct {
	ID               string     `json:"id"`
	AuthorDID        string     `json:"author_did"`
	Username         string     `json:"username,omitempty"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	Content          string     `json:"content"`
	Visibility       string     `json:"visibility,omitempty"`
	IsRemote         bool       `json:"is_remote"`
	OriginalPostURI  string     `json:"original_post_uri,omitempty"`
	InReplyToURI     string     `json:"in_reply_to_uri,omitempty"`
	LikeCount        int        `json:"like_count"`
	Liked            bool       `json:"liked"`
	RepostCount      int        `json:"repost_count"`
	Reposted         bool       `json:"reposted"`
	DirectReplyCount int        `json:"direct_reply_count"`
	TotalReplyCount  int        `json:"total_reply_count"`
	Media            []Media    `json:"media,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// Media is an attachment on a post.
type Media struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow is the relationship record returned when following a user.
type Follow struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowStats is the wire shape of GET /users/:id/stats.
type FollowStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username            string `json:"username"`
	InstanceDomain      string `json:"instance_domain"`
	DID                 string `json:"did"`
	DisplayName         string `json:"display_name"`
	PublicKey           string `json:"public_key"`
	EncryptionPublicKey string `json:"encryption_public_key,omitempty"`
	Bio                 string `json:"bio,omitempty"`
	AvatarURL           string `json:"avatar_url,omitempty"`
}

// ChallengeRequest is the body of POST /auth/challenge.
type ChallengeRequest struct {
	DID string `json:"did"`
}

// ChallengeResponse is the nonce the client must sign before it expires.
// ExpiresAt is a unix timestamp in seconds.
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
	ExpiresAt int64  `json:"expires_at"`
}

// VerifyChallengeRequest is the body of POST /auth/verify. Signature is the
// base64-encoded Ed25519 signature over the challenge bytes.
type VerifyChallengeRequest struct {
	DID       string `json:"did"`
	Challenge string `json:"challenge"`
	Signature string `json:"signature"`
}

// AuthResponse is returned by register and verify; both mint a session token.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UserUpdate is the body of PUT /users/me. Nil fields are omitted from the
// serialized body, so the server only touches the fields that are set.
type UserUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// PostCreate is the body of POST /posts.
type PostCreate struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

// PostUpdate is the body of PUT /posts/:id. Same partial-update semantics as
// UserUpdate.
type PostUpdate struct {
	Content    *string `json:"content,omitempty"`
	Visibility *string `json:"visibility,omitempty"`
}

// ReplyCreate is the body of POST /posts/:id/replies.
type ReplyCreate struct {
	Content string `json:"content"`
}

// MessageResponse is the generic acknowledgement body used by delete,
// unfollow and interaction endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error body the backend produces for any
// non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
