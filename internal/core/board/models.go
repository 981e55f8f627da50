package board

// CreatePostRequest represents a request to create a post.
type CreatePostRequest struct {
	CommunityID string
	ChannelID   string
	Title       string
	Author      string
	Body        string
	Tags        []string
	IsNotice    bool
}

// EditPostRequest represents a request to edit an existing post. ID,
// CommunityID and the original creation date are immutable; everything
// else replaces the stored values.
type EditPostRequest struct {
	ID       string
	Title    string
	Body     string
	Tags     []string
	IsNotice bool
}

// CreateChannelRequest represents a request to create a channel.
type CreateChannelRequest struct {
	CommunityID string
	Name        string
	Icon        *string
	Color       string
	Description string
}
