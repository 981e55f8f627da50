package model

// Post is a board entry inside a community channel. Posts are stored as one
// JSON array per keyspace, so every field must be additive and
// default-tolerant on read; there is no schema version.
type Post struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Date         string   `json:"date"`
	Content      string   `json:"content"`
	RichContent  *string  `json:"richContent,omitempty"`
	Likes        int      `json:"likes"`
	Comments     int      `json:"comments"`
	ViewCount    int      `json:"viewCount"`
	Tags         []string `json:"tags,omitempty"`
	IsNotice     bool     `json:"isNotice"`
	IsEdited     bool     `json:"isEdited"`
	LastEditedAt *string  `json:"lastEditedAt,omitempty"`
	ChannelID    string   `json:"channelId"`
	CommunityID  string   `json:"communityId"`
}

// Channel is a read-mostly board category. Color is the hex seed all
// dependent UI colors are derived from.
type Channel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        *string `json:"icon,omitempty"`
	Color       string  `json:"color"`
	Description string  `json:"description,omitempty"`
	CommunityID string  `json:"communityId"`
}

// Member role labels. The set is closed; the roster service rejects
// anything else.
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

// Member is a community roster entry.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	JoinedAt    string `json:"joinedAt"`
	IsActive    bool   `json:"isActive"`
	CommunityID string `json:"communityId"`
}

// Event is a community map event. StartDate <= EndDate is enforced by the
// calendar service, not by the store.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	CommunityID string `json:"communityId"`
}

// Community carries denormalized counters (PostCount, MemberCount,
// HasEvent, LastActive) that are bumped inline with child mutations and
// never reconciled against the child collections. They are approximate,
// not authoritative.
type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PostCount   int    `json:"postCount"`
	MemberCount int    `json:"memberCount"`
	HasEvent    bool   `json:"hasEvent"`
	LastActive  string `json:"lastActive,omitempty"`
}
