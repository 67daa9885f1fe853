package mock

import "time"

// Entity is implemented by every record kind held in a Table.
type Entity interface {
	EntityID() int
}

type User struct {
	ID             int        `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Email          string     `json:"email" yaml:"email"`
	Type           string     `json:"type" yaml:"type"`
	Status         string     `json:"status" yaml:"status"`
	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
	LastLogin      *time.Time `json:"last_login" yaml:"last_login"`
	ProfilePicture string     `json:"profile_picture,omitempty" yaml:"profile_picture,omitempty"`
	Bio            string     `json:"bio,omitempty" yaml:"bio,omitempty"`
	Location       string     `json:"location,omitempty" yaml:"location,omitempty"`
	FollowersCount int        `json:"followers_count" yaml:"followers_count"`
	FollowingCount int        `json:"following_count" yaml:"following_count"`
}

func (u User) EntityID() int { return u.ID }

type Interest struct {
	ID            int       `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Category      string    `json:"category" yaml:"category"`
	Description   string    `json:"description" yaml:"description"`
	UserCount     int       `json:"user_count" yaml:"user_count"`
	Engagement    string    `json:"engagement" yaml:"engagement"`
	Status        string    `json:"status" yaml:"status"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	TrendingScore int       `json:"trending_score" yaml:"trending_score"`
	Icon          string    `json:"icon" yaml:"icon"`
}

func (i Interest) EntityID() int { return i.ID }

type Post struct {
	ID            int       `json:"id" yaml:"id"`
	UserID        int       `json:"user_id" yaml:"user_id"`
	Content       string    `json:"content" yaml:"content"`
	Type          string    `json:"type" yaml:"type"`
	LikesCount    int       `json:"likes_count" yaml:"likes_count"`
	CommentsCount int       `json:"comments_count" yaml:"comments_count"`
	SharesCount   int       `json:"shares_count" yaml:"shares_count"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	Status        string    `json:"status" yaml:"status"`
	ReportedCount int       `json:"reported_count" yaml:"reported_count"`
	MediaURL      *string   `json:"media_url" yaml:"media_url"`
	Hashtags      []string  `json:"hashtags" yaml:"hashtags"`
}

func (p Post) EntityID() int { return p.ID }

type Community struct {
	ID          int       `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category" yaml:"category"`
	MemberCount int       `json:"member_count" yaml:"member_count"`
	PostCount   int       `json:"post_count" yaml:"post_count"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Status      string    `json:"status" yaml:"status"`
	Privacy     string    `json:"privacy" yaml:"privacy"`
	CoverImage  string    `json:"cover_image" yaml:"cover_image"`
	Rules       []string  `json:"rules" yaml:"rules"`
}

func (c Community) EntityID() int { return c.ID }

type Transaction struct {
	ID            int       `json:"id" yaml:"id"`
	UserID        int       `json:"user_id" yaml:"user_id"`
	Amount        float64   `json:"amount" yaml:"amount"`
	Type          string    `json:"type" yaml:"type"`
	Plan          *string   `json:"plan" yaml:"plan"`
	Status        string    `json:"status" yaml:"status"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	TransactionID string    `json:"transaction_id" yaml:"transaction_id"`
	PaymentMethod string    `json:"payment_method" yaml:"payment_method"`
}

func (t Transaction) EntityID() int { return t.ID }

type Event struct {
	ID             int       `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	Description    string    `json:"description" yaml:"description"`
	StartDate      time.Time `json:"start_date" yaml:"start_date"`
	EndDate        time.Time `json:"end_date" yaml:"end_date"`
	Location       string    `json:"location" yaml:"location"`
	OrganizerID    int       `json:"organizer_id" yaml:"organizer_id"`
	AttendeesCount int       `json:"attendees_count" yaml:"attendees_count"`
	Status         string    `json:"status" yaml:"status"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	CoverImage     string    `json:"cover_image" yaml:"cover_image"`
}

func (e Event) EntityID() int { return e.ID }

type Feed struct {
	ID            int       `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Description   string    `json:"description" yaml:"description"`
	FollowerCount int       `json:"follower_count" yaml:"follower_count"`
	PostCount     int       `json:"post_count" yaml:"post_count"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	Status        string    `json:"status" yaml:"status"`
	Category      string    `json:"category" yaml:"category"`
	CuratorID     int       `json:"curator_id" yaml:"curator_id"`
	IsFeatured    bool      `json:"is_featured" yaml:"is_featured"`
}

func (f Feed) EntityID() int { return f.ID }

type Stream struct {
	ID          int        `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	HostID      int        `json:"host_id" yaml:"host_id"`
	ViewerCount int        `json:"viewer_count" yaml:"viewer_count"`
	Status      string     `json:"status" yaml:"status"`
	StartedAt   time.Time  `json:"started_at" yaml:"started_at"`
	EndedAt     *time.Time `json:"ended_at" yaml:"ended_at"`
	Thumbnail   string     `json:"thumbnail" yaml:"thumbnail"`
	Category    string     `json:"category" yaml:"category"`
}

func (s Stream) EntityID() int { return s.ID }

type Product struct {
	ID          int       `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Price       float64   `json:"price" yaml:"price"`
	CommunityID int       `json:"community_id" yaml:"community_id"`
	SellerID    int       `json:"seller_id" yaml:"seller_id"`
	Stock       int       `json:"stock" yaml:"stock"`
	SoldCount   int       `json:"sold_count" yaml:"sold_count"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Images      []string  `json:"images" yaml:"images"`
}

func (p Product) EntityID() int { return p.ID }

type Comment struct {
	ID         int       `json:"id" yaml:"id"`
	PostID     int       `json:"post_id" yaml:"post_id"`
	UserID     int       `json:"user_id" yaml:"user_id"`
	Content    string    `json:"content" yaml:"content"`
	LikesCount int       `json:"likes_count" yaml:"likes_count"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	Status     string    `json:"status" yaml:"status"`
	ParentID   *int      `json:"parent_id" yaml:"parent_id"`
}

func (c Comment) EntityID() int { return c.ID }
