// Package mock generates a synthetic Hatch Social dataset and serves it
// through the same REST routes the real backend exposes, so the dashboard
// keeps working when the backend is unreachable.
package mock

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record counts produced by Generate.
const (
	UserCount        = 50
	InterestCount    = 20
	PostCount        = 30
	CommunityCount   = 15
	TransactionCount = 40
	EventCount       = 10
	FeedCount        = 25
	StreamCount      = 8
	ProductCount     = 20
	CommentCount     = 100
)

// createdAtSpread bounds how far in the past generated created_at values go.
const createdAtSpread = 10_000_000_000 * time.Millisecond

var (
	userTypes         = []string{"explorer", "creator", "admin"}
	userStatuses      = []string{"active", "inactive", "pending"}
	locations         = []string{"New York", "London", "Tokyo", "Sydney", "Berlin"}
	categories        = []string{"Technology", "Arts", "Health", "Food", "Sports", "Music", "Travel", "Business"}
	engagements       = []string{"high", "medium", "low"}
	icons             = []string{"heart", "star", "flag", "book", "music"}
	postTypes         = []string{"text", "image", "video", "poll", "event"}
	privacies         = []string{"public", "private", "protected"}
	transactionTypes  = []string{"subscription", "purchase", "refund", "withdrawal"}
	plans             = []string{"Basic", "Pro", "Enterprise", "Premium"}
	transactionStatus = []string{"completed", "pending", "failed"}
	paymentMethods    = []string{"credit_card", "paypal", "bank_transfer"}
	eventLocations    = []string{"Virtual", "New York", "London", "Tokyo"}
	eventStatuses     = []string{"upcoming", "ongoing", "completed"}
	communityRules    = []string{"Be respectful", "No spam", "Stay on topic"}
	sampleVideoURL    = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"
)

// Generator produces datasets from a random source. Two generators built
// with the same seed and clock produce identical datasets.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

type Option func(*Generator)

// WithSeed seeds the generator's random source.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r as the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithClock replaces time.Now for generated timestamps and for the
// time windows used by dashboard statistics.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Generate builds a fresh dataset. Foreign keys always reference records
// that exist in the same dataset.
func (g *Generator) Generate() *Dataset {
	now := g.now()

	users := make([]User, 0, UserCount)
	for i := 1; i <= UserCount; i++ {
		lastLogin := g.past(now, time.Duration(1_000_000_000)*time.Millisecond)
		users = append(users, User{
			ID:             i,
			Name:           fmt.Sprintf("User %d", i),
			Email:          fmt.Sprintf("user%d@example.com", i),
			Type:           g.pick(userTypes),
			Status:         g.pick(userStatuses),
			CreatedAt:      g.past(now, createdAtSpread),
			LastLogin:      &lastLogin,
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?img=%d", i),
			Bio:            fmt.Sprintf("This is the bio of user %d", i),
			Location:       g.pick(locations),
			FollowersCount: g.rng.Intn(1000),
			FollowingCount: g.rng.Intn(500),
		})
	}

	interests := make([]Interest, 0, InterestCount)
	for i := 1; i <= InterestCount; i++ {
		category := g.pick(categories)
		interests = append(interests, Interest{
			ID:            i,
			Name:          fmt.Sprintf("%s Interest %d", category, i),
			Category:      category,
			Description:   fmt.Sprintf("This is a %s interest", strings.ToLower(category)),
			UserCount:     g.rng.Intn(1000),
			Engagement:    g.pick(engagements),
			Status:        g.weighted(0.8, "active", "inactive"),
			CreatedAt:     g.past(now, createdAtSpread),
			TrendingScore: g.rng.Intn(100),
			Icon:          "fas fa-" + g.pick(icons),
		})
	}

	posts := make([]Post, 0, PostCount)
	for i := 1; i <= PostCount; i++ {
		typ := g.pick(postTypes)
		var media *string
		switch typ {
		case "image":
			u := fmt.Sprintf("https://picsum.photos/800/600?random=%d", i)
			media = &u
		case "video":
			u := sampleVideoURL
			media = &u
		}
		reported := 0
		if g.rng.Float64() > 0.8 {
			reported = g.rng.Intn(5)
		}
		posts = append(posts, Post{
			ID:            i,
			UserID:        g.ref(UserCount),
			Content:       fmt.Sprintf("This is post content %d of type %s", i, typ),
			Type:          typ,
			LikesCount:    g.rng.Intn(500),
			CommentsCount: g.rng.Intn(100),
			SharesCount:   g.rng.Intn(50),
			CreatedAt:     g.past(now, createdAtSpread),
			Status:        g.weighted(0.9, "active", "reported"),
			ReportedCount: reported,
			MediaURL:      media,
			Hashtags:      []string{fmt.Sprintf("#hashtag%d", i), "#social", "#community"},
		})
	}

	communities := make([]Community, 0, CommunityCount)
	for i := 1; i <= CommunityCount; i++ {
		category := g.pick(categories)
		communities = append(communities, Community{
			ID:          i,
			Name:        fmt.Sprintf("%s Community %d", category, i),
			Description: fmt.Sprintf("This is a community for %s enthusiasts", strings.ToLower(category)),
			Category:    category,
			MemberCount: g.rng.Intn(5000),
			PostCount:   g.rng.Intn(1000),
			CreatedAt:   g.past(now, createdAtSpread),
			Status:      g.weighted(0.9, "active", "inactive"),
			Privacy:     g.pick(privacies),
			CoverImage:  fmt.Sprintf("https://picsum.photos/1200/400?random=%d", i),
			Rules:       append([]string(nil), communityRules...),
		})
	}

	transactions := make([]Transaction, 0, TransactionCount)
	for i := 1; i <= TransactionCount; i++ {
		typ := g.pick(transactionTypes)
		var plan *string
		if typ == "subscription" {
			p := g.pick(plans)
			plan = &p
		}
		transactions = append(transactions, Transaction{
			ID:            i,
			UserID:        g.ref(UserCount),
			Amount:        math.Round(g.rng.Float64()*100*100) / 100,
			Type:          typ,
			Plan:          plan,
			Status:        g.pick(transactionStatus),
			CreatedAt:     g.past(now, createdAtSpread),
			TransactionID: g.transactionID(),
			PaymentMethod: g.pick(paymentMethods),
		})
	}

	events := make([]Event, 0, EventCount)
	for i := 1; i <= EventCount; i++ {
		start := now.Add(time.Duration(g.rng.Float64() * float64(createdAtSpread))).UTC()
		events = append(events, Event{
			ID:             i,
			Title:          fmt.Sprintf("Event %d: Community Meetup", i),
			Description:    fmt.Sprintf("This is event %d description", i),
			StartDate:      start,
			EndDate:        start.Add(2 * time.Hour),
			Location:       g.pick(eventLocations),
			OrganizerID:    g.ref(UserCount),
			AttendeesCount: g.rng.Intn(200),
			Status:         g.pick(eventStatuses),
			CreatedAt:      g.past(now, createdAtSpread),
			CoverImage:     fmt.Sprintf("https://picsum.photos/800/400?random=%d", i+100),
		})
	}

	feeds := make([]Feed, 0, FeedCount)
	for i := 1; i <= FeedCount; i++ {
		feeds = append(feeds, Feed{
			ID:            i,
			Name:          fmt.Sprintf("Feed %d", i),
			Description:   fmt.Sprintf("This is feed %d for curated content", i),
			FollowerCount: g.rng.Intn(1000),
			PostCount:     g.rng.Intn(100),
			CreatedAt:     g.past(now, createdAtSpread),
			Status:        "active",
			Category:      g.pick(categories),
			CuratorID:     g.ref(UserCount),
			IsFeatured:    g.rng.Float64() > 0.7,
		})
	}

	streams := make([]Stream, 0, StreamCount)
	for i := 1; i <= StreamCount; i++ {
		live := g.rng.Float64() > 0.5
		var ended *time.Time
		if !live {
			e := g.past(now, 30*time.Minute)
			ended = &e
		}
		status := "ended"
		if live {
			status = "live"
		}
		streams = append(streams, Stream{
			ID:          i,
			Title:       fmt.Sprintf("Live Stream %d", i),
			Description: fmt.Sprintf("This is live stream %d", i),
			HostID:      g.ref(UserCount),
			ViewerCount: g.rng.Intn(1000),
			Status:      status,
			StartedAt:   g.past(now, time.Hour),
			EndedAt:     ended,
			Thumbnail:   fmt.Sprintf("https://picsum.photos/800/450?random=%d", i+200),
			Category:    g.pick(categories),
		})
	}

	products := make([]Product, 0, ProductCount)
	for i := 1; i <= ProductCount; i++ {
		products = append(products, Product{
			ID:          i,
			Name:        fmt.Sprintf("Product %d", i),
			Description: fmt.Sprintf("This is product %d description", i),
			Price:       math.Round(g.rng.Float64()*100*100) / 100,
			CommunityID: g.ref(CommunityCount),
			SellerID:    g.ref(UserCount),
			Stock:       g.rng.Intn(100),
			SoldCount:   g.rng.Intn(50),
			Status:      g.weighted(0.9, "available", "out_of_stock"),
			CreatedAt:   g.past(now, createdAtSpread),
			Images:      []string{fmt.Sprintf("https://picsum.photos/400/400?random=%d", i+300)},
		})
	}

	comments := make([]Comment, 0, CommentCount)
	for i := 1; i <= CommentCount; i++ {
		var parent *int
		if i > 1 && g.rng.Float64() > 0.7 {
			p := g.ref(i - 1)
			parent = &p
		}
		comments = append(comments, Comment{
			ID:         i,
			PostID:     g.ref(PostCount),
			UserID:     g.ref(UserCount),
			Content:    fmt.Sprintf("This is comment %d on the post", i),
			LikesCount: g.rng.Intn(50),
			CreatedAt:  g.past(now, createdAtSpread),
			Status:     "active",
			ParentID:   parent,
		})
	}

	return newDataset(g.now, datasetTables{
		users:        users,
		interests:    interests,
		posts:        posts,
		communities:  communities,
		transactions: transactions,
		events:       events,
		feeds:        feeds,
		streams:      streams,
		products:     products,
		comments:     comments,
	})
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

// weighted returns a with probability p and b otherwise.
func (g *Generator) weighted(p float64, a, b string) string {
	if g.rng.Float64() < p {
		return a
	}
	return b
}

// ref returns an id in [1, n].
func (g *Generator) ref(n int) int {
	return g.rng.Intn(n) + 1
}

func (g *Generator) past(now time.Time, spread time.Duration) time.Time {
	return now.Add(-time.Duration(g.rng.Float64() * float64(spread))).UTC().Truncate(time.Millisecond)
}

func (g *Generator) transactionID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return fmt.Sprintf("txn_%09x", g.rng.Int63()&0xfffffffff)
	}
	return "txn_" + strings.ReplaceAll(id.String(), "-", "")[:9]
}
