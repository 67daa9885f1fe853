package mock

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Demo administrator accepted by Login.
const (
	DemoEmail    = "admin@hatchsocial.com"
	DemoPassword = "admin123"
	DemoToken    = "mock_jwt_token_1234567890"
)

// ErrInvalidCredentials is returned by Login for anything but the demo
// administrator.
var ErrInvalidCredentials = errors.New("mock: invalid credentials")

const (
	recentWindow  = 7 * 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour
)

// Dataset is the in-memory backend state. It lives until the process exits.
type Dataset struct {
	Users        *Table[User]
	Interests    *Table[Interest]
	Posts        *Table[Post]
	Communities  *Table[Community]
	Transactions *Table[Transaction]
	Events       *Table[Event]
	Feeds        *Table[Feed]
	Streams      *Table[Stream]
	Products     *Table[Product]
	Comments     *Table[Comment]

	admin AdminUser
	now   func() time.Time
}

type datasetTables struct {
	users        []User
	interests    []Interest
	posts        []Post
	communities  []Community
	transactions []Transaction
	events       []Event
	feeds        []Feed
	streams      []Stream
	products     []Product
	comments     []Comment
}

func newDataset(now func() time.Time, t datasetTables) *Dataset {
	return &Dataset{
		Users:        newTable("User", t.users, now, []string{"name", "email"}, []string{"name", "email"}),
		Interests:    newTable("Interest", t.interests, now, []string{"name", "description"}, []string{"name"}),
		Posts:        newTable("Post", t.posts, now, []string{"content"}, []string{"content"}),
		Communities:  newTable("Community", t.communities, now, []string{"name", "description"}, []string{"name"}),
		Transactions: newTable("Transaction", t.transactions, now, []string{"transaction_id"}, []string{"amount"}),
		Events:       newTable("Event", t.events, now, []string{"title", "description"}, []string{"title"}),
		Feeds:        newTable("Feed", t.feeds, now, []string{"name", "description"}, []string{"name"}),
		Streams:      newTable("Stream", t.streams, now, []string{"title", "description"}, []string{"title"}),
		Products:     newTable("Product", t.products, now, []string{"name", "description"}, []string{"name"}),
		Comments:     newTable("Comment", t.comments, now, []string{"content"}, []string{"content"}),
		admin: AdminUser{
			ID:        1,
			Name:      "Admin User",
			Email:     "admin@gmail.com",
			Type:      "admin",
			Status:    "active",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		now: now,
	}
}

// AdminUser is the account returned by Login and CurrentUser.
type AdminUser struct {
	ID        int       `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Type      string    `json:"type" yaml:"type"`
	Status    string    `json:"status" yaml:"status"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

type LoginResult struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}

func (d *Dataset) Login(email, password string) (LoginResult, error) {
	if email != DemoEmail || password != DemoPassword {
		return LoginResult{}, ErrInvalidCredentials
	}
	return LoginResult{Token: DemoToken, User: d.admin}, nil
}

func (d *Dataset) CurrentUser() AdminUser {
	return d.admin
}

// SearchUsers matches term against user names and emails.
func (d *Dataset) SearchUsers(term string) ([]User, error) {
	return d.Users.Filter(Query{Search: strings.TrimSpace(term)})
}

// SearchCommunities matches term against community names and descriptions.
func (d *Dataset) SearchCommunities(term string) ([]Community, error) {
	return d.Communities.Filter(Query{Search: strings.TrimSpace(term)})
}

// TransactionTotals aggregates revenue over a set of transactions.
type TransactionTotals struct {
	TotalRevenue        float64 `json:"total_revenue" yaml:"total_revenue"`
	MonthlyRevenue      float64 `json:"monthly_revenue" yaml:"monthly_revenue"`
	ActiveSubscriptions int     `json:"active_subscriptions" yaml:"active_subscriptions"`
	AvgTransaction      float64 `json:"avg_transaction" yaml:"avg_transaction"`
}

// TransactionPage is a page of transactions plus totals over every
// transaction that matched the query.
type TransactionPage struct {
	Page[Transaction]
	Totals TransactionTotals `json:"totals" yaml:"totals"`
}

func (d *Dataset) ListTransactions(q Query) (TransactionPage, error) {
	q = q.normalize()
	matched, err := d.Transactions.Filter(q)
	if err != nil {
		return TransactionPage{}, err
	}
	return TransactionPage{
		Page:   Paginate(matched, q.Page, q.Limit),
		Totals: d.Totals(matched),
	}, nil
}

// Totals computes revenue figures. Revenue counts completed transactions
// only; monthly revenue is limited to the last 30 days. Amounts are summed
// in whole cents.
func (d *Dataset) Totals(txns []Transaction) TransactionTotals {
	monthStart := d.now().Add(-monthlyWindow)

	var total, monthly int64
	active := 0
	for _, t := range txns {
		if t.Status != "completed" {
			continue
		}
		c := toCents(t.Amount)
		total += c
		if t.CreatedAt.After(monthStart) {
			monthly += c
		}
		if t.Type == "subscription" {
			active++
		}
	}

	var avg float64
	if len(txns) > 0 {
		avg = math.Round(float64(total)/float64(len(txns))) / 100
	}
	return TransactionTotals{
		TotalRevenue:        fromCents(total),
		MonthlyRevenue:      fromCents(monthly),
		ActiveSubscriptions: active,
		AvgTransaction:      avg,
	}
}

// ProductsByCommunity lists the products sold in one community.
func (d *Dataset) ProductsByCommunity(communityID int) []Product {
	var out []Product
	for _, p := range d.Products.All() {
		if p.CommunityID == communityID {
			out = append(out, p)
		}
	}
	return out
}

type DashboardStats struct {
	TotalUsers          int     `json:"total_users" yaml:"total_users"`
	TotalInterests      int     `json:"total_interests" yaml:"total_interests"`
	TotalPosts          int     `json:"total_posts" yaml:"total_posts"`
	TotalCommunities    int     `json:"total_communities" yaml:"total_communities"`
	ReportedPosts       int     `json:"reported_posts" yaml:"reported_posts"`
	RecentUsers         int     `json:"recent_users" yaml:"recent_users"`
	RecentPosts         int     `json:"recent_posts" yaml:"recent_posts"`
	TotalRevenue        float64 `json:"total_revenue" yaml:"total_revenue"`
	MonthlyRevenue      float64 `json:"monthly_revenue" yaml:"monthly_revenue"`
	ActiveSubscriptions int     `json:"active_subscriptions" yaml:"active_subscriptions"`
	EngagementRate      string  `json:"engagement_rate" yaml:"engagement_rate"`
	GrowthRate          string  `json:"growth_rate" yaml:"growth_rate"`
}

// DashboardStats summarises the dataset for the dashboard landing page.
// "Recent" means created within the last seven days.
func (d *Dataset) DashboardStats() DashboardStats {
	weekStart := d.now().Add(-recentWindow)

	users := d.Users.All()
	recentUsers := 0
	for _, u := range users {
		if u.CreatedAt.After(weekStart) {
			recentUsers++
		}
	}

	posts := d.Posts.All()
	recentPosts, reported := 0, 0
	for _, p := range posts {
		if p.CreatedAt.After(weekStart) {
			recentPosts++
		}
		if p.Status == "reported" {
			reported++
		}
	}

	totals := d.Totals(d.Transactions.All())

	return DashboardStats{
		TotalUsers:          len(users),
		TotalInterests:      d.Interests.Len(),
		TotalPosts:          len(posts),
		TotalCommunities:    d.Communities.Len(),
		ReportedPosts:       reported,
		RecentUsers:         recentUsers,
		RecentPosts:         recentPosts,
		TotalRevenue:        totals.TotalRevenue,
		MonthlyRevenue:      totals.MonthlyRevenue,
		ActiveSubscriptions: totals.ActiveSubscriptions,
		EngagementRate:      "75%",
		GrowthRate:          "12.5%",
	}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}
