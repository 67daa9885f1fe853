package mock

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// HandlerFunc serves one route against the dataset. The returned data is
// wrapped in an Envelope; an empty message means "Operation successful".
type HandlerFunc func(d *Dataset, c *gin.Context) (data any, message string, err error)

// Route binds a method and gin path pattern, relative to the base path, to a
// handler.
type Route struct {
	Method  string
	Pattern string
	Handle  HandlerFunc
}

// DefaultRoutes is the route table mirroring the backend endpoints the
// dashboard reads and writes.
func DefaultRoutes() []Route {
	users := func(d *Dataset) *Table[User] { return d.Users }
	interests := func(d *Dataset) *Table[Interest] { return d.Interests }
	posts := func(d *Dataset) *Table[Post] { return d.Posts }
	communities := func(d *Dataset) *Table[Community] { return d.Communities }
	transactions := func(d *Dataset) *Table[Transaction] { return d.Transactions }
	events := func(d *Dataset) *Table[Event] { return d.Events }
	feeds := func(d *Dataset) *Table[Feed] { return d.Feeds }
	streams := func(d *Dataset) *Table[Stream] { return d.Streams }
	products := func(d *Dataset) *Table[Product] { return d.Products }
	comments := func(d *Dataset) *Table[Comment] { return d.Comments }

	return []Route{
		{http.MethodPost, "/login", login},
		{http.MethodPost, "/auth/logout", message("Logged out successfully")},
		{http.MethodGet, "/auth/me", currentUser},

		{http.MethodGet, "/auth/profile", list(users)},
		{http.MethodPost, "/auth/profile", create(users)},
		{http.MethodGet, "/auth/profile/:id", get(users)},
		{http.MethodPut, "/auth/profile/:id", update(users)},
		{http.MethodDelete, "/auth/profile/:id", remove(users)},
		{http.MethodPost, "/auth/member_search", searchUsers},

		{http.MethodGet, "/auth/interest_list", list(interests)},
		{http.MethodGet, "/auth/interest_detail/:id", get(interests)},
		{http.MethodPost, "/auth/interest", create(interests)},

		{http.MethodGet, "/auth/post", list(posts)},
		{http.MethodPost, "/auth/post", create(posts)},
		{http.MethodGet, "/auth/post/:id", get(posts)},
		{http.MethodPut, "/auth/post/:id", update(posts)},
		{http.MethodDelete, "/auth/post/:id", remove(posts)},

		{http.MethodGet, "/auth/community", list(communities)},
		{http.MethodPost, "/auth/community", create(communities)},
		{http.MethodGet, "/auth/community/:id", get(communities)},
		{http.MethodPut, "/auth/community/:id", update(communities)},
		{http.MethodDelete, "/auth/community/:id", remove(communities)},
		{http.MethodPost, "/auth/search", searchCommunities},

		{http.MethodGet, "/auth/transaction", listTransactions},
		{http.MethodPost, "/auth/transaction", create(transactions)},

		{http.MethodGet, "/auth/event", list(events)},
		{http.MethodPost, "/auth/event", create(events)},
		{http.MethodGet, "/auth/event/:id", get(events)},
		{http.MethodPut, "/auth/event/:id", update(events)},
		{http.MethodDelete, "/auth/event/:id", remove(events)},

		{http.MethodGet, "/auth/show-feed", list(feeds)},
		{http.MethodPost, "/auth/show-feed", listFromBody(feeds)},
		{http.MethodGet, "/auth/feed-detail/:id", get(feeds)},
		{http.MethodPost, "/auth/feed", create(feeds)},
		{http.MethodPut, "/auth/feed/:id", update(feeds)},
		{http.MethodPost, "/auth/feed/:id", update(feeds)},
		{http.MethodDelete, "/auth/feed/:id", remove(feeds)},

		{http.MethodGet, "/auth/streaming", list(streams)},
		{http.MethodPost, "/auth/streaming", create(streams)},
		{http.MethodPut, "/auth/streaming/:id", update(streams)},
		{http.MethodDelete, "/auth/streaming/:id", remove(streams)},

		{http.MethodGet, "/auth/products/:id", productsByCommunity},
		{http.MethodPost, "/auth/products", create(products)},
		{http.MethodPut, "/auth/products/:id", update(products)},
		{http.MethodPost, "/auth/products/:id", update(products)},
		{http.MethodDelete, "/auth/products/:id", remove(products)},

		{http.MethodGet, "/auth/comment", list(comments)},
		{http.MethodPost, "/auth/comment", create(comments)},
		{http.MethodPut, "/auth/comment/:id", update(comments)},
		{http.MethodDelete, "/auth/comment/:id", remove(comments)},

		{http.MethodGet, "/auth/notification-list/:id", notifications},
		{http.MethodGet, "/auth/package_list", packageList},
		{http.MethodGet, "/auth/hashtags_list", hashtags},
		{http.MethodPost, "/auth/hashtags_list", hashtags},
		{http.MethodGet, "/auth/dashboard-stats", dashboardStats},
		{http.MethodGet, "/auth/activities", activities},
		{http.MethodGet, "/auth/moderation-logs", moderationLogs},

		{http.MethodGet, "/clear-cache", message("Cache cleared successfully")},
		{http.MethodGet, "/cron", message("Cron job executed successfully")},
	}
}

func list[T Entity](table func(*Dataset) *Table[T]) HandlerFunc {
	return func(d *Dataset, c *gin.Context) (any, string, error) {
		page, err := table(d).List(QueryFromValues(c.Request.URL.Query()))
		if err != nil {
			return nil, "", err
		}
		return page, "", nil
	}
}

// listFromBody reads the query from a JSON object body instead of the
// query string.
func listFromBody[T Entity](table func(*Dataset) *Table[T]) HandlerFunc {
	return func(d *Dataset, c *gin.Context) (any, string, error) {
		patch, err := decodePatch(c)
		if err != nil {
			return nil, "", err
		}
		values := url.Values{}
		for k, v := range patch {
			if v != nil {
				values.Set(k, fmt.Sprint(v))
			}
		}
		page, err := table(d).List(QueryFromValues(values))
		if err != nil {
			return nil, "", err
		}
		return page, "", nil
	}
}

func get[T Entity](table func(*Dataset) *Table[T]) HandlerFunc {
	return func(d *Dataset, c *gin.Context) (any, string, error) {
		id, err := pathID(c, "id")
		if err != nil {
			return nil, "", err
		}
		item, err := table(d).Get(id)
		if err != nil {
			return nil, "", err
		}
		return item, "", nil
	}
}

func create[T Entity](table func(*Dataset) *Table[T]) HandlerFunc {
	return func(d *Dataset, c *gin.Context) (any, string, error) {
		patch, err := decodePatch(c)
		if err != nil {
			return nil, "", err
		}
		t := table(d)
		item, err := t.Create(patch)
		if err != nil {
			return nil, "", err
		}
		return item, fmt.Sprintf("%s created successfully", t.Kind()), nil
	}
}

func update[T Entity](table func(*Dataset) *Table[T]) HandlerFunc {
	return func(d *Dataset, c *gin.Context) (any, string, error) {
		id, err := pathID(c, "id")
		if err != nil {
			return nil, "", err
		}
		patch, err := decodePatch(c)
		if err != nil {
			return nil, "", err
		}
		t := table(d)
		item, err := t.Update(id, patch)
		if err != nil {
			return nil, "", err
		}
		return item, fmt.Sprintf("%s updated successfully", t.Kind()), nil
	}
}

func remove[T Entity](table func(*Dataset) *Table[T]) HandlerFunc {
	return func(d *Dataset, c *gin.Context) (any, string, error) {
		id, err := pathID(c, "id")
		if err != nil {
			return nil, "", err
		}
		t := table(d)
		if err := t.Delete(id); err != nil {
			return nil, "", err
		}
		return gin.H{"id": id}, fmt.Sprintf("%s deleted successfully", t.Kind()), nil
	}
}

func message(msg string) HandlerFunc {
	return func(*Dataset, *gin.Context) (any, string, error) {
		return gin.H{"message": msg}, "", nil
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func login(d *Dataset, c *gin.Context) (any, string, error) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	res, err := d.Login(creds.Email, creds.Password)
	if err != nil {
		return nil, "", err
	}
	return res, "", nil
}

func currentUser(d *Dataset, _ *gin.Context) (any, string, error) {
	return d.CurrentUser(), "", nil
}

type searchBody struct {
	Search string `json:"search"`
}

func searchUsers(d *Dataset, c *gin.Context) (any, string, error) {
	var body searchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	users, err := d.SearchUsers(body.Search)
	return users, "", err
}

func searchCommunities(d *Dataset, c *gin.Context) (any, string, error) {
	var body searchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	communities, err := d.SearchCommunities(body.Search)
	return communities, "", err
}

func listTransactions(d *Dataset, c *gin.Context) (any, string, error) {
	page, err := d.ListTransactions(QueryFromValues(c.Request.URL.Query()))
	if err != nil {
		return nil, "", err
	}
	return page, "", nil
}

func productsByCommunity(d *Dataset, c *gin.Context) (any, string, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, "", err
	}
	return d.ProductsByCommunity(id), "", nil
}

func notifications(d *Dataset, c *gin.Context) (any, string, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, "", err
	}
	return d.Notifications(id), "", nil
}

func packageList(d *Dataset, _ *gin.Context) (any, string, error) {
	return d.SubscriptionPlans(), "", nil
}

func hashtags(d *Dataset, _ *gin.Context) (any, string, error) {
	return d.Hashtags(), "", nil
}

func dashboardStats(d *Dataset, _ *gin.Context) (any, string, error) {
	return d.DashboardStats(), "", nil
}

func activities(d *Dataset, _ *gin.Context) (any, string, error) {
	return d.Activities(), "", nil
}

func moderationLogs(d *Dataset, _ *gin.Context) (any, string, error) {
	return d.ModerationLogs(), "", nil
}
