package mock

import "time"

type Notification struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscriptionPlan struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration"`
	Features    []string `json:"features"`
	ActiveUsers int      `json:"active_users"`
}

type Activity struct {
	ID     int    `json:"id"`
	User   string `json:"user"`
	Action string `json:"action"`
	Type   string `json:"type"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

type ModerationLog struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Moderator string `json:"moderator"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// Notifications is the same for every profile.
func (d *Dataset) Notifications(profileID int) []Notification {
	now := d.now().UTC()
	return []Notification{
		{ID: 1, Type: "new_user", Message: "New user registered", CreatedAt: now},
		{ID: 2, Type: "new_post", Message: "New post created", CreatedAt: now},
		{ID: 3, Type: "report", Message: "Content reported", Read: true, CreatedAt: now},
		{ID: 4, Type: "subscription", Message: "New subscription", CreatedAt: now},
		{ID: 5, Type: "warning", Message: "System maintenance scheduled", Read: true, CreatedAt: now},
	}
}

func (d *Dataset) SubscriptionPlans() []SubscriptionPlan {
	return []SubscriptionPlan{
		{ID: 1, Name: "Basic", Price: 9.99, Duration: "monthly", Features: []string{"Basic features", "Limited storage"}, ActiveUsers: 125},
		{ID: 2, Name: "Pro", Price: 19.99, Duration: "monthly", Features: []string{"All features", "More storage"}, ActiveUsers: 68},
		{ID: 3, Name: "Enterprise", Price: 49.99, Duration: "monthly", Features: []string{"Enterprise features", "Unlimited storage"}, ActiveUsers: 12},
	}
}

func (d *Dataset) Activities() []Activity {
	return []Activity{
		{ID: 1, User: "John Doe", Action: "User registered", Type: "user", Time: "10 min ago", Status: "completed"},
		{ID: 2, User: "Sarah Williams", Action: "Upgraded to Pro plan", Type: "subscription", Time: "45 min ago", Status: "completed"},
		{ID: 3, User: "System", Action: "Daily backup completed", Type: "system", Time: "2 hours ago", Status: "completed"},
		{ID: 4, User: "Michael Chen", Action: "Content reported", Type: "moderation", Time: "3 hours ago", Status: "pending"},
		{ID: 5, User: "Admin", Action: "Banned user for violation", Type: "moderation", Time: "5 hours ago", Status: "completed"},
		{ID: 6, User: "Emma Johnson", Action: "Created new community", Type: "community", Time: "1 day ago", Status: "completed"},
		{ID: 7, User: "David Brown", Action: "Added new product", Type: "product", Time: "2 days ago", Status: "completed"},
		{ID: 8, User: "System", Action: "Monthly report generated", Type: "report", Time: "3 days ago", Status: "completed"},
	}
}

func (d *Dataset) ModerationLogs() []ModerationLog {
	return []ModerationLog{
		{ID: 1, Content: "Post #1234", User: "user123", Action: "Flagged", Moderator: "admin", Date: "2024-03-10", Status: "pending"},
		{ID: 2, Content: "Comment #5678", User: "user456", Action: "Removed", Moderator: "auto-mod", Date: "2024-03-09", Status: "resolved"},
		{ID: 3, Content: "Profile #9012", User: "user789", Action: "Suspended", Moderator: "admin", Date: "2024-03-08", Status: "active"},
		{ID: 4, Content: "Post #3456", User: "user101", Action: "Warned", Moderator: "admin", Date: "2024-03-07", Status: "resolved"},
		{ID: 5, Content: "Comment #7890", User: "user202", Action: "Approved", Moderator: "auto-mod", Date: "2024-03-06", Status: "resolved"},
	}
}

func (d *Dataset) Hashtags() []string {
	return []string{"#social", "#community", "#tech", "#art", "#health", "#food", "#sports", "#music"}
}
