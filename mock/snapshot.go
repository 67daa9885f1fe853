package mock

// Snapshot is a point-in-time copy of every table, suitable for encoding as
// JSON or YAML fixtures.
type Snapshot struct {
	Admin        AdminUser     `json:"admin" yaml:"admin"`
	Users        []User        `json:"users" yaml:"users"`
	Interests    []Interest    `json:"interests" yaml:"interests"`
	Posts        []Post        `json:"posts" yaml:"posts"`
	Communities  []Community   `json:"communities" yaml:"communities"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	Events       []Event       `json:"events" yaml:"events"`
	Feeds        []Feed        `json:"feeds" yaml:"feeds"`
	Streams      []Stream      `json:"streams" yaml:"streams"`
	Products     []Product     `json:"products" yaml:"products"`
	Comments     []Comment     `json:"comments" yaml:"comments"`
}

func (d *Dataset) Snapshot() Snapshot {
	return Snapshot{
		Admin:        d.admin,
		Users:        d.Users.All(),
		Interests:    d.Interests.All(),
		Posts:        d.Posts.All(),
		Communities:  d.Communities.All(),
		Transactions: d.Transactions.All(),
		Events:       d.Events.All(),
		Feeds:        d.Feeds.All(),
		Streams:      d.Streams.All(),
		Products:     d.Products.All(),
		Comments:     d.Comments.All(),
	}
}
