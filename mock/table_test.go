package mock

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPaginationInvariant(t *testing.T) {
	d := newTestDataset(t)

	for limit := 1; limit <= 25; limit++ {
		for page := 1; page <= 8; page++ {
			got, err := d.Comments.List(Query{Page: page, Limit: limit})
			require.NoError(t, err)

			assert.Equal(t, (got.Total+limit-1)/limit, got.TotalPages, "limit %d", limit)
			assert.LessOrEqual(t, len(got.Data), limit)
			assert.Equal(t, CommentCount, got.Total)
		}
	}
}

func TestPaginateExtremeValues(t *testing.T) {
	items := make([]int, 50)

	tests := []struct {
		name       string
		page       int
		limit      int
		wantLen    int
		totalPages int
	}{
		{"huge page", math.MaxInt/10 + 2, 10, 0, 5},
		{"max page", math.MaxInt, 10, 0, 5},
		{"max limit", 1, math.MaxInt, 50, 1},
		{"max page and limit", math.MaxInt, math.MaxInt, 0, 1},
		{"last partial page", 3, 20, 10, 3},
		{"first page past end", 6, 10, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Page[int]
			require.NotPanics(t, func() { got = Paginate(items, tt.page, tt.limit) })
			assert.Len(t, got.Data, tt.wantLen)
			assert.Equal(t, 50, got.Total)
			assert.Equal(t, tt.totalPages, got.TotalPages)
		})
	}
}

func TestListUsersActivePageTwo(t *testing.T) {
	d := newTestDataset(t)

	active := 0
	for _, u := range d.Users.All() {
		if u.Status == "active" {
			active++
		}
	}

	v := url.Values{}
	v.Set("status", "active")
	v.Set("page", "2")
	v.Set("limit", "10")
	got, err := d.Users.List(QueryFromValues(v))
	require.NoError(t, err)

	assert.Equal(t, active, got.Total)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 10, got.Limit)
	assert.Equal(t, (active+9)/10, got.TotalPages)
	assert.LessOrEqual(t, len(got.Data), 10)

	wantLen := active - 10
	if wantLen < 0 {
		wantLen = 0
	}
	if wantLen > 10 {
		wantLen = 10
	}
	assert.Len(t, got.Data, wantLen)
	for _, u := range got.Data {
		assert.Equal(t, "active", u.Status)
	}
}

func TestListDefaultsAndEmptyResult(t *testing.T) {
	d := newTestDataset(t)

	got, err := d.Users.List(Query{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, got.Page)
	assert.Equal(t, DefaultLimit, got.Limit)
	assert.Len(t, got.Data, DefaultLimit)
	assert.Equal(t, 3, got.TotalPages)

	none, err := d.Users.List(Query{Filters: map[string]string{"status": "banned"}})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
	assert.Equal(t, 0, none.TotalPages)
	assert.Empty(t, none.Data)

	past, err := d.Users.List(Query{Page: 99, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Data)
	assert.Equal(t, 5, past.TotalPages)
}

func TestListSearchAndNumericFilter(t *testing.T) {
	d := newTestDataset(t)

	got, err := d.Users.List(Query{Search: "USER1@EXAMPLE"})
	require.NoError(t, err)
	require.Equal(t, 1, got.Total)
	assert.Equal(t, 1, got.Data[0].ID)

	posts, err := d.Posts.Filter(Query{Filters: map[string]string{"user_id": "7"}})
	require.NoError(t, err)
	for _, p := range posts {
		assert.Equal(t, 7, p.UserID)
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	d := newTestDataset(t)

	_, err := d.Users.Create(Patch{"name": "No Email"})
	assert.ErrorIs(t, err, ErrInvalid)

	u, err := d.Users.Create(Patch{"name": "New Admin", "email": "new@hatchsocial.com", "status": "active"})
	require.NoError(t, err)
	assert.Equal(t, UserCount+1, u.ID)
	assert.Nil(t, u.LastLogin)
	assert.Zero(t, u.FollowersCount)

	updated, err := d.Users.Update(u.ID, Patch{"status": "inactive", "id": 999})
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated.ID)
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, "New Admin", updated.Name)

	_, err = d.Users.Update(u.ID, Patch{"followers_count": "lots"})
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, d.Users.Delete(u.ID))
	_, err = d.Users.Get(u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "User not found")

	assert.ErrorIs(t, d.Users.Delete(u.ID), ErrNotFound)

	require.NoError(t, d.Users.Delete(3))
	next, err := d.Users.Create(Patch{"name": "After Delete", "email": "x@example.com"})
	require.NoError(t, err)
	assert.Equal(t, UserCount+1, next.ID)
}
