package profile

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"

	"crossconnect/dispatcher"
	"crossconnect/model"
	"crossconnect/store"
	"crossconnect/store/storetest"
)

type fixedEmail string

func (f fixedEmail) CurrentEmail(ctx context.Context) (string, error) {
	return string(f), nil
}

func newService(email string) (*Service, *storetest.Store) {
	st := storetest.New()
	return NewService(st, dispatcher.New(st, nil), fixedEmail(email)), st
}

func TestWatchByEmailAbsentYieldsNil(t *testing.T) {
	svc, _ := newService("a@x.com")
	ctx := context.Background()

	got := &models.UserProfile{} // sentinel, overwritten by the first push
	sub, err := svc.WatchByEmail(ctx, "a@x.com", func(p *models.UserProfile) { got = p })
	assert.Equal(t, err, nil)
	defer sub.Cancel()

	// zero matches is nil, not an error
	if got != nil {
		t.Fatalf("expected nil profile, got %+v", got)
	}
}

func TestCreateThenWatchCurrent(t *testing.T) {
	svc, _ := newService("a@x.com")
	ctx := context.Background()

	var current *models.UserProfile
	sub, err := svc.WatchCurrent(ctx, func(p *models.UserProfile) { current = p })
	assert.Equal(t, err, nil)
	defer sub.Cancel()

	id, err := svc.Create(ctx, models.UserProfile{
		UserID: "u1",
		Name:   "Ada",
		Email:  "a@x.com",
	})
	assert.Equal(t, err, nil)

	assert.NotEqual(t, current, nil)
	assert.Equal(t, current.ID, id)
	assert.Equal(t, current.Name, "Ada")
	assert.Equal(t, current.Email, "a@x.com")
}

func TestEditMergesPartialFields(t *testing.T) {
	svc, st := newService("a@x.com")
	ctx := context.Background()

	id, err := svc.Create(ctx, models.UserProfile{UserID: "u1", Name: "Ada", Email: "a@x.com"})
	assert.Equal(t, err, nil)

	assert.Equal(t, svc.Edit(ctx, id, store.Fields{"imageLink": "http://img"}), nil)

	docs, _ := st.Get(ctx, store.Query{Collection: store.CollectionUsers})
	var p models.UserProfile
	assert.Equal(t, docs[0].Decode(&p), nil)
	assert.Equal(t, p.ImageLink, "http://img")
	assert.Equal(t, p.Name, "Ada")
	assert.Equal(t, p.Email, "a@x.com")
}

func TestWatchAll(t *testing.T) {
	svc, _ := newService("a@x.com")
	ctx := context.Background()

	var all []models.UserProfile
	sub, err := svc.WatchAll(ctx, func(profiles []models.UserProfile) { all = profiles })
	assert.Equal(t, err, nil)
	defer sub.Cancel()

	svc.Create(ctx, models.UserProfile{UserID: "u1", Name: "Ada", Email: "a@x.com"})
	svc.Create(ctx, models.UserProfile{UserID: "u2", Name: "Bob", Email: "b@x.com"})

	assert.Equal(t, len(all), 2)
}
