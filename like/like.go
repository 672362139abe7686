package like

import (
	"context"
	"log"

	"crossconnect/model"
	"crossconnect/relation"
	"crossconnect/store"
)

// Status is the like projection pushed to the UI: whether the watching user
// has liked the post, and how many likes the post carries in total. The
// count is recomputed from the snapshot on every push; no counter document
// exists to drift out of sync.
type Status struct {
	Liked bool
	Count int
}

type Service struct {
	store  store.Store
	toggle *relation.Toggler
}

func NewService(st store.Store, d relation.Mutator) *Service {
	return &Service{
		store:  st,
		toggle: relation.NewToggler(d, store.CollectionLikes, "userId", "postId", ""),
	}
}

// Toggle likes or unlikes the post. liked is the state the caller last
// observed from WatchStatus.
func (s *Service) Toggle(ctx context.Context, userID, postID string, liked bool) error {
	return s.toggle.Toggle(ctx, userID, postID, liked)
}

// WatchStatus pushes the like status for one (user, post) pair on every
// change to the post's likes.
func (s *Service) WatchStatus(ctx context.Context, userID, postID string, sink func(Status)) (store.Subscription, error) {
	q := store.Query{
		Collection: store.CollectionLikes,
		Where:      &store.Filter{Field: "postId", Value: postID},
	}

	return s.store.Subscribe(ctx, q, func(docs []store.Document) {
		likes, err := store.DecodeAll[models.Like](docs)
		if err != nil {
			log.Printf("Failed to decode likes: %v", err)
			return
		}
		sink(statusOf(likes, userID))
	})
}

func statusOf(likes []models.Like, userID string) Status {
	status := Status{Count: len(likes)}
	for _, l := range likes {
		if l.UserID == userID {
			status.Liked = true
			break
		}
	}
	return status
}
