package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/store"
)

// CreateReview records a review of a place. The author must be
// authenticated, the place must exist, owners cannot review their own
// listings, and each user may review a given place only once.
func (f *Facade) CreateReview(ctx context.Context, actor *model.Identity, req *model.CreateReviewRequest) (*model.Review, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}

	place, err := f.places.Get(ctx, req.PlaceID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	if place.OwnerID == actor.UserID {
		return nil, ErrCannotReviewOwnPlace
	}

	existing, err := f.reviews.ListByAttribute(ctx, "user_id", actor.UserID)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.PlaceID == req.PlaceID {
			return nil, ErrAlreadyReviewed
		}
	}

	now := f.now().UTC()
	review := &model.Review{
		ID:        f.newID(),
		Text:      strings.TrimSpace(req.Text),
		Rating:    req.Rating,
		UserID:    actor.UserID,
		PlaceID:   req.PlaceID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := f.reviews.Add(ctx, review); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}

// GetReview retrieves a review by id.
func (f *Facade) GetReview(ctx context.Context, id string) (*model.Review, error) {
	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// ListReviews retrieves all reviews.
func (f *Facade) ListReviews(ctx context.Context) ([]*model.Review, error) {
	return f.reviews.GetAll(ctx)
}

// UpdateReview applies a partial update to a review's text or rating. Only
// the author or an administrator may modify a review.
func (f *Facade) UpdateReview(ctx context.Context, actor *model.Identity, id string, req *model.UpdateReviewRequest) (*model.Review, error) {
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if fields := req.Validate(); len(fields) > 0 {
		return nil, validationErr(fields)
	}

	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if !actor.CanActFor(review.UserID) {
		return nil, ErrNotAuthorized
	}

	updated, err := f.reviews.Update(ctx, id, func(r *model.Review) error {
		if req.Text != nil {
			r.Text = strings.TrimSpace(*req.Text)
		}
		if req.Rating != nil {
			r.Rating = *req.Rating
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrReviewNotFound
	}
	return updated, nil
}

// DeleteReview removes a review. Only the author may delete it;
// administrators get no override here.
func (f *Facade) DeleteReview(ctx context.Context, actor *model.Identity, id string) error {
	if actor == nil {
		return ErrAuthRequired
	}

	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.UserID != actor.UserID {
		return ErrNotAuthorized
	}

	return f.reviews.Delete(ctx, id)
}

// ListUserReviews retrieves the reviews a user has written.
func (f *Facade) ListUserReviews(ctx context.Context, userID string) ([]*model.Review, error) {
	user, err := f.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	reviews, err := f.reviews.ListByAttribute(ctx, "user_id", userID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}
	return reviews, nil
}
