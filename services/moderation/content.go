package moderation

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/models"
	"servicefinder/utils"
)

// contentSnapshot is what the flag captures about its target at creation
// time. AuthorID may be empty when the author cannot be resolved.
type contentSnapshot struct {
	Title    string
	Preview  string
	Author   string
	AuthorID string
	Rating   *float64
}

// resolveContent looks up the flag target through the type-specific
// collaborator. Returns (nil, nil) when the content does not exist.
func (s *DefaultModerationService) resolveContent(ctx context.Context, contentType, objectID string) (*contentSnapshot, error) {
	switch contentType {
	case models.ContentForumPost:
		post, err := s.ForumRepo.GetPost(ctx, objectID)
		if err != nil || post == nil {
			return nil, err
		}
		return &contentSnapshot{
			Title:    post.Title,
			Preview:  post.Content,
			Author:   post.AuthorName,
			AuthorID: post.AuthorID,
		}, nil

	case models.ContentForumComment:
		comment, err := s.ForumRepo.GetComment(ctx, objectID)
		if err != nil || comment == nil {
			return nil, err
		}
		return &contentSnapshot{
			Preview:  comment.Content,
			Author:   comment.AuthorName,
			AuthorID: comment.AuthorID,
		}, nil

	case models.ContentReview:
		rv, err := s.Reviews.Get(ctx, objectID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		stars := float64(rv.RatingStars)
		return &contentSnapshot{
			Preview:  rv.RatingMessage,
			Author:   rv.Username,
			AuthorID: rv.UserID,
			Rating:   &stars,
		}, nil

	default:
		return nil, fmt.Errorf("unknown content type %q: %w", contentType, utils.ErrInvalidInput)
	}
}
