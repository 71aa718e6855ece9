package handlers

import (
	"github.com/yuta-hayashi/linkup/backend/internal/models"
	"github.com/yuta-hayashi/linkup/backend/internal/repositories"
)

// enrichPosts decorates posts with author profiles, like edges and tags,
// batching one query per concern instead of querying per post.
func enrichPosts(
	posts []models.Post,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	tagRepo repositories.TagRepository,
) ([]models.EnrichedPost, error) {
	enriched := make([]models.EnrichedPost, 0, len(posts))
	if len(posts) == 0 {
		return enriched, nil
	}

	authorIDSet := make(map[uint]bool)
	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		authorIDSet[p.UserID] = true
		postIDs[i] = p.ID
	}
	authorIDs := make([]uint, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := userRepo.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := make(map[uint]models.UserCompact, len(authors))
	for i := range authors {
		authorMap[authors[i].ID] = authors[i].ToCompact()
	}

	likes, err := likeRepo.GetLikesByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	likeMap := make(map[uint][]models.Like)
	for _, like := range likes {
		likeMap[like.PostID] = append(likeMap[like.PostID], like)
	}

	tagMap, err := tagRepo.GetTagsForPosts(postIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		postLikes := likeMap[p.ID]
		if postLikes == nil {
			postLikes = []models.Like{}
		}
		postTags := tagMap[p.ID]
		if postTags == nil {
			postTags = []models.Tag{}
		}
		enriched = append(enriched, models.EnrichedPost{
			Post:   p,
			Author: authorMap[p.UserID],
			Likes:  postLikes,
			Tags:   postTags,
		})
	}
	return enriched, nil
}
