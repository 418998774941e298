package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/d9705996/teamconnect/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postCountsSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS like_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// NewPost is the input of CreatePost.
type NewPost struct {
	Content  string
	Type     string
	AuthorID uint
	Tags     []string
}

// ListPosts returns the posts of tenantID, newest first.
func (s *Store) ListPosts(ctx context.Context, tenantID uint) ([]PostView, error) {
	var posts []model.Post
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Select(postCountsSelect).
		Where("posts.company_id = ?", tenantID).
		Preload("Author.Department").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB { return tx.Order("tags.name") }).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, postView(p))
	}
	return out, nil
}

// CreatePost publishes a post in tenantID. The author must belong to the
// tenant, otherwise nothing is written. Tags are reused by name within the
// tenant and created when missing.
func (s *Store) CreatePost(ctx context.Context, tenantID uint, in NewPost) (PostView, error) {
	if strings.TrimSpace(in.Content) == "" {
		return PostView{}, apperr.Validation("content is required")
	}
	names := normalizeTags(in.Tags)

	var post model.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := userInTenant(tx, tenantID, in.AuthorID, apperr.ErrAuthorNotInTenant)
		if err != nil {
			return err
		}

		post = model.Post{
			Content:   in.Content,
			Type:      in.Type,
			AuthorID:  author.ID,
			CompanyID: tenantID,
		}
		if err := tx.Create(&post).Error; err != nil {
			return fmt.Errorf("create post: %w", db.TranslateError(err))
		}

		if len(names) > 0 {
			tags := make([]model.Tag, 0, len(names))
			for _, name := range names {
				tag := model.Tag{Name: name, CompanyID: tenantID}
				if err := insertOrLoad(tx, &tag, map[string]any{"company_id": tenantID, "name": name}); err != nil {
					return fmt.Errorf("tag %q: %w", name, err)
				}
				tags = append(tags, tag)
			}
			if err := tx.Model(&post).Association("Tags").Append(tags); err != nil {
				return fmt.Errorf("tag post: %w", err)
			}
			post.Tags = tags
		}

		post.Author = author
		return nil
	})
	if err != nil {
		return PostView{}, err
	}
	return postView(post), nil
}

// normalizeTags trims names, drops empty ones and collapses duplicates while
// keeping first-seen order.
func normalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ToggleLike flips userID's like on postID and reports the resulting state.
//
// The composite key is the only guard against duplicates: if a concurrent
// toggle inserted the like first, the insert is a no-op and the post is
// reported as liked.
func (s *Store) ToggleLike(ctx context.Context, tenantID, postID, userID uint) (bool, error) {
	tx := s.db.WithContext(ctx)
	if err := postInTenant(tx, tenantID, postID); err != nil {
		return false, err
	}
	if _, err := userInTenant(tx, tenantID, userID, apperr.ErrUserNotInTenant); err != nil {
		return false, err
	}

	res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLike{})
	if res.Error != nil {
		return false, fmt.Errorf("unlike post: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := model.PostLike{UserID: userID, PostID: postID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return false, fmt.Errorf("like post: %w", db.TranslateError(err))
	}
	return true, nil
}

// CreateComment adds a comment by authorID to a post of tenantID.
func (s *Store) CreateComment(ctx context.Context, tenantID, postID, authorID uint, content string) (CommentView, error) {
	if strings.TrimSpace(content) == "" {
		return CommentView{}, apperr.Validation("content is required")
	}

	tx := s.db.WithContext(ctx)
	if err := postInTenant(tx, tenantID, postID); err != nil {
		return CommentView{}, err
	}
	author, err := userInTenant(tx, tenantID, authorID, apperr.ErrAuthorNotInTenant)
	if err != nil {
		return CommentView{}, err
	}

	c := model.Comment{Content: content, AuthorID: author.ID, PostID: postID}
	if err := tx.Create(&c).Error; err != nil {
		return CommentView{}, fmt.Errorf("create comment: %w", db.TranslateError(err))
	}
	c.Author = author
	return commentView(c), nil
}

// ListComments returns the comments of a post of tenantID, oldest first.
func (s *Store) ListComments(ctx context.Context, tenantID, postID uint) ([]CommentView, error) {
	tx := s.db.WithContext(ctx)
	if err := postInTenant(tx, tenantID, postID); err != nil {
		return nil, err
	}

	var comments []model.Comment
	err := tx.Where("post_id = ?", postID).
		Preload("Author.Department").
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentView(c))
	}
	return out, nil
}
