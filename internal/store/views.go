package store

import (
	"time"

	"github.com/d9705996/teamconnect/internal/model"
)

// UserListItem is one row of ListUsers.
type UserListItem struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	RoleName       *string `json:"roleName"`
	DepartmentName *string `json:"departmentName"`
}

// AuthorSummary is the public face of a user attached to posts and comments.
type AuthorSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	AvatarInitials string `json:"avatarInitials"`
	DepartmentName string `json:"departmentName,omitempty"`
}

// PostView is a post with its author, tag names and engagement counts.
type PostView struct {
	ID           uint          `json:"id"`
	Content      string        `json:"content"`
	Type         string        `json:"type"`
	AuthorID     uint          `json:"authorId"`
	CompanyID    uint          `json:"companyId"`
	CreatedAt    time.Time     `json:"createdAt"`
	Author       AuthorSummary `json:"author"`
	Tags         []string      `json:"tags"`
	LikeCount    int64         `json:"likeCount"`
	CommentCount int64         `json:"commentCount"`
}

// CommentView is a comment with its author.
type CommentView struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	AuthorID  uint          `json:"authorId"`
	PostID    uint          `json:"postId"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    AuthorSummary `json:"author"`
}

// RoleView is a role with its access level name and member count.
type RoleView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	CompanyID       uint   `json:"companyId"`
	AccessLevelID   uint   `json:"accessLevelId"`
	AccessLevelName string `json:"accessLevelName"`
	MemberCount     int64  `json:"memberCount"`
}

// AccessLevelView is an access level with the actions it grants.
type AccessLevelView struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func authorSummary(u model.User) AuthorSummary {
	a := AuthorSummary{ID: u.ID, Name: u.Name, AvatarInitials: u.AvatarInitials}
	if u.Department != nil {
		a.DepartmentName = u.Department.Name
	}
	return a
}

func postView(p model.Post) PostView {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Name)
	}
	return PostView{
		ID:           p.ID,
		Content:      p.Content,
		Type:         p.Type,
		AuthorID:     p.AuthorID,
		CompanyID:    p.CompanyID,
		CreatedAt:    p.CreatedAt,
		Author:       authorSummary(p.Author),
		Tags:         tags,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
	}
}

func commentView(c model.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		Author:    authorSummary(c.Author),
	}
}

func roleView(r model.Role) RoleView {
	return RoleView{
		ID:              r.ID,
		Name:            r.Name,
		CompanyID:       r.CompanyID,
		AccessLevelID:   r.AccessLevelID,
		AccessLevelName: r.AccessLevel.Name,
		MemberCount:     r.MemberCount,
	}
}
