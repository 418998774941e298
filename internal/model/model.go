// Package model contains GORM model definitions shared across packages.
// All models are driver-agnostic: they work with both PostgreSQL and SQLite.
// Table and column names follow GORM's default naming and must stay in sync
// with the postgres migrations in internal/db/migrations.
package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Company is a tenant: the unit of data isolation.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	Departments []Department `json:"-"`
	Roles       []Role       `json:"-"`
	Users       []User       `json:"-"`
	Posts       []Post       `json:"-"`
	Tags        []Tag        `json:"-"`
}

// Department groups users inside a company.
type Department struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:text;not null;uniqueIndex:idx_departments_company_name" json:"name"`
	CompanyID uint   `gorm:"not null;uniqueIndex:idx_departments_company_name" json:"companyId"`
}

// Permission is a system-wide action that an access level can grant.
type Permission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Action      string `gorm:"type:text;not null;uniqueIndex" json:"action"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
}

// AccessLevel is a named bundle of permissions shared across tenants.
type AccessLevel struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	Permissions []Permission `gorm:"many2many:access_level_permissions" json:"-"`
}

// Role assigns one access level to users of a single company.
type Role struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Name          string      `gorm:"type:text;not null;uniqueIndex:idx_roles_company_name" json:"name"`
	CompanyID     uint        `gorm:"not null;uniqueIndex:idx_roles_company_name" json:"companyId"`
	AccessLevelID uint        `gorm:"not null;index" json:"accessLevelId"`
	AccessLevel   AccessLevel `json:"-"`
	Users         []User      `json:"-"`

	// MemberCount is computed at query time.
	MemberCount int64 `gorm:"->;-:migration" json:"-"`
}

// User is an employee of a company. PasswordHash is never serialised, so a
// User value is always a safe projection when rendered.
type User struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"type:text;not null" json:"name"`
	Email          string      `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash   string      `gorm:"type:text;not null" json:"-"`
	AvatarInitials string      `gorm:"type:text;not null;default:''" json:"avatarInitials"`
	CompanyID      uint        `gorm:"not null;index;<-:create" json:"companyId"`
	RoleID         *uint       `gorm:"index" json:"roleId"`
	Role           *Role       `json:"-"`
	DepartmentID   *uint       `gorm:"index" json:"departmentId"`
	Department     *Department `json:"-"`
	CreatedAt      time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updatedAt"`

	// NameKey and EmailKey hold Unicode lower-cased copies for search;
	// sqlite's LOWER only folds ASCII.
	NameKey  string `gorm:"type:text;not null;default:''" json:"-"`
	EmailKey string `gorm:"type:text;not null;default:''" json:"-"`

	Posts    []Post     `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment  `gorm:"foreignKey:AuthorID" json:"-"`
	Likes    []PostLike `json:"-"`
}

// BeforeCreate fills the search keys from Name and Email.
func (u *User) BeforeCreate(*gorm.DB) error {
	u.NameKey = strings.ToLower(u.Name)
	u.EmailKey = strings.ToLower(u.Email)
	return nil
}

// Post is a status update published inside a company.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"type:text;not null;default:''" json:"type"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	CompanyID uint      `gorm:"not null;index:idx_posts_company_created" json:"companyId"`
	CreatedAt time.Time `gorm:"not null;index:idx_posts_company_created" json:"createdAt"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"-"`

	Likes    []PostLike `json:"-"`
	Comments []Comment  `json:"-"`

	// LikeCount and CommentCount are computed at query time.
	LikeCount    int64 `gorm:"->;-:migration" json:"-"`
	CommentCount int64 `gorm:"->;-:migration" json:"-"`
}

// PostLike records that a user liked a post. The composite primary key
// allows at most one like per (user, post).
type PostLike struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// Comment is a reply to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// Tag labels posts; names are unique per company.
type Tag struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:text;not null;uniqueIndex:idx_tags_company_name" json:"name"`
	CompanyID uint   `gorm:"not null;uniqueIndex:idx_tags_company_name" json:"companyId"`
}

// RefreshToken is the GORM model for the refresh_tokens table.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	TokenHash string    `gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// All lists every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Company{},
		&Department{},
		&Permission{},
		&AccessLevel{},
		&Role{},
		&User{},
		&Post{},
		&PostLike{},
		&Comment{},
		&Tag{},
		&RefreshToken{},
	}
}

// Initials derives avatar initials from a display name: the first letter of
// the first and last words, upper-cased. "ana maria souza" -> "AS".
func Initials(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '.'
	})
	if len(words) == 0 {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(words[0])
	out := string(unicode.ToUpper(first))
	if len(words) > 1 {
		last, _ := utf8.DecodeRuneInString(words[len(words)-1])
		out += string(unicode.ToUpper(last))
	}
	return out
}
