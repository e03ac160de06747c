// Package seed provides helpers to create reference and demo data for the
// application database. The role catalog and built-in communities are safe
// for production bootstrap; the demo mesh is for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"commons/internal/models"
	"commons/internal/roles"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var reactionTypes = []string{"like", "love", "laugh", "insightful"}

// Seeder builds demo entities and persists them to the database.
type Seeder struct {
	db   *gorm.DB
	rng  *rand.Rand
	next int
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes every domain table, leaf tables first so foreign keys never
// dangle mid-run. The role catalog is kept.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"comment_reactions", "post_reactions", "comments", "posts",
		"categories", "memberships", "communities", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("✓ Cleared existing data")
	return nil
}

// SeedUsers creates n demo users with generated profiles.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Picture:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ Created %d users", len(users))
	return users, nil
}

// SeedCommunities creates n demo communities, each with a founder drawn from
// users and a handful of categories.
func (s *Seeder) SeedCommunities(users []*models.User, n int) ([]*models.Community, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to found communities with")
	}

	var founderRole, memberRole models.Role
	if err := s.db.Where("name = ?", models.RoleCommunityFounder).First(&founderRole).Error; err != nil {
		return nil, fmt.Errorf("role catalog not seeded: %w", err)
	}
	if err := s.db.Where("name = ?", models.RoleMember).First(&memberRole).Error; err != nil {
		return nil, fmt.Errorf("role catalog not seeded: %w", err)
	}

	communities := make([]*models.Community, 0, n)
	for i := 0; i < n; i++ {
		community := &models.Community{
			Name:        fmt.Sprintf("%s %s %d", gofakeit.HackerAdjective(), gofakeit.HackerNoun(), gofakeit.Number(10, 99)),
			Description: gofakeit.Sentence(12),
		}
		if err := s.db.Create(community).Error; err != nil {
			return nil, fmt.Errorf("create community: %w", err)
		}

		founder := users[s.rng.Intn(len(users))]
		if err := s.db.Create(&models.Membership{
			UserID:      founder.ID,
			CommunityID: community.ID,
			RoleID:      founderRole.ID,
		}).Error; err != nil {
			return nil, fmt.Errorf("enroll founder: %w", err)
		}

		// Enroll a random slice of the remaining users as plain members.
		for _, user := range users {
			if user.ID == founder.ID || s.rng.Intn(3) != 0 {
				continue
			}
			if err := s.db.Create(&models.Membership{
				UserID:      user.ID,
				CommunityID: community.ID,
				RoleID:      memberRole.ID,
			}).Error; err != nil {
				return nil, fmt.Errorf("enroll member: %w", err)
			}
		}

		for j := 0; j < 2+s.rng.Intn(3); j++ {
			name := fmt.Sprintf("%s %d", gofakeit.BuzzWord(), s.next)
			s.next++
			category := models.Category{
				Name:        name,
				NameKey:     strings.ToLower(name),
				CommunityID: &community.ID,
			}
			if err := s.db.Create(&category).Error; err != nil {
				return nil, fmt.Errorf("create category: %w", err)
			}
		}

		communities = append(communities, community)
	}
	log.Printf("✓ Created %d communities", len(communities))
	return communities, nil
}

// SeedForum fills the seeded communities with posts, comments, and reactions.
func (s *Seeder) SeedForum(users []*models.User, postCount int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to author posts")
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories to post into")
	}

	var posts, comments, reactions int
	for i := 0; i < postCount; i++ {
		author := users[s.rng.Intn(len(users))]
		category := categories[s.rng.Intn(len(categories))]
		post := models.Post{
			Title:      gofakeit.Sentence(5),
			Content:    gofakeit.Paragraph(1, 3, 5, "\n"),
			UserID:     &author.ID,
			CategoryID: category.ID,
			CreatedAt:  s.pastTimestamp(90),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts++

		for j := 0; j < s.rng.Intn(5); j++ {
			commenter := users[s.rng.Intn(len(users))]
			comment := models.Comment{
				Content:   gofakeit.Sentence(10),
				PostID:    post.ID,
				UserID:    &commenter.ID,
				CreatedAt: post.CreatedAt.Add(time.Duration(1+s.rng.Intn(72)) * time.Hour),
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			comments++
		}

		// At most one reaction per user per post, matching the unique pair
		// constraint.
		for _, user := range users {
			if s.rng.Intn(4) != 0 {
				continue
			}
			reaction := models.PostReaction{
				PostID:       post.ID,
				UserID:       user.ID,
				ReactionType: reactionTypes[s.rng.Intn(len(reactionTypes))],
			}
			if err := s.db.Create(&reaction).Error; err != nil {
				return fmt.Errorf("create reaction: %w", err)
			}
			reactions++
		}
	}

	log.Printf("✓ Created %d posts, %d comments, %d reactions", posts, comments, reactions)
	return nil
}

// pastTimestamp returns a time up to maxDays in the past with hour and
// minute jitter.
func (s *Seeder) pastTimestamp(maxDays int) time.Time {
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CatalogRoleNames returns the role names from the static catalog, for
// logging what a fresh deployment ships with.
func CatalogRoleNames() []string {
	names := make([]string, 0, len(roles.Catalog))
	for _, role := range roles.Catalog {
		names = append(names, role.Name)
	}
	return names
}
