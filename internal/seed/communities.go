package seed

import (
	"strings"

	"commons/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCommunity is a permanent system community with its starter categories.
type BuiltInCommunity struct {
	Name        string
	Description string
	Categories  []string
}

// BuiltInCommunities defines the communities every fresh deployment ships with.
var BuiltInCommunities = []BuiltInCommunity{
	{
		Name:        "The Commons",
		Description: "General discussion for the whole platform.",
		Categories:  []string{"General", "Introductions", "Feedback"},
	},
	{
		Name:        "Announcements",
		Description: "Platform news and updates.",
		Categories:  []string{"Releases", "Maintenance"},
	},
	{
		Name:        "Help Desk",
		Description: "Questions and troubleshooting.",
		Categories:  []string{"How Do I", "Bug Reports"},
	},
}

// Communities seeds the permanent built-in communities and their starter
// categories. Idempotent: re-running refreshes descriptions and fills in any
// missing categories without duplicating them.
func Communities(db *gorm.DB) error {
	for _, item := range BuiltInCommunities {
		err := db.Transaction(func(tx *gorm.DB) error {
			community := models.Community{
				Name:        item.Name,
				Description: item.Description,
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"description"}),
			}).Create(&community).Error; err != nil {
				return err
			}

			if community.ID == 0 {
				if err := tx.Where("name = ?", item.Name).First(&community).Error; err != nil {
					return err
				}
			}

			for _, categoryName := range item.Categories {
				category := models.Category{
					Name:        categoryName,
					NameKey:     strings.ToLower(categoryName),
					CommunityID: &community.ID,
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{
						{Name: "name_key"}, {Name: "community_id"},
					},
					DoNothing: true,
				}).Create(&category).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
