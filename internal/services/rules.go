package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/constants"
	"github.com/yukikurage/expense-tracking-api/internal/models"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

const (
	maxTitleLength   = 255
	maxContentLength = 10000
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

// required prepends Required when the field must be submitted.
func required(mandatory bool, rules ...validation.Rule) []validation.Rule {
	if !mandatory {
		return rules
	}
	return append([]validation.Rule{validation.Required{}}, rules...)
}

var activeProject = validation.Exists{Table: "projects", ActiveOnly: true}

// projectRules validates project writes. Titles are unique among the
// principal's own live projects.
func projectRules(principalID uint64, creating bool) validation.RuleSet {
	return validation.RuleSet{
		"title":    required(creating, validation.Length{Min: 1, Max: maxTitleLength}, uniqueProjectName(principalID)),
		"currency": required(creating, validation.Format{Name: "currency", Tag: "iso4217"}),
	}
}

func uniqueProjectName(principalID uint64) validation.Custom {
	return validation.Custom{
		Name: "unique_project_name",
		Check: func(ctx context.Context, db *gorm.DB, value any, fields validation.Fields) (bool, error) {
			title, ok := value.(string)
			if !ok {
				return false, nil
			}

			q := db.Model(&models.Project{}).
				Joins("JOIN project_user ON project_user.project_id = projects.id").
				Where("project_user.user_id = ?", principalID).
				Where("projects.title = ? AND projects.status = ?", title, string(models.StatusActive))
			if id, ok := fields.Int64("id"); ok {
				q = q.Where("projects.id <> ?", id)
			}

			var count int64
			if err := q.Count(&count).Error; err != nil {
				return false, err
			}
			return count == 0, nil
		},
	}
}

// categoryRules validates category writes. fields always carry project_id,
// and id on update.
func categoryRules(creating bool) validation.RuleSet {
	return validation.RuleSet{
		"title": required(creating,
			validation.Length{Min: 1, Max: maxTitleLength},
			validation.Unique{
				Table:        "categories",
				Scope:        []validation.Scope{{Column: "project_id", Field: "project_id"}},
				ExcludeField: "id",
				ActiveOnly:   true,
			},
		),
		"color":      {validation.HexColor},
		"is_default": {validation.Boolean{}, oneDefaultCategory(creating)},
		"project_id": {validation.Required{}, activeProject},
	}
}

// oneDefaultCategory passes when the written category claims default, or
// when another live category of the project already holds it. On create an
// absent is_default counts as false.
func oneDefaultCategory(implicit bool) validation.Custom {
	return validation.Custom{
		Name:     "one_default_category",
		Implicit: implicit,
		Check: func(ctx context.Context, db *gorm.DB, _ any, fields validation.Fields) (bool, error) {
			if claims, _ := fields.Bool("is_default"); claims {
				return true, nil
			}

			projectID, ok := fields.Int64("project_id")
			if !ok {
				return false, nil
			}

			q := db.Model(&models.Category{}).
				Where("project_id = ? AND is_default = ? AND status = ?", projectID, true, string(models.StatusActive))
			if id, ok := fields.Int64("id"); ok {
				q = q.Where("id <> ?", id)
			}

			var count int64
			if err := q.Count(&count).Error; err != nil {
				return false, err
			}
			return count > 0, nil
		},
	}
}

// entryRules validates entry writes. The category must be live and belong
// to the entry's project.
func entryRules(creating bool) validation.RuleSet {
	return validation.RuleSet{
		"title":   required(creating, validation.Length{Min: 1, Max: maxTitleLength}),
		"price":   required(creating, validation.Integer{}, validation.MinValue{Min: 0}),
		"date":    required(creating, validation.Date{}),
		"content": {validation.Length{Max: maxContentLength}},
		"category_id": required(creating,
			validation.Integer{},
			validation.Exists{
				Table:      "categories",
				Scope:      []validation.Scope{{Column: "project_id", Field: "project_id"}},
				ActiveOnly: true,
			},
		),
		"project_id": {validation.Required{}, activeProject},
	}
}

func passwordRules(mandatory bool) []validation.Rule {
	return required(mandatory,
		validation.Length{Min: constants.MinPasswordLength, Max: maxPasswordLength},
		validation.Confirmed{Field: "password_confirmation"},
	)
}

func registrationRules() validation.RuleSet {
	return validation.RuleSet{
		"name":     {validation.Required{}, validation.Length{Min: 1, Max: maxTitleLength}},
		"email":    {validation.Required{}, validation.Format{Name: "email", Tag: "email"}, validation.Unique{Table: "users"}},
		"password": passwordRules(true),
	}
}

// userUpdateRules validates a self update. fields carry the user's id.
func userUpdateRules(current *models.User) validation.RuleSet {
	return validation.RuleSet{
		"name":         {validation.Length{Min: 1, Max: maxTitleLength}},
		"email":        {validation.Format{Name: "email", Tag: "email"}, validation.Unique{Table: "users", ExcludeField: "id"}},
		"password":     passwordRules(false),
		"password_old": {currentPassword(current)},
	}
}

// currentPassword requires the account's current password whenever a new
// one is submitted.
func currentPassword(user *models.User) validation.Custom {
	return validation.Custom{
		Name:     "password_old",
		Implicit: true,
		Check: func(_ context.Context, _ *gorm.DB, value any, fields validation.Fields) (bool, error) {
			if !fields.Has("password") {
				return true, nil
			}
			old, ok := value.(string)
			if !ok {
				return false, nil
			}
			return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(old)) == nil, nil
		},
	}
}
