package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/expense-tracking-api/internal/constants"
	"github.com/yukikurage/expense-tracking-api/internal/models"
)

// RequireCategoryAccess checks that the category in the :id parameter
// belongs to a project the principal is a member of
func RequireCategoryAccess(authz ResourceAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, userID, ok := resourceIDs(c, "Invalid category ID")
		if !ok {
			return
		}

		category, err := authz.AuthorizeCategory(c.Request.Context(), userID, categoryID)
		if err != nil {
			denied(c, err, "Category not found")
			return
		}

		c.Set(constants.ContextKeyCategory, category)
		c.Next()
	}
}

// RequireEntryAccess checks that the entry in the :id parameter belongs to
// a project the principal is a member of
func RequireEntryAccess(authz ResourceAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		entryID, userID, ok := resourceIDs(c, "Invalid entry ID")
		if !ok {
			return
		}

		entry, err := authz.AuthorizeEntry(c.Request.Context(), userID, entryID)
		if err != nil {
			denied(c, err, "Entry not found")
			return
		}

		c.Set(constants.ContextKeyEntry, entry)
		c.Next()
	}
}

// GetCategory retrieves the category stored by RequireCategoryAccess
func GetCategory(c *gin.Context) (*models.Category, bool) {
	v, exists := c.Get(constants.ContextKeyCategory)
	if !exists {
		return nil, false
	}
	category, ok := v.(*models.Category)
	return category, ok
}

// GetEntry retrieves the entry stored by RequireEntryAccess
func GetEntry(c *gin.Context) (*models.Entry, bool) {
	v, exists := c.Get(constants.ContextKeyEntry)
	if !exists {
		return nil, false
	}
	entry, ok := v.(*models.Entry)
	return entry, ok
}
