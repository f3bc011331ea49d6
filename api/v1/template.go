package v1

import (
	"net/http"

	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/middleware"
	"github.com/formbuilder-api/services"
	"github.com/gin-gonic/gin"
)

var templateService = services.NewTemplateService()

// ListPublicTemplates godoc
// @Summary List public templates with pagination and filtering
// @Description Free-text search across title, description, topic and tag names; sort=newest|popular
// @Tags templates
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Free-text filter"
// @Param sort query string false "newest or popular"
// @Router /templates/public [get]
func ListPublicTemplates(c *gin.Context) {
	filter := dto.TemplateFilter{ListQuery: parseListQuery(c)}

	result, err := templateService.ListPublic(filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListOwnTemplates returns the actor's templates, paginated
func ListOwnTemplates(c *gin.Context) {
	filter := dto.TemplateFilter{ListQuery: parseListQuery(c)}

	result, err := templateService.ListOwned(middleware.CurrentUser(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTemplate returns one template when the actor may read it
func GetTemplate(c *gin.Context) {
	template, err := templateService.GetByID(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": template})
}

// CreateTemplate creates a template with its full question set
func CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	template, err := templateService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": template})
}

// UpdateTemplate fully replaces metadata, questions and tags
func UpdateTemplate(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	template, err := templateService.Update(middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": template})
}

// DeleteTemplate removes one template with its cascade
func DeleteTemplate(c *gin.Context) {
	if err := templateService.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Template deleted"})
}

// BulkDeleteTemplates removes several templates in one call
func BulkDeleteTemplates(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if err := templateService.BulkDelete(middleware.CurrentUser(c), req.IDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Templates deleted"})
}

// AppendQuestion adds one question at the end of the template
func AppendQuestion(c *gin.Context) {
	var req dto.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	question, err := templateService.AppendQuestion(middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": question})
}

// GrantTemplateAccess adds a user to a private template's allow list
func GrantTemplateAccess(c *gin.Context) {
	var req dto.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if err := templateService.GrantAccess(middleware.CurrentUser(c), c.Param("id"), req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Access granted"})
}

// RevokeTemplateAccess removes a user from the allow list
func RevokeTemplateAccess(c *gin.Context) {
	if err := templateService.RevokeAccess(middleware.CurrentUser(c), c.Param("id"), c.Param("userId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Access revoked"})
}
