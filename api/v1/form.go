package v1

import (
	"net/http"

	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/middleware"
	"github.com/formbuilder-api/services"
	"github.com/gin-gonic/gin"
)

var formService = services.NewFormService()

// ListOwnForms returns the actor's submissions
func ListOwnForms(c *gin.Context) {
	forms, err := formService.ListMine(middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": forms})
}

// GetForm returns one form with its answers
func GetForm(c *gin.Context) {
	form, err := formService.Get(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": form})
}

// CreateForm opens a draft form against a template
func CreateForm(c *gin.Context) {
	form, err := formService.Create(middleware.CurrentUser(c), c.Param("templateId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": form})
}

// UpdateForm upserts answers and optionally completes the form
func UpdateForm(c *gin.Context) {
	var req dto.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	form, err := formService.UpdateAnswers(middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": form})
}

// DeleteForm removes a form and its answers
func DeleteForm(c *gin.Context) {
	if err := formService.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Form deleted"})
}

// ListTemplateForms is the results view: all forms for a template, readable
// by the template owner or an admin
func ListTemplateForms(c *gin.Context) {
	forms, err := formService.ListByTemplate(middleware.CurrentUser(c), c.Param("templateId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": forms})
}
