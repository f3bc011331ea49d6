package v1

import (
	"net/http"
	"strconv"

	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/middleware"
	"github.com/formbuilder-api/services"
	"github.com/gin-gonic/gin"
)

var (
	likeService    = services.NewLikeService()
	commentService = services.NewCommentService()
	tagService     = services.NewTagService()
)

// ToggleLike flips the actor's like on a template and returns {liked,count}
func ToggleLike(c *gin.Context) {
	result, err := likeService.Toggle(middleware.CurrentUser(c), c.Param("templateId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLikeCount returns a template's like count
func GetLikeCount(c *gin.Context) {
	count, err := likeService.Count(c.Param("templateId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetLikeStatus reports whether the actor currently likes the template
func GetLikeStatus(c *gin.Context) {
	liked, err := likeService.Status(middleware.CurrentUser(c), c.Param("templateId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ListComments returns a template's comments, newest first. Public read.
func ListComments(c *gin.Context) {
	comments, err := commentService.ListByTemplate(c.Param("templateId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": comments})
}

// CreateComment appends a comment and broadcasts it to subscribers
func CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	comment, err := commentService.Add(middleware.CurrentUser(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": comment})
}

// DeleteComment removes a comment; author or admin only
func DeleteComment(c *gin.Context) {
	if err := commentService.Delete(middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Comment deleted"})
}

// SearchTags returns tags matching the query, most used first. Public read.
func SearchTags(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}

	tags, err := tagService.Search(c.Query("search"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": tags})
}

// UpdateTag creates a tag or bumps its usage count
func UpdateTag(c *gin.Context) {
	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	tag, err := tagService.Update(req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": tag})
}
