// controllers/publication.go
package controllers

import (
	"net/http"
	"time"

	"journal-editorial-api/config"
	"journal-editorial-api/models"
	"journal-editorial-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ===================== ISSUES =====================

type CreateIssueRequest struct {
	Volume int     `json:"volume" binding:"required,min=1"`
	Number int     `json:"number" binding:"required,min=1"`
	Year   int     `json:"year" binding:"required"`
	Title  *string `json:"title"`
}

// CreateIssue creates a draft issue; duplicate (volume, number) pairs are
// rejected with a conflict.
func CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	issue, err := services.CreateIssue(config.DB, actor, services.CreateIssueInput{
		Volume: req.Volume,
		Number: req.Number,
		Year:   req.Year,
		Title:  req.Title,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"issue":   issue,
	})
}

// GetPublishedIssues is the public archive listing.
func GetPublishedIssues(c *gin.Context) {
	var issues []models.Issue
	if err := config.DB.Where("is_published = ?", true).
		Order("volume DESC, number DESC").
		Find(&issues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issues":  issues,
	})
}

// GetAllIssues lists every issue, drafts included, for the editorial side.
func GetAllIssues(c *gin.Context) {
	var issues []models.Issue
	if err := config.DB.Preload("Submissions").
		Order("volume DESC, number DESC").
		Find(&issues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issues":  issues,
	})
}

// GetIssue returns a published issue and its published articles. Drafts are
// invisible here; the editorial listing serves those.
func GetIssue(c *gin.Context) {
	issueID := c.Param("id")

	var issue models.Issue
	if err := config.DB.
		Preload("Submissions", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.StatusPublished).Order("published_at ASC")
		}).
		Preload("Submissions.Author").
		Where("issue_id = ? AND is_published = ?", issueID, true).
		First(&issue).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issue":   issue,
	})
}

// PublishIssue flips the issue's published flag. Irreversible.
func PublishIssue(c *gin.Context) {
	issueID := c.Param("id")
	actor := actorFromContext(c)

	issue, err := services.PublishIssue(config.DB, actor, issueID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issue":   issue,
	})
}

// ===================== ARTICLE PUBLICATION =====================

type PublishArticleRequest struct {
	IssueID string `json:"issue_id" binding:"required"`
}

// PublishArticle attaches an accepted submission to an issue and publishes it.
func PublishArticle(c *gin.Context) {
	submissionID := c.Param("id")

	var req PublishArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	submission, err := services.PublishArticle(config.DB, actor, submissionID, req.IssueID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

type ManualPublishRequest struct {
	Title              string            `json:"title" binding:"required"`
	Abstract           string            `json:"abstract" binding:"required"`
	FileURL            string            `json:"file_url" binding:"required"`
	IssueID            *string           `json:"issue_id"`
	ManualIssueText    *string           `json:"manual_issue_text"`
	DisplayAuthor      string            `json:"display_author" binding:"required"`
	DisplayAffiliation *string           `json:"display_affiliation"`
	OtherAuthors       []models.CoAuthor `json:"other_authors"`
	ReferencesText     *string           `json:"references_text"`
	ManualKeywords     []string          `json:"manual_keywords"`
	PublishedAt        *time.Time        `json:"published_at"`
}

// ManualPublish is the back-catalog escape hatch: the article is born
// PUBLISHED with literal display authorship, bypassing review entirely.
func ManualPublish(c *gin.Context) {
	var req ManualPublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromContext(c)

	submission, err := services.ManualPublish(config.DB, actor, services.ManualPublishInput{
		Title:              req.Title,
		Abstract:           req.Abstract,
		FileURL:            req.FileURL,
		IssueID:            req.IssueID,
		ManualIssueText:    req.ManualIssueText,
		DisplayAuthor:      req.DisplayAuthor,
		DisplayAffiliation: req.DisplayAffiliation,
		OtherAuthors:       req.OtherAuthors,
		ReferencesText:     req.ReferencesText,
		ManualKeywords:     req.ManualKeywords,
		PublishedAt:        req.PublishedAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// ===================== PUBLIC ARCHIVE =====================

// GetArticle serves a single published article with its displayed
// authorship resolved (linked user or manual override, never merged).
func GetArticle(c *gin.Context) {
	submissionID := c.Param("id")

	var submission models.Submission
	if err := config.DB.Preload("Author").Preload("Issue").
		Where("submission_id = ? AND status = ?", submissionID, models.StatusPublished).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": gin.H{
			"submission_id":     submission.SubmissionID,
			"title":             submission.Title,
			"abstract":          submission.Abstract,
			"keywords":          submission.Keywords,
			"manual_keywords":   submission.ManualKeywords,
			"file_url":          submission.FileURL,
			"author":            submission.DisplayedAuthor(),
			"affiliation":       submission.DisplayedAffiliation(),
			"other_authors":     submission.OtherAuthors,
			"references_text":   submission.ReferencesText,
			"issue":             submission.Issue,
			"manual_issue_text": submission.ManualIssueText,
			"published_at":      submission.PublishedAt,
		},
	})
}

// SearchArticles searches published articles by title, abstract or keywords.
func SearchArticles(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "articles": []models.Submission{}, "total": 0})
		return
	}

	pattern := "%" + q + "%"
	var articles []models.Submission
	if err := config.DB.Preload("Author").Preload("Issue").
		Where("status = ?", models.StatusPublished).
		Where("title LIKE ? OR abstract LIKE ? OR keywords LIKE ?", pattern, pattern, pattern).
		Order("published_at DESC").
		Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"articles": articles,
		"total":    len(articles),
	})
}
