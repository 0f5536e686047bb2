package admin

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"sakado_back_end/internal/database"
	"sakado_back_end/internal/models"
)

var homepageKinds = map[string]bool{
	"banner":              true,
	"featured_products":   true,
	"featured_categories": true,
	"text":                true,
}

// GET /api/admin/homepage
func ListHomepageSections(c *gin.Context) {
	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	sections := []models.HomepageSection{}
	var s models.HomepageSection
	iter := session.Query("SELECT section_id, kind, title, payload, position, is_active, updated_at FROM homepage_sections").Iter()
	for iter.Scan(&s.ID, &s.Kind, &s.Title, &s.Payload, &s.Position, &s.IsActive, &s.UpdatedAt) {
		sections = append(sections, s)
		s = models.HomepageSection{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture sections"})
		return
	}

	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Position < sections[j].Position })
	c.JSON(http.StatusOK, gin.H{"sections": sections, "count": len(sections)})
}

// POST /api/admin/homepage
func CreateHomepageSection(c *gin.Context) {
	var input struct {
		Kind     string `json:"kind" binding:"required"`
		Title    string `json:"title"`
		Payload  string `json:"payload"`
		Position int    `json:"position"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if !homepageKinds[input.Kind] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de section inconnu: " + input.Kind})
		return
	}

	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	section := models.HomepageSection{
		ID:        gocql.TimeUUID(),
		Kind:      input.Kind,
		Title:     input.Title,
		Payload:   input.Payload,
		Position:  input.Position,
		IsActive:  true,
		UpdatedAt: time.Now(),
	}

	err = session.Query(`INSERT INTO homepage_sections (section_id, kind, title, payload, position, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		section.ID, section.Kind, section.Title, section.Payload, section.Position, section.IsActive, section.UpdatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création section"})
		return
	}

	c.JSON(http.StatusCreated, section)
}

// PUT /api/admin/homepage/:id
func UpdateHomepageSection(c *gin.Context) {
	sid, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID section invalide"})
		return
	}

	var input struct {
		Title    *string `json:"title"`
		Payload  *string `json:"payload"`
		Position *int    `json:"position"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var s models.HomepageSection
	err = session.Query("SELECT section_id, kind, title, payload, position, is_active, updated_at FROM homepage_sections WHERE section_id = ?",
		sid).Scan(&s.ID, &s.Kind, &s.Title, &s.Payload, &s.Position, &s.IsActive, &s.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section introuvable"})
		return
	}

	if input.Title != nil {
		s.Title = *input.Title
	}
	if input.Payload != nil {
		s.Payload = *input.Payload
	}
	if input.Position != nil {
		s.Position = *input.Position
	}
	if input.IsActive != nil {
		s.IsActive = *input.IsActive
	}
	s.UpdatedAt = time.Now()

	err = session.Query(`UPDATE homepage_sections SET title = ?, payload = ?, position = ?, is_active = ?, updated_at = ?
		WHERE section_id = ?`,
		s.Title, s.Payload, s.Position, s.IsActive, s.UpdatedAt, sid).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour section"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// DELETE /api/admin/homepage/:id
func DeleteHomepageSection(c *gin.Context) {
	sid, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID section invalide"})
		return
	}

	session, err := database.GetSellersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM homepage_sections WHERE section_id = ?", sid).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression section"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section supprimée"})
}
