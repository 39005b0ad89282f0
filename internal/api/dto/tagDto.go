package dto

import "epicode/internal/api/models"

type TagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

type TagView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func FromModelToTagView(tag *models.Tag) TagView {
	return TagView{ID: tag.ID, Name: tag.Name}
}
