package dto

import (
	"studio/internal/domains/catalog/model"
	"studio/shared"
	gDto "studio/shared/dto"
)

type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes"`
	CleanupMinutes  int    `json:"cleanup_minutes"`
	TotalMinutes    int    `json:"total_minutes"`
	Price           string `json:"price"`
	Description     string `json:"description"`
	Active          bool   `json:"active"`
	gDto.Metadata
}

func (s *ServiceResponse) FromModel(model model.Service) {
	s.ID = model.ID
	s.Name = model.Name
	s.Category = model.Category
	s.DurationMinutes = model.DurationMinutes
	s.CleanupMinutes = model.CleanupMinutes
	s.TotalMinutes = model.DurationMinutes + model.CleanupMinutes
	s.Price = model.Price
	s.Description = model.Description
	s.Active = model.Active
	s.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.TotalPages(totalData, limit)

	g.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		g.Services[i].FromModel(mod)
	}
}
