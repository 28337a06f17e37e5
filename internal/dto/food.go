package dto

import "FOODLENS_BACK-END/internal/models"

// AnalyzeFoodResponse represents a successful food analysis
type AnalyzeFoodResponse struct {
	Success bool                       `json:"success"`
	Data    *models.FoodAnalysisResult `json:"data"`
}
