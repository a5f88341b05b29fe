package model

import "time"

// Application represents a locally installed program that can be launched.
//
// Favorite, UsageCount and LastUsed are user-owned: they must survive
// rescans of the installed applications (see the reconcile package).
type Application struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Path          string     `json:"path"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	Version       string     `json:"version"`
	Favorite      bool       `json:"favorite"`
	UsageCount    int        `json:"usageCount"`
	LastUsed      *time.Time `json:"lastUsed"` // nil = never launched
	IconURL       string     `json:"iconUrl"`
	LocalIconPath string     `json:"localIconPath"`
	InternetIcon  string     `json:"internetIcon"`
	IsManual      bool       `json:"isManual"`
}

// NewApplicationParams holds parameters for creating a new Application.
type NewApplicationParams struct {
	Name     string
	Path     string
	Category string
	IsManual bool
}

// NewApplication creates an Application with a generated UUID.
func NewApplication(params NewApplicationParams) Application {
	return Application{
		ID:       GenerateUUID(),
		Name:     params.Name,
		Path:     params.Path,
		Category: params.Category,
		IsManual: params.IsManual,
	}
}
