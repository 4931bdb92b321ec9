// AngelaMos | 2026
// dto.go

package catalog

import (
	"time"
)

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ToolResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CategoryID  int64     `json:"category_id"`
	Description string    `json:"description"`
	RoutePath   string    `json:"route_path"`
	IsPremium   bool      `json:"is_premium"`
	IsActive    bool      `json:"is_active"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryWithTools struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Tools []ToolResponse `json:"tools"`
}

type ToolDetailsResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ToolStatusResponse struct {
	ID        int64 `json:"id"`
	IsActive  bool  `json:"is_active"`
	IsPremium bool  `json:"is_premium"`
}

type AddToolRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"max=2000"`
	RoutePath   string `json:"route_path"  validate:"required,max=200,routepath"`
	IsPremium   bool   `json:"is_premium"`
	IsActive    *bool  `json:"is_active"`
	Icon        string `json:"icon"        validate:"max=100"`
}

func ToCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}

func ToToolResponse(t *Tool) ToolResponse {
	return ToolResponse{
		ID:          t.ID,
		Name:        t.Name,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		RoutePath:   t.RoutePath,
		IsPremium:   t.IsPremium,
		IsActive:    t.IsActive,
		Icon:        t.Icon,
		CreatedAt:   t.CreatedAt,
	}
}

func ToToolResponseList(tools []Tool) []ToolResponse {
	responses := make([]ToolResponse, 0, len(tools))
	for i := range tools {
		responses = append(responses, ToToolResponse(&tools[i]))
	}
	return responses
}

// GroupByCategory keeps category order and gives every category a tools
// array, empty when nothing belongs to it.
func GroupByCategory(categories []Category, tools []Tool) []CategoryWithTools {
	idx := make(map[int64]int, len(categories))
	out := make([]CategoryWithTools, 0, len(categories))
	for _, c := range categories {
		idx[c.ID] = len(out)
		out = append(out, CategoryWithTools{
			ID:    c.ID,
			Name:  c.Name,
			Tools: []ToolResponse{},
		})
	}

	for i := range tools {
		pos, ok := idx[tools[i].CategoryID]
		if !ok {
			continue
		}
		out[pos].Tools = append(out[pos].Tools, ToToolResponse(&tools[i]))
	}
	return out
}
