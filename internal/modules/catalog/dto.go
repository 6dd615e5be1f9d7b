package catalog

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" binding:"required"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

type CreateSkillRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	ShortDescription string   `json:"short_description"`
	CategoryID       int64    `json:"category_id" binding:"required"`
	Price            float64  `json:"price" binding:"required"`
	Duration         int      `json:"duration" binding:"required"`
	SessionType      string   `json:"session_type" binding:"required"`
	Location         string   `json:"location"`
	Tags             []string `json:"tags"`
	BarterAccepted   bool     `json:"barter_accepted"`
}

// UpdateSkillRequest patches the mutable fields. Nil means "leave as is".
type UpdateSkillRequest struct {
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	ShortDescription *string   `json:"short_description"`
	CategoryID       *int64    `json:"category_id"`
	Price            *float64  `json:"price"`
	Duration         *int      `json:"duration"`
	SessionType      *string   `json:"session_type"`
	Location         *string   `json:"location"`
	Tags             *[]string `json:"tags"`
	BarterAccepted   *bool     `json:"barter_accepted"`
	IsActive         *bool     `json:"is_active"`
}
