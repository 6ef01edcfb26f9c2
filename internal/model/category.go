package model

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug" validate:"required,slug"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// CategoryPatch is a partial category update; nil fields are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Slug        *string `json:"slug" validate:"omitempty,slug"`
	IsActive    *bool   `json:"is_active"`
}

func (patch CategoryPatch) Apply(c *Category) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Slug != nil {
		c.Slug = *patch.Slug
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
}
