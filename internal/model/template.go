package model

// ScheduleTemplate is a reusable block layout. Across the whole collection
// at most one template carries IsDefault; the template store owns that
// invariant.
type ScheduleTemplate struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Blocks    []TimeBlock `json:"blocks"`
	IsDefault bool        `json:"isDefault"`
}

// DefaultTemplates seeds the collection with a single default day layout.
func DefaultTemplates() []ScheduleTemplate {
	return []ScheduleTemplate{
		{
			ID:        "default",
			Name:      "Default schedule",
			IsDefault: true,
			Blocks: []TimeBlock{
				{ID: "1", StartTime: "07:00", EndTime: "08:00", Label: "Wake up & wash", Category: "routine"},
				{ID: "2", StartTime: "08:00", EndTime: "09:00", Label: "Breakfast", Category: "meal"},
				{ID: "3", StartTime: "09:00", EndTime: "12:00", Label: "Study / work", Category: "work"},
				{ID: "4", StartTime: "12:00", EndTime: "13:00", Label: "Lunch", Category: "meal"},
				{ID: "5", StartTime: "13:00", EndTime: "14:00", Label: "Nap", Category: "rest"},
				{ID: "6", StartTime: "14:00", EndTime: "18:00", Label: "Study / work", Category: "work"},
				{ID: "7", StartTime: "18:00", EndTime: "19:00", Label: "Dinner", Category: "meal"},
				{ID: "8", StartTime: "19:00", EndTime: "21:00", Label: "Free time", Category: "free"},
				{ID: "9", StartTime: "21:00", EndTime: "22:00", Label: "Wind down", Category: "routine"},
				{ID: "10", StartTime: "22:00", EndTime: "23:00", Label: "Sleep", Category: "sleep"},
			},
		},
	}
}
