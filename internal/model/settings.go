package model

// VacationSettings frames the countdown math: the vacation runs from
// StartDate through EndDate inclusive, as YYYY-MM-DD strings.
type VacationSettings struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ExamCountdown struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

type HomeworkItem struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	TotalPages     int    `json:"totalPages"`
	CompletedPages int    `json:"completedPages"`
	Unit           string `json:"unit"`
}

type Subject struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Color    string         `json:"color"`
	Homework []HomeworkItem `json:"homework"`
}

// AppSettings is one global document.
type AppSettings struct {
	Vacation VacationSettings `json:"vacation"`
	Exams    []ExamCountdown  `json:"exams"`
	Subjects []Subject        `json:"subjects"`
}

// DefaultSettings seeds the settings document on first read: a winter-break
// vacation window, one exam, and six subjects with a starter homework item
// each.
func DefaultSettings() AppSettings {
	return AppSettings{
		Vacation: VacationSettings{
			Name:      "Winter break",
			StartDate: "2026-01-15",
			EndDate:   "2026-02-15",
		},
		Exams: []ExamCountdown{
			{ID: "exam-1", Name: "Placement exam", Date: "2026-02-17"},
		},
		Subjects: []Subject{
			{ID: "math", Name: "Math", Color: "#3b82f6", Homework: []HomeworkItem{
				{ID: "math-1", Title: "Holiday workbook", TotalPages: 60, CompletedPages: 0, Unit: "pages"},
			}},
			{ID: "chinese", Name: "Chinese", Color: "#ef4444", Homework: []HomeworkItem{
				{ID: "chinese-1", Title: "Reading comprehension", TotalPages: 30, CompletedPages: 0, Unit: "essays"},
			}},
			{ID: "english", Name: "English", Color: "#22c55e", Homework: []HomeworkItem{
				{ID: "english-1", Title: "Vocabulary book", TotalPages: 500, CompletedPages: 0, Unit: "words"},
			}},
			{ID: "physics", Name: "Physics", Color: "#f59e0b", Homework: []HomeworkItem{
				{ID: "physics-1", Title: "Exercise book", TotalPages: 40, CompletedPages: 0, Unit: "pages"},
			}},
			{ID: "chemistry", Name: "Chemistry", Color: "#8b5cf6", Homework: []HomeworkItem{
				{ID: "chemistry-1", Title: "Lab reports", TotalPages: 15, CompletedPages: 0, Unit: "reports"},
			}},
			{ID: "biology", Name: "Biology", Color: "#06b6d4", Homework: []HomeworkItem{
				{ID: "biology-1", Title: "Review notes", TotalPages: 25, CompletedPages: 0, Unit: "pages"},
			}},
		},
	}
}
