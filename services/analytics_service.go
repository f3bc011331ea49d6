package services

import (
	"errors"
	"sort"
	"time"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/database"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/repositories"
	"gorm.io/gorm"
)

// AnalyticsService aggregates platform, template and user statistics
type AnalyticsService struct {
	userRepo     *repositories.UserRepository
	templateRepo *repositories.TemplateRepository
	formRepo     *repositories.FormRepository
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{
		userRepo:     repositories.NewUserRepository(),
		templateRepo: repositories.NewTemplateRepository(),
		formRepo:     repositories.NewFormRepository(),
	}
}

// PopularTemplate is one entry of the platform top list
type PopularTemplate struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FormCount int64  `json:"formCount"`
}

// DailyCount is one day of the submissions timeline
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PlatformStats is the admin dashboard aggregate
type PlatformStats struct {
	TotalUsers       int64             `json:"totalUsers"`
	TotalTemplates   int64             `json:"totalTemplates"`
	TotalForms       int64             `json:"totalForms"`
	ActiveUsers      int64             `json:"activeUsers"`
	ActivePercentage int               `json:"activePercentage"`
	PopularTemplates []PopularTemplate `json:"popularTemplates"`
	DailyForms       []DailyCount      `json:"dailyForms"`
}

// GetPlatformStats computes the admin dashboard numbers
func (s *AnalyticsService) GetPlatformStats(actor *models.User) (*PlatformStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	totalTemplates, err := s.templateRepo.Count()
	if err != nil {
		return nil, err
	}
	totalForms, err := s.formRepo.Count()
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.userRepo.CountActiveSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	var populars []PopularTemplate
	err = database.DB.Model(&models.Template{}).
		Select("templates.id, templates.title, COUNT(forms.id) AS form_count").
		Joins("LEFT JOIN forms ON forms.template_id = templates.id").
		Group("templates.id, templates.title").
		Order("form_count DESC").
		Limit(5).
		Scan(&populars).Error
	if err != nil {
		return nil, err
	}

	stamps, err := s.formRepo.CreatedSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	// Bucket submissions per day, oldest first, including empty days
	buckets := map[string]int{}
	now := time.Now()
	for i := 6; i >= 0; i-- {
		buckets[now.AddDate(0, 0, -i).Format("2006-01-02")] = 0
	}
	for _, ts := range stamps {
		key := ts.Format("2006-01-02")
		if _, ok := buckets[key]; ok {
			buckets[key]++
		}
	}
	daily := make([]DailyCount, 0, len(buckets))
	for date, count := range buckets {
		daily = append(daily, DailyCount{Date: date, Count: count})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	percentage := 0
	if totalUsers > 0 {
		percentage = int(activeUsers * 100 / totalUsers)
	}

	return &PlatformStats{
		TotalUsers:       totalUsers,
		TotalTemplates:   totalTemplates,
		TotalForms:       totalForms,
		ActiveUsers:      activeUsers,
		ActivePercentage: percentage,
		PopularTemplates: populars,
		DailyForms:       daily,
	}, nil
}

// NumberStats summarizes numeric answers
type NumberStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// OptionCount is one option's selection tally
type OptionCount struct {
	OptionID string `json:"optionId"`
	Count    int    `json:"count"`
}

// AnswerCount is one answer value's popularity tally
type AnswerCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// QuestionAnalytics carries per-question aggregates keyed by question type
type QuestionAnalytics struct {
	QuestionID    string              `json:"questionId"`
	QuestionTitle string              `json:"questionTitle"`
	Type          models.QuestionType `json:"type"`
	Total         int                 `json:"total"`
	Number        *NumberStats        `json:"number,omitempty"`
	Options       []OptionCount       `json:"options,omitempty"`
	Popular       []AnswerCount       `json:"popular,omitempty"`
}

// TemplateAnalytics is the per-template results aggregate
type TemplateAnalytics struct {
	FormCount int64               `json:"formCount"`
	Questions []QuestionAnalytics `json:"questions"`
}

// GetTemplateAnalytics aggregates answers per question for the template
// owner or an admin.
func (s *AnalyticsService) GetTemplateAnalytics(actor *models.User, templateID string) (*TemplateAnalytics, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := CanViewTemplateForms(actor, template); err != nil {
		return nil, err
	}

	formCount, err := s.formRepo.CountByTemplate(templateID)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	if err := database.DB.Where("template_id = ?", templateID).
		Order("display_order ASC").Find(&questions).Error; err != nil {
		return nil, err
	}

	result := &TemplateAnalytics{FormCount: formCount}
	for _, q := range questions {
		var answers []models.Answer
		if err := database.DB.Where("question_id = ?", q.ID).Find(&answers).Error; err != nil {
			return nil, err
		}

		qa := QuestionAnalytics{
			QuestionID:    q.ID,
			QuestionTitle: q.Title,
			Type:          q.Type,
		}

		switch q.Type {
		case models.QuestionNumber:
			stats := NumberStats{}
			n := 0
			for _, a := range answers {
				if a.Value.Number == nil {
					continue
				}
				v := *a.Value.Number
				if n == 0 {
					stats.Min, stats.Max = v, v
				} else {
					if v < stats.Min {
						stats.Min = v
					}
					if v > stats.Max {
						stats.Max = v
					}
				}
				stats.Average += v
				n++
			}
			if n > 0 {
				stats.Average /= float64(n)
			}
			qa.Total = n
			qa.Number = &stats

		case models.QuestionCheckbox:
			counts := map[string]int{}
			n := 0
			for _, a := range answers {
				if len(a.Value.Options) == 0 {
					continue
				}
				n++
				for _, opt := range a.Value.Options {
					counts[opt]++
				}
			}
			qa.Total = n
			qa.Options = sortedOptionCounts(counts)

		default:
			counts := map[string]int{}
			n := 0
			for _, a := range answers {
				if a.Value.IsEmpty() {
					continue
				}
				counts[a.Value.Display()]++
				n++
			}
			qa.Total = n
			qa.Popular = topAnswers(counts, 5)
		}

		result.Questions = append(result.Questions, qa)
	}

	return result, nil
}

func sortedOptionCounts(counts map[string]int) []OptionCount {
	out := make([]OptionCount, 0, len(counts))
	for id, c := range counts {
		out = append(out, OptionCount{OptionID: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].OptionID < out[j].OptionID
	})
	return out
}

func topAnswers(counts map[string]int, limit int) []AnswerCount {
	out := make([]AnswerCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, AnswerCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ActivityEntry is one point on a user's submission timeline
type ActivityEntry struct {
	Date     time.Time `json:"date"`
	Template string    `json:"template"`
}

// UserAnalytics is the admin per-user activity aggregate
type UserAnalytics struct {
	TotalForms       int             `json:"totalForms"`
	FormsByTemplate  map[string]int  `json:"formsByTemplate"`
	ActivityTimeline []ActivityEntry `json:"activityTimeline"`
}

// GetUserAnalytics reports a user's submission activity; admin only
func (s *AnalyticsService) GetUserAnalytics(actor *models.User, userID string) (*UserAnalytics, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	forms, err := s.formRepo.FindByAuthor(userID)
	if err != nil {
		return nil, err
	}

	result := &UserAnalytics{
		TotalForms:      len(forms),
		FormsByTemplate: map[string]int{},
	}
	for _, f := range forms {
		result.FormsByTemplate[f.Template.Title]++
		result.ActivityTimeline = append(result.ActivityTimeline, ActivityEntry{
			Date:     f.CreatedAt,
			Template: f.Template.Title,
		})
	}
	return result, nil
}
