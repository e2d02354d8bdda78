package services

import (
	"log/slog"

	"github.com/robfig/cron"
	"github.com/samber/lo"

	"github.com/fundarhq/fundar/backend/models"
)

// Mailer delivers transactional mail. Delivery itself is an external
// collaborator concern, the backend only hands messages off.
type Mailer interface {
	SendMail(to string, subject string, body string) error
}

// LogMailer logs outgoing mail instead of delivering it. Used when no mail
// provider is configured and in tests.
type LogMailer struct{}

func (LogMailer) SendMail(to string, subject string, body string) error {
	slog.Info("outgoing mail", "to", to, "subject", subject)
	return nil
}

// ProjectsNearGoal returns the active projects that have reached the given
// fraction of their funding goal.
func ProjectsNearGoal(db *models.Database, threshold float64) ([]models.Project, error) {
	projects, err := db.ListProjects()
	if err != nil {
		return nil, err
	}
	near := lo.Filter(projects, func(p models.Project, _ int) bool {
		return p.Status == models.ProjectActive && p.GoalAmount > 0 && p.CurrentAmount >= threshold*p.GoalAmount
	})
	return near, nil
}

// StartNotificationCron schedules the daily notification job at midnight.
func StartNotificationCron() *cron.Cron {
	c := cron.New()
	err := c.AddFunc("@midnight", func() {
		near, err := ProjectsNearGoal(models.DB, 0.9)
		if err != nil {
			slog.Error("daily notification cron failed", "error", err)
			return
		}
		slog.Info("daily notification cron executed", "projects_near_goal", len(near))
	})
	if err != nil {
		slog.Error("failed to schedule daily notification cron", "error", err)
		return nil
	}
	c.Start()
	return c
}
