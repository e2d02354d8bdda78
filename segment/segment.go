package segment

import (
	"log/slog"
	"os"

	"github.com/fundarhq/fundar/backend/models"
	"github.com/segmentio/analytics-go/v3"
)

var client analytics.Client = nil

func getClient() analytics.Client {
	segmentApiKey := os.Getenv("SEGMENT_API_KEY")
	if segmentApiKey == "" {
		slog.Debug("Not initializing segment because SEGMENT_API_KEY is missing")
		return nil
	}
	if client == nil {
		client = analytics.New(segmentApiKey)
	}
	return client
}

func CloseClient() {
	if client == nil {
		return
	}
	client.Close()
}

func IdentifyUser(user *models.User) {
	getClient()
	if client == nil {
		return
	}
	slog.Debug("Identifying user", "userId", user.ID)
	client.Enqueue(analytics.Identify{
		UserId: user.ID.String(),
		Traits: analytics.NewTraits().
			SetName(user.FullName()).
			SetEmail(user.Email).
			Set("role", string(user.Role)).
			Set("provider", user.Provider),
	})
}

func track(userId string, event string, props map[string]string) {
	getClient()
	if client == nil {
		return
	}
	properties := analytics.NewProperties()
	for k, v := range props {
		properties.Set(k, v)
	}
	err := client.Enqueue(analytics.Track{
		UserId:     userId,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		slog.Warn("failed to enqueue segment event", "event", event, "error", err)
	}
}

func TrackSignUp(user *models.User) {
	track(user.ID.String(), "user_signed_up", map[string]string{
		"provider": user.Provider,
	})
}

func TrackSignIn(user *models.User) {
	track(user.ID.String(), "user_signed_in", map[string]string{
		"provider": user.Provider,
	})
}

func TrackDonation(donation *models.Donation) {
	track(donation.UserID.String(), "donation_created", map[string]string{
		"projectId":     donation.ProjectID.String(),
		"paymentMethod": donation.PaymentMethod,
	})
}
