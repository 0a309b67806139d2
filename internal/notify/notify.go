// Package notify delivers advisory notifications.
//
// Notification delivery is best effort: failures are logged and
// swallowed, they never roll back or fail the operation that triggered
// the notification.
package notify

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sitewise/backend/internal/models"
)

var (
	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitewise_notifications_sent_total",
		Help: "Notifications created, by type.",
	}, []string{"type"})

	notificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitewise_notification_failures_total",
		Help: "Notifications that could not be created.",
	})
)

// A RecipientResolver resolves a role to the profiles that should be
// notified.
type RecipientResolver interface {
	Recipients(db *gorm.DB, role models.ProfileRole) ([]uuid.UUID, error)
}

// RoleResolver resolves recipients by role lookup.
//
// All profiles with the role are returned, so deployments with several
// owners are not silently truncated to a single recipient.
type RoleResolver struct{}

func (RoleResolver) Recipients(db *gorm.DB, role models.ProfileRole) ([]uuid.UUID, error) {
	var profiles []models.Profile
	err := db.Where(&models.Profile{Role: role}).Order("created_at ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.ID)
	}

	return ids, nil
}

// Notifier appends notifications for all recipients of a role.
type Notifier struct {
	Resolver RecipientResolver
}

// Default is the notifier used by the API handlers. Tests replace the
// resolver to verify recipient handling.
var Default = Notifier{Resolver: RoleResolver{}}

// Send creates one notification per resolved recipient.
//
// Errors are logged and discarded. Notification is advisory, not part
// of the consistency contract, so a failure here must never surface to
// the caller.
func (n Notifier) Send(db *gorm.DB, role models.ProfileRole, title, body, notificationType string, referenceID *uuid.UUID) {
	recipients, err := n.Resolver.Recipients(db, role)
	if err != nil {
		notificationFailures.Inc()
		log.Warn().Err(err).Str("role", string(role)).Msg("could not resolve notification recipients")
		return
	}

	for _, recipient := range recipients {
		notification := models.Notification{
			UserID:      recipient,
			Title:       title,
			Body:        body,
			Type:        notificationType,
			ReferenceID: referenceID,
		}

		err = db.Create(&notification).Error
		if err != nil {
			notificationFailures.Inc()
			log.Warn().Err(err).Str("user", recipient.String()).Msg("could not create notification")
			continue
		}

		notificationsSent.WithLabelValues(notificationType).Inc()
	}
}
