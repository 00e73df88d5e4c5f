package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"gopkg.in/gomail.v2"

	"stayBack/internal/models"
	"stayBack/internal/repositories"
)

const notifyTimeout = 10 * time.Second

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NotificationService delivers the reservation mailer templates over SMTP and
// mirrors them as FCM pushes for users with a registered device token. All
// deliveries are best-effort: failures are logged and never returned.
type NotificationService struct {
	UserRepo *repositories.UserRepository
	SMTP     SMTPConfig
	FCM      *messaging.Client
	ErrorLog *log.Logger
}

type notificationTemplate struct {
	subject string
	body    string
}

var reservationTemplates = map[models.NotificationKind]notificationTemplate{
	models.NotificationReservationRequested: {
		subject: "You have a new reservation request",
		body:    "A guest requested to stay at your property from %s to %s.",
	},
	models.NotificationReservationAccepted: {
		subject: "Your reservation request was accepted",
		body:    "Your stay from %s to %s was accepted by the owner.",
	},
	models.NotificationReservationRefused: {
		subject: "Your reservation request was refused",
		body:    "Your stay from %s to %s was refused by the owner.",
	},
	models.NotificationReservationCanceled: {
		subject: "A reservation request was canceled",
		body:    "The reservation from %s to %s was canceled by the guest.",
	},
}

// Notify resolves the recipient per transition kind and dispatches email and
// push asynchronously. It returns immediately so callers never wait on SMTP
// inside a request.
func (s *NotificationService) Notify(kind models.NotificationKind, res models.Reservation) {
	go s.deliver(kind, res)
}

func (s *NotificationService) deliver(kind models.NotificationKind, res models.Reservation) {
	tmpl, ok := reservationTemplates[kind]
	if !ok {
		s.ErrorLog.Printf("notification: unknown kind %q", kind)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	recipient, err := s.UserRepo.GetUserByID(ctx, kind.Recipient(res))
	if err != nil {
		s.ErrorLog.Printf("notification %s: resolve recipient: %v", kind, err)
		return
	}

	body := fmt.Sprintf(tmpl.body,
		res.CheckinDate.Format("2006-01-02"), res.CheckoutDate.Format("2006-01-02"))

	if err := s.sendEmail(recipient.Email, tmpl.subject, body); err != nil {
		s.ErrorLog.Printf("notification %s: email to %s: %v", kind, recipient.Email, err)
	}

	if s.FCM != nil && recipient.DeviceToken != nil && *recipient.DeviceToken != "" {
		if err := s.sendPush(ctx, *recipient.DeviceToken, tmpl.subject, body, res); err != nil {
			s.ErrorLog.Printf("notification %s: push to user %d: %v", kind, recipient.ID, err)
		}
	}
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.SMTP.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.SMTP.Host, s.SMTP.Port, s.SMTP.User, s.SMTP.Pass)
	return d.DialAndSend(m)
}

func (s *NotificationService) sendPush(ctx context.Context, token, title, body string, res models.Reservation) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"reservation_id": fmt.Sprintf("%d", res.ID),
			"property_id":    fmt.Sprintf("%d", res.PropertyID),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	_, err := s.FCM.Send(ctx, message)
	return err
}
