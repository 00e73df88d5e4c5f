package models

// NotificationKind identifies which reservation transition fired a notification.
type NotificationKind string

const (
	NotificationReservationRequested NotificationKind = "reservation_requested"
	NotificationReservationAccepted  NotificationKind = "reservation_accepted"
	NotificationReservationRefused   NotificationKind = "reservation_refused"
	NotificationReservationCanceled  NotificationKind = "reservation_canceled"
)

// Recipient returns the user who should receive the notification: the
// property owner for requests and cancellations, the guest otherwise.
func (k NotificationKind) Recipient(res Reservation) int {
	switch k {
	case NotificationReservationRequested, NotificationReservationCanceled:
		return res.OwnerID
	default:
		return res.UserID
	}
}
