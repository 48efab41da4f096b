package models

import "regexp"

type AlertType string

const (
	AlertRescueNeeded   AlertType = "Rescue Needed"
	AlertEscalation     AlertType = "Escalation"
	AlertPaymentRequest AlertType = "Payment Request"
	AlertNoExit         AlertType = "No Exit 24h"
)

// AlertRecord is one line of the alerts JSONL sink. Immutable once written.
type AlertRecord struct {
	Group     string    `json:"group"`
	Time      string    `json:"time"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	AlertType AlertType `json:"alert_type"`
}

var senderRe = regexp.MustCompile(`\] (.*?):`)

// ExtractSender pulls the sender name out of a raw time field such as
// "[11:32, 27/8/2025] Ayush Tulshan:". Returns "Unknown" when absent.
func ExtractSender(timeField string) string {
	m := senderRe.FindStringSubmatch(timeField)
	if m == nil {
		return "Unknown"
	}
	return m[1]
}
