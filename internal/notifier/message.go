package notifier

import (
	"strings"

	"github.com/amishk599/roomwatch/internal/model"
)

const (
	// MaxBodyChars caps the message body; Pushover rejects longer messages.
	MaxBodyChars = 1024

	maxListedRooms = 5

	vacancyTitle = "🏠 Room Vacancies Detected!"
	neutralTitle = "Room Watch Update"
	urlTitle     = "View Vacancies"
)

// BuildMessage formats report as a push notification linking to targetURL.
func BuildMessage(report model.Report, targetURL string) model.Message {
	msg := model.Message{URL: targetURL, URLTitle: urlTitle}

	if report.Mode == model.ModeFreeText {
		msg.Title = neutralTitle
		msg.Body = truncate(report.Text, MaxBodyChars)
		return msg
	}

	v := report.Vacancy
	if v == nil {
		v = &model.VacancyReport{}
	}

	var b strings.Builder
	priority := 0
	if v.HasVacancies {
		priority = 1
		msg.Title = vacancyTitle
		b.WriteString(v.Summary)
		b.WriteString("\n\n")
		if len(v.Rooms) > 0 {
			b.WriteString("Available rooms:\n")
			for i, r := range v.Rooms {
				if i == maxListedRooms {
					break
				}
				b.WriteString("- " + orDefault(r.Room, "N/A") + ": " + orDefault(r.Details, "No details") + "\n")
			}
		}
		if v.Notes != "" {
			b.WriteString("\n" + v.Notes)
		}
	} else {
		msg.Title = neutralTitle
		b.WriteString("No vacancies currently available.\n\n")
		b.WriteString(v.Summary)
	}

	msg.Body = truncate(b.String(), MaxBodyChars)
	msg.Priority = &priority
	return msg
}

// TestMessage returns a fixed message for verifying notifier credentials.
func TestMessage(targetURL string) model.Message {
	return model.Message{
		Title:    neutralTitle,
		Body:     "Test notification: roomwatch can reach this device.",
		URL:      targetURL,
		URLTitle: urlTitle,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
