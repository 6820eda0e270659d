package models

import "time"

type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

type Method string

const (
	MethodSMS      Method = "sms"
	MethodWhatsApp Method = "whatsapp"
	MethodBoth     Method = "both"
)

func (m Method) Valid() bool {
	switch m {
	case MethodSMS, MethodWhatsApp, MethodBoth:
		return true
	}
	return false
}

// UsesWhatsApp reports whether reminders go out over WhatsApp.
func (m Method) UsesWhatsApp() bool { return m == MethodWhatsApp || m == MethodBoth }

// UsesSMS reports whether reminders go out over SMS.
func (m Method) UsesSMS() bool { return m == MethodSMS || m == MethodBoth }

type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"` // HH:MM
	Frequency   Frequency `json:"frequency"`
	Method      Method    `json:"method"`
	IsActive    bool      `json:"isActive"`
	NextDue     time.Time `json:"nextDue"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
}

func (r Reminder) GetID() string { return r.ID }

// ReminderForm is what the add/edit form submits.
// DefaultPhonePrefix 表单里电话号码的初始值
const DefaultPhonePrefix = "+91"

type ReminderForm struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"`
	Frequency   Frequency `json:"frequency"`
	Method      Method    `json:"method"`
	PhoneNumber string    `json:"phoneNumber"`
}

type ReminderStats struct {
	Active   int `json:"active"`
	Daily    int `json:"daily"`
	WhatsApp int `json:"whatsapp"`
}

func SeedReminders(now time.Time) []Reminder {
	return []Reminder{
		{
			ID:          "1",
			Title:       "Take Blood Pressure Medication",
			Description: "Morning dose of Amlodipine 5mg",
			Time:        "08:00",
			Frequency:   FrequencyDaily,
			Method:      MethodBoth,
			IsActive:    true,
			NextDue:     now.Add(time.Hour),
		},
		{
			ID:          "2",
			Title:       "Blood Sugar Check",
			Description: "Monitor glucose levels after breakfast",
			Time:        "09:30",
			Frequency:   FrequencyDaily,
			Method:      MethodSMS,
			IsActive:    true,
			NextDue:     now.Add(2 * time.Hour),
		},
		{
			ID:          "3",
			Title:       "Doctor Appointment",
			Description: "Cardiology checkup with Dr. Sharma",
			Time:        "14:00",
			Frequency:   FrequencyOnce,
			Method:      MethodWhatsApp,
			IsActive:    true,
			NextDue:     now.Add(7 * 24 * time.Hour),
		},
	}
}
