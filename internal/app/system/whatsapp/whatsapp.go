// Package whatsapp builds wa.me reminder links. Links are constructed
// and handed to the browser, never fetched server-side.
package whatsapp

import (
	"net/url"
	"strings"
)

// NamePlaceholder is replaced with the recipient's display name when a
// template is rendered.
const NamePlaceholder = "###"

// Template is one canned reminder message.
type Template struct {
	ID    string
	Title string
	Text  string
}

// ReminderTemplates are the stock delinquency reminders, in escalation
// order.
var ReminderTemplates = []Template{
	{
		ID:    "gentle",
		Title: "溫馨提醒 (Gentle)",
		Text:  "親愛的小組長 ###，主內平安！提醒您請盡快匯報兩週內的開組人數。感謝您的勞苦！",
	},
	{
		ID:    "urgent",
		Title: "正式催報 (Official)",
		Text:  "小組長 ### 您好，系統顯示您的小組報表已逾期，請點擊連結補回資料以利行政統計。",
	},
	{
		ID:    "support",
		Title: "協助引導 (Support)",
		Text:  "### 您好，如果您在提交報表時遇到困難，隨時可以聯繫我。請抽空點選連結回報本週人數。",
	},
}

// TemplateByID returns the template and a found flag.
func TemplateByID(id string) (Template, bool) {
	for _, t := range ReminderTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// RenderMessage substitutes the recipient's name and appends the app
// URL so the leader can tap straight through to the report form.
func RenderMessage(templateText, displayName, appURL string) string {
	msg := strings.ReplaceAll(templateText, NamePlaceholder, displayName)
	if appURL != "" {
		msg += "\n\nURL: " + appURL
	}
	return msg
}

// Link builds the wa.me URL for a phone number and a rendered message.
// The number is reduced to digits; a leading country code is not
// doubled when the stored number already carries it.
func Link(countryCode, phone, message string) string {
	digits := digitsOnly(phone)
	if !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}
	// QueryEscape uses '+' for spaces, which WhatsApp renders literally.
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
