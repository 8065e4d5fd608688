package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failLogger fails the test on any error or fatal log.
type failLogger struct{ t *testing.T }

func (l failLogger) Debug(string, ...interface{}) {}
func (l failLogger) Info(string, ...interface{})  {}
func (l failLogger) Warn(string, ...interface{})  {}
func (l failLogger) Error(msg string, args ...interface{}) {
	l.t.Errorf("unexpected error log: %s %v", msg, args)
}
func (l failLogger) Fatal(msg string, args ...interface{}) {
	l.t.Fatalf("unexpected fatal log: %s %v", msg, args)
}

func TestParseEmailTemplates(t *testing.T) {
	conf := &Config{FrontendBaseURL: "http://taskademic.test", TestMode: true}
	ParseEmailTemplates(conf, failLogger{t})

	for _, name := range []string{"password_reset", "plan_changed"} {
		for _, ext := range []string{".txt", ".gohtml"} {
			_, ok := (&EmailMessage{TemplateName: name}).getTemplate(ext)
			assert.True(t, ok, "template %s%s not parsed", name, ext)
		}
	}

	type planChanged struct {
		Name           string
		Plan           string
		Premium        bool
		MaxCourses     string
		MaxActiveTasks string
	}
	tests := []struct {
		name     string
		msg      EmailMessage
		contains []string
	}{
		{
			name: "password reset",
			msg: EmailMessage{
				TemplateName: "password_reset",
				TemplateData: struct{ Name, UID, Token string }{Name: "Hero", UID: "dWlk", Token: "t0k3n"},
			},
			contains: []string{"Hi Hero", "http://taskademic.test/password-reset/dWlk/t0k3n", "The Taskademic team"},
		},
		{
			name: "upgraded to premium",
			msg: EmailMessage{
				TemplateName: "plan_changed",
				TemplateData: planChanged{Name: "Hero", Plan: "premium", Premium: true, MaxCourses: "unlimited", MaxActiveTasks: "unlimited"},
			},
			contains: []string{"premium", "are unlocked", "http://taskademic.test/settings/plan"},
		},
		{
			name: "downgraded to free",
			msg: EmailMessage{
				TemplateName: "plan_changed",
				TemplateData: planChanged{Name: "Hero", Plan: "free", MaxCourses: "5", MaxActiveTasks: "50"},
			},
			contains: []string{"Premium features are locked", "up to 5 courses and 50 active tasks", "Nothing you created was deleted"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.msg
			require.NoError(t, msg.Render())
			require.True(t, msg.HasContent())
			for _, s := range tt.contains {
				assert.Contains(t, msg.TextContent, s)
				assert.Contains(t, msg.HTMLContent, s)
			}
		})
	}

	t.Run("unknown template", func(t *testing.T) {
		msg := EmailMessage{TemplateName: "lol"}
		assert.EqualError(t, msg.Render(), fmt.Sprintf("text template %q not found", "lol"))
	})
}
