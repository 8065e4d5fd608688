package core

import (
	"strings"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newTestValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	InitValidators(validate, translator)
	return validate, translator
}

type testPayload struct {
	Username    string `json:"username" validate:"omitempty,alphanum_"`
	Title       string `json:"title" validate:"required,title"`
	Description string `json:"description" validate:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor6"`
	ExamDate    Date   `json:"exam_date" validate:"required"`
}

func TestInitValidators(t *testing.T) {
	validate, translator := newTestValidator()
	valid := testPayload{Username: "hero_01", Title: "Read chapter 3", Color: "#1A2b3C", ExamDate: Date{2025, 6, 2}}

	tests := []struct {
		name   string
		mutate func(p *testPayload)
		want   map[string]string
	}{
		{name: "valid", mutate: func(p *testPayload) {}},
		{
			name:   "username with space",
			mutate: func(p *testPayload) { p.Username = "he ro" },
			want:   map[string]string{"username": "only alphanumeric characters and underscores are allowed"},
		},
		{
			name:   "missing title",
			mutate: func(p *testPayload) { p.Title = "" },
			want:   map[string]string{"title": "this field is required"},
		},
		{
			name:   "untrimmed title",
			mutate: func(p *testPayload) { p.Title = " lol " },
			want:   map[string]string{"title": titleText},
		},
		{
			name:   "multiline title",
			mutate: func(p *testPayload) { p.Title = "lol\nlol" },
			want:   map[string]string{"title": titleText},
		},
		{
			name:   "long title",
			mutate: func(p *testPayload) { p.Title = strings.Repeat("é", titleMaxLen+1) },
			want:   map[string]string{"title": titleText},
		},
		{
			name:   "long description",
			mutate: func(p *testPayload) { p.Description = strings.Repeat("a", descriptionMaxLen+1) },
			want:   map[string]string{"description": descriptionText},
		},
		{
			name:   "short color",
			mutate: func(p *testPayload) { p.Color = "#fff" },
			want:   map[string]string{"color": hexColorText},
		},
		{
			name:   "missing date",
			mutate: func(p *testPayload) { p.ExamDate = Date{} },
			want:   map[string]string{"exam_date": "this field is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := validate.Struct(p)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !assert.True(t, ok, "want validator.ValidationErrors, got %T", err) {
				return
			}
			assert.Equal(t, tt.want, TranslateErrors(vErrs, translator))
		})
	}
}

func TestCleanOrderings(t *testing.T) {
	ordering := []DBOrdering{
		{Field: "name", Ascending: true},
		{Field: "1; DROP TABLE course", Ascending: true},
		{Field: "created_at"},
	}
	got := CleanOrderings(ordering, "name", "created_at")
	assert.Equal(t, []DBOrdering{{Field: "name", Ascending: true}, {Field: "created_at"}}, got)
	assert.Equal(t, " ORDER BY name ASC, created_at DESC", OrderBy(got))
	assert.Equal(t, " ORDER BY id ASC", OrderBy(nil, DBOrdering{Field: "id", Ascending: true}))
	assert.Equal(t, "", OrderBy(nil))
}

func TestCleanStrings(t *testing.T) {
	assert.Nil(t, CleanStrings(nil))
	assert.Equal(t, []string{"exam", "math"}, CleanStrings([]string{" Exam", "math ", "", "exam"}, true))
}
