package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title string  `json:"title" validate:"required,min=3,max=10"`
	Email string  `json:"email" validate:"omitempty,email"`
	At    string  `json:"reminder_time" validate:"omitempty,datetime=15:04"`
	Day   *int    `json:"summary_day" validate:"omitempty,min=1,max=7"`
	Body  *string `json:"content" validate:"required"`
}

func ptr[T any](v T) *T { return &v }

func TestStruct_OK(t *testing.T) {
	res := Struct(sample{Title: "abc", Email: "a@x.com", At: "07:30", Day: ptr(7), Body: ptr("")})
	assert.True(t, res.OK(), res.Fields)
	assert.Empty(t, res.First())
}

func TestStruct_FieldErrors(t *testing.T) {
	res := Struct(sample{Title: "ab", Email: "nope", At: "25:00", Day: ptr(0)})
	assert.False(t, res.OK())
	assert.Equal(t, "must be at least 3 characters", res.Fields["title"])
	assert.Equal(t, "must be a valid email", res.Fields["email"])
	assert.Equal(t, "must be a time in HH:MM format", res.Fields["reminder_time"])
	assert.Equal(t, "must be at least 1", res.Fields["summary_day"])
	assert.Equal(t, "required", res.Fields["content"])
	assert.Equal(t, "content: required", res.First())
}

func TestResult_Add(t *testing.T) {
	var res Result
	res.Add("body", "at least one field is required")
	assert.False(t, res.OK())
	assert.Equal(t, "body: at least one field is required", res.First())
}
