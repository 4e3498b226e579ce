package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlaceholderName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "NAME"},
		{"userName", "USER_NAME"},
		{"user_name", "USER_NAME"},
		{"USER_NAME", "USER_NAME"},
		{"startLink2", "START_LINK2"},
		{"html5Link", "HTML5_LINK"},
		{"URL", "URL"},
		{"userID", "USER_I_D"},
		{"userId", "USER_ID"},
		{"linkURL", "LINK_U_R_L"},
		{"user_Name", "USER__NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePlaceholderName(tt.in))
		})
	}
}

func TestMessage_TextRoundTrip(t *testing.T) {
	msg := Message{Parts: []Part{
		Literal("Hello, "),
		Placeholder("userName"),
		Literal("! You have "),
		Placeholder("count"),
		Literal(" new {messages}"),
	}}

	assert.Equal(t, "Hello, {$userName}! You have {$count} new {messages}", msg.Text())
}

func TestMessage_Placeholders(t *testing.T) {
	msg := Message{Parts: []Part{
		Placeholder("b"),
		Literal(" and "),
		Placeholder("a"),
		Literal(" and "),
		Placeholder("b"),
	}}

	assert.Equal(t, []string{"B", "A"}, msg.Placeholders())
	assert.Empty(t, Message{Parts: []Part{Literal("x")}}.Placeholders())
}

func TestPart(t *testing.T) {
	lit := Literal("a")
	assert.False(t, lit.IsPlaceholder())
	assert.Empty(t, lit.Name)

	ph := Placeholder("fooBar")
	assert.True(t, ph.IsPlaceholder())
	assert.Equal(t, "fooBar", ph.Text)
	assert.Equal(t, "FOO_BAR", ph.Name)
}

func TestMessageIDAndPosition(t *testing.T) {
	assert.Equal(t, "18164522384142767988", MessageID(18164522384142767988).String())
	assert.Equal(t, "12:7", Position{Line: 12, Column: 7}.String())
}

func TestSourceError(t *testing.T) {
	cause := errors.New("unexpected token")
	err := fmt.Errorf("extract: %w", &SourceError{Path: "a.js", Err: cause})

	assert.ErrorIs(t, err, ErrSourceRead)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMalformedDeclaration)
	assert.Equal(t, "extract: a.js: unexpected token", err.Error())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Path: "a.js", Key: "MSG_X", Position: Position{Line: 2, Column: 5}, Err: ErrInvalidMessage}
	assert.Equal(t, "a.js:2:5: MSG_X: invalid message", d.String())

	d.Key = ""
	assert.Equal(t, "a.js:2:5: <anonymous>: invalid message", d.String())
}
