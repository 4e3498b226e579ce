package controller

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func sampleFragments() []m.Fragment {
	return []m.Fragment{
		{
			Source: m.Source{Origin: &m.File{FullPath: "/repo/app/hello.js", ShortPath: "app/hello.js"}},
			Messages: []m.Message{
				{
					ID:       6401921416235019197,
					Key:      "MSG_HELLO",
					Parts:    []m.Part{m.Literal("Hello, "), m.Placeholder("userName"), m.Literal("!")},
					Desc:     "Greeting",
					Position: m.Position{Line: 3, Column: 5},
				},
				{
					ID:       42,
					Key:      "MSG_BYE",
					Parts:    []m.Part{m.Literal("Bye")},
					Hidden:   true,
					Position: m.Position{Line: 6, Column: 5},
				},
			},
		},
	}
}

func sampleDiagnostics() []m.Diagnostic {
	return []m.Diagnostic{
		{
			Path:     "app/bad.js",
			Key:      "MSG_BAD",
			Position: m.Position{Line: 1, Column: 5},
			Err:      fmt.Errorf("%w: message text must be a string literal", m.ErrMalformedDeclaration),
		},
	}
}

var errNoRun = errors.New("pager should not run")
