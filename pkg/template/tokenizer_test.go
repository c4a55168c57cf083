// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"carvel.dev/minitpl/pkg/template"
	"github.com/google/go-cmp/cmp"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenDesc struct {
	Kind    string
	Content string
	Pos     string
}

func describeTokens(tokens []template.Token) []tokenDesc {
	var result []tokenDesc
	for _, token := range tokens {
		result = append(result, tokenDesc{token.Kind.String(), token.Content, token.Position.AsCompactString()})
	}
	return result
}

func TestTokenize(t *testing.T) {
	tokens, err := template.Tokenize("tpl", "Hello {{ name }}!\n{% if a %}x{% endif %}{# c #}")
	require.NoError(t, err)

	expected := []tokenDesc{
		{"literal", "Hello ", "tpl:1:1"},
		{"expression", "{{ name }}", "tpl:1:7"},
		{"literal", "!\n", "tpl:1:17"},
		{"tag", "{% if a %}", "tpl:2:1"},
		{"literal", "x", "tpl:2:11"},
		{"tag", "{% endif %}", "tpl:2:12"},
		{"comment", "{# c #}", "tpl:2:23"},
	}

	if diff := cmp.Diff(expected, describeTokens(tokens)); diff != "" {
		t.Fatalf("tokens mismatch (-expected +actual):\n%s", diff)
	}
}

func TestTokenizeMultilineDelimiters(t *testing.T) {
	tokens, err := template.Tokenize("tpl", "{#\n multi\n line #}{{\nx\n}}end")
	require.NoError(t, err)

	expected := []tokenDesc{
		{"comment", "{#\n multi\n line #}", "tpl:1:1"},
		{"expression", "{{\nx\n}}", "tpl:3:9"},
		{"literal", "end", "tpl:5:3"},
	}

	if diff := cmp.Diff(expected, describeTokens(tokens)); diff != "" {
		t.Fatalf("tokens mismatch (-expected +actual):\n%s", diff)
	}
	assert.Equal(t, "x", tokens[1].Inner())
}

func TestTokenizeEmpty(t *testing.T) {
	tokens, err := template.Tokenize("tpl", "")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = template.Tokenize("tpl", "{{a}}{{b}}")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}

func TestTokenizeNonGreedy(t *testing.T) {
	tokens, err := template.Tokenize("tpl", "{{ a }} and {{ b }}")
	require.NoError(t, err)

	expected := []tokenDesc{
		{"expression", "{{ a }}", "tpl:1:1"},
		{"literal", " and ", "tpl:1:8"},
		{"expression", "{{ b }}", "tpl:1:13"},
	}

	if diff := cmp.Diff(expected, describeTokens(tokens)); diff != "" {
		t.Fatalf("tokens mismatch (-expected +actual):\n%s", diff)
	}
}

func TestTokenizeUnclosedDelimiters(t *testing.T) {
	cases := []struct {
		Input string
		ErrAt string
		Pos   string
	}{
		{"a {{ b", "{{", "tpl:1:3"},
		{"line1\nab {% x", "{%", "tpl:2:4"},
		{"{{ ok }} {# never", "{#", "tpl:1:10"},
		{"{{ a }", "{{", "tpl:1:1"},
	}

	for _, tc := range cases {
		t.Run(tc.Input, func(t *testing.T) {
			_, err := template.Tokenize("tpl", tc.Input)
			require.Error(t, err)

			var syntaxErr *template.SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, template.ErrMsgUnclosedDelimiter, syntaxErr.Msg)
			assert.Equal(t, tc.ErrAt, syntaxErr.At)
			assert.Equal(t, tc.Pos, syntaxErr.Position.AsCompactString())
		})
	}
}

func TestTokenizeWithFuzzedInputs(t *testing.T) {
	alphabet := []string{"{", "}", "%", "#", "{{", "}}", "{%", "%}", "{#", "#}", "a", " ", "\n", "é"}

	fuzzTemplate := fuzz.New().RandSource(getRandSource(t)).Funcs(func(s *string, c fuzz.Continue) {
		var pieces []string
		for i := c.Intn(20); i > 0; i-- {
			pieces = append(pieces, alphabet[c.Intn(len(alphabet))])
		}
		*s = strings.Join(pieces, "")
	})

	for i := 0; i < 500; i++ {
		var input string
		fuzzTemplate.Fuzz(&input)

		var compileErr error
		require.NotPanics(t, func() { _, compileErr = template.New("tpl", input) }, "input %q", input)

		tokens, err := template.Tokenize("tpl", input)
		if err != nil {
			var syntaxErr *template.SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "input %q", input)
			require.Equal(t, template.ErrMsgUnclosedDelimiter, syntaxErr.Msg, "input %q", input)
			require.EqualError(t, compileErr, err.Error(), "input %q", input)
			continue
		}

		var contents []string
		line := 1

		for _, token := range tokens {
			require.NotEmpty(t, token.Content, "input %q", input)
			require.Equal(t, line, token.Position.LineNum(), "input %q", input)

			if token.Kind == template.TokenLiteral {
				for _, delim := range []string{"{{", "{%", "{#"} {
					require.NotContains(t, token.Content, delim, "input %q", input)
				}
			}

			contents = append(contents, token.Content)
			line += strings.Count(token.Content, "\n")
		}

		require.Equal(t, input, strings.Join(contents, ""))
	}
}

func getRandSource(t *testing.T) rand.Source {
	var seed int64
	if os.Getenv("MINITPL_SEED") == "" {
		seed = time.Now().UnixNano()
	} else {
		envSeed, err := strconv.Atoi(os.Getenv("MINITPL_SEED"))
		require.NoError(t, err)
		seed = int64(envSeed)
	}

	t.Log(fmt.Sprintf("Seed used was: [%v]. To reproduce this test failure, re-run the test with `export MINITPL_SEED=%v`", seed, seed))

	return rand.NewSource(seed)
}
